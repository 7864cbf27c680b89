// Package schema owns the persisted document shape: seeding a fresh
// document and upgrading older versions to the current one.
package schema

import (
	"time"

	"cleanspot/internal/domain"
	"cleanspot/pkg/utils"
)

// Bootstrap admin credential. Fixed and well known on purpose: this is a
// prototype bootstrap, documented as insecure, and the account is not
// removable through normal flows.
const (
	AdminEmail    = "admin@cleanspot.local"
	AdminPassword = "admin123"
	AdminName     = "Administrator"
)

func DefaultSettings() domain.Settings {
	return domain.Settings{
		Theme:          domain.ThemeSystem,
		AIApprovalRate: 0.8,
		NowOffsetDays:  0,
	}
}

// Seed builds a fresh current-version document with the single admin user.
func Seed(now time.Time, newID utils.IDGen) *domain.Document {
	return &domain.Document{
		SchemaVersion: domain.CurrentSchemaVersion,
		Users: []domain.User{{
			ID:           newID(),
			Name:         AdminName,
			Email:        domain.NormalizeEmail(AdminEmail),
			PasswordHash: utils.HashPassword(AdminPassword),
			Role:         domain.RoleAdmin,
			CreatedAt:    now,
			Cleanups:     []domain.CleanupRecord{},
		}},
		Spots:    []domain.Spot{},
		Log:      []domain.LogEntry{},
		Settings: DefaultSettings(),
	}
}

// migrations maps a target version to the transform that upgrades a
// document from the previous version. Transforms are pure with respect to
// recognized fields: they fill defaults, they never discard data.
var migrations = map[int]func(*domain.Document){
	// v2 introduced the settings block.
	2: func(d *domain.Document) {
		if d.Settings.Theme == "" {
			d.Settings = DefaultSettings()
		}
	},
	// v3 introduced premium/streak fields and normalized emails.
	3: func(d *domain.Document) {
		for i := range d.Users {
			u := &d.Users[i]
			u.Email = domain.NormalizeEmail(u.Email)
			if u.Role == "" {
				u.Role = domain.RoleUser
			}
			if u.Cleanups == nil {
				u.Cleanups = []domain.CleanupRecord{}
			}
		}
		for i := range d.Spots {
			if d.Spots[i].Status == "" {
				d.Spots[i].Status = domain.SpotUnverified
			}
		}
		if d.Settings.AIApprovalRate < 0 {
			d.Settings.AIApprovalRate = 0
		}
		if d.Settings.AIApprovalRate > 1 {
			d.Settings.AIApprovalRate = 1
		}
	},
}

// Migrate upgrades doc in place, applying each registered transform from
// (stored version + 1) through the current version in order. Versions with
// no registered transform are no-ops. Reports whether anything changed;
// migrating an already-current document never does.
func Migrate(doc *domain.Document) bool {
	if doc.SchemaVersion >= domain.CurrentSchemaVersion {
		return false
	}
	for v := doc.SchemaVersion + 1; v <= domain.CurrentSchemaVersion; v++ {
		if transform, ok := migrations[v]; ok {
			transform(doc)
		}
		doc.SchemaVersion = v
	}
	return true
}

// EnsureAdmin re-creates the bootstrap admin if it went missing from an
// older or hand-edited document. Reports whether the document changed.
func EnsureAdmin(doc *domain.Document, now time.Time, newID utils.IDGen) bool {
	if doc.UserByEmail(AdminEmail) != nil {
		return false
	}
	doc.Users = append(doc.Users, domain.User{
		ID:           newID(),
		Name:         AdminName,
		Email:        domain.NormalizeEmail(AdminEmail),
		PasswordHash: utils.HashPassword(AdminPassword),
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		Cleanups:     []domain.CleanupRecord{},
	})
	return true
}
