package domain

import (
	"strings"
	"time"
)

// Schema versioning for the persisted document. Bump CurrentSchemaVersion
// when adding a migration transform in internal/schema.
const CurrentSchemaVersion = 3

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type SpotStatus string

const (
	SpotUnverified SpotStatus = "unverified"
	SpotVerified   SpotStatus = "verified"
	SpotPremium    SpotStatus = "premium"
)

type Theme string

const (
	ThemeSystem Theme = "system"
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
)

func ValidTheme(t Theme) bool {
	return t == ThemeSystem || t == ThemeLight || t == ThemeDark
}

// CleanupRecord is one approved cleanup in a user's history. It is owned by
// its user and never persisted on its own.
type CleanupRecord struct {
	ID        string    `json:"id"`
	SpotID    string    `json:"spotId"`
	Points    int       `json:"points"`
	Premium   bool      `json:"premium"`
	Timestamp time.Time `json:"timestamp"`
}

type User struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"` // normalized lower-case, unique
	PasswordHash  string          `json:"passwordHash"`
	Role          Role            `json:"role"`
	IsPremium     bool            `json:"isPremium"`
	Banned        bool            `json:"banned"`
	Points        int             `json:"points"`
	Streak        int             `json:"streak"`
	LastCleanupAt *time.Time      `json:"lastCleanupAt"`
	CreatedAt     time.Time       `json:"createdAt"`
	Cleanups      []CleanupRecord `json:"cleanups"`
}

// PublicUser is the sanitized view: same record minus the credential hash.
type PublicUser struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Role          Role            `json:"role"`
	IsPremium     bool            `json:"isPremium"`
	Banned        bool            `json:"banned"`
	Points        int             `json:"points"`
	Streak        int             `json:"streak"`
	LastCleanupAt *time.Time      `json:"lastCleanupAt"`
	CreatedAt     time.Time       `json:"createdAt"`
	Cleanups      []CleanupRecord `json:"cleanups"`
}

func (u *User) Sanitize() PublicUser {
	return PublicUser{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		IsPremium:     u.IsPremium,
		Banned:        u.Banned,
		Points:        u.Points,
		Streak:        u.Streak,
		LastCleanupAt: u.LastCleanupAt,
		CreatedAt:     u.CreatedAt,
		Cleanups:      u.Cleanups,
	}
}

type Spot struct {
	ID             string     `json:"id"`
	Lat            float64    `json:"lat"`
	Lng            float64    `json:"lng"`
	Status         SpotStatus `json:"status"`
	ReportedBy     string     `json:"reportedBy"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	BeforeImage    string     `json:"beforeImage,omitempty"`
	AfterImage     string     `json:"afterImage,omitempty"`
	VerifiedBy     string     `json:"verifiedBy,omitempty"`
	PremiumCleanup bool       `json:"premiumCleanup"`
}

type Settings struct {
	Theme          Theme   `json:"theme"`
	AIApprovalRate float64 `json:"aiApprovalRate"` // clamped to [0,1]
	NowOffsetDays  int     `json:"nowOffsetDays"`  // simulated clock skew
}

// LogEntry is one line of the append-only audit trail. Storage growth is
// unbounded; stats views cap at the most recent entries.
type LogEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// Session is the ephemeral login snapshot, kept under its own storage key.
type Session struct {
	UserID     string    `json:"userId"`
	Role       Role      `json:"role"`
	LoggedInAt time.Time `json:"loggedInAt"`
}

// Document is the root aggregate and the single unit of load/mutate/save.
type Document struct {
	SchemaVersion int        `json:"schemaVersion"`
	Users         []User     `json:"users"`
	Spots         []Spot     `json:"spots"`
	Log           []LogEntry `json:"log"`
	Settings      Settings   `json:"settings"`
}

// UserByID returns a pointer into the document's user slice, or nil.
func (d *Document) UserByID(id string) *User {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return &d.Users[i]
		}
	}
	return nil
}

// UserByEmail matches on the normalized form of email.
func (d *Document) UserByEmail(email string) *User {
	email = NormalizeEmail(email)
	for i := range d.Users {
		if d.Users[i].Email == email {
			return &d.Users[i]
		}
	}
	return nil
}

// SpotByID returns a pointer into the document's spot slice, or nil.
func (d *Document) SpotByID(id string) *Spot {
	for i := range d.Spots {
		if d.Spots[i].ID == id {
			return &d.Spots[i]
		}
	}
	return nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
