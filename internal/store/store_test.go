package store_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cleanspot/internal/clock"
	"cleanspot/internal/core/kv"
	"cleanspot/internal/domain"
	"cleanspot/internal/schema"
	"cleanspot/internal/store"
)

const docKey = "cleanspot:data"

type fixedSource struct{ t time.Time }

func (f fixedSource) Now() time.Time { return f.t }

func newStore(t *testing.T) (*store.Store, kv.Store) {
	t.Helper()
	kvs := kv.NewMemory()
	clk := clock.New(fixedSource{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)})
	return store.New(kvs, clk, nil, zap.NewNop()), kvs
}

func TestLoadSeedsOnce(t *testing.T) {
	ctx := context.Background()
	st, kvs := newStore(t)

	doc, err := st.Load(ctx)
	require.NoError(t, err)
	require.Len(t, doc.Users, 1)
	adminID := doc.Users[0].ID

	// The seed must be persisted, not recomputed per load.
	raw, err := kvs.Get(ctx, docKey)
	require.NoError(t, err)
	var persisted domain.Document
	require.NoError(t, json.Unmarshal(raw, &persisted))
	assert.Equal(t, adminID, persisted.Users[0].ID)

	again, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, adminID, again.Users[0].ID)
}

func TestLoadReseedsMalformed(t *testing.T) {
	ctx := context.Background()
	st, kvs := newStore(t)

	require.NoError(t, kvs.Set(ctx, docKey, []byte("{not json")))

	doc, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.CurrentSchemaVersion, doc.SchemaVersion)
	require.Len(t, doc.Users, 1)
	assert.Equal(t, domain.RoleAdmin, doc.Users[0].Role)
}

func TestLoadMigratesAndPersists(t *testing.T) {
	ctx := context.Background()
	st, kvs := newStore(t)

	old := domain.Document{
		SchemaVersion: 1,
		Users: []domain.User{{
			ID:    "u1",
			Email: "Mixed@Case.Org",
		}},
	}
	raw, err := json.Marshal(old)
	require.NoError(t, err)
	require.NoError(t, kvs.Set(ctx, docKey, raw))

	doc, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.CurrentSchemaVersion, doc.SchemaVersion)
	assert.Equal(t, "mixed@case.org", doc.Users[0].Email)
	// The bootstrap admin is restored alongside the migrated user.
	assert.NotNil(t, doc.UserByEmail(schema.AdminEmail))

	// The healed document is written back immediately.
	raw, err = kvs.Get(ctx, docKey)
	require.NoError(t, err)
	var persisted domain.Document
	require.NoError(t, json.Unmarshal(raw, &persisted))
	assert.Equal(t, domain.CurrentSchemaVersion, persisted.SchemaVersion)
	assert.Equal(t, "mixed@case.org", persisted.Users[0].Email)
}

func TestUpdateAbortsWithoutSaving(t *testing.T) {
	ctx := context.Background()
	st, _ := newStore(t)

	_, err := st.Load(ctx)
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = st.Update(ctx, func(doc *domain.Document) error {
		doc.Users[0].Name = "scribbled"
		return boom
	})
	require.ErrorIs(t, err, boom)

	doc, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, schema.AdminName, doc.Users[0].Name)
}

func TestUpdatePersistsMutation(t *testing.T) {
	ctx := context.Background()
	st, _ := newStore(t)

	_, err := st.Update(ctx, func(doc *domain.Document) error {
		doc.Settings.Theme = domain.ThemeDark
		return nil
	})
	require.NoError(t, err)

	doc, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, doc.Settings.Theme)
}

func TestSessionRoundtrip(t *testing.T) {
	ctx := context.Background()
	st, _ := newStore(t)

	sess, err := st.LoadSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess)

	want := &domain.Session{
		UserID:     "u1",
		Role:       domain.RoleUser,
		LoggedInAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, st.SaveSession(ctx, want))

	got, err := st.LoadSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.UserID, got.UserID)
	assert.Equal(t, want.Role, got.Role)

	require.NoError(t, st.ClearSession(ctx))
	got, err = st.LoadSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResetClearsEverything(t *testing.T) {
	ctx := context.Background()
	st, _ := newStore(t)

	_, err := st.Update(ctx, func(doc *domain.Document) error {
		doc.Spots = append(doc.Spots, domain.Spot{ID: "s1"})
		doc.Users = append(doc.Users, domain.User{ID: "u1", Email: "a@b.c"})
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, st.SaveSession(ctx, &domain.Session{UserID: "u1"}))

	doc, err := st.Reset(ctx)
	require.NoError(t, err)
	assert.Len(t, doc.Users, 1)
	assert.Equal(t, domain.RoleAdmin, doc.Users[0].Role)
	assert.Empty(t, doc.Spots)
	assert.Empty(t, doc.Log)

	sess, err := st.LoadSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess)
}
