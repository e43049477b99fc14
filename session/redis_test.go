package session_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plantdesk/models"
	"plantdesk/rbac"
	"plantdesk/session"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*session.RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return session.NewRedisStore(client, ttl), mr
}

func sampleSession(id string, userID int) *models.Session {
	now := time.Now().UTC().Truncate(time.Second)
	return &models.Session{
		SessionID:      id,
		UserID:         userID,
		Username:       "mrodriguez",
		Role:           rbac.RoleSection2Manager,
		FullName:       "Maria Rodriguez",
		LastLoginAt:    now,
		LastActivityAt: now,
		Flash: []models.FlashMessage{
			{Severity: models.FlashInfo, Text: "hello"},
		},
	}
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := newRedisStore(t, time.Hour)
	ctx := context.Background()

	want := sampleSession("tok-1", 42)
	require.NoError(t, store.Put(ctx, want))

	got, err := store.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, want.UserID, got.UserID)
	assert.Equal(t, want.Username, got.Username)
	assert.Equal(t, want.Role, got.Role)
	assert.True(t, want.LastActivityAt.Equal(got.LastActivityAt))
	assert.Equal(t, want.Flash, got.Flash)
}

func TestRedisStoreGetMissing(t *testing.T) {
	store, _ := newRedisStore(t, time.Hour)

	_, err := store.Get(context.Background(), "never-stored")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestRedisStoreDelete(t *testing.T) {
	store, mr := newRedisStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, sampleSession("tok-1", 42)))
	require.NoError(t, store.Delete(ctx, "tok-1"))

	_, err := store.Get(ctx, "tok-1")
	assert.ErrorIs(t, err, session.ErrNotFound)
	// The user index entry goes with it.
	assert.False(t, mr.Exists("session:tok-1"))
	members, _ := mr.SMembers("user_sessions:42")
	assert.Empty(t, members)

	// Deleting an absent session is not an error.
	assert.NoError(t, store.Delete(ctx, "tok-1"))
}

func TestRedisStoreTTLExpiry(t *testing.T) {
	store, mr := newRedisStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, sampleSession("tok-1", 42)))

	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "tok-1")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestRedisStorePerUserOperations(t *testing.T) {
	store, _ := newRedisStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, sampleSession("tok-1", 42)))
	require.NoError(t, store.Put(ctx, sampleSession("tok-2", 42)))
	require.NoError(t, store.Put(ctx, sampleSession("tok-3", 7)))

	n, err := store.CountForUser(ctx, 42)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	require.NoError(t, store.DeleteAllForUser(ctx, 42))

	_, err = store.Get(ctx, "tok-1")
	assert.ErrorIs(t, err, session.ErrNotFound)
	_, err = store.Get(ctx, "tok-2")
	assert.ErrorIs(t, err, session.ErrNotFound)

	// Other users' sessions stay.
	_, err = store.Get(ctx, "tok-3")
	assert.NoError(t, err)

	n, err = store.CountForUser(ctx, 42)
	require.NoError(t, err)
	assert.Zero(t, n)
}

// The manager is backend-agnostic; run the core lifecycle against the real
// Redis store to catch encoding drift.
func TestManagerOverRedisStore(t *testing.T) {
	store, _ := newRedisStore(t, time.Hour)
	m := session.NewManager(store, 0)
	ctx := context.Background()

	req := loginAs(t, m, sectionTwoManager())

	assert.True(t, m.IsLoggedIn(ctx, req))
	assert.Equal(t, []int{2, 4, 7}, m.AccessibleSections(ctx, req))

	token := m.GenerateCSRFToken(ctx, req)
	require.NotEmpty(t, token)
	assert.True(t, m.VerifyCSRFToken(ctx, req, token))

	m.SetFlashMessage(ctx, req, models.FlashSuccess, "stored in redis")
	flash := m.TakeFlashMessages(ctx, req)
	require.Len(t, flash, 1)
	assert.Equal(t, "stored in redis", flash[0].Text)
	assert.Empty(t, m.TakeFlashMessages(ctx, req))

	require.NoError(t, m.Logout(ctx, httptest.NewRecorder(), req))
	assert.False(t, m.IsLoggedIn(ctx, req))
}
