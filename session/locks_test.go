package session

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plantdesk/models"
	"plantdesk/rbac"
)

func (m *Manager) lockCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.locks)
}

// Sessions that end by idle timeout must release their mutex entry just like
// explicit logout does, or a long-running server accumulates one per expired
// session.
func TestExpiryReleasesSessionLock(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, 0)
	ctx := context.Background()
	threshold := 1800 * time.Second

	const users = 100
	requests := make([]*http.Request, 0, users)
	for i := 0; i < users; i++ {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/login-submit", nil)
		err := m.Login(ctx, w, r, models.StaffUser{
			ID:       i + 1,
			Username: fmt.Sprintf("user%d", i+1),
			Role:     rbac.RoleSection1Manager,
			FullName: "Test User",
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, c := range w.Result().Cookies() {
			if c.Name == CookieName && c.Value != "" {
				req.AddCookie(c)
			}
		}
		requests = append(requests, req)
	}
	require.Equal(t, users, store.Len())

	// Push every session past the threshold, then let the timeout check
	// reap them all.
	for _, req := range requests {
		id, ok := m.SessionID(req)
		require.True(t, ok)

		sess, err := store.Get(ctx, id)
		require.NoError(t, err)
		sess.LastActivityAt = time.Now().Add(-threshold)
		require.NoError(t, store.Put(ctx, sess))

		assert.False(t, m.CheckTimeout(ctx, httptest.NewRecorder(), req, threshold))
	}

	assert.Equal(t, 0, store.Len(), "expired sessions must leave the store")
	assert.Equal(t, 0, m.lockCount(), "expired sessions must leave the lock table")
}

func TestLogoutReleasesSessionLock(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, 0)
	ctx := context.Background()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/login-submit", nil)
	require.NoError(t, m.Login(ctx, w, r, models.StaffUser{
		ID: 1, Username: "admin", Role: rbac.RoleAdmin, FullName: "Site Admin",
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		if c.Name == CookieName && c.Value != "" {
			req.AddCookie(c)
		}
	}

	// A refresh allocates the session's mutex entry.
	require.True(t, m.CheckTimeout(ctx, httptest.NewRecorder(), req, 0))
	assert.Equal(t, 1, m.lockCount())

	require.NoError(t, m.Logout(ctx, httptest.NewRecorder(), req))
	assert.Equal(t, 0, m.lockCount())
}
