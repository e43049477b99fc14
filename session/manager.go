package session

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"log"
	"net/http"
	"sync"
	"time"

	"plantdesk/models"
	"plantdesk/rbac"
	"plantdesk/utils"
)

const (
	// CookieName is the session identifier cookie.
	CookieName = "session_token"

	// DefaultIdleTimeout logs a session out after 30 minutes without a request.
	DefaultIdleTimeout = 1800 * time.Second

	cookieMaxAge = 3600 * 24

	// Flash queue cap per session; oldest entries are dropped first.
	flashLimit = 32
)

// Manager is the sole mutator of session state. It owns login/logout, the
// idle timeout, CSRF issuance/verification, flash messages, and the RBAC
// questions answered from the session's role.
//
// Every read on an absent or expired session degrades to "not logged in";
// no Manager error ever reaches a page handler.
type Manager struct {
	store       Store
	idleTimeout time.Duration

	// Per-session mutexes serialize multi-step mutations (rotate-and-set on
	// login, read-then-clear on flash take) against duplicate-tab requests.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewManager builds a Manager over the given store. idleTimeout <= 0 selects
// DefaultIdleTimeout.
func NewManager(store Store, idleTimeout time.Duration) *Manager {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	return &Manager{
		store:       store,
		idleTimeout: idleTimeout,
		locks:       make(map[string]*sync.Mutex),
	}
}

// IdleTimeout returns the configured idle threshold.
func (m *Manager) IdleTimeout() time.Duration {
	return m.idleTimeout
}

func (m *Manager) sessionLock(sessionID string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.locks[sessionID]
	if !ok {
		l = &sync.Mutex{}
		m.locks[sessionID] = l
	}
	return l
}

// dropLock must only be called once the session record is gone from the
// store. A request still blocked on the old mutex can race a later request
// that mints a fresh one for the same id, but both then observe a dead
// session and degrade to "not logged in".
func (m *Manager) dropLock(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, sessionID)
}

// SessionID extracts the opaque session identifier from the request cookie.
func (m *Manager) SessionID(r *http.Request) (string, bool) {
	st, err := r.Cookie(CookieName)
	if err != nil || st.Value == "" {
		return "", false
	}
	return st.Value, true
}

// Current loads the session bound to the request, or nil when the request
// carries no valid session. Store failures degrade to nil.
func (m *Manager) Current(ctx context.Context, r *http.Request) *models.Session {
	id, ok := m.SessionID(r)
	if !ok {
		return nil
	}
	sess, err := m.store.Get(ctx, id)
	if err != nil {
		if err != ErrNotFound {
			log.Println("session load failed:", err)
		}
		return nil
	}
	return sess
}

// Login creates the session for a verified user record, rotating the session
// identifier so a pre-login cookie can never be promoted to an authenticated
// one. The caller must have verified credentials already.
func (m *Manager) Login(ctx context.Context, w http.ResponseWriter, r *http.Request, user models.StaffUser) error {
	// Session fixation defense: any pre-existing session dies with its id.
	if oldID, ok := m.SessionID(r); ok {
		lock := m.sessionLock(oldID)
		lock.Lock()
		if err := m.store.Delete(ctx, oldID); err != nil {
			log.Println("failed to discard pre-login session:", err)
		}
		lock.Unlock()
		m.dropLock(oldID)
	}

	now := time.Now()
	sess := &models.Session{
		SessionID:      generateToken(32),
		UserID:         user.ID,
		Username:       user.Username,
		Role:           user.Role,
		FullName:       user.FullName,
		Email:          user.Email,
		Phone:          user.Phone,
		LastLoginAt:    now,
		LastActivityAt: now,
		UserAgent:      utils.GetUserAgent(r),
		IPAddress:      utils.GetIP(r),
	}

	if err := m.store.Put(ctx, sess); err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sess.SessionID,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   cookieMaxAge,
	})

	return nil
}

// Logout tears the session down and invalidates the cookie. Calling it on an
// already-empty session is a no-op.
func (m *Manager) Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	id, ok := m.SessionID(r)
	if !ok {
		return nil
	}

	lock := m.sessionLock(id)
	lock.Lock()
	err := m.store.Delete(ctx, id)
	lock.Unlock()
	m.dropLock(id)

	clearSessionCookie(w)
	return err
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}

// IsLoggedIn reports whether the request is bound to a session carrying an
// identity.
func (m *Manager) IsLoggedIn(ctx context.Context, r *http.Request) bool {
	return loggedIn(m.Current(ctx, r))
}

func loggedIn(sess *models.Session) bool {
	return sess != nil && sess.UserID != 0 && sess.Username != ""
}

// CheckTimeout enforces the idle timeout and refreshes the session's
// last-activity stamp. It must be called on every authenticated request;
// there is no background reaper. An idle time at or beyond the threshold
// logs the session out and returns false. threshold <= 0 selects the
// Manager's configured timeout.
func (m *Manager) CheckTimeout(ctx context.Context, w http.ResponseWriter, r *http.Request, threshold time.Duration) bool {
	if threshold <= 0 {
		threshold = m.idleTimeout
	}

	id, ok := m.SessionID(r)
	if !ok {
		return false
	}

	lock := m.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	sess, err := m.store.Get(ctx, id)
	if err != nil || !loggedIn(sess) {
		return false
	}

	now := time.Now()
	if !sess.LastActivityAt.IsZero() && now.Sub(sess.LastActivityAt) >= threshold {
		log.Printf("session expired for user %s after %v idle", sess.Username, threshold)
		if err := m.store.Delete(ctx, id); err != nil {
			log.Println("failed to delete expired session:", err)
		}
		clearSessionCookie(w)
		m.dropLock(id)
		return false
	}

	sess.LastActivityAt = now
	if err := m.store.Put(ctx, sess); err != nil {
		log.Println("failed to refresh session activity:", err)
		return false
	}
	return true
}

// GenerateCSRFToken returns the session's anti-forgery token, minting a
// 256-bit hex token on first use. Idempotent per session; returns "" when
// the request has no live session.
func (m *Manager) GenerateCSRFToken(ctx context.Context, r *http.Request) string {
	id, ok := m.SessionID(r)
	if !ok {
		return ""
	}

	lock := m.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	sess, err := m.store.Get(ctx, id)
	if err != nil || !loggedIn(sess) {
		return ""
	}
	if sess.CSRFToken != "" {
		return sess.CSRFToken
	}

	sess.CSRFToken = generateHexToken(32)
	if err := m.store.Put(ctx, sess); err != nil {
		log.Println("failed to store csrf token:", err)
		return ""
	}
	return sess.CSRFToken
}

// VerifyCSRFToken compares a submitted token against the session's stored
// token in constant time. False when no token has been issued.
func (m *Manager) VerifyCSRFToken(ctx context.Context, r *http.Request, candidate string) bool {
	sess := m.Current(ctx, r)
	if sess == nil || sess.CSRFToken == "" || candidate == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(sess.CSRFToken), []byte(candidate)) == 1
}

// SetFlashMessage queues a one-time notice for the next page render.
func (m *Manager) SetFlashMessage(ctx context.Context, r *http.Request, severity, text string) {
	id, ok := m.SessionID(r)
	if !ok {
		return
	}

	lock := m.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	sess, err := m.store.Get(ctx, id)
	if err != nil {
		return
	}

	sess.Flash = append(sess.Flash, models.FlashMessage{Severity: severity, Text: text})
	if len(sess.Flash) > flashLimit {
		sess.Flash = sess.Flash[len(sess.Flash)-flashLimit:]
	}
	if err := m.store.Put(ctx, sess); err != nil {
		log.Println("failed to queue flash message:", err)
	}
}

// TakeFlashMessages returns the queued notices in insertion order and clears
// the queue. Destructive read; a second immediate call returns nothing.
func (m *Manager) TakeFlashMessages(ctx context.Context, r *http.Request) []models.FlashMessage {
	id, ok := m.SessionID(r)
	if !ok {
		return nil
	}

	lock := m.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	sess, err := m.store.Get(ctx, id)
	if err != nil || len(sess.Flash) == 0 {
		return nil
	}

	msgs := sess.Flash
	sess.Flash = nil
	if err := m.store.Put(ctx, sess); err != nil {
		log.Println("failed to clear flash queue:", err)
	}
	return msgs
}

// CanAccessSection answers the section question for the request's session
// role. False when not logged in.
func (m *Manager) CanAccessSection(ctx context.Context, r *http.Request, section int) bool {
	sess := m.Current(ctx, r)
	if !loggedIn(sess) {
		return false
	}
	return rbac.CanAccessSection(sess.Role, section)
}

// HasPermission answers the permission question for the request's session
// role. False when not logged in.
func (m *Manager) HasPermission(ctx context.Context, r *http.Request, permission string) bool {
	sess := m.Current(ctx, r)
	if !loggedIn(sess) {
		return false
	}
	return rbac.HasPermission(sess.Role, permission)
}

// AccessibleSections lists the section ids open to the request's session.
// Empty when not logged in.
func (m *Manager) AccessibleSections(ctx context.Context, r *http.Request) []int {
	sess := m.Current(ctx, r)
	if !loggedIn(sess) {
		return nil
	}
	return rbac.SectionsFor(sess.Role)
}

// generateToken returns a random URL-safe token for session identifiers.
func generateToken(length int) string {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}
	return base64.URLEncoding.EncodeToString(bytes)
}

// generateHexToken returns length random bytes hex-encoded, for CSRF tokens.
func generateHexToken(length int) string {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}
	return hex.EncodeToString(bytes)
}
