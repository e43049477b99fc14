package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"plantdesk/handlers"
	"plantdesk/models"
	"plantdesk/rbac"
	"plantdesk/session"
)

func TestLoginPageShowsFormToAnonymous(t *testing.T) {
	m := session.NewManager(session.NewMemoryStore(), 0)

	w := httptest.NewRecorder()
	handlers.LoginPageHandler(w, httptest.NewRequest(http.MethodGet, "/login", nil), m)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sign in")
}

func TestLoginPageIgnoresDeadCookie(t *testing.T) {
	m := session.NewManager(session.NewMemoryStore(), 0)

	// Cookie survives in the browser after its session is gone server-side.
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "stale"})

	w := httptest.NewRecorder()
	handlers.LoginPageHandler(w, req, m)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sign in")
}

func TestLoginPageRedirectsSignedIn(t *testing.T) {
	m := session.NewManager(session.NewMemoryStore(), 0)
	req := signIn(t, m, models.StaffUser{
		ID:       42,
		Username: "mrodriguez",
		Role:     rbac.RoleSection2Manager,
		FullName: "Maria Rodriguez",
	})

	w := httptest.NewRecorder()
	handlers.LoginPageHandler(w, req, m)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}
