package session

import (
	"log"
	"net/http"

	"plantdesk/models"
)

// Guard routes: where failed checks send the browser.
const (
	loginPath     = "/login"
	dashboardPath = "/"
)

// RequireLogin is the first check of every authenticated page. It enforces
// both presence and freshness of the session; on failure it redirects to the
// login page and returns ok=false, and the handler must stop. An expired
// session is reported identically to a missing one.
func (m *Manager) RequireLogin(w http.ResponseWriter, r *http.Request) (*models.Session, bool) {
	ctx := r.Context()

	if !m.IsLoggedIn(ctx, r) || !m.CheckTimeout(ctx, w, r, 0) {
		http.Redirect(w, r, loginPath, http.StatusSeeOther)
		return nil, false
	}

	// CheckTimeout refreshed the activity stamp; reload the record so the
	// handler sees current state.
	sess := m.Current(ctx, r)
	if !loggedIn(sess) {
		http.Redirect(w, r, loginPath, http.StatusSeeOther)
		return nil, false
	}
	return sess, true
}

// RequireSection layers a section check on RequireLogin. Denials queue an
// access-denied flash and bounce to the dashboard; the handler must stop.
func (m *Manager) RequireSection(w http.ResponseWriter, r *http.Request, section int) (*models.Session, bool) {
	sess, ok := m.RequireLogin(w, r)
	if !ok {
		return nil, false
	}

	if !m.CanAccessSection(r.Context(), r, section) {
		log.Printf("access denied: user %s role %s section %d", sess.Username, sess.Role, section)
		m.SetFlashMessage(r.Context(), r, models.FlashError, "You do not have access to that section.")
		http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
		return nil, false
	}
	return sess, true
}

// RequirePermission layers a named-permission check on RequireLogin.
func (m *Manager) RequirePermission(w http.ResponseWriter, r *http.Request, permission string) (*models.Session, bool) {
	sess, ok := m.RequireLogin(w, r)
	if !ok {
		return nil, false
	}

	if !m.HasPermission(r.Context(), r, permission) {
		log.Printf("access denied: user %s role %s permission %s", sess.Username, sess.Role, permission)
		m.SetFlashMessage(r.Context(), r, models.FlashError, "You do not have permission to do that.")
		http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
		return nil, false
	}
	return sess, true
}
