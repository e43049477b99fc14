package handlers

import (
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"plantdesk/models"
	"plantdesk/session"
	"plantdesk/utils"
)

// LoginPageHandler renders the sign-in form. Already-authenticated visitors
// go straight to the dashboard.
func LoginPageHandler(w http.ResponseWriter, r *http.Request, m *session.Manager) {
	// No cookie means no store lookup is worth making.
	if utils.CookieExists(r, session.CookieName) && m.IsLoggedIn(r.Context(), r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	renderLogin(w, "")
}

func renderLogin(w http.ResponseWriter, errMsg string) {
	data := struct{ Error string }{Error: errMsg}
	if err := loginTmpl.Execute(w, data); err != nil {
		log.Println("Error rendering login form:", err)
	}
}

// LoginHandler verifies credentials and creates the session. The session
// identifier is rotated inside Manager.Login, so a cookie issued before
// authentication never survives it.
func LoginHandler(w http.ResponseWriter, r *http.Request, db *pgxpool.Pool, m *session.Manager) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")
	if username == "" || password == "" {
		w.WriteHeader(http.StatusBadRequest)
		renderLogin(w, "Missing credentials")
		return
	}

	user, err := utils.VerifyCredentials(r.Context(), db, username, password)
	if err != nil {
		if err == utils.ErrInvalidCredentials {
			log.Println("failed login attempt for:", username)
			w.WriteHeader(http.StatusUnauthorized)
			renderLogin(w, "Invalid username or password")
			return
		}
		log.Println("login failed:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := m.Login(r.Context(), w, r, *user); err != nil {
		log.Println("session creation failed:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	utils.RecordActivity(r.Context(), db, models.ActivityEntry{
		UserID:    user.ID,
		Username:  user.Username,
		Action:    "login",
		IPAddress: utils.GetIP(r),
	})

	log.Println("login successful for user:", user.Username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// LogOutHandler tears down the session and sends the browser back to the
// sign-in page. Safe to hit with no session at all.
func LogOutHandler(w http.ResponseWriter, r *http.Request, db *pgxpool.Pool, m *session.Manager) {
	if sess := m.Current(r.Context(), r); sess != nil {
		utils.RecordActivity(r.Context(), db, models.ActivityEntry{
			UserID:    sess.UserID,
			Username:  sess.Username,
			Action:    "logout",
			IPAddress: utils.GetIP(r),
		})
	}

	if err := m.Logout(r.Context(), w, r); err != nil {
		log.Println("logout failed:", err)
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
