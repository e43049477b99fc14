package handlers

import (
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"plantdesk/models"
	"plantdesk/rbac"
	"plantdesk/session"
	"plantdesk/utils"
)

// staff_manage is not in any manager's permission set, so only admin (which
// implicitly holds every permission) passes this guard.
const permStaffManage = "staff_manage"

var allowedRoles = map[string]bool{
	rbac.RoleAdmin:           true,
	rbac.RoleSection1Manager: true,
	rbac.RoleSection2Manager: true,
	rbac.RoleSection3Manager: true,
}

// NewStaffForm renders the admin-only account creation form.
func NewStaffForm(w http.ResponseWriter, r *http.Request, m *session.Manager) {
	_, ok := m.RequirePermission(w, r, permStaffManage)
	if !ok {
		return
	}

	data := models.PageData{
		CSRFtoken: m.GenerateCSRFToken(r.Context(), r),
		Flash:     m.TakeFlashMessages(r.Context(), r),
	}
	if err := staffFormTmpl.Execute(w, data); err != nil {
		log.Println("Error rendering staff form:", err)
	}
}

// CreateStaffHandler handles the account creation POST. The form's CSRF
// token must match the session's before anything is written.
func CreateStaffHandler(w http.ResponseWriter, r *http.Request, db *pgxpool.Pool, m *session.Manager) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sess, ok := m.RequirePermission(w, r, permStaffManage)
	if !ok {
		return
	}

	if !m.VerifyCSRFToken(r.Context(), r, csrfFromRequest(r)) {
		log.Println("rejected staff creation: csrf mismatch for", sess.Username)
		http.Error(w, "Invalid request token", http.StatusForbidden)
		return
	}

	username := r.FormValue("username")
	fullName := r.FormValue("full_name")
	email := r.FormValue("email")
	phone := r.FormValue("phone")
	role := r.FormValue("role")
	password := r.FormValue("password")
	confirmed := r.FormValue("confirm-password")

	fail := func(msg string) {
		m.SetFlashMessage(r.Context(), r, models.FlashError, msg)
		http.Redirect(w, r, "/staff/new", http.StatusSeeOther)
	}

	if err := utils.ValidateUsername(username); err != nil {
		fail(err.Error())
		return
	}
	if err := utils.ValidatePlainField(fullName); err != nil {
		fail("invalid full name: " + err.Error())
		return
	}
	if email != "" {
		if err := utils.ValidateEmail(email); err != nil {
			fail("invalid email address")
			return
		}
	}
	if !allowedRoles[role] {
		fail("unrecognized role")
		return
	}
	if err := utils.ValidatePassword(password); err != nil {
		fail(err.Error())
		return
	}
	if !utils.SamePassword(password, confirmed) {
		fail("passwords must match")
		return
	}

	inUse, err := utils.UsernameInUse(r.Context(), db, username)
	if err != nil {
		log.Println("error checking username:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if inUse {
		fail("that username is already taken")
		return
	}

	user := models.StaffUser{
		Username: username,
		Role:     role,
		FullName: fullName,
		Email:    email,
		Phone:    phone,
	}
	if err := utils.CreateStaffUser(r.Context(), db, user, password); err != nil {
		log.Println("error creating staff user:", err, "user:", username)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	utils.RecordActivity(r.Context(), db, models.ActivityEntry{
		UserID:    sess.UserID,
		Username:  sess.Username,
		Action:    "staff_create",
		Detail:    "created account " + username,
		IPAddress: utils.GetIP(r),
	})

	m.SetFlashMessage(r.Context(), r, models.FlashSuccess, "Account created for "+username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// csrfFromRequest reads the submitted token from the form field, falling
// back to the request header.
func csrfFromRequest(r *http.Request) string {
	if tok := r.FormValue("csrf_token"); tok != "" {
		return tok
	}
	return r.Header.Get("X-CSRF-Token")
}
