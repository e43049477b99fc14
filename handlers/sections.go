package handlers

import (
	"fmt"
	"log"
	"net/http"
	"path"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"plantdesk/models"
	"plantdesk/rbac"
	"plantdesk/session"
	"plantdesk/utils"
)

// SectionHandler serves /section/{id}. The guard decides whether the
// signed-in role may open the section; denials bounce to the dashboard.
func SectionHandler(w http.ResponseWriter, r *http.Request, db *pgxpool.Pool, m *session.Manager) {
	id, err := strconv.Atoi(path.Base(r.URL.Path))
	if err != nil {
		http.Error(w, "Invalid section", http.StatusBadRequest)
		return
	}

	sess, ok := m.RequireSection(w, r, id)
	if !ok {
		return
	}

	utils.RecordActivity(r.Context(), db, models.ActivityEntry{
		UserID:    sess.UserID,
		Username:  sess.Username,
		Action:    "section_view",
		Detail:    fmt.Sprintf("section %d", id),
		IPAddress: utils.GetIP(r),
	})

	data := struct {
		Name  string
		Flash []models.FlashMessage
	}{
		Name:  rbac.SectionName(id),
		Flash: m.TakeFlashMessages(r.Context(), r),
	}

	if err := sectionTmpl.Execute(w, data); err != nil {
		log.Println("Error rendering section page:", err)
	}
}
