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

// ActivityHandler shows the recent audit trail to reports_view holders.
func ActivityHandler(w http.ResponseWriter, r *http.Request, db *pgxpool.Pool, m *session.Manager) {
	_, ok := m.RequirePermission(w, r, rbac.PermReportsView)
	if !ok {
		return
	}

	entries, err := utils.RecentActivity(r.Context(), db, 100)
	if err != nil {
		log.Println("error loading activity:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := struct{ Entries []models.ActivityEntry }{Entries: entries}
	if err := activityTmpl.Execute(w, data); err != nil {
		log.Println("Error rendering activity page:", err)
	}
}
