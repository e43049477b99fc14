package handlers

import (
	"log"
	"net/http"

	"plantdesk/models"
	"plantdesk/rbac"
	"plantdesk/session"
)

// Dashboard lists the sections the signed-in user may open and drains the
// flash queue.
func Dashboard(w http.ResponseWriter, r *http.Request, m *session.Manager) {
	sess, ok := m.RequireLogin(w, r)
	if !ok {
		return
	}

	links := []models.SectionLink{}
	for _, id := range m.AccessibleSections(r.Context(), r) {
		links = append(links, models.SectionLink{ID: id, Name: rbac.SectionName(id)})
	}

	data := models.PageData{
		FullName: sess.FullName,
		Role:     sess.Role,
		Sections: links,
		Flash:    m.TakeFlashMessages(r.Context(), r),
	}

	if err := dashboardTmpl.Execute(w, data); err != nil {
		log.Println("Error rendering dashboard:", err)
	}
}
