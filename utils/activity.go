package utils

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"plantdesk/models"
)

// RecordActivity appends one row to the audit trail. Failures are logged and
// swallowed so auditing never blocks a page.
func RecordActivity(ctx context.Context, db *pgxpool.Pool, entry models.ActivityEntry) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	stmt := `INSERT INTO activity_log (id, user_id, username, action, detail, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW());`
	_, err := db.Exec(ctx, stmt, uuid.New(), entry.UserID, entry.Username, entry.Action, entry.Detail, entry.IPAddress)
	if err != nil {
		log.Println("error recording activity:", err)
	}
}

// RecentActivity returns the newest audit entries, newest first.
func RecentActivity(ctx context.Context, db *pgxpool.Pool, limit int) ([]models.ActivityEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	stmt := `SELECT id, user_id, username, action, COALESCE(detail, ''), COALESCE(ip_address, ''), created_at
		FROM activity_log ORDER BY created_at DESC LIMIT $1;`
	rows, err := db.Query(ctx, stmt, limit)
	if err != nil {
		log.Println("error querying activity log:", err)
		return nil, errors.New("error querying activity log")
	}
	defer rows.Close()

	entries := []models.ActivityEntry{}
	for rows.Next() {
		e := models.ActivityEntry{}
		if err := rows.Scan(&e.ID, &e.UserID, &e.Username, &e.Action, &e.Detail, &e.IPAddress, &e.CreatedAt); err != nil {
			log.Println("error scanning activity row:", err)
			return nil, errors.New("error processing activity log")
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		log.Println("error after scanning activity rows:", err)
		return nil, errors.New("error processing activity log")
	}

	return entries, nil
}
