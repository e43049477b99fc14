package models

import (
	"time"

	"github.com/google/uuid"
)

// ActivityEntry is one row of the audit trail.
type ActivityEntry struct {
	ID        uuid.UUID `db:"id"`
	UserID    int       `db:"user_id"`
	Username  string    `db:"username"`
	Action    string    `db:"action"`
	Detail    string    `db:"detail"`
	IPAddress string    `db:"ip_address"`
	CreatedAt time.Time `db:"created_at"`
}
