package models

import "time"

// Session struct for storing per-login session data
type Session struct {
	SessionID      string         `json:"session_id"`
	UserID         int            `json:"user_id"`
	Username       string         `json:"username"`
	Role           string         `json:"role"`
	FullName       string         `json:"full_name"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone"`
	LastLoginAt    time.Time      `json:"last_login_at"`
	LastActivityAt time.Time      `json:"last_activity_at"`
	CSRFToken      string         `json:"csrf_token"`
	Flash          []FlashMessage `json:"flash,omitempty"`
	UserAgent      string         `json:"user_agent"`
	IPAddress      string         `json:"ip_address"`
}

// FlashMessage is a one-time notice queued for the next page render.
type FlashMessage struct {
	Severity string `json:"severity"`
	Text     string `json:"text"`
}

// Flash severities
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashWarning = "warning"
	FlashInfo    = "info"
)
