package models

// StaffUser is a verified user record loaded from the staff table.
type StaffUser struct {
	ID           int    `db:"id"`
	Username     string `db:"username"`
	Role         string `db:"role"`
	FullName     string `db:"full_name"`
	Email        string `db:"email"`
	Phone        string `db:"phone"`
	PasswordHash []byte `db:"password_hash"`
}
