package utils

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"plantdesk/models"
)

// ErrInvalidCredentials covers both unknown usernames and wrong passwords so
// login failures leak nothing about which it was.
var ErrInvalidCredentials = errors.New("invalid credentials")

// VerifyCredentials checks a username/password pair against the staff table
// and returns the verified user record for session creation.
func VerifyCredentials(ctx context.Context, db *pgxpool.Pool, username, password string) (*models.StaffUser, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	stmt := `SELECT id, username, role, full_name, COALESCE(email, ''), COALESCE(phone, ''), password_hash
		FROM staff WHERE username = $1 AND active;`

	user := &models.StaffUser{}
	row := db.QueryRow(ctx, stmt, username)
	err := row.Scan(&user.ID, &user.Username, &user.Role, &user.FullName, &user.Email, &user.Phone, &user.PasswordHash)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrInvalidCredentials
		}
		log.Printf("staff lookup failed for %s: %v", username, err)
		return nil, fmt.Errorf("staff lookup: %w", err)
	}

	if !CheckPasswordHash(password, string(user.PasswordHash)) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// CreateStaffUser inserts a new staff account with a freshly hashed password.
func CreateStaffUser(ctx context.Context, db *pgxpool.Pool, user models.StaffUser, password string) error {
	passwordHash, err := HashPassword(password)
	if err != nil {
		log.Println("error hashing password", err)
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	stmt := `INSERT INTO staff (username, role, full_name, email, phone, password_hash, active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE);`
	if _, err := db.Exec(ctx, stmt, user.Username, user.Role, user.FullName, user.Email, user.Phone, passwordHash); err != nil {
		log.Println("error adding staff user", err)
		return fmt.Errorf("insert staff user: %w", err)
	}
	return nil
}

// UsernameInUse reports whether a staff username is already taken.
func UsernameInUse(ctx context.Context, db *pgxpool.Pool, username string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	stmt := "SELECT EXISTS(SELECT 1 FROM staff WHERE username = $1)"

	var exists bool
	if err := db.QueryRow(ctx, stmt, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("database error checking username: %w", err)
	}
	return exists, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
