package utils

import (
	"errors"
	"fmt"
	netmail "net/mail"
	"regexp"
	"strings"
)

func ValidateEmail(email string) error {
	_, err := netmail.ParseAddress(email)

	return err
}

var usernamePattern = regexp.MustCompile(`^[a-z0-9_.-]{3,32}$`)

func ValidateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return errors.New("username must be 3-32 characters: lowercase letters, digits, _ . -")
	}
	return nil
}

func ValidatePassword(password string) error {
	// Ensure password length is at least 8 characters
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	// Regex patterns for validation
	uppercase := regexp.MustCompile(`[A-Z]`)
	lowercase := regexp.MustCompile(`[a-z]`)
	digit := regexp.MustCompile(`\d`)
	specialChar := regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?]`)

	// Check if password meets all conditions
	if !uppercase.MatchString(password) {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !lowercase.MatchString(password) {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !digit.MatchString(password) {
		return fmt.Errorf("password must contain at least one digit")
	}
	if !specialChar.MatchString(password) {
		return fmt.Errorf("password must contain at least one special character")
	}

	return nil
}

// ValidatePlainField rejects empty, oversized, or markup-carrying values for
// free-text form fields like full names.
func ValidatePlainField(value string) error {
	if len(value) == 0 || len(value) > 255 {
		return errors.New("field must be between 1 and 255 characters")
	}
	if strings.ContainsAny(value, "<>\"'") {
		return errors.New("field contains invalid characters")
	}
	return nil
}

func SamePassword(password string, confirmedPassword string) bool {
	return password == confirmedPassword
}
