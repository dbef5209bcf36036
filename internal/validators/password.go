package validators

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 128
)

var (
	upperRe   = regexp.MustCompile(`[A-Z]`)
	lowerRe   = regexp.MustCompile(`[a-z]`)
	digitRe   = regexp.MustCompile(`[0-9]`)
	charsetRe = regexp.MustCompile(`^[A-Za-z0-9~!?@#$%^&*_\-+()\[\]{}><\/\\|"'.,:;]+$`)

	usernameRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// ValidatePassword enforces the account password policy: 8-128 characters,
// at least one upper-case letter, one lower-case letter and one digit, no
// spaces, and only characters from the allowed set.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}

	if len(password) > maxPasswordLength {
		return fmt.Errorf("password must be at most %d characters long", maxPasswordLength)
	}

	if !upperRe.MatchString(password) {
		return fmt.Errorf("password must contain at least one upper-case letter")
	}

	if !lowerRe.MatchString(password) {
		return fmt.Errorf("password must contain at least one lower-case letter")
	}

	if !digitRe.MatchString(password) {
		return fmt.Errorf("password must contain at least one digit")
	}

	if strings.Contains(password, " ") {
		return fmt.Errorf("password must not contain spaces")
	}

	if !charsetRe.MatchString(password) {
		return fmt.Errorf(`password may only contain letters, digits and the special characters ~ ! ? @ # $ %% ^ & * _ - + ( ) [ ] { } > < / \ | " ' . , : ;`)
	}

	return nil
}

// ValidateUsername enforces 3-50 characters from [A-Za-z0-9_-].
func ValidateUsername(username string) error {
	if len(username) < 3 {
		return fmt.Errorf("username must be at least 3 characters long")
	}

	if len(username) > 50 {
		return fmt.Errorf("username must be at most 50 characters long")
	}

	if !usernameRe.MatchString(username) {
		return fmt.Errorf("username may only contain letters, digits, _ and -")
	}

	return nil
}

func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}

	if !emailRe.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}

	return nil
}
