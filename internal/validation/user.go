package validation

import (
	"net/mail"
	"strings"
)

var commonPasswordPatterns = []string{
	"password", "123456", "qwerty", "admin", "letmein",
	"welcome", "monkey", "dragon", "master", "sunshine",
}

// ValidateUser checks the fields of a seeded or registered account.
func ValidateUser(name, email, password string) error {
	errs := Errors{}

	name = strings.TrimSpace(name)
	if name == "" {
		errs.Add("name", "The name field is required.")
	}
	maxLength(errs, "name", &name, MaxTitleLength)

	if msg := emailProblem(email); msg != "" {
		errs.Add("email", msg)
	}
	if msg := passwordProblem(password); msg != "" {
		errs.Add("password", msg)
	}

	return errs.Err()
}

func emailProblem(email string) string {
	if email == "" {
		return "The email field is required."
	}
	// RFC 5321: total max 254 with @
	if len(email) > 254 {
		return "The email field must not be greater than 254 characters."
	}
	_, err := mail.ParseAddress(email)
	if err != nil {
		return "The email field must be a valid email address."
	}
	return ""
}

func passwordProblem(password string) string {
	if len(password) < 8 {
		return "The password field must be at least 8 characters."
	}
	// bcrypt silently truncates past 72 bytes
	if len(password) > 72 {
		return "The password field must not be greater than 72 characters."
	}

	lower := strings.ToLower(password)
	for _, pattern := range commonPasswordPatterns {
		if strings.Contains(lower, pattern) {
			return "The password is too common, please choose a stronger one."
		}
	}
	return ""
}
