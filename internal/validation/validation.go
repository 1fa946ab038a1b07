package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Grades lists the accepted grade labels for kid profiles
var Grades = []string{
	"Pre-K",
	"Kindergarten",
	"1st Grade",
	"2nd Grade",
	"3rd Grade",
	"4th Grade",
	"5th Grade",
	"6th Grade",
	"7th Grade",
	"8th Grade",
}

const (
	MinKidAge = 3
	MaxKidAge = 18
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < 8 {
		return ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

// ValidateName checks if a name is valid
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	return nil
}

// ValidateAge checks that a kid's age is in the supported range
func ValidateAge(age int) error {
	if age < MinKidAge || age > MaxKidAge {
		return ValidationError{
			Field:   "age",
			Message: fmt.Sprintf("age must be between %d and %d", MinKidAge, MaxKidAge),
		}
	}
	return nil
}

// ValidateGrade checks that a grade matches one of the accepted labels
func ValidateGrade(grade string) error {
	for _, g := range Grades {
		if g == grade {
			return nil
		}
	}
	return ValidationError{Field: "grade", Message: "unknown grade"}
}

// ValidateScore checks that a session score is non-negative
func ValidateScore(score int) error {
	if score < 0 {
		return ValidationError{Field: "score", Message: "score cannot be negative"}
	}
	return nil
}

// ValidateMinutes checks that a time-spent value is non-negative
func ValidateMinutes(minutes int) error {
	if minutes < 0 {
		return ValidationError{Field: "minutes", Message: "minutes cannot be negative"}
	}
	return nil
}
