package validation

import (
	"fmt"
	"regexp"
)

// UsernamePattern допустимый формат логина портала:
// латинские буквы, цифры, точка, дефис и нижнее подчеркивание
var UsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

const (
	MinUsernameLen = 3
	MaxUsernameLen = 64
	MinPasswordLen = 8
	MaxPasswordLen = 72 // ограничение bcrypt
)

// ValidateUsername проверяет логин
func ValidateUsername(username string) error {
	switch {
	case username == "":
		return fmt.Errorf("username cannot be empty")
	case len(username) < MinUsernameLen:
		return fmt.Errorf("username must be at least %d characters long", MinUsernameLen)
	case len(username) > MaxUsernameLen:
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLen)
	case !UsernamePattern.MatchString(username):
		return fmt.Errorf("username can only contain letters, numbers, dots, dashes and underscores")
	}
	return nil
}

// ValidatePassword проверяет длину пароля в байтах
func ValidatePassword(password string) error {
	switch {
	case password == "":
		return fmt.Errorf("password cannot be empty")
	case len(password) < MinPasswordLen:
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	case len(password) > MaxPasswordLen:
		return fmt.Errorf("password must not exceed %d bytes", MaxPasswordLen)
	}
	return nil
}
