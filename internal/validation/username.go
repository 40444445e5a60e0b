package validation

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	// MaxUsernameLen максимальная длина username
	MaxUsernameLen = 32
	// MinPasswordLen минимальная длина пароля при регистрации
	MinPasswordLen = 6
)

// ValidateUsername проверяет username формы логина/регистрации.
// Пробелы по краям не учитываются, внутри запрещены.
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)

	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	if len([]rune(username)) > MaxUsernameLen {
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLen)
	}

	if strings.IndexFunc(username, unicode.IsSpace) >= 0 {
		return fmt.Errorf("username must not contain spaces")
	}

	return nil
}

// ValidateLoginPassword проверяет пароль формы логина: только непустой
func ValidateLoginPassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}
	return nil
}

// ValidatePassword проверяет новый пароль и его подтверждение
func ValidatePassword(password, confirm string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}

	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	return nil
}
