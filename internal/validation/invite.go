package validation

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

// InviteAlphabet - символы генерируемых кодов, без 0/O и 1/I
const InviteAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// DefaultInviteLen длина кода по умолчанию
const DefaultInviteLen = 10

// InviteCodePattern допустимый формат кода, введённого вручную
var InviteCodePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{4,64}$`)

// ValidateInviteCode проверяет код приглашения. Пустой код допустим:
// регистрация без приглашения решается сервером.
func ValidateInviteCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil
	}
	if !InviteCodePattern.MatchString(code) {
		return fmt.Errorf("invite code can only contain letters, numbers, '-' and '_' (4-64 characters)")
	}
	return nil
}

// ValidateMaxUses проверяет лимит использований; 0 = без лимита
func ValidateMaxUses(maxUses int) error {
	if maxUses < 0 {
		return fmt.Errorf("max uses cannot be negative")
	}
	return nil
}

// GenerateInviteCode returns a random code of length n from InviteAlphabet
func GenerateInviteCode(n int) (string, error) {
	if n <= 0 {
		n = DefaultInviteLen
	}

	limit := big.NewInt(int64(len(InviteAlphabet)))
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("failed to generate invite code: %w", err)
		}
		b.WriteByte(InviteAlphabet[idx.Int64()])
	}
	return b.String(), nil
}
