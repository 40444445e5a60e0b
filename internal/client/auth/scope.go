package auth

import "fmt"

// Scope is an authentication namespace with its own stored credentials and
// login route. Scopes never share storage keys.
type Scope string

const (
	ScopeUser  Scope = "user"
	ScopeAdmin Scope = "admin"
)

// Пути логина для каждого scope
const (
	UserLoginPath  = "/login"
	AdminLoginPath = "/admin-login"
)

// Поля сессии, хранящиеся под ключами "<scope>.<field>"
const (
	fieldToken     = "access_token"
	fieldExpiresAt = "expires_at"
	fieldTokenType = "token_type"
	fieldUserID    = "user_id"
	fieldUsername  = "username"

	// legacyTokenKey - ключ без scope из старых версий клиента
	legacyTokenKey = "access_token"
)

var metadataFields = []string{fieldExpiresAt, fieldTokenType, fieldUserID, fieldUsername}

// Validate returns ErrUnknownScope for anything but ScopeUser and ScopeAdmin
func (s Scope) Validate() error {
	switch s {
	case ScopeUser, ScopeAdmin:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownScope, string(s))
	}
}

// LoginPath returns the login route of the scope
func (s Scope) LoginPath() string {
	if s == ScopeAdmin {
		return AdminLoginPath
	}
	return UserLoginPath
}

func (s Scope) key(field string) string {
	return string(s) + "." + field
}

// keys returns every storage key owned by the scope
func (s Scope) keys() []string {
	keys := []string{s.key(fieldToken)}
	for _, f := range metadataFields {
		keys = append(keys, s.key(f))
	}
	if s == ScopeUser {
		keys = append(keys, legacyTokenKey)
	}
	return keys
}
