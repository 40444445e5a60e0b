package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role of the decoded identity
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// roleClaimAdmin - значение claim role для администратора (0 = user)
const roleClaimAdmin = 1

// Claims is the payload of a console access token.
// The client never holds the signing secret, so claims are decoded without
// signature verification; the server stays the authority.
type Claims struct {
	Username string `json:"uname"`
	jwt.RegisteredClaims
	UserID int64 `json:"uid"`
	Role   int   `json:"role"`
}

// Identity is derived from the live token on every read and never cached
type Identity struct {
	Username  string
	Role      Role
	ID        int64
	ExpiresAt int64 // unix seconds
}

// IsAdmin reports whether the identity carries the admin role
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

// Expiry returns ExpiresAt as time.Time
func (i *Identity) Expiry() time.Time {
	return time.Unix(i.ExpiresAt, 0)
}

// ParseClaims decodes the token payload without verifying the signature
func ParseClaims(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to decode token claims: %w", err)
	}
	return claims, nil
}

// identityFromToken decodes token and checks exp against now (seconds precision)
func identityFromToken(token string, now time.Time) (*Identity, error) {
	claims, err := ParseClaims(token)
	if err != nil {
		return nil, err
	}

	if claims.ExpiresAt == nil {
		return nil, ErrNoExpiry
	}
	exp := claims.ExpiresAt.Unix()
	if exp <= now.Unix() {
		return nil, ErrTokenExpired
	}

	role := RoleUser
	if claims.Role == roleClaimAdmin {
		role = RoleAdmin
	}

	return &Identity{
		ID:        claims.UserID,
		Username:  claims.Username,
		Role:      role,
		ExpiresAt: exp,
	}, nil
}
