package api

// LoginRequest представляет параметры методов login и admin_login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest представляет параметры метода register
type RegisterRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	InviteCode string `json:"invite_code"`
}

// SessionPayload представляет result.data успешного login/register.
// Nil-указатели означают отсутствующее поле.
type SessionPayload struct {
	ExpiresAt   *int64 `json:"expires_at,omitempty"` // unix seconds
	UserID      *int64 `json:"user_id,omitempty"`
	IssuedAt    *int64 `json:"issued_at,omitempty"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	Username    string `json:"username,omitempty"`
	InviteCode  string `json:"invite_code,omitempty"`
}
