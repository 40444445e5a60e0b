package api

// InviteCode представляет инвайт-код в ответе invite.list / invite.create
type InviteCode struct {
	Code      string `json:"code"`
	ID        int64  `json:"id"`
	MaxUses   int    `json:"max_uses"`
	UsedCount int    `json:"used_count"`
	ExpiresAt int64  `json:"expires_at"` // 0 = без срока
	Disabled  bool   `json:"disabled"`
}

// InviteListRequest параметры invite.list
type InviteListRequest struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// InviteListResponse result.data метода invite.list
type InviteListResponse struct {
	InviteCodes []InviteCode `json:"invite_codes"`
}

// InviteCreateRequest параметры invite.create
type InviteCreateRequest struct {
	Code      string `json:"code,omitempty"` // пусто = сгенерирует сервер
	MaxUses   int    `json:"max_uses"`
	ExpiresAt int64  `json:"expires_at"`
	Disabled  bool   `json:"disabled"`
}

// InviteCreateResponse result.data метода invite.create
type InviteCreateResponse struct {
	InviteCode InviteCode `json:"invite_code"`
}

// InviteSetDisabledRequest параметры invite.set_disabled
type InviteSetDisabledRequest struct {
	ID       int64 `json:"id"`
	Disabled bool  `json:"disabled"`
}

// InviteIncreaseUsedRequest параметры invite.increase_used
type InviteIncreaseUsedRequest struct {
	ID    int64 `json:"id"`
	Delta int   `json:"delta"`
}
