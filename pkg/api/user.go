package api

// User представляет аккаунт пользователя в ответе user.list
type User struct {
	Username  string `json:"username"`
	AdminName string `json:"admin_name,omitempty"`
	ID        int64  `json:"id"`
	Points    int64  `json:"points"`
	ExpiresAt int64  `json:"expires_at"` // unix seconds, 0 = нет подписки
	Role      int    `json:"role"`
	Disabled  bool   `json:"disabled"`
}

// UserListRequest параметры user.list
type UserListRequest struct {
	Search string `json:"search"`
	Filter string `json:"filter"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

// UserListResponse result.data метода user.list
type UserListResponse struct {
	Users []User `json:"users"`
	Total int64  `json:"total"`
}

// UserStats result.data метода user.stats
type UserStats struct {
	Expired      int `json:"expired"`
	ExpiringSoon int `json:"expiring_soon"`
	Normal       int `json:"normal"`
	WarningDays  int `json:"warning_days"`
}

// UserSetDisabledRequest параметры user.set_disabled
type UserSetDisabledRequest struct {
	UserID   int64 `json:"user_id"`
	Disabled bool  `json:"disabled"`
}

// PointsSetRequest параметры user.points.set
type PointsSetRequest struct {
	UserID int64 `json:"user_id"`
	Points int64 `json:"points"`
}

// PointsAddRequest параметры user.points.add
type PointsAddRequest struct {
	UserID int64 `json:"user_id"`
	Delta  int64 `json:"delta"`
}

// ExpiresSetRequest параметры user.expires.set
type ExpiresSetRequest struct {
	UserID    int64 `json:"user_id"`
	ExpiresAt int64 `json:"expires_at"`
}

// SubscriptionOption элемент result.data.options метода subscription.options
type SubscriptionOption struct {
	Code  string `json:"code"`
	Title string `json:"title"`
	Days  int    `json:"days"`
}

// SubscriptionOptionsResponse result.data метода subscription.options
type SubscriptionOptionsResponse struct {
	Options []SubscriptionOption `json:"options"`
}

// SubscriptionApplyRequest параметры subscription.apply.
// Либо AddDays, либо Code (+ Days для CUSTOM).
type SubscriptionApplyRequest struct {
	Code    string `json:"code,omitempty"`
	UserID  int64  `json:"user_id"`
	AddDays int    `json:"add_days,omitempty"`
	Days    int    `json:"days,omitempty"`
}

// PingResponse result.data метода system.ping
type PingResponse struct {
	Pong string `json:"pong"`
}

// VersionResponse result.data метода system.version
type VersionResponse struct {
	Version string `json:"version"`
}
