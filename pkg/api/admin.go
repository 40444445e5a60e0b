package api

// Уровни в иерархии администраторов
const (
	AdminLevelSuper     = 0
	AdminLevelPrimary   = 1
	AdminLevelSecondary = 2
)

// Admin представляет администратора в ответах admin.me / admin.list
type Admin struct {
	Username string `json:"username"`
	ID       int64  `json:"id"`
	ParentID int64  `json:"parent_id"`
	Level    int    `json:"level"`
	Disabled bool   `json:"disabled"`
}

// AdminListResponse result.data метода admin.list
type AdminListResponse struct {
	Admins []Admin `json:"admins"`
}

// AdminCreateRequest параметры admin.create
type AdminCreateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Level    int    `json:"level"`
	ParentID int64  `json:"parent_id"`
}

// AdminUpdateRequest параметры admin.update; ParentID опционален
type AdminUpdateRequest struct {
	ID       int64 `json:"id"`
	Level    int   `json:"level"`
	ParentID int64 `json:"parent_id,omitempty"`
}

// AdminRevokeRequest параметры admin.revoke
type AdminRevokeRequest struct {
	ID                int64 `json:"id"`
	TransferToAdminID int64 `json:"transfer_to_admin_id"`
}
