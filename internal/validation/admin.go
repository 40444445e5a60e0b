package validation

import (
	"fmt"

	"github.com/iudanet/casinoadmin/pkg/api"
)

// ValidateAdminLevel проверяет уровень администратора (0, 1 или 2)
func ValidateAdminLevel(level int) error {
	switch level {
	case api.AdminLevelSuper, api.AdminLevelPrimary, api.AdminLevelSecondary:
		return nil
	default:
		return fmt.Errorf("admin level must be %d, %d or %d", api.AdminLevelSuper, api.AdminLevelPrimary, api.AdminLevelSecondary)
	}
}

// ValidateID проверяет идентификатор записи
func ValidateID(what string, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%s must be a positive id", what)
	}
	return nil
}

// AdminPlacement returns the level and parent a new or moved admin gets
// when operator performs the change. A primary admin can only place
// secondary admins under itself; otherwise a secondary admin needs a parent.
// Сервер проверяет то же самое, здесь только подсказка до запроса.
func AdminPlacement(operator api.Admin, level int, parentID int64) (int, int64, error) {
	if operator.Level == api.AdminLevelPrimary {
		return api.AdminLevelSecondary, operator.ID, nil
	}

	if err := ValidateAdminLevel(level); err != nil {
		return 0, 0, err
	}

	if level != api.AdminLevelSecondary {
		return level, 0, nil
	}
	if parentID <= 0 {
		return 0, 0, fmt.Errorf("secondary admin must have a parent admin")
	}
	return level, parentID, nil
}
