package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/iudanet/casinoadmin/pkg/api"
)

// argAt returns args[i] or an error mentioning usage
func argAt(args []string, i int, usage string) (string, error) {
	if len(args) <= i {
		return "", fmt.Errorf("missing argument. Usage: %s %s", ProgramName, usage)
	}
	return args[i], nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func parseInt64(name, s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, s)
	}
	return v, nil
}

// parseDate принимает YYYY-MM-DD, RFC3339 или 0 (нет даты)
func parseDate(s string) (time.Time, error) {
	if s == "" || s == "0" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD or RFC3339", s)
	}
	return t, nil
}

func formatUnix(ts int64) string {
	if ts <= 0 {
		return "-"
	}
	return time.Unix(ts, 0).Format("2006-01-02 15:04")
}

func levelName(level int) string {
	switch level {
	case api.AdminLevelSuper:
		return "super admin"
	case api.AdminLevelPrimary:
		return "primary admin"
	case api.AdminLevelSecondary:
		return "secondary admin"
	default:
		return fmt.Sprintf("level %d", level)
	}
}

func enabledLabel(disabled bool) string {
	if disabled {
		return "disabled"
	}
	return "active"
}
