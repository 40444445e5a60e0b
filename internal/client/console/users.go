package console

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/casinoadmin/internal/validation"
	"github.com/iudanet/casinoadmin/pkg/api"
)

// Параметры списка пользователей
const (
	DefaultPageSize    = 20
	DefaultWarningDays = 3
)

// Фильтры user.list
const (
	FilterAll          = ""
	FilterExpired      = "expired"
	FilterExpiringSoon = "expiring_soon"
	FilterNormal       = "normal"
)

// Users manages player accounts (domain "user", admin scope)
type Users struct {
	rpc    Caller
	subs   *Subscriptions
	logger *slog.Logger
}

// NewUsers creates Users. subs feeds Overview.
func NewUsers(rpc Caller, subs *Subscriptions, logger *slog.Logger) *Users {
	return &Users{rpc: rpc, subs: subs, logger: logger}
}

// List returns one page of users
func (u *Users) List(ctx context.Context, req api.UserListRequest) (*api.UserListResponse, error) {
	req.Search = strings.TrimSpace(req.Search)
	if req.Limit <= 0 {
		req.Limit = DefaultPageSize
	}
	if req.Offset < 0 {
		req.Offset = 0
	}
	switch req.Filter {
	case FilterAll, FilterExpired, FilterExpiringSoon, FilterNormal:
	default:
		return nil, fmt.Errorf("unknown filter %q", req.Filter)
	}

	var resp api.UserListResponse
	if err := u.rpc.Invoke(ctx, "list", req, &resp); err != nil {
		return nil, fmt.Errorf("user.list request failed: %w", err)
	}
	return &resp, nil
}

// Stats returns subscription counters
func (u *Users) Stats(ctx context.Context) (*api.UserStats, error) {
	var stats api.UserStats
	if err := u.rpc.Invoke(ctx, "stats", nil, &stats); err != nil {
		return nil, fmt.Errorf("user.stats request failed: %w", err)
	}
	if stats.WarningDays <= 0 {
		stats.WarningDays = DefaultWarningDays
	}
	return &stats, nil
}

// SetDisabled blocks or unblocks a user
func (u *Users) SetDisabled(ctx context.Context, userID int64, disabled bool) error {
	if err := validation.ValidateID("user id", userID); err != nil {
		return err
	}
	err := u.rpc.Invoke(ctx, "set_disabled", api.UserSetDisabledRequest{UserID: userID, Disabled: disabled}, nil)
	if err != nil {
		return fmt.Errorf("user.set_disabled request failed: %w", err)
	}
	return nil
}

// SetPoints overwrites the balance
func (u *Users) SetPoints(ctx context.Context, userID, points int64) error {
	if err := validation.ValidateID("user id", userID); err != nil {
		return err
	}
	if points < 0 {
		return fmt.Errorf("points cannot be negative")
	}
	err := u.rpc.Invoke(ctx, "points.set", api.PointsSetRequest{UserID: userID, Points: points}, nil)
	if err != nil {
		return fmt.Errorf("user.points.set request failed: %w", err)
	}
	return nil
}

// AddPoints adds delta (may be negative) to the balance
func (u *Users) AddPoints(ctx context.Context, userID, delta int64) error {
	if err := validation.ValidateID("user id", userID); err != nil {
		return err
	}
	if delta == 0 {
		return fmt.Errorf("delta cannot be zero")
	}
	err := u.rpc.Invoke(ctx, "points.add", api.PointsAddRequest{UserID: userID, Delta: delta}, nil)
	if err != nil {
		return fmt.Errorf("user.points.add request failed: %w", err)
	}
	return nil
}

// SetExpiry sets the subscription end; zero time clears it
func (u *Users) SetExpiry(ctx context.Context, userID int64, expiresAt time.Time) error {
	if err := validation.ValidateID("user id", userID); err != nil {
		return err
	}
	var exp int64
	if !expiresAt.IsZero() {
		exp = expiresAt.Unix()
	}
	err := u.rpc.Invoke(ctx, "expires.set", api.ExpiresSetRequest{UserID: userID, ExpiresAt: exp}, nil)
	if err != nil {
		return fmt.Errorf("user.expires.set request failed: %w", err)
	}
	return nil
}

// Overview is the header of the users screen
type Overview struct {
	Stats   *api.UserStats
	Options []api.SubscriptionOption
}

// Overview loads stats and subscription options concurrently.
// Missing options do not fail the overview.
func (u *Users) Overview(ctx context.Context) (*Overview, error) {
	var ov Overview
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := u.Stats(gctx)
		if err != nil {
			return err
		}
		ov.Stats = stats
		return nil
	})

	if u.subs != nil {
		g.Go(func() error {
			opts, err := u.subs.Options(gctx)
			if err != nil {
				u.logger.WarnContext(gctx, "subscription options unavailable", "error", err)
				return nil
			}
			ov.Options = opts
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ov, nil
}
