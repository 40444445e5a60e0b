package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/iudanet/casinoadmin/internal/validation"
	"github.com/iudanet/casinoadmin/pkg/api"
)

// PlanCustom - код плана с произвольным числом дней
const PlanCustom = "CUSTOM"

// Subscriptions applies subscription plans (domain "subscription", admin scope)
type Subscriptions struct {
	rpc Caller
}

// NewSubscriptions creates Subscriptions
func NewSubscriptions(rpc Caller) *Subscriptions {
	return &Subscriptions{rpc: rpc}
}

// Options returns the plans offered by the server
func (s *Subscriptions) Options(ctx context.Context) ([]api.SubscriptionOption, error) {
	var resp api.SubscriptionOptionsResponse
	if err := s.rpc.Invoke(ctx, "options", nil, &resp); err != nil {
		return nil, fmt.Errorf("subscription.options request failed: %w", err)
	}
	return resp.Options, nil
}

// Extend adds days to the user's subscription
func (s *Subscriptions) Extend(ctx context.Context, userID int64, days int) error {
	if days <= 0 {
		return fmt.Errorf("days must be positive")
	}
	return s.apply(ctx, api.SubscriptionApplyRequest{UserID: userID, AddDays: days})
}

// ApplyPlan applies plan code; PlanCustom needs days
func (s *Subscriptions) ApplyPlan(ctx context.Context, userID int64, code string, days int) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return fmt.Errorf("plan code cannot be empty")
	}

	req := api.SubscriptionApplyRequest{UserID: userID, Code: code}
	if code == PlanCustom {
		if days <= 0 {
			return fmt.Errorf("days must be positive for %s plan", PlanCustom)
		}
		req.Days = days
	}
	return s.apply(ctx, req)
}

func (s *Subscriptions) apply(ctx context.Context, req api.SubscriptionApplyRequest) error {
	if err := validation.ValidateID("user id", req.UserID); err != nil {
		return err
	}
	if err := s.rpc.Invoke(ctx, "apply", req, nil); err != nil {
		return fmt.Errorf("subscription.apply request failed: %w", err)
	}
	return nil
}
