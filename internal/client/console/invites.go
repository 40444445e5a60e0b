package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/iudanet/casinoadmin/internal/validation"
	"github.com/iudanet/casinoadmin/pkg/api"
)

// Invites manages invite codes (domain "auth", user scope)
type Invites struct {
	rpc Caller
}

// NewInvites creates Invites
func NewInvites(rpc Caller) *Invites {
	return &Invites{rpc: rpc}
}

// List returns all invite codes
func (i *Invites) List(ctx context.Context) ([]api.InviteCode, error) {
	var resp api.InviteListResponse
	if err := i.rpc.Invoke(ctx, "invite.list", api.InviteListRequest{}, &resp); err != nil {
		return nil, fmt.Errorf("invite.list request failed: %w", err)
	}
	return resp.InviteCodes, nil
}

// Create creates an invite code. An empty req.Code is replaced with a
// generated one. The server may answer without the created record, then
// the request values are returned.
func (i *Invites) Create(ctx context.Context, req api.InviteCreateRequest) (api.InviteCode, error) {
	req.Code = strings.TrimSpace(req.Code)
	if req.Code == "" {
		code, err := validation.GenerateInviteCode(validation.DefaultInviteLen)
		if err != nil {
			return api.InviteCode{}, err
		}
		req.Code = code
	}
	if err := validation.ValidateInviteCode(req.Code); err != nil {
		return api.InviteCode{}, err
	}
	if err := validation.ValidateMaxUses(req.MaxUses); err != nil {
		return api.InviteCode{}, err
	}
	if req.ExpiresAt < 0 {
		req.ExpiresAt = 0
	}

	var resp api.InviteCreateResponse
	if err := i.rpc.Invoke(ctx, "invite.create", req, &resp); err != nil {
		return api.InviteCode{}, fmt.Errorf("invite.create request failed: %w", err)
	}

	if resp.InviteCode.Code == "" {
		return api.InviteCode{
			Code:      req.Code,
			MaxUses:   req.MaxUses,
			ExpiresAt: req.ExpiresAt,
			Disabled:  req.Disabled,
		}, nil
	}
	return resp.InviteCode, nil
}

// SetDisabled enables or disables an invite code
func (i *Invites) SetDisabled(ctx context.Context, id int64, disabled bool) error {
	if err := validation.ValidateID("invite code id", id); err != nil {
		return err
	}
	err := i.rpc.Invoke(ctx, "invite.set_disabled", api.InviteSetDisabledRequest{ID: id, Disabled: disabled}, nil)
	if err != nil {
		return fmt.Errorf("invite.set_disabled request failed: %w", err)
	}
	return nil
}

// IncreaseUsed bumps the used counter by delta (1 when delta <= 0)
func (i *Invites) IncreaseUsed(ctx context.Context, id int64, delta int) error {
	if err := validation.ValidateID("invite code id", id); err != nil {
		return err
	}
	if delta <= 0 {
		delta = 1
	}
	err := i.rpc.Invoke(ctx, "invite.increase_used", api.InviteIncreaseUsedRequest{ID: id, Delta: delta}, nil)
	if err != nil {
		return fmt.Errorf("invite.increase_used request failed: %w", err)
	}
	return nil
}
