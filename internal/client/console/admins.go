package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/iudanet/casinoadmin/internal/validation"
	"github.com/iudanet/casinoadmin/pkg/api"
)

// Admins manages the admin hierarchy (domain "admin", admin scope).
// Hierarchy rules are enforced by the server; the operator passed to the
// mutating methods only shapes the request the way the server expects.
type Admins struct {
	rpc Caller
}

// NewAdmins creates Admins
func NewAdmins(rpc Caller) *Admins {
	return &Admins{rpc: rpc}
}

// Me returns the logged-in admin
func (a *Admins) Me(ctx context.Context) (*api.Admin, error) {
	var me api.Admin
	if err := a.rpc.Invoke(ctx, "me", nil, &me); err != nil {
		return nil, fmt.Errorf("admin.me request failed: %w", err)
	}
	return &me, nil
}

// List returns the admins visible to operator. Secondary admins see nobody
// and the request is not sent.
func (a *Admins) List(ctx context.Context, operator api.Admin) ([]api.Admin, error) {
	if operator.Level == api.AdminLevelSecondary {
		return nil, nil
	}

	var resp api.AdminListResponse
	if err := a.rpc.Invoke(ctx, "list", nil, &resp); err != nil {
		return nil, fmt.Errorf("admin.list request failed: %w", err)
	}
	return resp.Admins, nil
}

// Create adds an admin below operator
func (a *Admins) Create(ctx context.Context, operator api.Admin, username, password string, level int, parentID int64) error {
	username = strings.TrimSpace(username)
	if err := validation.ValidateUsername(username); err != nil {
		return err
	}
	if err := validation.ValidateLoginPassword(password); err != nil {
		return err
	}

	level, parentID, err := validation.AdminPlacement(operator, level, parentID)
	if err != nil {
		return err
	}

	err = a.rpc.Invoke(ctx, "create", api.AdminCreateRequest{
		Username: username,
		Password: password,
		Level:    level,
		ParentID: parentID,
	}, nil)
	if err != nil {
		return fmt.Errorf("admin.create request failed: %w", err)
	}
	return nil
}

// Update moves admin id to level/parentID
func (a *Admins) Update(ctx context.Context, operator api.Admin, id int64, level int, parentID int64) error {
	if err := validation.ValidateID("admin id", id); err != nil {
		return err
	}

	level, parentID, err := validation.AdminPlacement(operator, level, parentID)
	if err != nil {
		return err
	}

	err = a.rpc.Invoke(ctx, "update", api.AdminUpdateRequest{
		ID:       id,
		Level:    level,
		ParentID: parentID,
	}, nil)
	if err != nil {
		return fmt.Errorf("admin.update request failed: %w", err)
	}
	return nil
}

// Revoke removes admin id; its users move to transferTo.
// A primary operator always takes them over itself.
func (a *Admins) Revoke(ctx context.Context, operator api.Admin, id, transferTo int64) error {
	if err := validation.ValidateID("admin id", id); err != nil {
		return err
	}
	if operator.Level == api.AdminLevelPrimary {
		transferTo = operator.ID
	}
	if transferTo == id {
		return fmt.Errorf("cannot transfer users to the revoked admin")
	}

	err := a.rpc.Invoke(ctx, "revoke", api.AdminRevokeRequest{
		ID:                id,
		TransferToAdminID: transferTo,
	}, nil)
	if err != nil {
		return fmt.Errorf("admin.revoke request failed: %w", err)
	}
	return nil
}
