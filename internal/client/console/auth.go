package console

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/iudanet/casinoadmin/internal/client/auth"
	"github.com/iudanet/casinoadmin/internal/validation"
	"github.com/iudanet/casinoadmin/pkg/api"
)

// Auth is the player login/registration flow (domain "auth", user scope)
type Auth struct {
	rpc    Caller
	store  SessionStore
	logger *slog.Logger
}

// NewAuth creates Auth
func NewAuth(rpc Caller, store SessionStore, logger *slog.Logger) *Auth {
	return &Auth{rpc: rpc, store: store, logger: logger}
}

// Login authenticates and stores the session in auth.ScopeUser
func (a *Auth) Login(ctx context.Context, username, password string) (*api.SessionPayload, error) {
	username = strings.TrimSpace(username)
	if err := validation.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := validation.ValidateLoginPassword(password); err != nil {
		return nil, err
	}

	return login(ctx, a.rpc, a.store, "login", api.LoginRequest{
		Username: username,
		Password: password,
	}, auth.ScopeUser)
}

// Register creates an account and stores its session in auth.ScopeUser
func (a *Auth) Register(ctx context.Context, username, password, confirm, inviteCode string) (*api.SessionPayload, error) {
	username = strings.TrimSpace(username)
	inviteCode = strings.TrimSpace(inviteCode)

	if err := validation.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password, confirm); err != nil {
		return nil, err
	}
	if err := validation.ValidateInviteCode(inviteCode); err != nil {
		return nil, err
	}

	return login(ctx, a.rpc, a.store, "register", api.RegisterRequest{
		Username:   username,
		Password:   password,
		InviteCode: inviteCode,
	}, auth.ScopeUser)
}

// Logout notifies the server and drops the local session.
// Ошибка сервера не мешает локальному выходу.
func (a *Auth) Logout(ctx context.Context) error {
	return logout(ctx, a.rpc, a.store, a.logger, auth.ScopeUser)
}

// AdminAuth is the admin login flow (domain "auth" under the admin prefix)
type AdminAuth struct {
	rpc    Caller
	store  SessionStore
	logger *slog.Logger
}

// NewAdminAuth creates AdminAuth; rpc must target the admin base path
func NewAdminAuth(rpc Caller, store SessionStore, logger *slog.Logger) *AdminAuth {
	return &AdminAuth{rpc: rpc, store: store, logger: logger}
}

// Login authenticates an admin and stores the session in auth.ScopeAdmin
func (a *AdminAuth) Login(ctx context.Context, username, password string) (*api.SessionPayload, error) {
	username = strings.TrimSpace(username)
	if err := validation.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := validation.ValidateLoginPassword(password); err != nil {
		return nil, err
	}

	return login(ctx, a.rpc, a.store, "admin_login", api.LoginRequest{
		Username: username,
		Password: password,
	}, auth.ScopeAdmin)
}

// Logout notifies the server and drops the admin session
func (a *AdminAuth) Logout(ctx context.Context) error {
	return logout(ctx, a.rpc, a.store, a.logger, auth.ScopeAdmin)
}

func login(ctx context.Context, rpc Caller, store SessionStore, method string, params any, scope auth.Scope) (*api.SessionPayload, error) {
	var payload api.SessionPayload
	if err := rpc.Invoke(ctx, method, params, &payload); err != nil {
		return nil, fmt.Errorf("%s request failed: %w", method, err)
	}

	if err := store.PersistAuth(ctx, &payload, scope); err != nil {
		return nil, fmt.Errorf("failed to save %s session: %w", scope, err)
	}

	return &payload, nil
}

func logout(ctx context.Context, rpc Caller, store SessionStore, logger *slog.Logger, scope auth.Scope) error {
	if err := rpc.Invoke(ctx, "logout", nil, nil); err != nil {
		logger.WarnContext(ctx, "server logout failed", "scope", scope, "error", err)
	}

	if err := store.Logout(ctx, scope); err != nil {
		return fmt.Errorf("failed to clear %s session: %w", scope, err)
	}
	return nil
}
