// Package console groups the remote operations of the admin console by
// domain. Each facade validates input the way the server does, calls the
// domain's JSON-RPC methods and decodes result.data.
package console

import (
	"context"

	"github.com/iudanet/casinoadmin/internal/client/auth"
	"github.com/iudanet/casinoadmin/pkg/api"
)

// Caller invokes one domain's methods; implemented by *rpc.Client
type Caller interface {
	Invoke(ctx context.Context, method string, params, out any) error
}

// SessionStore persists and drops sessions; implemented by *auth.Store
type SessionStore interface {
	PersistAuth(ctx context.Context, payload *api.SessionPayload, scope auth.Scope) error
	Logout(ctx context.Context, scope auth.Scope) error
}

// Console bundles every facade of the console
type Console struct {
	Auth          *Auth
	AdminAuth     *AdminAuth
	Invites       *Invites
	Admins        *Admins
	Users         *Users
	Subscriptions *Subscriptions
	System        *System
}
