package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/casinoadmin/internal/client/auth"
)

type identityView struct {
	Identity *auth.Identity
	Session  *auth.StoredSession
	Scope    auth.Scope
	Expires  string
}

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Authentication Status ===")

	for _, scope := range []auth.Scope{auth.ScopeUser, auth.ScopeAdmin} {
		identity, err := c.store.CurrentUser(ctx, scope)
		if err != nil {
			return fmt.Errorf("failed to check %s session: %w", scope, err)
		}

		view := identityView{Scope: scope, Identity: identity}
		if identity != nil {
			// Метаданные логина: тип токена и имя, под которым сервер выдал сессию
			if view.Session, err = c.store.Session(ctx, scope); err != nil {
				return fmt.Errorf("failed to read %s session: %w", scope, err)
			}

			remaining := time.Until(identity.Expiry()).Round(time.Second)
			view.Expires = fmt.Sprintf("%s (in %s)", identity.Expiry().Format(time.RFC3339), remaining)
		}
		if err := templates.ExecuteTemplate(c.io, "identity", view); err != nil {
			return fmt.Errorf("failed to render status: %w", err)
		}
	}

	if id := c.SessionID(ctx); id != "" {
		c.io.Println()
		c.io.Printf("Console session: %s\n", id)
	}
	return nil
}
