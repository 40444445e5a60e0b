package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/iudanet/casinoadmin/internal/client/auth"
	"github.com/iudanet/casinoadmin/pkg/api"
)

func (c *Cli) runInvites(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand. Usage: %s invites <list|create|disable|enable|use>", ProgramName)
	}
	if _, err := c.requireScope(ctx, auth.ScopeUser); err != nil {
		return err
	}

	switch args[0] {
	case "list":
		return c.runInvitesList(ctx)
	case "create":
		return c.runInvitesCreate(ctx, args[1:])
	case "disable", "enable":
		raw, err := argAt(args, 1, "invites "+args[0]+" <id>")
		if err != nil {
			return err
		}
		id, err := parseID(raw)
		if err != nil {
			return err
		}
		if err := c.console.Invites.SetDisabled(ctx, id, args[0] == "disable"); err != nil {
			return err
		}
		c.io.Printf("✓ Invite code %d %sd\n", id, args[0])
		return nil
	case "use":
		raw, err := argAt(args, 1, "invites use <id> [delta]")
		if err != nil {
			return err
		}
		id, err := parseID(raw)
		if err != nil {
			return err
		}
		delta := int64(1)
		if len(args) > 2 {
			if delta, err = parseInt64("delta", args[2]); err != nil {
				return err
			}
		}
		if err := c.console.Invites.IncreaseUsed(ctx, id, int(delta)); err != nil {
			return err
		}
		c.io.Printf("✓ Invite code %d usage increased\n", id)
		return nil
	default:
		return fmt.Errorf("unknown subcommand: invites %s", args[0])
	}
}

func (c *Cli) runInvitesList(ctx context.Context) error {
	c.io.Println("=== Invite Codes ===")
	c.io.Println()

	codes, err := c.console.Invites.List(ctx)
	if err != nil {
		return err
	}
	if len(codes) == 0 {
		c.io.Println("No invite codes found.")
		c.io.Println()
		c.io.Printf("Use '%s invites create' to add one.\n", ProgramName)
		return nil
	}

	c.io.Printf("Found %d invite code(s):\n\n", len(codes))
	for _, code := range codes {
		uses := "unlimited"
		if code.MaxUses > 0 {
			uses = fmt.Sprintf("%d/%d", code.UsedCount, code.MaxUses)
		}
		c.io.Printf("%d. %s\n", code.ID, code.Code)
		c.io.Printf("   Uses:    %s\n", uses)
		c.io.Printf("   Expires: %s\n", formatUnix(code.ExpiresAt))
		c.io.Printf("   Status:  %s\n", enabledLabel(code.Disabled))
	}
	return nil
}

func (c *Cli) runInvitesCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("invites create", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	code := fs.String("code", "", "Invite code (generated when empty)")
	maxUses := fs.Int("max-uses", 10, "Maximum uses, 0 = unlimited")
	expires := fs.String("expires", "", "Expiry date (YYYY-MM-DD or RFC3339)")
	disabled := fs.Bool("disabled", false, "Create disabled")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("usage: %s invites create [--code C] [--max-uses N] [--expires DATE] [--disabled]", ProgramName)
	}

	exp, err := parseDate(*expires)
	if err != nil {
		return err
	}
	req := api.InviteCreateRequest{
		Code:     *code,
		MaxUses:  *maxUses,
		Disabled: *disabled,
	}
	if !exp.IsZero() {
		req.ExpiresAt = exp.Unix()
	}

	created, err := c.console.Invites.Create(ctx, req)
	if err != nil {
		return err
	}

	c.io.Printf("✓ Invite code created: %s\n", created.Code)
	return nil
}
