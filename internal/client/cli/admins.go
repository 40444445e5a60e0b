package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/iudanet/casinoadmin/internal/client/auth"
	"github.com/iudanet/casinoadmin/pkg/api"
)

func (c *Cli) runAdmins(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand. Usage: %s admins <me|list|create|update|revoke>", ProgramName)
	}
	if _, err := c.requireScope(ctx, auth.ScopeAdmin); err != nil {
		return err
	}

	me, err := c.console.Admins.Me(ctx)
	if err != nil {
		return err
	}

	switch args[0] {
	case "me":
		return templates.ExecuteTemplate(c.io, "admin", me)
	case "list":
		return c.runAdminsList(ctx, *me)
	case "create":
		return c.runAdminsCreate(ctx, *me, args[1:])
	case "update":
		return c.runAdminsUpdate(ctx, *me, args[1:])
	case "revoke":
		return c.runAdminsRevoke(ctx, *me, args[1:])
	default:
		return fmt.Errorf("unknown subcommand: admins %s", args[0])
	}
}

func (c *Cli) runAdminsList(ctx context.Context, me api.Admin) error {
	c.io.Println("=== Admins ===")
	c.io.Println()

	if me.Level == api.AdminLevelSecondary {
		c.io.Println("Secondary admins cannot view the hierarchy.")
		return nil
	}

	admins, err := c.console.Admins.List(ctx, me)
	if err != nil {
		return err
	}
	if len(admins) == 0 {
		c.io.Println("No admins found.")
		return nil
	}

	for _, a := range admins {
		c.io.Printf("%d. %s (%s, %s)", a.ID, a.Username, levelName(a.Level), enabledLabel(a.Disabled))
		if a.ParentID > 0 {
			c.io.Printf(" parent=%d", a.ParentID)
		}
		c.io.Println()
	}
	return nil
}

// optionalID разбирает необязательный id; отсутствие = 0
func optionalID(args []string, i int) (int64, error) {
	if len(args) <= i {
		return 0, nil
	}
	return parseID(args[i])
}

func (c *Cli) runAdminsCreate(ctx context.Context, me api.Admin, args []string) error {
	const usage = "admins create <username> <level> [parent-id]"
	username, err := argAt(args, 0, usage)
	if err != nil {
		return err
	}
	rawLevel, err := argAt(args, 1, usage)
	if err != nil {
		return err
	}
	level, err := strconv.Atoi(rawLevel)
	if err != nil {
		return fmt.Errorf("invalid level %q", rawLevel)
	}
	parentID, err := optionalID(args, 2)
	if err != nil {
		return err
	}

	password, err := c.io.ReadPassword("Password for new admin: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	if err := c.console.Admins.Create(ctx, me, username, password, level, parentID); err != nil {
		return err
	}
	c.io.Printf("✓ Admin %s created\n", username)
	return nil
}

func (c *Cli) runAdminsUpdate(ctx context.Context, me api.Admin, args []string) error {
	const usage = "admins update <id> <level> [parent-id]"
	rawID, err := argAt(args, 0, usage)
	if err != nil {
		return err
	}
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	rawLevel, err := argAt(args, 1, usage)
	if err != nil {
		return err
	}
	level, err := strconv.Atoi(rawLevel)
	if err != nil {
		return fmt.Errorf("invalid level %q", rawLevel)
	}
	parentID, err := optionalID(args, 2)
	if err != nil {
		return err
	}

	if err := c.console.Admins.Update(ctx, me, id, level, parentID); err != nil {
		return err
	}
	c.io.Printf("✓ Admin %d updated\n", id)
	return nil
}

func (c *Cli) runAdminsRevoke(ctx context.Context, me api.Admin, args []string) error {
	rawID, err := argAt(args, 0, "admins revoke <id> [transfer-to-id]")
	if err != nil {
		return err
	}
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	transferTo, err := optionalID(args, 1)
	if err != nil {
		return err
	}

	if err := c.console.Admins.Revoke(ctx, me, id, transferTo); err != nil {
		return err
	}
	c.io.Printf("✓ Admin %d revoked\n", id)
	return nil
}
