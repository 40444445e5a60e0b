package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/iudanet/casinoadmin/internal/client/auth"
	"github.com/iudanet/casinoadmin/internal/client/console"
	"github.com/iudanet/casinoadmin/pkg/api"
)

func (c *Cli) runUsers(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand. Usage: %s users <list|stats|disable|enable|points-set|points-add|expires-set|subscribe>", ProgramName)
	}
	if _, err := c.requireScope(ctx, auth.ScopeAdmin); err != nil {
		return err
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		return c.runUsersList(ctx, rest)
	case "stats":
		return c.runUsersStats(ctx)
	}

	rawID, err := argAt(rest, 0, "users "+sub+" <id> ...")
	if err != nil {
		return err
	}
	id, err := parseID(rawID)
	if err != nil {
		return err
	}

	switch sub {
	case "disable", "enable":
		err = c.console.Users.SetDisabled(ctx, id, sub == "disable")
	case "points-set":
		err = c.withInt64(rest, 1, "points", func(v int64) error {
			return c.console.Users.SetPoints(ctx, id, v)
		})
	case "points-add":
		err = c.withInt64(rest, 1, "delta", func(v int64) error {
			return c.console.Users.AddPoints(ctx, id, v)
		})
	case "expires-set":
		var raw string
		if raw, err = argAt(rest, 1, "users expires-set <id> <date>"); err != nil {
			return err
		}
		exp, perr := parseDate(raw)
		if perr != nil {
			return perr
		}
		err = c.console.Users.SetExpiry(ctx, id, exp)
	case "subscribe":
		err = c.runUsersSubscribe(ctx, id, rest[1:])
	default:
		return fmt.Errorf("unknown subcommand: users %s", sub)
	}
	if err != nil {
		return err
	}

	c.io.Printf("✓ User %d updated\n", id)
	return nil
}

func (c *Cli) withInt64(args []string, i int, name string, fn func(int64) error) error {
	raw, err := argAt(args, i, "users <command> <id> <"+name+">")
	if err != nil {
		return err
	}
	v, err := parseInt64(name, raw)
	if err != nil {
		return err
	}
	return fn(v)
}

func (c *Cli) runUsersList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("users list", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	search := fs.String("search", "", "Username search")
	filter := fs.String("filter", console.FilterAll, "expired, expiring_soon or normal")
	page := fs.Int("page", 1, "Page number")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("usage: %s users list [--search S] [--filter F] [--page N]", ProgramName)
	}
	if *page < 1 {
		*page = 1
	}

	resp, err := c.console.Users.List(ctx, api.UserListRequest{
		Search: *search,
		Filter: *filter,
		Limit:  console.DefaultPageSize,
		Offset: (*page - 1) * console.DefaultPageSize,
	})
	if err != nil {
		return err
	}

	c.io.Println("=== Users ===")
	c.io.Println()
	if len(resp.Users) == 0 {
		c.io.Println("No users found.")
		return nil
	}

	for _, u := range resp.Users {
		c.io.Printf("%d. %s\n", u.ID, u.Username)
		c.io.Printf("   Points:  %d\n", u.Points)
		c.io.Printf("   Expires: %s\n", formatUnix(u.ExpiresAt))
		c.io.Printf("   Status:  %s\n", enabledLabel(u.Disabled))
		if u.AdminName != "" {
			c.io.Printf("   Admin:   %s\n", u.AdminName)
		}
	}

	pages := (resp.Total + console.DefaultPageSize - 1) / console.DefaultPageSize
	c.io.Println()
	c.io.Printf("Page %d / %d · %d on page · %d total\n", *page, max(pages, 1), len(resp.Users), resp.Total)
	return nil
}

func (c *Cli) runUsersStats(ctx context.Context) error {
	ov, err := c.console.Users.Overview(ctx)
	if err != nil {
		return err
	}

	c.io.Println("=== Subscriptions ===")
	c.io.Printf("Expired:       %d\n", ov.Stats.Expired)
	c.io.Printf("Expiring soon: %d (within %d days)\n", ov.Stats.ExpiringSoon, ov.Stats.WarningDays)
	c.io.Printf("Normal:        %d\n", ov.Stats.Normal)

	if len(ov.Options) > 0 {
		c.io.Println()
		c.io.Println("Plans:")
		for _, o := range ov.Options {
			c.io.Printf("  %-10s %s (%d days)\n", o.Code, o.Title, o.Days)
		}
	}
	return nil
}

// runUsersSubscribe: "<days>" продлевает, "<PLAN> [days]" применяет план
func (c *Cli) runUsersSubscribe(ctx context.Context, id int64, args []string) error {
	arg, err := argAt(args, 0, "users subscribe <id> <days|PLAN> [days]")
	if err != nil {
		return err
	}

	if days, convErr := strconv.Atoi(arg); convErr == nil {
		return c.console.Subscriptions.Extend(ctx, id, days)
	}

	days := 0
	if len(args) > 1 {
		if days, err = strconv.Atoi(args[1]); err != nil {
			return fmt.Errorf("invalid days %q", args[1])
		}
	}
	return c.console.Subscriptions.ApplyPlan(ctx, id, arg, days)
}
