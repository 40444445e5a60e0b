package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
)

func (c *Cli) runLogout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("logout", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	admin := fs.Bool("admin", false, "Sign out of the admin console")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("usage: %s logout [--admin]", ProgramName)
	}

	c.io.Println("=== Logout ===")

	var err error
	if *admin {
		err = c.console.AdminAuth.Logout(ctx)
	} else {
		err = c.console.Auth.Logout(ctx)
	}
	if err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	c.io.Println("✓ Logout successful!")
	c.io.Println("Your local session has been deleted.")
	return nil
}
