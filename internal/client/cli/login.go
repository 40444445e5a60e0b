package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/casinoadmin/pkg/api"
)

func (c *Cli) runLogin(ctx context.Context) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	username, password, err := c.readCredentials()
	if err != nil {
		return err
	}

	payload, err := c.console.Auth.Login(ctx, username, password)
	if err != nil {
		return err
	}

	c.printSession("✓ Login successful!", payload)
	return nil
}

func (c *Cli) runAdminLogin(ctx context.Context) error {
	c.io.Println("=== Admin Login ===")
	c.io.Println()

	username, password, err := c.readCredentials()
	if err != nil {
		return err
	}

	payload, err := c.console.AdminAuth.Login(ctx, username, password)
	if err != nil {
		return err
	}

	c.printSession("✓ Admin login successful!", payload)
	return nil
}

func (c *Cli) runRegister(ctx context.Context) error {
	c.io.Println("=== Registration ===")
	c.io.Println()

	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}
	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	confirm, err := c.io.ReadPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	invite, err := c.io.ReadInput("Invite code (optional): ")
	if err != nil {
		return fmt.Errorf("failed to read invite code: %w", err)
	}

	payload, err := c.console.Auth.Register(ctx, username, password, confirm, invite)
	if err != nil {
		return err
	}

	c.printSession("✓ Registration successful!", payload)
	return nil
}

func (c *Cli) readCredentials() (string, string, error) {
	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return "", "", fmt.Errorf("failed to read username: %w", err)
	}
	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return "", "", fmt.Errorf("failed to read password: %w", err)
	}
	return username, password, nil
}

func (c *Cli) printSession(title string, payload *api.SessionPayload) {
	c.io.Println()
	c.io.Println(title)
	if payload.Username != "" {
		c.io.Printf("Username: %s\n", payload.Username)
	}
	if payload.ExpiresAt != nil {
		c.io.Printf("Session expires: %s\n", time.Unix(*payload.ExpiresAt, 0).Format(time.RFC3339))
	}
}
