package cli

import (
	"context"
	"fmt"
	"strings"
)

// Run executes one command; args[0] is the command name
func (c *Cli) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		c.PrintUsage()
		return fmt.Errorf("missing command")
	}

	command := args[0]
	c.location = commandPath(args)
	c.logger.DebugContext(ctx, "running command",
		"command", c.location,
		"session_id", c.SessionID(ctx),
	)

	switch command {
	case "login":
		return c.runLogin(ctx)
	case "register":
		return c.runRegister(ctx)
	case "admin-login":
		return c.runAdminLogin(ctx)
	case "logout":
		return c.runLogout(ctx, args[1:])
	case "status":
		return c.runStatus(ctx)
	case "invites":
		return c.runInvites(ctx, args[1:])
	case "admins":
		return c.runAdmins(ctx, args[1:])
	case "users":
		return c.runUsers(ctx, args[1:])
	case "call":
		return c.runCall(ctx, args[1:])
	case "ping":
		return c.runPing(ctx)
	case "version":
		return c.runVersion(ctx)
	case "help":
		c.PrintUsage()
		return nil
	default:
		c.PrintUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

// commandPath returns "users list" for ["users", "list", "--page", "2"]
func commandPath(args []string) string {
	parts := make([]string, 0, 2)
	for _, a := range args {
		if strings.HasPrefix(a, "-") || len(parts) == 2 {
			break
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

// PrintUsage prints the command reference
func (c *Cli) PrintUsage() {
	c.io.Printf("%s", usage)
}

const usage = `Casino admin console

Usage:
  casino-console [OPTIONS] COMMAND

Options:
  --version              Show version information
  --server URL           Server URL (default: http://localhost:8080)
  --db PATH              Path to local database (default: casino-console.db)
  --store BACKEND        Local store: bolt, sqlite or memory (default: bolt)
  --timeout DURATION     HTTP request timeout (default: 30s)
  --log-level LEVEL      debug, info, warn, error (default: warn)

Environment:
  CASINO_SERVER_URL, CASINO_STORE_BACKEND, CASINO_STORE_PATH,
  CASINO_STORE_PASSPHRASE (encrypts stored sessions), CASINO_LOG_LEVEL, ...

Commands:
  login                              Sign in as a player
  register                           Create a player account
  admin-login                        Sign in to the admin console
  logout [--admin]                   Sign out
  status                             Show player and admin sessions
  invites list                       List invite codes
  invites create [flags]             Create an invite code (--code, --max-uses, --expires, --disabled)
  invites disable|enable <id>        Disable or enable an invite code
  invites use <id> [delta]           Increase the used counter
  admins me                          Show the current admin
  admins list                        List admins
  admins create <username> <level> [parent-id]
  admins update <id> <level> [parent-id]
  admins revoke <id> [transfer-to-id]
  users list [--search S] [--filter F] [--page N]
  users stats                        Subscription stats and plans
  users disable|enable <id>
  users points-set <id> <points>
  users points-add <id> <delta>
  users expires-set <id> <YYYY-MM-DD|RFC3339|0>
  users subscribe <id> <days|PLAN> [days]
  call <domain> <method> [json-params] [--admin]
  ping                               Check the server
  version                            Show the server version
`
