package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/iudanet/casinoadmin/internal/client/auth"
	"github.com/iudanet/casinoadmin/internal/client/console"
	"github.com/iudanet/casinoadmin/internal/client/iocli"
	"github.com/iudanet/casinoadmin/internal/client/rpc"
	"github.com/iudanet/casinoadmin/internal/client/session"
	"github.com/iudanet/casinoadmin/internal/client/storage"
)

// ProgramName используется в подсказках
const ProgramName = "casino-console"

// sessionIDKey - ключ идентификатора сессии консоли в transient state
const sessionIDKey = "console_session_id"

// ErrNotLoggedIn is returned by commands that need a live session
var ErrNotLoggedIn = errors.New("not logged in")

// ErrNotAdmin is returned when an admin-scope token lacks the admin role
var ErrNotAdmin = errors.New("account is not an administrator")

// ClientFactory creates an RPC client for domain in scope
type ClientFactory func(domain string, scope auth.Scope, opts ...rpc.Option) (*rpc.Client, error)

// Deps are the collaborators of Cli
type Deps struct {
	IO      iocli.IO
	Store   *auth.Store
	Bus     *session.Bus
	State   storage.SessionState
	Clients ClientFactory
	Logger  *slog.Logger
}

// Cli runs console commands
type Cli struct {
	io          iocli.IO
	store       *auth.Store
	bus         *session.Bus
	state       storage.SessionState
	clients     ClientFactory
	logger      *slog.Logger
	console     *console.Console
	unsubscribe func()
	location    string
}

// New wires the console facades and subscribes to session events
func New(deps Deps) (*Cli, error) {
	c := &Cli{
		io:      deps.IO,
		store:   deps.Store,
		bus:     deps.Bus,
		state:   deps.State,
		clients: deps.Clients,
		logger:  deps.Logger,
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	cons, err := c.buildConsole()
	if err != nil {
		return nil, err
	}
	c.console = cons

	if c.bus != nil {
		c.unsubscribe = c.bus.Subscribe(c)
	}
	return c, nil
}

func (c *Cli) buildConsole() (*console.Console, error) {
	mk := func(domain string, scope auth.Scope) (*rpc.Client, error) {
		return c.clients(domain, scope, rpc.WithLocation(c.Location))
	}

	userAuth, err := mk("auth", auth.ScopeUser)
	if err != nil {
		return nil, err
	}
	adminAuth, err := mk("auth", auth.ScopeAdmin)
	if err != nil {
		return nil, err
	}
	admins, err := mk("admin", auth.ScopeAdmin)
	if err != nil {
		return nil, err
	}
	users, err := mk("user", auth.ScopeAdmin)
	if err != nil {
		return nil, err
	}
	subs, err := mk("subscription", auth.ScopeAdmin)
	if err != nil {
		return nil, err
	}
	system, err := mk("system", auth.ScopeUser)
	if err != nil {
		return nil, err
	}

	subscriptions := console.NewSubscriptions(subs)
	return &console.Console{
		Auth:          console.NewAuth(userAuth, c.store, c.logger),
		AdminAuth:     console.NewAdminAuth(adminAuth, c.store, c.logger),
		Invites:       console.NewInvites(userAuth),
		Admins:        console.NewAdmins(admins),
		Users:         console.NewUsers(users, subscriptions, c.logger),
		Subscriptions: subscriptions,
		System:        console.NewSystem(system),
	}, nil
}

// Close unsubscribes from session events
func (c *Cli) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

// Location returns the command being executed; reported in session events
func (c *Cli) Location() string {
	return c.location
}

// HandleUnauthorized prints the alert shown when the server drops a session
func (c *Cli) HandleUnauthorized(e session.Event) {
	c.io.Println()
	c.io.Printf("⚠️  %s\n", e.Message)
	if e.From != "" {
		c.io.Printf("Session ended while running '%s'.\n", e.From)
	}
	c.io.Printf("Run '%s %s' to sign in again.\n", ProgramName, loginCommand(e.LoginPath))
}

// loginCommand maps a login route to the command that performs it
func loginCommand(loginPath string) string {
	if loginPath == auth.AdminLoginPath {
		return "admin-login"
	}
	return "login"
}

// requireScope is the route guard of commands that need a session
func (c *Cli) requireScope(ctx context.Context, scope auth.Scope) (*auth.Identity, error) {
	identity, err := c.store.CurrentUser(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if identity == nil {
		return nil, fmt.Errorf("%w. Please run '%s %s' first", ErrNotLoggedIn, ProgramName, loginCommand(scope.LoginPath()))
	}
	if scope == auth.ScopeAdmin && !identity.IsAdmin() {
		return nil, fmt.Errorf("%w: %s", ErrNotAdmin, identity.Username)
	}
	return identity, nil
}

// SessionID returns the id of this console session, creating it on first use.
// Идентификатор живёт до logout: он хранится в transient state.
func (c *Cli) SessionID(ctx context.Context) string {
	if c.state == nil {
		return ""
	}

	id, err := c.state.GetSession(ctx, sessionIDKey)
	if err == nil && id != "" {
		return id
	}
	if err != nil && !errors.Is(err, storage.ErrKeyNotFound) {
		c.logger.WarnContext(ctx, "failed to read console session id", "error", err)
	}

	id = uuid.NewString()
	if err := c.state.PutSession(ctx, sessionIDKey, id); err != nil {
		c.logger.WarnContext(ctx, "failed to save console session id", "error", err)
	}
	return id
}
