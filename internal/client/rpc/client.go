// Package rpc is the JSON-RPC over HTTP client of the console.
// Every endpoint is POST {baseURL}{basePath}/{domain}; failures of any layer
// are reported as *Error, and business codes meaning "session is gone" drop
// the scope's credentials and notify the session bus.
package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/iudanet/casinoadmin/internal/client/auth"
	"github.com/iudanet/casinoadmin/internal/client/session"
	"github.com/iudanet/casinoadmin/pkg/api"
)

// Базовые пути эндпоинтов
const (
	DefaultBasePath = "/rpc"
	AdminBasePath   = "/admin/rpc"
)

// requestID общий для всех клиентов процесса
var requestID atomic.Uint64

func nextID() string {
	return strconv.FormatUint(requestID.Add(1), 10)
}

// TokenStore is the part of auth.Store the client needs
type TokenStore interface {
	Token(ctx context.Context, scope auth.Scope) (string, error)
	Logout(ctx context.Context, scope auth.Scope) error
	LoginPath(scope auth.Scope) string
}

// Publisher receives session events
type Publisher interface {
	Publish(e session.Event)
}

// Client calls the methods of one domain
type Client struct {
	httpClient *http.Client
	store      TokenStore
	bus        Publisher
	logger     *slog.Logger
	location   func() string
	loginCodes map[int]struct{}
	baseURL    string
	basePath   string
	domain     string
	scope      auth.Scope
}

// Option configures Client
type Option func(*Client)

// WithBaseURL sets the server address, e.g. "https://casino.example.com"
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithBasePath overrides DefaultBasePath
func WithBasePath(basePath string) Option {
	return func(c *Client) {
		c.basePath = basePath
	}
}

// WithScope selects whose token is sent and whose session is dropped
func WithScope(scope auth.Scope) Option {
	return func(c *Client) {
		c.scope = scope
	}
}

// WithHTTPClient sets the HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithAuthStore sets the token source. Without it requests are anonymous.
func WithAuthStore(store TokenStore) Option {
	return func(c *Client) {
		c.store = store
	}
}

// WithBus sets where unauthorized events are published
func WithBus(bus Publisher) Option {
	return func(c *Client) {
		c.bus = bus
	}
}

// WithLoginCodes replaces DefaultLoginCodes
func WithLoginCodes(codes ...int) Option {
	return func(c *Client) {
		c.loginCodes = codeSet(codes)
	}
}

// WithLocation sets the provider of the current location reported in events
func WithLocation(location func() string) Option {
	return func(c *Client) {
		c.location = location
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for domain ("auth", "user", "system", ...)
func New(domain string, opts ...Option) (*Client, error) {
	if domain == "" {
		return nil, ErrDomainRequired
	}

	c := &Client{
		domain:     domain,
		basePath:   DefaultBasePath,
		scope:      auth.ScopeUser,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.Default(),
		location:   func() string { return "" },
		loginCodes: codeSet(defaultLoginCodes),
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.scope.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// NewAdmin creates a client for the admin-prefixed endpoints in ScopeAdmin
func NewAdmin(domain string, opts ...Option) (*Client, error) {
	base := []Option{WithBasePath(AdminBasePath), WithScope(auth.ScopeAdmin)}
	return New(domain, append(base, opts...)...)
}

// Domain returns the domain the client calls
func (c *Client) Domain() string {
	return c.domain
}

// Scope returns the auth scope of the client
func (c *Client) Scope() auth.Scope {
	return c.scope
}

// Endpoint returns the URL requests are posted to
func (c *Client) Endpoint() string {
	return c.baseURL + c.basePath + "/" + c.domain
}

// Reply is the outcome of Call. With ReceiveError a classified failure is
// returned in Err instead of as the error result.
type Reply struct {
	Result *api.Result
	Err    *Error
}

// CallOption configures a single call
type CallOption func(*callOptions)

type callOptions struct {
	receiveError bool
}

// ReceiveError makes Call report classified failures in Reply.Err
func ReceiveError() CallOption {
	return func(o *callOptions) {
		o.receiveError = true
	}
}

// Call invokes method with params (nil means {}). Exactly one request is
// sent. A business code from the login set logs the scope out and
// publishes a session.Event before the error is returned.
func (c *Client) Call(ctx context.Context, method string, params any, opts ...CallOption) (Reply, error) {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}

	result, rpcErr, err := c.call(ctx, method, params)
	if err != nil {
		return Reply{}, err
	}
	if rpcErr != nil {
		if o.receiveError {
			return Reply{Err: rpcErr}, nil
		}
		return Reply{}, rpcErr
	}
	return Reply{Result: result}, nil
}

// Invoke calls method and decodes result.data into out (if out is not nil)
func (c *Client) Invoke(ctx context.Context, method string, params, out any) error {
	reply, err := c.Call(ctx, method, params)
	if err != nil {
		return err
	}
	if out == nil || reply.Result == nil || isNull(reply.Result.Data) {
		return nil
	}
	if err := json.Unmarshal(reply.Result.Data, out); err != nil {
		return fmt.Errorf("failed to decode %s.%s data: %w", c.domain, method, err)
	}
	return nil
}

func (c *Client) call(ctx context.Context, method string, params any) (*api.Result, *Error, error) {
	if method == "" {
		return nil, nil, ErrMethodRequired
	}
	if params == nil {
		params = struct{}{}
	}

	id := nextID()
	body, err := json.Marshal(api.Request{
		JSONRPC: api.Version,
		ID:      id,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal %s params: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	if c.store != nil {
		token, err := c.store.Token(ctx, c.scope)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read %s token: %w", c.scope, err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	log := c.logger.With("domain", c.domain, "method", method, "id", id, "scope", c.scope)
	start := time.Now()

	status, respBody, err := c.do(req)
	if err != nil {
		log.WarnContext(ctx, "rpc transport failed", "error", err)
		return nil, NewNetworkError(err), nil
	}

	result, rpcErr := Classify(status, respBody)
	if rpcErr == nil {
		log.DebugContext(ctx, "rpc call succeeded", "status", status, "duration", time.Since(start))
		return result, nil, nil
	}

	log.InfoContext(ctx, "rpc call failed",
		"status", status,
		"kind", rpcErr.Kind.String(),
		"code", rpcErr.Code,
		"duration", time.Since(start),
	)

	if rpcErr.Kind == KindBusiness && rpcErr.HasCode() && c.needsLogin(rpcErr.Code) {
		c.dropSession(ctx, rpcErr)
	}

	return nil, rpcErr, nil
}

// do sends req and reads the whole body
func (c *Client) do(req *http.Request) (int, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp.StatusCode, body, nil
}

func (c *Client) needsLogin(code int) bool {
	_, ok := c.loginCodes[code]
	return ok
}

// dropSession logs the scope out and publishes the event.
// После отмены ctx побочных эффектов нет.
func (c *Client) dropSession(ctx context.Context, rpcErr *Error) {
	if ctx.Err() != nil {
		return
	}
	rpcErr.authExpired = true

	loginPath := c.scope.LoginPath()
	if c.store != nil {
		loginPath = c.store.LoginPath(c.scope)
		if err := c.store.Logout(ctx, c.scope); err != nil {
			c.logger.WarnContext(ctx, "failed to clear expired session",
				"scope", c.scope,
				"error", err,
			)
		}
	}

	if c.bus == nil {
		return
	}

	message := rpcErr.Message
	if message == "" || message == defaultBusinessMessage {
		message = DefaultRelogMessage
	}
	c.bus.Publish(session.Event{
		From:      c.location(),
		Message:   message,
		LoginPath: loginPath,
		Scope:     string(c.scope),
	})
}

func codeSet(codes []int) map[int]struct{} {
	set := make(map[int]struct{}, len(codes))
	for _, code := range codes {
		set[code] = struct{}{}
	}
	return set
}

// Compile-time checks
var (
	_ TokenStore = (*auth.Store)(nil)
	_ Publisher  = (*session.Bus)(nil)
)
