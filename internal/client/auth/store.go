package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/iudanet/casinoadmin/internal/client/storage"
	"github.com/iudanet/casinoadmin/pkg/api"
)

// StoredSession is the raw per-scope session as persisted
type StoredSession struct {
	AccessToken string
	TokenType   string
	Username    string
	UserID      string
	ExpiresAt   int64
}

// Store is the single source of truth for the current actor of each scope.
// It keeps tokens and session metadata in a storage.KeyValue under
// scope-qualified keys.
type Store struct {
	kv      storage.KeyValue
	session storage.SessionState
	logger  *slog.Logger
	now     func() time.Time

	// legacyChecked is set once the unscoped legacy token was looked at
	legacyChecked atomic.Bool
}

// StoreOption configures Store
type StoreOption func(*Store)

// WithSessionState sets the transient state wiped on logout
func WithSessionState(session storage.SessionState) StoreOption {
	return func(s *Store) {
		s.session = session
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithClock overrides time.Now for expiry checks
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a Store over kv
func NewStore(kv storage.KeyValue, opts ...StoreOption) *Store {
	s := &Store{
		kv:     kv,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Token returns the stored token of scope or "".
// For ScopeUser an unscoped legacy token is migrated on the first miss.
func (s *Store) Token(ctx context.Context, scope Scope) (string, error) {
	if err := scope.Validate(); err != nil {
		return "", err
	}

	token, err := s.read(ctx, scope.key(fieldToken))
	if err != nil {
		return "", err
	}
	if token != "" || scope != ScopeUser || s.legacyChecked.Load() {
		return token, nil
	}

	return s.migrateLegacyToken(ctx)
}

// migrateLegacyToken copies the legacy token forward once and deletes it
func (s *Store) migrateLegacyToken(ctx context.Context) (string, error) {
	legacy, err := s.read(ctx, legacyTokenKey)
	if err != nil {
		return "", err
	}
	if legacy == "" {
		s.legacyChecked.Store(true)
		return "", nil
	}

	if err := s.kv.Set(ctx, ScopeUser.key(fieldToken), legacy); err != nil {
		return "", fmt.Errorf("failed to migrate legacy token: %w", err)
	}
	if err := s.kv.Remove(ctx, legacyTokenKey); err != nil {
		return "", fmt.Errorf("failed to remove legacy token: %w", err)
	}
	s.legacyChecked.Store(true)

	s.logger.InfoContext(ctx, "legacy access token migrated", "scope", ScopeUser)
	return legacy, nil
}

// SetToken stores token for scope. For ScopeUser it also finalizes the
// legacy migration by deleting the unscoped key.
func (s *Store) SetToken(ctx context.Context, token string, scope Scope) error {
	if err := scope.Validate(); err != nil {
		return err
	}

	if err := s.kv.Set(ctx, scope.key(fieldToken), token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	if scope == ScopeUser {
		if err := s.kv.Remove(ctx, legacyTokenKey); err != nil {
			return fmt.Errorf("failed to remove legacy token: %w", err)
		}
		s.legacyChecked.Store(true)
	}

	return nil
}

// PersistAuth stores the token and session metadata of a login/registration
// result. Metadata fields that are absent or empty are removed. When a write
// fails the scope is left without a session rather than with a mixed one.
func (s *Store) PersistAuth(ctx context.Context, payload *api.SessionPayload, scope Scope) error {
	if payload == nil || payload.AccessToken == "" {
		return ErrMissingToken
	}
	if err := scope.Validate(); err != nil {
		return err
	}

	// Старые метаданные удаляются до записи токена: новый токен не должен
	// остаться рядом с username/user_id прошлой сессии
	for _, field := range metadataFields {
		key := scope.key(field)
		if err := s.kv.Remove(ctx, key); err != nil {
			return fmt.Errorf("failed to remove %s: %w", key, err)
		}
	}

	if err := s.SetToken(ctx, payload.AccessToken, scope); err != nil {
		return err
	}

	metadata := map[string]string{
		fieldExpiresAt: formatInt(payload.ExpiresAt),
		fieldTokenType: payload.TokenType,
		fieldUserID:    formatInt(payload.UserID),
		fieldUsername:  payload.Username,
	}

	for _, field := range metadataFields {
		key := scope.key(field)
		value := metadata[field]
		if value == "" {
			continue
		}
		if err := s.kv.Set(ctx, key, value); err != nil {
			// Неполная сессия хуже отсутствующей
			return errors.Join(
				fmt.Errorf("failed to save %s: %w", key, err),
				s.removeKeys(ctx, scope),
			)
		}
	}

	return nil
}

// Session returns the raw stored session of scope, or nil when no token is stored
func (s *Store) Session(ctx context.Context, scope Scope) (*StoredSession, error) {
	token, err := s.Token(ctx, scope)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, nil
	}

	sess := &StoredSession{AccessToken: token}
	values := make(map[string]string, len(metadataFields))
	for _, field := range metadataFields {
		v, err := s.read(ctx, scope.key(field))
		if err != nil {
			return nil, err
		}
		values[field] = v
	}

	sess.TokenType = values[fieldTokenType]
	sess.UserID = values[fieldUserID]
	sess.Username = values[fieldUsername]
	if exp := values[fieldExpiresAt]; exp != "" {
		// Невалидное значение считаем отсутствующим
		sess.ExpiresAt, _ = strconv.ParseInt(exp, 10, 64)
	}

	return sess, nil
}

// CurrentUser decodes the identity of scope from its live token.
// A missing, undecodable, exp-less or expired token yields nil; the last
// three also log the scope out. Only storage failures are returned as errors.
func (s *Store) CurrentUser(ctx context.Context, scope Scope) (*Identity, error) {
	token, err := s.Token(ctx, scope)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, nil
	}

	identity, err := identityFromToken(token, s.now())
	if err != nil {
		s.logger.InfoContext(ctx, "stored token rejected, logging out",
			"scope", scope,
			"reason", err.Error(),
		)
		if logoutErr := s.Logout(ctx, scope); logoutErr != nil {
			s.logger.WarnContext(ctx, "failed to clear rejected session", "scope", scope, "error", logoutErr)
		}
		return nil, nil
	}

	return identity, nil
}

// IsLoggedIn reports whether scope has a valid, unexpired identity
func (s *Store) IsLoggedIn(ctx context.Context, scope Scope) bool {
	identity, err := s.CurrentUser(ctx, scope)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to read current user", "scope", scope, "error", err)
		return false
	}
	return identity != nil
}

// Logout removes the token and metadata of scope (and the legacy key for
// ScopeUser), then clears transient session state. Session state failures
// are logged and swallowed. Logging out an empty scope is a no-op.
func (s *Store) Logout(ctx context.Context, scope Scope) error {
	if err := scope.Validate(); err != nil {
		return err
	}

	err := s.removeKeys(ctx, scope)
	if scope == ScopeUser && err == nil {
		s.legacyChecked.Store(true)
	}

	if s.session != nil {
		if err := s.session.ClearSession(ctx); err != nil {
			s.logger.WarnContext(ctx, "failed to clear session state", "scope", scope, "error", err)
		}
	}

	return err
}

// removeKeys deletes every key owned by scope
func (s *Store) removeKeys(ctx context.Context, scope Scope) error {
	var errs []error
	for _, key := range scope.keys() {
		if err := s.kv.Remove(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("failed to remove %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// LoginPath returns the login route for scope
func (s *Store) LoginPath(scope Scope) string {
	return scope.LoginPath()
}

// read returns "" for absent keys
func (s *Store) read(ctx context.Context, key string) (string, error) {
	v, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return v, nil
}

func formatInt(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}
