package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/casinoadmin/internal/client/storage/memory"
	"github.com/iudanet/casinoadmin/pkg/api"
)

var testNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) (*Store, *memory.Storage) {
	t.Helper()
	kv := memory.New()
	store := NewStore(kv,
		WithSessionState(kv),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithClock(func() time.Time { return testNow }),
	)
	return store, kv
}

// signToken выпускает HS256 токен с claims консоли
func signToken(t *testing.T, uid int64, uname string, role int, exp *time.Time) string {
	t.Helper()
	claims := Claims{
		UserID:   uid,
		Username: uname,
		Role:     role,
	}
	if exp != nil {
		claims.ExpiresAt = jwt.NewNumericDate(*exp)
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func ptr[T any](v T) *T {
	return &v
}

func TestScope_Validate(t *testing.T) {
	assert.NoError(t, ScopeUser.Validate())
	assert.NoError(t, ScopeAdmin.Validate())
	assert.ErrorIs(t, Scope("root").Validate(), ErrUnknownScope)
}

func TestStore_LoginPath(t *testing.T) {
	store, _ := newTestStore(t)
	assert.Equal(t, "/admin-login", store.LoginPath(ScopeAdmin))
	assert.Equal(t, "/login", store.LoginPath(ScopeUser))
}

func TestStore_SetToken_RoundTripAndIsolation(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetToken(ctx, "user-token", ScopeUser))
	require.NoError(t, store.SetToken(ctx, "abc", ScopeAdmin))

	got, err := store.Token(ctx, ScopeAdmin)
	require.NoError(t, err)
	assert.Equal(t, "abc", got)

	// Запись в ADMIN не трогает USER
	got, err = store.Token(ctx, ScopeUser)
	require.NoError(t, err)
	assert.Equal(t, "user-token", got)
}

func TestStore_Token_Empty(t *testing.T) {
	store, _ := newTestStore(t)

	got, err := store.Token(context.Background(), ScopeAdmin)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = store.Token(context.Background(), Scope("nope"))
	assert.ErrorIs(t, err, ErrUnknownScope)
}

func TestStore_LegacyMigration(t *testing.T) {
	store, kv := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, "access_token", "legacy"))

	got, err := store.Token(ctx, ScopeUser)
	require.NoError(t, err)
	assert.Equal(t, "legacy", got)
	assert.Equal(t, map[string]string{"user.access_token": "legacy"}, kv.Snapshot())

	// Повторный вызов ничего не меняет
	got, err = store.Token(ctx, ScopeUser)
	require.NoError(t, err)
	assert.Equal(t, "legacy", got)
	assert.Equal(t, map[string]string{"user.access_token": "legacy"}, kv.Snapshot())
}

func TestStore_LegacyMigration_OnlyUserScope(t *testing.T) {
	store, kv := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, "access_token", "legacy"))

	got, err := store.Token(ctx, ScopeAdmin)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, map[string]string{"access_token": "legacy"}, kv.Snapshot())
}

func TestStore_LegacyMigration_NotRecheckedAfterMiss(t *testing.T) {
	store, kv := newTestStore(t)
	ctx := context.Background()

	got, err := store.Token(ctx, ScopeUser)
	require.NoError(t, err)
	assert.Empty(t, got)

	// Legacy ключ, появившийся позже, уже не мигрируется
	require.NoError(t, kv.Set(ctx, "access_token", "late"))
	got, err = store.Token(ctx, ScopeUser)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_SetToken_UserRemovesLegacy(t *testing.T) {
	store, kv := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, "access_token", "legacy"))

	require.NoError(t, store.SetToken(ctx, "fresh", ScopeUser))
	assert.Equal(t, map[string]string{"user.access_token": "fresh"}, kv.Snapshot())
}

func TestStore_PersistAuth_MissingToken(t *testing.T) {
	tests := []struct {
		payload *api.SessionPayload
		name    string
	}{
		{name: "nil payload", payload: nil},
		{name: "empty payload", payload: &api.SessionPayload{}},
		{name: "metadata without token", payload: &api.SessionPayload{Username: "bob", ExpiresAt: ptr(int64(1))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, scope := range []Scope{ScopeUser, ScopeAdmin} {
				store, kv := newTestStore(t)

				err := store.PersistAuth(context.Background(), tt.payload, scope)
				assert.ErrorIs(t, err, ErrMissingToken)
				assert.Empty(t, kv.Snapshot())
			}
		})
	}
}

func TestStore_PersistAuth_WritesScopedKeys(t *testing.T) {
	store, kv := newTestStore(t)
	ctx := context.Background()

	err := store.PersistAuth(ctx, &api.SessionPayload{
		AccessToken: "tok",
		ExpiresAt:   ptr(int64(1790000000)),
		TokenType:   "Bearer",
		UserID:      ptr(int64(7)),
		Username:    "boss",
	}, ScopeAdmin)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"admin.access_token": "tok",
		"admin.expires_at":   "1790000000",
		"admin.token_type":   "Bearer",
		"admin.user_id":      "7",
		"admin.username":     "boss",
	}, kv.Snapshot())

	sess, err := store.Session(ctx, ScopeAdmin)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, StoredSession{
		AccessToken: "tok",
		TokenType:   "Bearer",
		Username:    "boss",
		UserID:      "7",
		ExpiresAt:   1790000000,
	}, *sess)
}

func TestStore_PersistAuth_RemovesEmptyMetadata(t *testing.T) {
	store, kv := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PersistAuth(ctx, &api.SessionPayload{
		AccessToken: "first",
		TokenType:   "Bearer",
		Username:    "alice",
		UserID:      ptr(int64(1)),
	}, ScopeUser))

	// Второй логин без username/user_id удаляет старые значения
	require.NoError(t, store.PersistAuth(ctx, &api.SessionPayload{
		AccessToken: "second",
		TokenType:   "Bearer",
	}, ScopeUser))

	assert.Equal(t, map[string]string{
		"user.access_token": "second",
		"user.token_type":   "Bearer",
	}, kv.Snapshot())
}

func TestStore_PersistAuth_StorageError(t *testing.T) {
	store, kv := newTestStore(t)
	kv.SetErr = errors.New("disk full")

	err := store.PersistAuth(context.Background(), &api.SessionPayload{AccessToken: "tok"}, ScopeUser)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

// failOnKey отказывает в записи одного ключа
type failOnKey struct {
	*memory.Storage
	key string
}

func (f failOnKey) Set(ctx context.Context, key, value string) error {
	if key == f.key {
		return errors.New("disk full")
	}
	return f.Storage.Set(ctx, key, value)
}

func TestStore_PersistAuth_MetadataFailureLeavesNoMixedSession(t *testing.T) {
	kv := memory.New()
	store := NewStore(failOnKey{Storage: kv, key: "user.username"},
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	ctx := context.Background()

	// Сессия предыдущего пользователя, записанная в обход отказа
	require.NoError(t, kv.Set(ctx, "user.access_token", "old"))
	require.NoError(t, kv.Set(ctx, "user.username", "alice"))
	require.NoError(t, kv.Set(ctx, "user.user_id", "1"))
	require.NoError(t, kv.Set(ctx, "admin.access_token", "adm"))

	err := store.PersistAuth(ctx, &api.SessionPayload{
		AccessToken: "new",
		Username:    "bob",
		UserID:      ptr(int64(2)),
	}, ScopeUser)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	assert.Equal(t, map[string]string{"admin.access_token": "adm"}, kv.Snapshot())

	sess, err := store.Session(ctx, ScopeUser)
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestStore_CurrentUser(t *testing.T) {
	future := testNow.Add(time.Hour)
	past := testNow.Add(-time.Second)

	tests := []struct {
		want       *Identity
		name       string
		token      string
		wantLogout bool
	}{
		{
			name:  "no token",
			token: "",
			want:  nil,
		},
		{
			name:       "malformed token",
			token:      "not-a-jwt",
			wantLogout: true,
		},
		{
			name:       "no exp claim",
			token:      signToken(t, 1, "bob", 0, nil),
			wantLogout: true,
		},
		{
			name:       "expired",
			token:      signToken(t, 1, "bob", 0, &past),
			wantLogout: true,
		},
		{
			name:       "expires exactly now",
			token:      signToken(t, 1, "bob", 0, &testNow),
			wantLogout: true,
		},
		{
			name:  "valid user",
			token: signToken(t, 5, "bob", 0, &future),
			want:  &Identity{ID: 5, Username: "bob", Role: RoleUser, ExpiresAt: future.Unix()},
		},
		{
			name:  "valid admin",
			token: signToken(t, 9, "root", 1, &future),
			want:  &Identity{ID: 9, Username: "root", Role: RoleAdmin, ExpiresAt: future.Unix()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, kv := newTestStore(t)
			ctx := context.Background()

			if tt.token != "" {
				require.NoError(t, store.PersistAuth(ctx, &api.SessionPayload{
					AccessToken: tt.token,
					Username:    "stored",
				}, ScopeUser))
			}
			require.NoError(t, store.SetToken(ctx, "admin-token", ScopeAdmin))
			require.NoError(t, kv.PutSession(ctx, "console_session_id", "run"))

			got, err := store.CurrentUser(ctx, ScopeUser)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want != nil, store.IsLoggedIn(ctx, ScopeUser))

			snapshot := kv.Snapshot()
			if tt.wantLogout {
				assert.NotContains(t, snapshot, "user.access_token")
				assert.NotContains(t, snapshot, "user.username")
				_, err := kv.GetSession(ctx, "console_session_id")
				assert.Error(t, err)
			}
			// ADMIN scope никогда не затрагивается
			assert.Equal(t, "admin-token", snapshot["admin.access_token"])
		})
	}
}

func TestStore_CurrentUser_RecomputedPerRead(t *testing.T) {
	kv := memory.New()
	now := testNow
	store := NewStore(kv, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	exp := testNow.Add(time.Minute)
	require.NoError(t, store.SetToken(ctx, signToken(t, 1, "bob", 0, &exp), ScopeUser))

	got, err := store.CurrentUser(ctx, ScopeUser)
	require.NoError(t, err)
	require.NotNil(t, got)

	now = testNow.Add(2 * time.Minute)
	got, err = store.CurrentUser(ctx, ScopeUser)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_Logout(t *testing.T) {
	store, kv := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PersistAuth(ctx, &api.SessionPayload{
		AccessToken: "u", Username: "alice", TokenType: "Bearer", ExpiresAt: ptr(int64(10)), UserID: ptr(int64(1)),
	}, ScopeUser))
	require.NoError(t, store.PersistAuth(ctx, &api.SessionPayload{
		AccessToken: "a", Username: "root",
	}, ScopeAdmin))
	require.NoError(t, kv.Set(ctx, "access_token", "legacy"))

	require.NoError(t, store.Logout(ctx, ScopeUser))
	assert.Equal(t, map[string]string{
		"admin.access_token": "a",
		"admin.username":     "root",
	}, kv.Snapshot())

	// Повторный logout - no-op
	require.NoError(t, store.Logout(ctx, ScopeUser))

	require.NoError(t, store.Logout(ctx, ScopeAdmin))
	assert.Empty(t, kv.Snapshot())
}

func TestStore_Logout_SessionStateFailureSwallowed(t *testing.T) {
	store, kv := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SetToken(ctx, "a", ScopeAdmin))
	kv.ClearSessionErr = errors.New("session broken")

	require.NoError(t, store.Logout(ctx, ScopeAdmin))
	assert.Empty(t, kv.Snapshot())
}

func TestStore_Logout_RemoveFailureReturned(t *testing.T) {
	store, kv := newTestStore(t)
	kv.RemoveErr = errors.New("read-only")

	err := store.Logout(context.Background(), ScopeAdmin)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read-only")
}

func TestIdentity_IsAdmin(t *testing.T) {
	var nilIdentity *Identity
	assert.False(t, nilIdentity.IsAdmin())
	assert.True(t, (&Identity{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&Identity{Role: RoleUser}).IsAdmin())
	assert.Equal(t, int64(100), (&Identity{ExpiresAt: 100}).Expiry().Unix())
}
