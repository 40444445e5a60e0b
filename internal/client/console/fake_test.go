package console

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/iudanet/casinoadmin/internal/client/auth"
	"github.com/iudanet/casinoadmin/pkg/api"
)

// fakeCaller отвечает заготовленными данными и запоминает вызовы
type fakeCaller struct {
	data  map[string]string
	errs  map[string]error
	calls []call
	mu    sync.Mutex
}

type call struct {
	params any
	method string
}

func newFakeCaller() *fakeCaller {
	return &fakeCaller{
		data: make(map[string]string),
		errs: make(map[string]error),
	}
}

func (f *fakeCaller) Invoke(ctx context.Context, method string, params, out any) error {
	f.mu.Lock()
	f.calls = append(f.calls, call{method: method, params: params})
	data, hasData := f.data[method]
	err := f.errs[method]
	f.mu.Unlock()

	if err != nil {
		return err
	}
	if out == nil || !hasData {
		return nil
	}
	return json.Unmarshal([]byte(data), out)
}

func (f *fakeCaller) methods() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.method)
	}
	return out
}

func (f *fakeCaller) last() call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

// fakeSessions запоминает сохранённые и сброшенные сессии
type fakeSessions struct {
	persisted map[auth.Scope]*api.SessionPayload
	loggedOut []auth.Scope
	err       error
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{persisted: make(map[auth.Scope]*api.SessionPayload)}
}

func (f *fakeSessions) PersistAuth(ctx context.Context, payload *api.SessionPayload, scope auth.Scope) error {
	if payload == nil || payload.AccessToken == "" {
		return auth.ErrMissingToken
	}
	if f.err != nil {
		return f.err
	}
	f.persisted[scope] = payload
	return nil
}

func (f *fakeSessions) Logout(ctx context.Context, scope auth.Scope) error {
	f.loggedOut = append(f.loggedOut, scope)
	return f.err
}
