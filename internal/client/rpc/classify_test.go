package rpc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/casinoadmin/pkg/api"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		wantResult *api.Result
		name       string
		body       string
		wantMsg    string
		status     int
		wantKind   Kind
		wantCode   int
		wantStatus int
		wantHas    bool
	}{
		{
			name:       "success",
			status:     200,
			body:       `{"jsonrpc":"2.0","id":"1","result":{"code":0,"message":"OK","data":{"x":1}}}`,
			wantResult: &api.Result{Code: 0, Message: "OK", Data: json.RawMessage(`{"x":1}`)},
		},
		{
			name:       "success without result",
			status:     200,
			body:       `{"jsonrpc":"2.0","id":"1"}`,
			wantResult: nil,
		},
		{
			name:       "non numeric result code is not a business error",
			status:     200,
			body:       `{"result":{"code":"E1","message":"weird"}}`,
			wantResult: &api.Result{Message: "weird"},
		},
		{
			name:       "http error with body",
			status:     503,
			body:       `{"code":7,"message":"maintenance"}`,
			wantKind:   KindHTTP,
			wantCode:   7,
			wantHas:    true,
			wantStatus: 503,
			wantMsg:    "maintenance",
		},
		{
			name:       "http error without code uses status",
			status:     404,
			body:       `{"detail":"nope"}`,
			wantKind:   KindHTTP,
			wantCode:   404,
			wantHas:    true,
			wantStatus: 404,
			wantMsg:    "HTTP error 404",
		},
		{
			name:       "http error with html body",
			status:     502,
			body:       `<html>bad gateway</html>`,
			wantKind:   KindHTTP,
			wantCode:   502,
			wantHas:    true,
			wantStatus: 502,
			wantMsg:    "HTTP error 502",
		},
		{
			name:       "http error wins over business code",
			status:     500,
			body:       `{"result":{"code":40302,"message":"please login"}}`,
			wantKind:   KindHTTP,
			wantCode:   500,
			wantHas:    true,
			wantStatus: 500,
			wantMsg:    "HTTP error 500",
		},
		{
			name:       "framework error",
			status:     200,
			body:       `{"code":401,"reason":"UNAUTHORIZED","message":"jwt token missing"}`,
			wantKind:   KindFramework,
			wantCode:   401,
			wantHas:    true,
			wantStatus: 500,
			wantMsg:    "jwt token missing",
		},
		{
			name:       "framework wins over protocol error",
			status:     200,
			body:       `{"code":400,"message":"bad","error":{"code":-32600,"message":"invalid request"}}`,
			wantKind:   KindFramework,
			wantCode:   400,
			wantHas:    true,
			wantStatus: 500,
			wantMsg:    "bad",
		},
		{
			name:     "top level code without message is not framework",
			status:   200,
			body:     `{"code":3,"error":"oops"}`,
			wantKind: KindProtocol,
			wantMsg:  "oops",
		},
		{
			name:     "protocol error object",
			status:   200,
			body:     `{"jsonrpc":"2.0","id":"1","error":{"code":-32601,"message":"method not found"}}`,
			wantKind: KindProtocol,
			wantCode: -32601,
			wantHas:  true,
			wantMsg:  "method not found",
		},
		{
			name:     "protocol error string",
			status:   200,
			body:     `{"jsonrpc":"2.0","id":"1","error":"boom"}`,
			wantKind: KindProtocol,
			wantMsg:  "boom",
		},
		{
			name:     "protocol error object without message",
			status:   200,
			body:     `{"error":{}}`,
			wantKind: KindProtocol,
			wantMsg:  "JSON-RPC error",
		},
		{
			name:       "null error is ignored",
			status:     200,
			body:       `{"error":null,"result":{"code":0,"message":"OK"}}`,
			wantResult: &api.Result{Message: "OK"},
		},
		{
			name:     "protocol wins over business",
			status:   200,
			body:     `{"error":"first","result":{"code":10002,"message":"second"}}`,
			wantKind: KindProtocol,
			wantMsg:  "first",
		},
		{
			name:     "business error",
			status:   200,
			body:     `{"result":{"code":10002,"message":"wrong password"}}`,
			wantKind: KindBusiness,
			wantCode: 10002,
			wantHas:  true,
			wantMsg:  "wrong password",
		},
		{
			name:     "business error without message",
			status:   200,
			body:     `{"result":{"code":20003}}`,
			wantKind: KindBusiness,
			wantCode: 20003,
			wantHas:  true,
			wantMsg:  "Business error",
		},
		{
			name:     "fractional business code is an error without code",
			status:   200,
			body:     `{"result":{"code":0.5,"message":"half"}}`,
			wantKind: KindBusiness,
			wantMsg:  "half",
		},
		{
			name:     "fractional login code is not truncated",
			status:   200,
			body:     `{"result":{"code":10005.5,"message":"odd"}}`,
			wantKind: KindBusiness,
			wantMsg:  "odd",
		},
		{
			name:       "fractional framework code",
			status:     200,
			body:       `{"code":1.5,"message":"odd"}`,
			wantKind:   KindFramework,
			wantStatus: 500,
			wantMsg:    "odd",
		},
		{
			name:       "http error with fractional body code uses status",
			status:     400,
			body:       `{"code":4.2}`,
			wantKind:   KindHTTP,
			wantCode:   400,
			wantHas:    true,
			wantStatus: 400,
			wantMsg:    "HTTP error 400",
		},
		{
			name:       "invalid json on 2xx",
			status:     200,
			body:       `not json`,
			wantKind:   KindInvalidResponse,
			wantStatus: 200,
			wantMsg:    "Invalid JSON response from server",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, rpcErr := Classify(tt.status, []byte(tt.body))

			if tt.wantKind == 0 {
				require.Nil(t, rpcErr)
				assert.Equal(t, tt.wantResult, result)
				return
			}

			require.NotNil(t, rpcErr)
			assert.Nil(t, result)
			assert.Equal(t, tt.wantKind, rpcErr.Kind)
			assert.Equal(t, tt.wantHas, rpcErr.HasCode())
			assert.Equal(t, tt.wantCode, rpcErr.Code)
			assert.Equal(t, tt.wantStatus, rpcErr.HTTPStatus)
			assert.Equal(t, tt.wantMsg, rpcErr.Message)
			assert.False(t, rpcErr.IsNetworkError)
			assert.Equal(t, tt.body, string(rpcErr.Raw))
		})
	}
}

func TestNewNetworkError(t *testing.T) {
	cause := assert.AnError
	e := NewNetworkError(cause)

	assert.True(t, e.IsNetworkError)
	assert.False(t, e.HasCode())
	assert.Zero(t, e.HTTPStatus)
	assert.Equal(t, KindNetwork, e.Kind)
	assert.ErrorIs(t, e, cause)
	assert.Equal(t, "rpc network error: Network error", e.Error())
}

func TestError_Helpers(t *testing.T) {
	e := FromBusiness(CodeWrongPassword, "wrong password", nil)
	wrapped := wrapErr(e)

	code, ok := CodeOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, CodeWrongPassword, code)
	assert.Equal(t, "rpc business error 10002: wrong password", e.Error())
	assert.False(t, IsAuthExpired(wrapped))
	assert.False(t, IsNetwork(wrapped))

	_, ok = CodeOf(NewNetworkError(nil))
	assert.False(t, ok)
	_, ok = CodeOf(assert.AnError)
	assert.False(t, ok)

	assert.Equal(t, "invalid_response", KindInvalidResponse.String())
	assert.Equal(t, "kind(42)", Kind(42).String())
}

type wrapper struct{ err error }

func (w wrapper) Error() string { return "wrapped: " + w.err.Error() }
func (w wrapper) Unwrap() error { return w.err }

func wrapErr(err error) error {
	return wrapper{err: err}
}
