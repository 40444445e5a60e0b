package rpc

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Ошибки конфигурации клиента
var (
	// ErrDomainRequired возвращается New при пустом домене ("auth", "user", ...)
	ErrDomainRequired = errors.New("rpc: domain is required, e.g. \"system\" or \"auth\"")
	// ErrMethodRequired возвращается Call при пустом имени метода
	ErrMethodRequired = errors.New("rpc: method is required")
)

const defaultBusinessMessage = "Business error"

// Kind is the layer at which a call failed
type Kind int

const (
	// KindNetwork - транспорт не завершился (нет ответа)
	KindNetwork Kind = iota + 1
	// KindHTTP - статус ответа не 2xx
	KindHTTP
	// KindFramework - код и сообщение на верхнем уровне ответа
	KindFramework
	// KindProtocol - поле error JSON-RPC
	KindProtocol
	// KindBusiness - result.code != 0
	KindBusiness
	// KindInvalidResponse - тело 2xx ответа не является JSON
	KindInvalidResponse
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTP:
		return "http"
	case KindFramework:
		return "framework"
	case KindProtocol:
		return "protocol"
	case KindBusiness:
		return "business"
	case KindInvalidResponse:
		return "invalid_response"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is the single shape every failed call is reported as.
// Fields are additive: an HTTP error carries both HTTPStatus and Code, a
// framework error reports HTTPStatus 500 next to its own code.
type Error struct {
	// Cause is the underlying transport or decoding error, if any
	Cause error
	// Message is safe to show to the user
	Message string
	// Raw is the raw response body
	Raw json.RawMessage
	// Code is the business, framework or protocol code; check HasCode
	Code int
	// HTTPStatus is 0 when no response was received
	HTTPStatus     int
	Kind           Kind
	IsNetworkError bool

	hasCode     bool
	authExpired bool
}

func (e *Error) Error() string {
	if e.hasCode {
		return fmt.Sprintf("rpc %s error %d: %s", e.Kind, e.Code, e.Message)
	}
	return fmt.Sprintf("rpc %s error: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// HasCode reports whether Code carries a value from the response
func (e *Error) HasCode() bool {
	return e.hasCode
}

// AuthExpired reports whether the error made the client drop the session
func (e *Error) AuthExpired() bool {
	return e.authExpired
}

func (e *Error) setCode(code int) {
	e.Code = code
	e.hasCode = true
}

// NewNetworkError reports a request that never produced a response
func NewNetworkError(cause error) *Error {
	return &Error{
		Message:        "Network error",
		Kind:           KindNetwork,
		IsNetworkError: true,
		Cause:          cause,
	}
}

// NewInvalidResponse reports a body that could not be decoded as JSON
func NewInvalidResponse(status int, raw []byte, cause error) *Error {
	return &Error{
		Message:    "Invalid JSON response from server",
		Kind:       KindInvalidResponse,
		HTTPStatus: status,
		Raw:        raw,
		Cause:      cause,
	}
}

// FromHTTP builds the error of a non-2xx response. The body's message and
// numeric code are used when present; the status fills in otherwise.
func FromHTTP(status int, body map[string]json.RawMessage, raw []byte) *Error {
	e := &Error{
		Message:    fmt.Sprintf("HTTP error %d", status),
		Kind:       KindHTTP,
		HTTPStatus: status,
		Raw:        raw,
	}
	if msg, ok := stringField(body, "message"); ok && msg != "" {
		e.Message = msg
	}
	if code, ok := intField(body, "code"); ok {
		e.setCode(code)
	} else {
		e.setCode(status)
	}
	return e
}

// FromFramework builds the error of a top-level {code, message} envelope.
// The server answers these with 2xx, the status is reported as 500.
func FromFramework(code int, message string, raw []byte) *Error {
	if message == "" {
		message = "Server error"
	}
	e := &Error{
		Message:    message,
		Kind:       KindFramework,
		HTTPStatus: 500,
		Raw:        raw,
	}
	e.setCode(code)
	return e
}

// FromProtocol builds the error of a JSON-RPC "error" member.
// A bare string is treated as {"message": string}.
func FromProtocol(errField json.RawMessage, raw []byte) *Error {
	e := &Error{
		Message: "JSON-RPC error",
		Kind:    KindProtocol,
		Raw:     raw,
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(errField, &obj); err == nil && obj != nil {
		if msg, ok := stringField(obj, "message"); ok && msg != "" {
			e.Message = msg
		}
		if code, ok := intField(obj, "code"); ok {
			e.setCode(code)
		}
		return e
	}

	var s string
	if err := json.Unmarshal(errField, &s); err == nil {
		e.Message = s
		return e
	}

	// число или bool - используем как есть
	e.Message = string(errField)
	return e
}

// FromBusiness builds the error of a result whose code is not CodeOK
func FromBusiness(code int, message string, raw []byte) *Error {
	if message == "" {
		message = defaultBusinessMessage
	}
	e := &Error{
		Message: message,
		Kind:    KindBusiness,
		Raw:     raw,
	}
	e.setCode(code)
	return e
}

// AsError extracts *Error from err
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf returns the code carried by err, if any
func CodeOf(err error) (int, bool) {
	e, ok := AsError(err)
	if !ok || !e.hasCode {
		return 0, false
	}
	return e.Code, true
}

// IsAuthExpired reports whether err is a business error that forced a logout
func IsAuthExpired(err error) bool {
	e, ok := AsError(err)
	return ok && e.authExpired
}

// IsNetwork reports whether err is a transport failure
func IsNetwork(err error) bool {
	e, ok := AsError(err)
	return ok && e.IsNetworkError
}
