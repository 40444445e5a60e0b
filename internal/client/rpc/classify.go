package rpc

import (
	"bytes"
	"encoding/json"
	"math"

	"github.com/iudanet/casinoadmin/pkg/api"
)

// Classify maps one received response onto either a result or an *Error.
// Layers are checked in a fixed order: HTTP status, framework envelope,
// JSON-RPC error, business code. The first failing layer wins.
// Transport failures never reach Classify, see NewNetworkError.
func Classify(status int, body []byte) (*api.Result, *Error) {
	ok := status >= 200 && status < 300

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		if !ok {
			// Прокси и балансировщики отвечают HTML: статус важнее тела
			e := FromHTTP(status, nil, body)
			e.Cause = err
			return nil, e
		}
		return nil, NewInvalidResponse(status, body, err)
	}

	// 1) HTTP не 2xx
	if !ok {
		return nil, FromHTTP(status, envelope, body)
	}

	// 2) ошибка фреймворка: числовой code + message на верхнем уровне
	if code, isNum := numberField(envelope, "code"); isNum {
		if msg, _ := stringField(envelope, "message"); msg != "" {
			return nil, withCode(FromFramework(0, msg, body), code)
		}
	}

	// 3) поле error JSON-RPC
	if errField, present := envelope["error"]; present && truthy(errField) {
		return nil, FromProtocol(errField, body)
	}

	// 4) бизнес-ошибка result.code != 0
	rawResult, present := envelope["result"]
	if !present || isNull(rawResult) {
		return nil, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(rawResult, &fields); err != nil {
		// result не объект: бизнес-кода нет, отдаём как данные
		return &api.Result{Data: rawResult}, nil
	}

	result := &api.Result{Data: fields["data"]}
	result.Message, _ = stringField(fields, "message")
	if code, isNum := numberField(fields, "code"); isNum && code != api.CodeOK {
		// 0.5 тоже ошибка, но дробный код не сравнивается с известными кодами
		return nil, withCode(FromBusiness(0, result.Message, body), code)
	}

	return result, nil
}

// numberField returns obj[key] when it is a JSON number
func numberField(obj map[string]json.RawMessage, key string) (float64, bool) {
	raw, ok := obj[key]
	if !ok {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// intField returns obj[key] when it is an integral JSON number
func intField(obj map[string]json.RawMessage, key string) (int, bool) {
	f, ok := numberField(obj, key)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// withCode sets the code of e when it is integral and leaves e without a
// code otherwise
func withCode(e *Error, code float64) *Error {
	e.Code, e.hasCode = 0, false
	if code == math.Trunc(code) {
		e.setCode(int(code))
	}
	return e
}

// stringField returns obj[key] when it is a JSON string
func stringField(obj map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := obj[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// truthy отсекает null, false, 0 и "" - такие значения error не считаются ошибкой
func truthy(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", "false", "0", `""`:
		return false
	default:
		return true
	}
}
