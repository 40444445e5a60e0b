package api

import "encoding/json"

// Version версия протокола JSON-RPC
const Version = "2.0"

// CodeOK код успешного бизнес-результата внутри result
const CodeOK = 0

// Request представляет JSON-RPC запрос
type Request struct {
	Params  any    `json:"params"`
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
}

// Result представляет бизнес-результат внутри JSON-RPC ответа.
// Code == CodeOK означает успех, любое другое значение означает бизнес-ошибку.
type Result struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Code    int             `json:"code"`
}

// Response представляет JSON-RPC ответ сервера.
// Code/Message на верхнем уровне заполняются только фреймворком (ошибка вне JSON-RPC).
type Response struct {
	Result  *Result         `json:"result,omitempty"`
	Code    *int            `json:"code,omitempty"`
	JSONRPC string          `json:"jsonrpc,omitempty"`
	ID      string          `json:"id,omitempty"`
	Message string          `json:"message,omitempty"`
	Reason  string          `json:"reason,omitempty"`
	Error   json.RawMessage `json:"error,omitempty"`
}

// ProtocolError представляет поле error стандартного JSON-RPC ответа
type ProtocolError struct {
	Message string `json:"message"`
	Code    *int   `json:"code,omitempty"`
}
