package rpc

import (
	"errors"
	"slices"
)

// Бизнес-коды сервера
const (
	CodeUserNotFound   = 10001
	CodeWrongPassword  = 10002
	CodeUserDisabled   = 10003
	CodeUsernameTaken  = 10004
	CodeTokenExpired   = 10005
	CodeNoPermission   = 10006
	CodeInviteNotFound = 20001
	CodeInviteUsedUp   = 20002
	CodeInviteExpired  = 20003
	CodeInviteDisabled = 20004
	CodeAdminOnly      = 40301
	CodeLoginRequired  = 40302
)

// defaultLoginCodes - коды, после которых сессия scope сбрасывается
var defaultLoginCodes = []int{CodeTokenExpired, CodeLoginRequired, CodeNoPermission}

// DefaultLoginCodes returns the business codes that force a re-login
func DefaultLoginCodes() []int {
	return slices.Clone(defaultLoginCodes)
}

// DefaultRelogMessage is shown when the server gave no message of its own
const DefaultRelogMessage = "please log in again"

// messages maps known codes to display text
var messages = map[int]string{
	CodeAdminOnly:      "only administrators can do this",
	CodeLoginRequired:  "please log in first",
	CodeTokenExpired:   "session expired, please log in again",
	CodeNoPermission:   "no permission for this operation",
	CodeUserNotFound:   "user does not exist",
	CodeWrongPassword:  "wrong password",
	CodeUserDisabled:   "user is disabled",
	CodeUsernameTaken:  "username already exists",
	CodeInviteNotFound: "invite code does not exist",
	CodeInviteUsedUp:   "invite code is used up",
	CodeInviteExpired:  "invite code has expired",
	CodeInviteDisabled: "invite code is disabled",
}

// DisplayMessage returns the text to show for err: the table entry for its
// code, else its own message, else a generic fallback.
func DisplayMessage(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.hasCode {
		if msg, ok := messages[e.Code]; ok {
			return msg
		}
	}
	if e.Message != "" {
		return e.Message
	}
	return "request failed"
}
