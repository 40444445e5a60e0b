package auth

import "errors"

var (
	// ErrMissingToken indicates a session payload without an access token
	ErrMissingToken = errors.New("missing access_token")

	// ErrUnknownScope indicates a scope other than user or admin
	ErrUnknownScope = errors.New("unknown auth scope")

	// ErrNoExpiry indicates a token without an exp claim
	ErrNoExpiry = errors.New("token has no expiry")

	// ErrTokenExpired indicates a token whose exp claim has elapsed
	ErrTokenExpired = errors.New("token expired")
)
