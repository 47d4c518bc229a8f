package session

import "errors"

var (
	ErrKeyNotFound       = errors.New("session key not found")
	ErrSessionIDRequired = errors.New("session id is required")
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrSessionExpired    = errors.New("session has expired")
)
