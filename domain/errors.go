package domain

import "errors"

// Sentinel errors returned by repository implementations. Services map
// these onto the API error taxonomy without importing the storage package.
var (
	ErrClientExists   = errors.New("client already exists")
	ErrClientNotFound = errors.New("client not found")
	ErrUserExists     = errors.New("user already exists")
	ErrUserNotFound   = errors.New("user not found")
)
