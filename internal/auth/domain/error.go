package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrActorNotFound      = errors.New("actor not found")
	ErrBlocked            = errors.New("account blocked")
	ErrNoActor            = errors.New("no actor in context")
	ErrOwnerRequired      = errors.New("owner account required")
)
