package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=service.go -destination=../mocks/mock_service.go -package=mocks
type Service interface {
	// Login authenticates an owner or an employee by phone and password and
	// issues a bearer token.
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	// ResolveActor resolves a bearer token into the acting owner or employee.
	// The blocked-employee check runs on every resolution so that a block
	// applied mid-session takes effect on the next request.
	ResolveActor(ctx context.Context, rawToken string) (Actor, error)
}

type LoginRequest struct {
	Phone    string
	Password string
}

type LoginResult struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}
