package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

//go:generate mockgen -source=service.go -destination=../mocks/mock_service.go -package=mocks
type Service interface {
	// Register creates an owner account and starts the trial subscription in
	// the same transaction.
	Register(ctx context.Context, req RegisterRequest) (*Owner, error)
	GetByID(ctx context.Context, id snowflake.ID) (*Owner, error)
	UpdateProfile(ctx context.Context, id snowflake.ID, req UpdateProfileRequest) (*Owner, error)
}

type RegisterRequest struct {
	Name          string `json:"name" binding:"required"`
	Company       string `json:"company"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone" binding:"required"`
	Password      string `json:"password" binding:"required,min=6"`
	AcceptedTerms bool   `json:"accepted_terms"`
}

// UpdateProfileRequest carries optional profile fields. Nil means unchanged.
type UpdateProfileRequest struct {
	Name    *string `json:"name"`
	Company *string `json:"company"`
	Email   *string `json:"email"`
}
