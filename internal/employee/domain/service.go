package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

//go:generate mockgen -source=service.go -destination=../mocks/mock_service.go -package=mocks
type Service interface {
	// List returns the owner's employees. Only the owning account may manage
	// employees; callers enforce that before reaching the service.
	List(ctx context.Context, ownerID snowflake.ID) ([]*Employee, error)
	Create(ctx context.Context, ownerID snowflake.ID, req CreateEmployeeRequest) (*Employee, error)
	GetByID(ctx context.Context, ownerID, id snowflake.ID) (*Employee, error)
	UpdatePhone(ctx context.Context, ownerID, id snowflake.ID, rawPhone string) (*Employee, error)
	UpdatePassword(ctx context.Context, ownerID, id snowflake.ID, newPassword string) error
	// SetBlocked flips the block flag. A blocked employee cannot log in and
	// loses access on the next request even with a live token.
	SetBlocked(ctx context.Context, ownerID, id snowflake.ID, blocked bool) (*Employee, error)
	Delete(ctx context.Context, ownerID, id snowflake.ID) error
}

type CreateEmployeeRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}
