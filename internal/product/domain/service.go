package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

//go:generate mockgen -source=service.go -destination=../mocks/mock_service.go -package=mocks
type Service interface {
	List(ctx context.Context, ownerID snowflake.ID, q string) ([]*Product, error)
	// Create upserts by case-insensitive name: an existing product takes the
	// new price, otherwise a row is created.
	Create(ctx context.Context, ownerID snowflake.ID, req CreateProductRequest) (*Product, error)
	GetByID(ctx context.Context, ownerID, id snowflake.ID) (*Product, error)
	// Update renames or reprices. Renaming onto another product's name is a
	// conflict, not a merge.
	Update(ctx context.Context, ownerID, id snowflake.ID, req UpdateProductRequest) (*Product, error)
	Delete(ctx context.Context, ownerID, id snowflake.ID) error
	// Upsert runs the invoice-time catalog write inside the caller's
	// transaction. Last written price wins.
	Upsert(ctx context.Context, tx *gorm.DB, ownerID snowflake.ID, name string, price float64) (*Product, error)
}

type CreateProductRequest struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price" binding:"gte=0"`
}

type UpdateProductRequest struct {
	Name  *string  `json:"name"`
	Price *float64 `json:"price"`
}
