package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Product, error)
	// FindByName matches on the lowercased name within the owner's catalog.
	FindByName(ctx context.Context, db *gorm.DB, ownerID snowflake.ID, nameLower string) (*Product, error)
	// ListByOwner filters by a case-insensitive name substring when q is
	// non-empty.
	ListByOwner(ctx context.Context, db *gorm.DB, ownerID snowflake.ID, q string) ([]*Product, error)
	UpdateFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
