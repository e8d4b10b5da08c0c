package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, employee *Employee) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Employee, error)
	FindByPhone(ctx context.Context, db *gorm.DB, phone string) (*Employee, error)
	// SearchByPhoneFragment returns employees whose stored phone contains the
	// given digit fragment, used by the tolerant login lookup.
	SearchByPhoneFragment(ctx context.Context, db *gorm.DB, fragment string) ([]*Employee, error)
	ListByOwner(ctx context.Context, db *gorm.DB, ownerID snowflake.ID) ([]*Employee, error)
	UpdateFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
