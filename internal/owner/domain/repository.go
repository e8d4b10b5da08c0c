package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, owner *Owner) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Owner, error)
	FindByPhone(ctx context.Context, db *gorm.DB, phone string) (*Owner, error)
	// SearchByPhoneFragment returns owners whose stored phone contains the
	// given digit fragment, used by the tolerant login lookup.
	SearchByPhoneFragment(ctx context.Context, db *gorm.DB, fragment string) ([]*Owner, error)
	UpdateFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error
}
