package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, sub *Subscription) error
	FindByOwner(ctx context.Context, db *gorm.DB, ownerID snowflake.ID) (*Subscription, error)
	// ListExpiring returns subscriptions whose end date falls in [from, to).
	ListExpiring(ctx context.Context, db *gorm.DB, from, to time.Time) ([]*Subscription, error)
	UpdateFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error
}
