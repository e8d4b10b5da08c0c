package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("subscription_not_found")

type Service interface {
	// StartTrial creates the trial subscription for a freshly registered
	// owner. It runs inside the caller's transaction so that registration
	// and the trial commit atomically.
	StartTrial(ctx context.Context, tx *gorm.DB, ownerID snowflake.ID) (*Subscription, error)
	GetByOwner(ctx context.Context, ownerID snowflake.ID) (*Subscription, error)
	// ListExpiring returns subscriptions ending within [from, to).
	ListExpiring(ctx context.Context, from, to time.Time) ([]*Subscription, error)
}
