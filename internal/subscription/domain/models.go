// Package domain contains subscription types. Every owner gets a trial
// subscription at registration; the scheduler reminds owners whose
// subscription is about to lapse.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	TypeFree = "free"
	TypePaid = "paid"
)

// TrialDuration is the lifetime of the subscription granted at registration.
const TrialDuration = 14 * 24 * time.Hour

type Subscription struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	OwnerID   snowflake.ID `gorm:"not null;uniqueIndex" json:"owner_id"`
	Type      string       `gorm:"type:text;not null" json:"type"`
	StartDate time.Time    `gorm:"not null" json:"start_date"`
	EndDate   time.Time    `gorm:"not null;index" json:"end_date"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Subscription) TableName() string { return "subscriptions" }

// Active reports whether the subscription covers the given instant.
func (s Subscription) Active(now time.Time) bool {
	return !now.Before(s.StartDate) && now.Before(s.EndDate)
}
