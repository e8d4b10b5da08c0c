// Package domain contains user feedback records.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var ErrEmptyMessage = errors.New("feedback_empty_message")

type Feedback struct {
	ID      snowflake.ID `gorm:"primaryKey" json:"id"`
	OwnerID snowflake.ID `gorm:"not null;index" json:"owner_id"`
	// AuthorRole records who wrote it, "owner" or "employee".
	AuthorRole string        `gorm:"type:text;not null" json:"author_role"`
	EmployeeID *snowflake.ID `gorm:"index" json:"employee_id,omitempty"`
	Message    string        `gorm:"type:text;not null" json:"message"`
	CreatedAt  time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Feedback) TableName() string { return "feedback" }

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, feedback *Feedback) error
	ListByOwner(ctx context.Context, db *gorm.DB, ownerID snowflake.ID) ([]*Feedback, error)
}

type Service interface {
	// Submit stores feedback from the acting owner or employee.
	Submit(ctx context.Context, message string) (*Feedback, error)
}
