// Package domain contains core types for owner accounts.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Owner represents a registered business owner.
type Owner struct {
	ID              snowflake.ID `gorm:"primaryKey" json:"id"`
	Name            string       `gorm:"type:text;not null" json:"name"`
	Company         string       `gorm:"type:text" json:"company,omitempty"`
	Email           string       `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Phone           string       `gorm:"type:text;not null;uniqueIndex" json:"phone"`
	PasswordHash    string       `gorm:"type:text;not null" json:"-"`
	TermsAcceptedAt *time.Time   `gorm:"column:terms_accepted_at" json:"terms_accepted_at,omitempty"`
	CreatedAt       time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Owner) TableName() string { return "owners" }
