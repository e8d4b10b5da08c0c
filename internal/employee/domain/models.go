// Package domain contains employee sub-account types. Employees belong to an
// owner, share the owner's clients and products, and can issue invoices on
// the owner's behalf.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Employee struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	OwnerID      snowflake.ID `gorm:"not null;index" json:"owner_id"`
	Name         string       `gorm:"type:text;not null" json:"name"`
	Phone        string       `gorm:"type:text;not null;uniqueIndex" json:"phone"`
	PasswordHash string       `gorm:"type:text;not null" json:"-"`
	IsBlocked    bool         `gorm:"not null;default:false" json:"is_blocked"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Employee) TableName() string { return "employees" }
