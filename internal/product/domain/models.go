// Package domain contains the per-owner product catalog. Names are unique
// per owner ignoring case; invoicing an existing name at a new price moves
// the catalog price instead of adding a row.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Product struct {
	ID      snowflake.ID `gorm:"primaryKey" json:"id"`
	OwnerID snowflake.ID `gorm:"not null;uniqueIndex:idx_products_owner_name_lower" json:"owner_id"`
	Name    string       `gorm:"type:text;not null" json:"name"`
	// NameLower backs the per-owner case-insensitive unique constraint.
	NameLower string    `gorm:"type:text;not null;uniqueIndex:idx_products_owner_name_lower" json:"-"`
	Price     float64   `gorm:"not null" json:"price"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Product) TableName() string { return "products" }
