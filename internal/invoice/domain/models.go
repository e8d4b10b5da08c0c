// Package domain contains invoice types. An invoice freezes the client name,
// seller name and line amounts at creation time so later catalog or account
// edits never rewrite issued paperwork.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// StatusUnpaid is the payment status stamped on invoices created without an
// explicit status.
const StatusUnpaid = "не оплачен"

type Invoice struct {
	ID      snowflake.ID `gorm:"primaryKey" json:"id"`
	OwnerID snowflake.ID `gorm:"not null;index" json:"owner_id"`

	ClientID   snowflake.ID `gorm:"not null;index" json:"client_id"`
	ClientName string       `gorm:"type:text;not null" json:"client_name"`

	// SellerEmployeeID is nil when the owner issued the invoice directly.
	SellerEmployeeID *snowflake.ID `gorm:"index" json:"seller_employee_id,omitempty"`
	SellerName       string        `gorm:"type:text;not null" json:"seller_name"`

	InvoiceNumber string  `gorm:"type:text;not null;uniqueIndex" json:"invoice_number"`
	Status        string  `gorm:"type:text;not null" json:"status"`
	Amount        float64 `gorm:"not null" json:"amount"`
	PaidAmount    float64 `gorm:"not null;default:0" json:"paid_amount"`

	Metadata datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`

	Items []Item `gorm:"foreignKey:InvoiceID" json:"items"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Invoice) TableName() string { return "invoices" }

// Debt is the outstanding balance, never negative even when the client
// overpaid.
func (i Invoice) Debt() float64 {
	if d := i.Amount - i.PaidAmount; d > 0 {
		return d
	}
	return 0
}

type Item struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	InvoiceID snowflake.ID `gorm:"not null;index" json:"invoice_id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	Qty       float64      `gorm:"not null" json:"qty"`
	Price     float64      `gorm:"not null" json:"price"`
	Amount    float64      `gorm:"not null" json:"amount"`
}

func (Item) TableName() string { return "invoice_items" }
