package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListInvoicesFilter struct {
	ClientID         *snowflake.ID
	SellerEmployeeID *snowflake.ID
	CreatedFrom      *time.Time
	CreatedTo        *time.Time
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Invoice, error)
	List(ctx context.Context, db *gorm.DB, ownerID snowflake.ID, filter ListInvoicesFilter) ([]*Invoice, error)
	// CountForClientInRange counts the client's invoices created in
	// [from, to), which drives the per-year sequence in invoice numbers.
	CountForClientInRange(ctx context.Context, db *gorm.DB, clientID snowflake.ID, from, to time.Time) (int64, error)
	UpdateFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error
	// SellerTotals aggregates amount and paid per seller for one owner,
	// optionally bounded to invoices created in [from, to).
	SellerTotals(ctx context.Context, db *gorm.DB, ownerID snowflake.ID, from, to *time.Time) ([]SellerTotal, error)
}

// SellerTotal is one aggregation row. A nil SellerEmployeeID bucket holds
// invoices the owner issued directly.
type SellerTotal struct {
	SellerEmployeeID *snowflake.ID
	SellerName       string
	InvoiceCount     int64
	TotalAmount      float64
	TotalPaid        float64
	TotalDebt        float64
}
