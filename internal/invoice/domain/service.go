package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

//go:generate mockgen -source=service.go -destination=../mocks/mock_service.go -package=mocks
type Service interface {
	// Create issues an invoice for the acting owner or employee taken from
	// the request context. The client row, catalog prices, invoice and items
	// commit in one transaction.
	Create(ctx context.Context, req CreateInvoiceRequest) (*Invoice, error)
	List(ctx context.Context, req ListInvoicesRequest) ([]*Invoice, error)
	GetByID(ctx context.Context, ownerID, id snowflake.ID) (*Invoice, error)
	// GetPublic loads an invoice without owner scoping, for the shareable
	// invoice page.
	GetPublic(ctx context.Context, id snowflake.ID) (*Invoice, error)
	// RecordPayment adds to the paid amount.
	RecordPayment(ctx context.Context, ownerID, id snowflake.ID, amount float64) (*Invoice, error)
	// SellerStats aggregates the owner's invoices per seller, the owner's
	// direct sales included as their own bucket. A nil bound leaves that side
	// of the creation date range open.
	SellerStats(ctx context.Context, ownerID snowflake.ID, from, to *time.Time) ([]SellerStat, error)
}

type CreateInvoiceRequest struct {
	ClientName  string              `json:"client_name" binding:"required"`
	ClientPhone string              `json:"client_phone" binding:"required"`
	Items       []CreateInvoiceItem `json:"items" binding:"required,dive"`
	// Status is the payment status label; empty defaults to StatusUnpaid.
	Status     string         `json:"status"`
	PaidAmount float64        `json:"paid_amount" binding:"gte=0"`
	Metadata   map[string]any `json:"metadata"`
}

type CreateInvoiceItem struct {
	Name  string  `json:"name" binding:"required"`
	Qty   float64 `json:"qty" binding:"gt=0"`
	Price float64 `json:"price" binding:"gte=0"`
}

type ListInvoicesRequest struct {
	OwnerID snowflake.ID
	Filter  ListInvoicesFilter
}

type SellerStat struct {
	SellerEmployeeID *snowflake.ID `json:"seller_employee_id,omitempty"`
	SellerName       string        `json:"seller_name"`
	InvoiceCount     int64         `json:"invoice_count"`
	TotalAmount      float64       `json:"total_amount"`
	TotalPaid        float64       `json:"total_paid"`
	TotalDebt        float64       `json:"total_debt"`
}
