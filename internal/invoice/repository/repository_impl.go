package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/enotehq/enote/internal/invoice/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Create(invoice).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := db.WithContext(ctx).
		Preload("Items").
		First(&invoice, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, ownerID snowflake.ID, filter domain.ListInvoicesFilter) ([]*domain.Invoice, error) {
	stmt := db.WithContext(ctx).
		Preload("Items").
		Where("owner_id = ?", ownerID)
	if filter.ClientID != nil {
		stmt = stmt.Where("client_id = ?", *filter.ClientID)
	}
	if filter.SellerEmployeeID != nil {
		stmt = stmt.Where("seller_employee_id = ?", *filter.SellerEmployeeID)
	}
	if filter.CreatedFrom != nil {
		stmt = stmt.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		stmt = stmt.Where("created_at < ?", *filter.CreatedTo)
	}

	var invoices []*domain.Invoice
	err := stmt.Order("created_at desc, id desc").Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *repo) CountForClientInRange(ctx context.Context, db *gorm.DB, clientID snowflake.ID, from, to time.Time) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("client_id = ? AND created_at >= ? AND created_at < ?", clientID, from, to).
		Count(&count).Error
	return count, err
}

func (r *repo) UpdateFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error {
	return db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// SellerTotals aggregates per seller bucket. The debt clamp applies to the
// bucket totals, so overpayment on one invoice offsets debt on another.
func (r *repo) SellerTotals(ctx context.Context, db *gorm.DB, ownerID snowflake.ID, from, to *time.Time) ([]domain.SellerTotal, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Select(`seller_employee_id,
			seller_name,
			COUNT(*) AS invoice_count,
			SUM(amount) AS total_amount,
			SUM(paid_amount) AS total_paid,
			CASE WHEN SUM(amount) - SUM(paid_amount) > 0 THEN SUM(amount) - SUM(paid_amount) ELSE 0 END AS total_debt`).
		Where("owner_id = ?", ownerID)
	if from != nil {
		stmt = stmt.Where("created_at >= ?", *from)
	}
	if to != nil {
		stmt = stmt.Where("created_at < ?", *to)
	}

	var totals []domain.SellerTotal
	err := stmt.
		Group("seller_employee_id, seller_name").
		Order("seller_name asc").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return totals, nil
}
