package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/enotehq/enote/internal/actorcontext"
	clientdomain "github.com/enotehq/enote/internal/client/domain"
	"github.com/enotehq/enote/internal/clock"
	"github.com/enotehq/enote/internal/invoice/domain"
	"github.com/enotehq/enote/internal/invoice/format"
	"github.com/enotehq/enote/internal/phone"
	productdomain "github.com/enotehq/enote/internal/product/domain"
	"github.com/enotehq/enote/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// numberAttempts bounds the retry loop when two invoices for the same client
// race for the same sequence slot.
const numberAttempts = 3

type ServiceParam struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Repo       domain.Repository
	ClientRepo clientdomain.Repository
	ProductSvc productdomain.Service
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock

	repo       domain.Repository
	clientRepo clientdomain.Repository
	productSvc productdomain.Service
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("invoice.service"),
		genID: p.GenID,
		clock: p.Clock,

		repo:       p.Repo,
		clientRepo: p.ClientRepo,
		productSvc: p.ProductSvc,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateInvoiceRequest) (*domain.Invoice, error) {
	actor, err := actorcontext.Require(ctx)
	if err != nil {
		return nil, err
	}

	clientName := strings.TrimSpace(req.ClientName)
	clientPhone := phone.Normalize(req.ClientPhone)
	if clientName == "" || clientPhone == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(req.Items) == 0 {
		return nil, domain.ErrNoItems
	}
	for _, item := range req.Items {
		if strings.TrimSpace(item.Name) == "" || item.Qty <= 0 || item.Price < 0 {
			return nil, domain.ErrInvalidInput
		}
	}
	if req.PaidAmount < 0 {
		return nil, domain.ErrInvalidInput
	}
	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = domain.StatusUnpaid
	}

	ownerID := actor.OwnerID()
	var invoice *domain.Invoice

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		client, err := s.findOrCreateClient(ctx, tx, clientName, clientPhone)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		items := make([]domain.Item, 0, len(req.Items))
		var total float64
		for _, item := range req.Items {
			name := strings.TrimSpace(item.Name)
			if _, err := s.productSvc.Upsert(ctx, tx, ownerID, name, item.Price); err != nil {
				return err
			}
			amount := item.Qty * item.Price
			total += amount
			items = append(items, domain.Item{
				ID:     s.genID.Generate(),
				Name:   name,
				Qty:    item.Qty,
				Price:  item.Price,
				Amount: amount,
			})
		}

		var metadata datatypes.JSONMap
		if len(req.Metadata) > 0 {
			metadata = datatypes.JSONMap(req.Metadata)
		}

		for attempt := 0; attempt < numberAttempts; attempt++ {
			number, err := s.nextNumber(ctx, tx, client.ID, now)
			if err != nil {
				return err
			}
			candidate := &domain.Invoice{
				ID:               s.genID.Generate(),
				OwnerID:          ownerID,
				ClientID:         client.ID,
				ClientName:       clientName,
				SellerEmployeeID: actor.SellerEmployeeID(),
				SellerName:       actor.SellerName(),
				InvoiceNumber:    number,
				Status:           status,
				Amount:           total,
				PaidAmount:       req.PaidAmount,
				Metadata:         metadata,
				Items:            items,
				CreatedAt:        now,
				UpdatedAt:        now,
			}
			// Nested Transaction runs on a savepoint, so a losing attempt
			// rolls back cleanly and the outer transaction stays usable.
			err = tx.Transaction(func(inner *gorm.DB) error {
				return s.repo.Insert(ctx, inner, candidate)
			})
			if err != nil {
				if db.IsDuplicateKeyErr(err) && attempt < numberAttempts-1 {
					continue
				}
				return err
			}
			invoice = candidate
			return nil
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("invoice created",
		zap.Int64("owner_id", ownerID.Int64()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.Float64("amount", invoice.Amount),
	)
	return invoice, nil
}

// findOrCreateClient resolves the shared client row by normalized phone.
// Losing an insert race to a concurrent request falls back to the winner's
// row.
func (s *Service) findOrCreateClient(ctx context.Context, tx *gorm.DB, name, normalizedPhone string) (*clientdomain.Client, error) {
	client, err := s.clientRepo.FindByPhone(ctx, tx, normalizedPhone)
	if err != nil {
		return nil, err
	}
	if client != nil {
		return client, nil
	}

	now := s.clock.Now()
	client = &clientdomain.Client{
		ID:        s.genID.Generate(),
		Name:      name,
		Phone:     normalizedPhone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.clientRepo.Insert(ctx, tx, client); err != nil {
		if db.IsDuplicateKeyErr(err) {
			winner, ferr := s.clientRepo.FindByPhone(ctx, tx, normalizedPhone)
			if ferr != nil {
				return nil, ferr
			}
			if winner != nil {
				return winner, nil
			}
		}
		return nil, err
	}
	return client, nil
}

// nextNumber counts the client's invoices in the calendar year of now and
// takes the next slot.
func (s *Service) nextNumber(ctx context.Context, tx *gorm.DB, clientID snowflake.ID, now time.Time) (string, error) {
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	nextYear := yearStart.AddDate(1, 0, 0)
	count, err := s.repo.CountForClientInRange(ctx, tx, clientID, yearStart, nextYear)
	if err != nil {
		return "", err
	}
	return format.InvoiceNumber(clientID, now.Year(), count+1), nil
}

func (s *Service) List(ctx context.Context, req domain.ListInvoicesRequest) ([]*domain.Invoice, error) {
	return s.repo.List(ctx, s.db, req.OwnerID, req.Filter)
}

func (s *Service) GetByID(ctx context.Context, ownerID, id snowflake.ID) (*domain.Invoice, error) {
	invoice, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil || invoice.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	return invoice, nil
}

func (s *Service) GetPublic(ctx context.Context, id snowflake.ID) (*domain.Invoice, error) {
	invoice, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	return invoice, nil
}

func (s *Service) RecordPayment(ctx context.Context, ownerID, id snowflake.ID, amount float64) (*domain.Invoice, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidInput
	}
	invoice, err := s.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	// Increment in SQL so concurrent payments never lose an update.
	err = s.repo.UpdateFields(ctx, s.db, invoice.ID, map[string]any{
		"paid_amount": gorm.Expr("paid_amount + ?", amount),
		"updated_at":  s.clock.Now(),
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, ownerID, id)
}

func (s *Service) SellerStats(ctx context.Context, ownerID snowflake.ID, from, to *time.Time) ([]domain.SellerStat, error) {
	totals, err := s.repo.SellerTotals(ctx, s.db, ownerID, from, to)
	if err != nil {
		return nil, err
	}
	stats := make([]domain.SellerStat, 0, len(totals))
	for _, t := range totals {
		stats = append(stats, domain.SellerStat{
			SellerEmployeeID: t.SellerEmployeeID,
			SellerName:       t.SellerName,
			InvoiceCount:     t.InvoiceCount,
			TotalAmount:      t.TotalAmount,
			TotalPaid:        t.TotalPaid,
			TotalDebt:        t.TotalDebt,
		})
	}
	return stats, nil
}
