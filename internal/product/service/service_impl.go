package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/enotehq/enote/internal/clock"
	"github.com/enotehq/enote/internal/product/domain"
	"github.com/enotehq/enote/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("product.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) List(ctx context.Context, ownerID snowflake.ID, q string) ([]*domain.Product, error) {
	return s.repo.ListByOwner(ctx, s.db, ownerID, strings.TrimSpace(q))
}

func (s *Service) Create(ctx context.Context, ownerID snowflake.ID, req domain.CreateProductRequest) (*domain.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || req.Price < 0 {
		return nil, domain.ErrInvalidInput
	}
	var product *domain.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		product, err = s.Upsert(ctx, tx, ownerID, name, req.Price)
		return err
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// Upsert finds the owner's product by lowercased name and moves its price,
// or inserts a new row. A duplicate-key error means a concurrent insert won
// the race; the retry then lands on the update branch.
func (s *Service) Upsert(ctx context.Context, tx *gorm.DB, ownerID snowflake.ID, name string, price float64) (*domain.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" || price < 0 {
		return nil, domain.ErrInvalidInput
	}
	nameLower := strings.ToLower(name)

	existing, err := s.repo.FindByName(ctx, tx, ownerID, nameLower)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Price != price {
			err = s.repo.UpdateFields(ctx, tx, existing.ID, map[string]any{
				"price":      price,
				"updated_at": s.clock.Now(),
			})
			if err != nil {
				return nil, err
			}
			existing.Price = price
		}
		return existing, nil
	}

	now := s.clock.Now()
	product := &domain.Product{
		ID:        s.genID.Generate(),
		OwnerID:   ownerID,
		Name:      name,
		NameLower: nameLower,
		Price:     price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, tx, product); err != nil {
		if db.IsDuplicateKeyErr(err) {
			winner, ferr := s.repo.FindByName(ctx, tx, ownerID, nameLower)
			if ferr != nil {
				return nil, ferr
			}
			if winner == nil {
				return nil, err
			}
			if winner.Price != price {
				uerr := s.repo.UpdateFields(ctx, tx, winner.ID, map[string]any{
					"price":      price,
					"updated_at": s.clock.Now(),
				})
				if uerr != nil {
					return nil, uerr
				}
				winner.Price = price
			}
			return winner, nil
		}
		return nil, err
	}
	return product, nil
}

func (s *Service) findOwned(ctx context.Context, ownerID, id snowflake.ID) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

func (s *Service) GetByID(ctx context.Context, ownerID, id snowflake.ID) (*domain.Product, error) {
	return s.findOwned(ctx, ownerID, id)
}

func (s *Service) Update(ctx context.Context, ownerID, id snowflake.ID, req domain.UpdateProductRequest) (*domain.Product, error) {
	product, err := s.findOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		nameLower := strings.ToLower(name)
		if nameLower != product.NameLower {
			other, err := s.repo.FindByName(ctx, s.db, ownerID, nameLower)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, domain.ErrNameTaken
			}
		}
		fields["name"] = name
		fields["name_lower"] = nameLower
		product.Name = name
		product.NameLower = nameLower
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, domain.ErrInvalidInput
		}
		fields["price"] = *req.Price
		product.Price = *req.Price
	}

	if len(fields) > 0 {
		fields["updated_at"] = s.clock.Now()
		if err := s.repo.UpdateFields(ctx, s.db, product.ID, fields); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return nil, domain.ErrNameTaken
			}
			return nil, err
		}
	}
	return product, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id snowflake.ID) error {
	product, err := s.findOwned(ctx, ownerID, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, product.ID)
}
