package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/enotehq/enote/internal/clock"
	"github.com/enotehq/enote/internal/subscription/domain"
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
		log:   p.Log.Named("subscription.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) StartTrial(ctx context.Context, tx *gorm.DB, ownerID snowflake.ID) (*domain.Subscription, error) {
	now := s.clock.Now()
	sub := &domain.Subscription{
		ID:        s.genID.Generate(),
		OwnerID:   ownerID,
		Type:      domain.TypeFree,
		StartDate: now,
		EndDate:   now.Add(domain.TrialDuration),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, tx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *Service) GetByOwner(ctx context.Context, ownerID snowflake.ID) (*domain.Subscription, error) {
	sub, err := s.repo.FindByOwner(ctx, s.db, ownerID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, domain.ErrNotFound
	}
	return sub, nil
}

func (s *Service) ListExpiring(ctx context.Context, from, to time.Time) ([]*domain.Subscription, error) {
	return s.repo.ListExpiring(ctx, s.db, from, to)
}
