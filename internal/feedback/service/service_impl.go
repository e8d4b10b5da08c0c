package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/enotehq/enote/internal/actorcontext"
	"github.com/enotehq/enote/internal/clock"
	"github.com/enotehq/enote/internal/feedback/domain"
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
		log:   p.Log.Named("feedback.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Submit(ctx context.Context, message string) (*domain.Feedback, error) {
	actor, err := actorcontext.Require(ctx)
	if err != nil {
		return nil, err
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, domain.ErrEmptyMessage
	}

	feedback := &domain.Feedback{
		ID:         s.genID.Generate(),
		OwnerID:    actor.OwnerID(),
		AuthorRole: string(actor.Role),
		EmployeeID: actor.SellerEmployeeID(),
		Message:    message,
		CreatedAt:  s.clock.Now(),
	}
	if err := s.repo.Insert(ctx, s.db, feedback); err != nil {
		return nil, err
	}

	s.log.Info("feedback received",
		zap.Int64("owner_id", feedback.OwnerID.Int64()),
		zap.String("author_role", feedback.AuthorRole),
	)
	return feedback, nil
}
