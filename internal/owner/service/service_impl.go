package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/enotehq/enote/internal/auth/password"
	"github.com/enotehq/enote/internal/clock"
	"github.com/enotehq/enote/internal/owner/domain"
	"github.com/enotehq/enote/internal/phone"
	subscriptiondomain "github.com/enotehq/enote/internal/subscription/domain"
	"github.com/enotehq/enote/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB              *gorm.DB
	Log             *zap.Logger
	GenID           *snowflake.Node
	Clock           clock.Clock
	Repo            domain.Repository
	SubscriptionSvc subscriptiondomain.Service
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock

	repo            domain.Repository
	subscriptionSvc subscriptiondomain.Service
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("owner.service"),
		genID: p.GenID,
		clock: p.Clock,

		repo:            p.Repo,
		subscriptionSvc: p.SubscriptionSvc,
	}
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.Owner, error) {
	if !req.AcceptedTerms {
		return nil, domain.ErrTermsRequired
	}
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	normalized := phone.Normalize(req.Phone)
	if name == "" || email == "" || normalized == "" || req.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	owner := &domain.Owner{
		ID:              s.genID.Generate(),
		Name:            name,
		Company:         strings.TrimSpace(req.Company),
		Email:           email,
		Phone:           normalized,
		PasswordHash:    hash,
		TermsAcceptedAt: &now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, owner); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return s.classifyConflict(ctx, tx, normalized)
			}
			return err
		}
		if _, err := s.subscriptionSvc.StartTrial(ctx, tx, owner.ID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("owner registered", zap.Int64("owner_id", owner.ID.Int64()))
	return owner, nil
}

// classifyConflict decides which unique constraint fired. The database keeps
// both phone and email unique, so a duplicate insert maps to one of the two
// conflict errors.
func (s *Service) classifyConflict(ctx context.Context, tx *gorm.DB, normalizedPhone string) error {
	existing, err := s.repo.FindByPhone(ctx, tx, normalizedPhone)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrPhoneTaken
	}
	return domain.ErrEmailTaken
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (*domain.Owner, error) {
	owner, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrNotFound
	}
	return owner, nil
}

func (s *Service) UpdateProfile(ctx context.Context, id snowflake.ID, req domain.UpdateProfileRequest) (*domain.Owner, error) {
	fields := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		fields["name"] = name
	}
	if req.Company != nil {
		fields["company"] = strings.TrimSpace(*req.Company)
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" {
			return nil, domain.ErrInvalidInput
		}
		fields["email"] = email
	}

	if len(fields) > 0 {
		fields["updated_at"] = s.clock.Now()
		if err := s.repo.UpdateFields(ctx, s.db, id, fields); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return nil, domain.ErrEmailTaken
			}
			return nil, err
		}
	}
	return s.GetByID(ctx, id)
}
