package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/enotehq/enote/internal/auth/password"
	"github.com/enotehq/enote/internal/clock"
	"github.com/enotehq/enote/internal/employee/domain"
	"github.com/enotehq/enote/internal/phone"
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
		log:   p.Log.Named("employee.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) List(ctx context.Context, ownerID snowflake.ID) ([]*domain.Employee, error) {
	return s.repo.ListByOwner(ctx, s.db, ownerID)
}

func (s *Service) Create(ctx context.Context, ownerID snowflake.ID, req domain.CreateEmployeeRequest) (*domain.Employee, error) {
	name := strings.TrimSpace(req.Name)
	normalized := phone.Normalize(req.Phone)
	if name == "" || normalized == "" || req.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	employee := &domain.Employee{
		ID:           s.genID.Generate(),
		OwnerID:      ownerID,
		Name:         name,
		Phone:        normalized,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Insert(ctx, s.db, employee); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrPhoneTaken
		}
		return nil, err
	}

	s.log.Info("employee created",
		zap.Int64("owner_id", ownerID.Int64()),
		zap.Int64("employee_id", employee.ID.Int64()),
	)
	return employee, nil
}

// findOwned loads an employee and checks it belongs to the calling owner.
// A foreign employee is indistinguishable from a missing one.
func (s *Service) findOwned(ctx context.Context, ownerID, id snowflake.ID) (*domain.Employee, error) {
	employee, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if employee == nil || employee.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	return employee, nil
}

func (s *Service) GetByID(ctx context.Context, ownerID, id snowflake.ID) (*domain.Employee, error) {
	return s.findOwned(ctx, ownerID, id)
}

func (s *Service) UpdatePhone(ctx context.Context, ownerID, id snowflake.ID, rawPhone string) (*domain.Employee, error) {
	normalized := phone.Normalize(rawPhone)
	if normalized == "" {
		return nil, domain.ErrInvalidInput
	}
	employee, err := s.findOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	err = s.repo.UpdateFields(ctx, s.db, employee.ID, map[string]any{
		"phone":      normalized,
		"updated_at": s.clock.Now(),
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrPhoneTaken
		}
		return nil, err
	}
	employee.Phone = normalized
	return employee, nil
}

func (s *Service) UpdatePassword(ctx context.Context, ownerID, id snowflake.ID, newPassword string) error {
	if newPassword == "" {
		return domain.ErrInvalidInput
	}
	employee, err := s.findOwned(ctx, ownerID, id)
	if err != nil {
		return err
	}
	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdateFields(ctx, s.db, employee.ID, map[string]any{
		"password_hash": hash,
		"updated_at":    s.clock.Now(),
	})
}

func (s *Service) SetBlocked(ctx context.Context, ownerID, id snowflake.ID, blocked bool) (*domain.Employee, error) {
	employee, err := s.findOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	err = s.repo.UpdateFields(ctx, s.db, employee.ID, map[string]any{
		"is_blocked": blocked,
		"updated_at": s.clock.Now(),
	})
	if err != nil {
		return nil, err
	}
	employee.IsBlocked = blocked

	s.log.Info("employee block flag changed",
		zap.Int64("employee_id", employee.ID.Int64()),
		zap.Bool("blocked", blocked),
	)
	return employee, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id snowflake.ID) error {
	employee, err := s.findOwned(ctx, ownerID, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, employee.ID)
}
