package service

import (
	"context"
	"strings"

	"github.com/enotehq/enote/internal/auth/domain"
	"github.com/enotehq/enote/internal/auth/password"
	"github.com/enotehq/enote/internal/auth/token"
	"github.com/enotehq/enote/internal/clock"
	employeedomain "github.com/enotehq/enote/internal/employee/domain"
	ownerdomain "github.com/enotehq/enote/internal/owner/domain"
	"github.com/enotehq/enote/internal/phone"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	Clock        clock.Clock
	Issuer       *token.Issuer
	OwnerRepo    ownerdomain.Repository
	EmployeeRepo employeedomain.Repository
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	clock  clock.Clock
	issuer *token.Issuer

	ownerRepo    ownerdomain.Repository
	employeeRepo employeedomain.Repository
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("auth.service"),
		clock:  p.Clock,
		issuer: p.Issuer,

		ownerRepo:    p.OwnerRepo,
		employeeRepo: p.EmployeeRepo,
	}
}

// Login authenticates against owners first, then employees. Exact matches on
// the normalized phone are tried before the tolerant last-10-digit scan, so
// an exact hit always wins over a loose one.
func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResult, error) {
	normalized := phone.Normalize(req.Phone)
	if normalized == "" || req.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if owner, err := s.ownerRepo.FindByPhone(ctx, s.db, normalized); err != nil {
		return nil, err
	} else if owner != nil && matchPassword(req.Password, owner.PasswordHash) {
		return s.issue(token.OwnerSubject(owner.ID))
	}

	if employee, err := s.employeeRepo.FindByPhone(ctx, s.db, normalized); err != nil {
		return nil, err
	} else if employee != nil && matchPassword(req.Password, employee.PasswordHash) {
		if employee.IsBlocked {
			return nil, domain.ErrBlocked
		}
		return s.issue(token.EmployeeSubject(employee.ID))
	}

	return s.looseLogin(ctx, normalized, req.Password)
}

// looseLogin matches on the trailing ten digits. Numbers stored before phone
// normalization was introduced may differ from fresh input only in their
// prefix, so candidates are scanned and checked by password.
func (s *Service) looseLogin(ctx context.Context, normalized, pass string) (*domain.LoginResult, error) {
	fragment := phone.Last10(normalized)
	if fragment == "" {
		return nil, domain.ErrInvalidCredentials
	}

	owners, err := s.ownerRepo.SearchByPhoneFragment(ctx, s.db, fragment)
	if err != nil {
		return nil, err
	}
	for _, owner := range owners {
		if phone.LooseEqual(owner.Phone, normalized) && matchPassword(pass, owner.PasswordHash) {
			return s.issue(token.OwnerSubject(owner.ID))
		}
	}

	employees, err := s.employeeRepo.SearchByPhoneFragment(ctx, s.db, fragment)
	if err != nil {
		return nil, err
	}
	for _, employee := range employees {
		if phone.LooseEqual(employee.Phone, normalized) && matchPassword(pass, employee.PasswordHash) {
			if employee.IsBlocked {
				return nil, domain.ErrBlocked
			}
			return s.issue(token.EmployeeSubject(employee.ID))
		}
	}

	return nil, domain.ErrInvalidCredentials
}

// matchPassword accepts the password as typed and with surrounding
// whitespace stripped. Mobile keyboards like to append a trailing space.
func matchPassword(raw, hash string) bool {
	if password.Verify(raw, hash) {
		return true
	}
	trimmed := strings.TrimSpace(raw)
	return trimmed != raw && password.Verify(trimmed, hash)
}

func (s *Service) issue(subject string) (*domain.LoginResult, error) {
	signed, expiresAt, err := s.issuer.Issue(subject, s.clock.Now())
	if err != nil {
		return nil, err
	}
	return &domain.LoginResult{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *Service) ResolveActor(ctx context.Context, rawToken string) (domain.Actor, error) {
	subject, err := s.issuer.Resolve(rawToken)
	if err != nil {
		return domain.Actor{}, domain.ErrInvalidToken
	}
	kind, id, err := token.ParseSubject(subject)
	if err != nil {
		return domain.Actor{}, domain.ErrInvalidToken
	}

	switch kind {
	case token.KindEmployee:
		employee, err := s.employeeRepo.FindByID(ctx, s.db, id)
		if err != nil {
			return domain.Actor{}, err
		}
		if employee == nil {
			return domain.Actor{}, domain.ErrActorNotFound
		}
		if employee.IsBlocked {
			return domain.Actor{}, domain.ErrBlocked
		}
		return domain.Actor{Role: domain.RoleEmployee, Employee: employee}, nil
	default:
		owner, err := s.ownerRepo.FindByID(ctx, s.db, id)
		if err != nil {
			return domain.Actor{}, err
		}
		if owner == nil {
			return domain.Actor{}, domain.ErrActorNotFound
		}
		return domain.Actor{Role: domain.RoleOwner, Owner: owner}, nil
	}
}
