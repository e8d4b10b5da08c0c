package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/enotehq/enote/internal/owner/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, owner *domain.Owner) error {
	return db.WithContext(ctx).Create(owner).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Owner, error) {
	var owner domain.Owner
	err := db.WithContext(ctx).First(&owner, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &owner, nil
}

func (r *repo) FindByPhone(ctx context.Context, db *gorm.DB, phone string) (*domain.Owner, error) {
	var owner domain.Owner
	err := db.WithContext(ctx).First(&owner, "phone = ?", phone).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &owner, nil
}

func (r *repo) SearchByPhoneFragment(ctx context.Context, db *gorm.DB, fragment string) ([]*domain.Owner, error) {
	var owners []*domain.Owner
	err := db.WithContext(ctx).
		Where("phone LIKE ?", "%"+fragment+"%").
		Order("created_at asc, id asc").
		Find(&owners).Error
	if err != nil {
		return nil, err
	}
	return owners, nil
}

func (r *repo) UpdateFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) error {
	return db.WithContext(ctx).
		Model(&domain.Owner{}).
		Where("id = ?", id).
		Updates(fields).Error
}
