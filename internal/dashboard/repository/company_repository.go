package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"reputation-scryper/internal/entity"
)

// CompanyRepository resolves the company owned by an authenticated user.
type CompanyRepository interface {
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*entity.Company, error)
}

// NewCompanyRepository creates a new instance of CompanyRepository.
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{
		db: db,
	}
}

type companyRepository struct {
	db *gorm.DB
}

// FindByOwner returns the user's company, or nil when the user has none.
func (r *companyRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*entity.Company, error) {
	var company entity.Company
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}
