package repository

import (
	"context"

	"gorm.io/gorm"

	"reputation-scryper/internal/entity"
)

// NewReportRepository creates a new instance of ReportRepository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{
		db: db,
	}
}

type reportRepository struct {
	db *gorm.DB
}

func (r *reportRepository) Create(ctx context.Context, report *entity.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}
