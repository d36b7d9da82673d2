package repository

import (
	"context"

	"gorm.io/gorm"

	"reputation-scryper/internal/entity"
)

const dataPointBatchSize = 100

// NewDataPointRepository creates a new instance of DataPointRepository.
func NewDataPointRepository(db *gorm.DB) DataPointRepository {
	return &dataPointRepository{
		db: db,
	}
}

type dataPointRepository struct {
	db *gorm.DB
}

// CreateBatch inserts every data point in a single transaction.
// Either all rows become visible or none do.
func (r *dataPointRepository) CreateBatch(ctx context.Context, dataPoints []entity.DataPoint) error {
	if len(dataPoints) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&dataPoints, dataPointBatchSize).Error
	})
}
