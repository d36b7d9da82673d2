package repository

import (
	"context"

	"github.com/google/uuid"

	"reputation-scryper/internal/collector/dto"
	"reputation-scryper/internal/entity"
)

// SearchRepository runs a web-grounded text generation call.
type SearchRepository interface {
	GroundedSearch(ctx context.Context, prompt string) (*dto.GroundedResponse, error)
}

// CompanyRepository resolves companies for refresh runs.
type CompanyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Company, error)
	FindAll(ctx context.Context) ([]entity.Company, error)
}

// DataPointRepository persists normalized reputation evidence.
type DataPointRepository interface {
	CreateBatch(ctx context.Context, dataPoints []entity.DataPoint) error
}

// ReportRepository persists run reports.
type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
}
