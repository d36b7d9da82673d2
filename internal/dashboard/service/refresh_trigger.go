package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	collectordto "reputation-scryper/internal/collector/dto"
	collectorservice "reputation-scryper/internal/collector/service"
	"reputation-scryper/internal/dashboard/repository"
)

// RefreshTrigger runs a guarded refresh for the caller's own company.
type RefreshTrigger interface {
	TriggerRefresh(ctx context.Context, userID uuid.UUID) (*collectordto.RefreshSummary, error)
}

// NewRefreshTrigger creates a new RefreshTrigger.
func NewRefreshTrigger(companyRepo repository.CompanyRepository, taskService collectorservice.RefreshTaskService) RefreshTrigger {
	return &refreshTrigger{
		companyRepo: companyRepo,
		taskService: taskService,
	}
}

type refreshTrigger struct {
	companyRepo repository.CompanyRepository
	taskService collectorservice.RefreshTaskService
}

func (t *refreshTrigger) TriggerRefresh(ctx context.Context, userID uuid.UUID) (*collectordto.RefreshSummary, error) {
	company, err := t.companyRepo.FindByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find company for user: %w", err)
	}
	if company == nil {
		return nil, ErrNoCompanyForUser
	}

	return t.taskService.HandleTask(ctx, collectordto.RefreshTask{
		CompanyID:   company.ID,
		CompanyName: company.Name,
		RequestedBy: userID.String(),
	})
}
