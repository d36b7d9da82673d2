package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"reputation-scryper/internal/collector/dto"
	"reputation-scryper/internal/entity"
)

type fakeCompanyRepository struct {
	companies map[uuid.UUID]entity.Company
	err       error
}

func (f *fakeCompanyRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Company, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.companies[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (f *fakeCompanyRepository) FindAll(context.Context) ([]entity.Company, error) {
	if f.err != nil {
		return nil, f.err
	}
	companies := make([]entity.Company, 0, len(f.companies))
	for _, c := range f.companies {
		companies = append(companies, c)
	}
	return companies, nil
}

// fakeDataPointRepository keeps committed batches; a failing batch leaves nothing behind.
type fakeDataPointRepository struct {
	mu    sync.Mutex
	saved []entity.DataPoint
	err   error
}

func (f *fakeDataPointRepository) CreateBatch(_ context.Context, dataPoints []entity.DataPoint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, dataPoints...)
	return nil
}

type fakeReportRepository struct {
	reports []entity.Report
	err     error
}

func (f *fakeReportRepository) Create(_ context.Context, report *entity.Report) error {
	if f.err != nil {
		return f.err
	}
	f.reports = append(f.reports, *report)
	return nil
}

type fakeStrategy struct {
	result    *dto.AcquisitionResult
	err       error
	companies []string
	periods   []dto.Period
}

func (f *fakeStrategy) Acquire(_ context.Context, companyName string, period dto.Period) (*dto.AcquisitionResult, error) {
	f.companies = append(f.companies, companyName)
	f.periods = append(f.periods, period)
	return f.result, f.err
}

func (f *fakeStrategy) GetType() entity.ChannelType { return entity.ChannelAISearch }

type fakeGuard struct {
	err      error
	released []bool
}

func (f *fakeGuard) Acquire(context.Context, uuid.UUID) (ReleaseFunc, error) {
	if f.err != nil {
		return nil, f.err
	}
	return func(_ context.Context, success bool) {
		f.released = append(f.released, success)
	}, nil
}

type fakeRefreshService struct {
	summary *dto.RefreshSummary
	err     error
	calls   int
}

func (f *fakeRefreshService) Refresh(context.Context, uuid.UUID) (*dto.RefreshSummary, error) {
	f.calls++
	return f.summary, f.err
}

type fakePublisher struct {
	tasks []dto.RefreshTask
	fail  map[uuid.UUID]bool
}

func (f *fakePublisher) Publish(_ context.Context, task dto.RefreshTask) error {
	if f.fail[task.CompanyID] {
		return context.DeadlineExceeded
	}
	f.tasks = append(f.tasks, task)
	return nil
}
