package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"reputation-scryper/internal/collector/config"
	"reputation-scryper/internal/collector/dto"
	"reputation-scryper/internal/collector/normalizer"
	"reputation-scryper/internal/collector/repository"
	"reputation-scryper/internal/collector/strategy"
	"reputation-scryper/internal/entity"
	"reputation-scryper/pkg/logger"
)

// RefreshService runs one ingestion cycle for a company.
type RefreshService interface {
	Refresh(ctx context.Context, companyID uuid.UUID) (*dto.RefreshSummary, error)
}

// NewRefreshService creates a new RefreshService.
func NewRefreshService(
	cfg *config.Config,
	companyRepo repository.CompanyRepository,
	dataPointRepo repository.DataPointRepository,
	reportRepo repository.ReportRepository,
	acquisition strategy.AcquisitionStrategy,
	normalizer *normalizer.Normalizer,
	log *logger.Logger,
) RefreshService {
	return &refreshService{
		period:        dto.ParsePeriod(cfg.Collector.DefaultPeriod),
		companyRepo:   companyRepo,
		dataPointRepo: dataPointRepo,
		reportRepo:    reportRepo,
		acquisition:   acquisition,
		normalizer:    normalizer,
		logger:        log,
	}
}

type refreshService struct {
	period        dto.Period
	companyRepo   repository.CompanyRepository
	dataPointRepo repository.DataPointRepository
	reportRepo    repository.ReportRepository
	acquisition   strategy.AcquisitionStrategy
	normalizer    *normalizer.Normalizer
	logger        *logger.Logger
}

// Refresh resolves the company, acquires and normalizes feedback, and stores every
// record in one transaction. Callers are expected to throttle concurrent runs.
func (s *refreshService) Refresh(ctx context.Context, companyID uuid.UUID) (*dto.RefreshSummary, error) {
	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find company: %w", err)
	}
	if company == nil {
		return nil, fmt.Errorf("%w: %s", ErrCompanyNotFound, companyID)
	}

	s.logger.Info("Starting refresh",
		logger.StringField("company_id", company.ID.String()),
		logger.StringField("company", company.Name),
		logger.StringField("channel", string(s.acquisition.GetType())),
	)

	result, err := s.acquisition.Acquire(ctx, company.Name, s.period)
	if err != nil {
		s.logger.Error("Acquisition failed", logger.ErrorField(err), logger.StringField("company_id", company.ID.String()))
		return nil, err
	}
	if result == nil {
		result = dto.NewEmptyResult(s.acquisition.GetType())
	}

	dataPoints := s.normalizer.Normalize(result)
	for i := range dataPoints {
		dataPoints[i].CompanyID = company.ID
	}

	if err := s.dataPointRepo.CreateBatch(ctx, dataPoints); err != nil {
		s.logger.Error("Failed to save data points",
			logger.ErrorField(err),
			logger.StringField("company_id", company.ID.String()),
			logger.IntField("count", len(dataPoints)),
		)
		return nil, fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}

	overall := result.OverallSentiment
	if overall == "" {
		overall = entity.SentimentNeutral
	}

	s.saveReport(ctx, company, result, dataPoints, overall)

	s.logger.Info("Refresh completed",
		logger.StringField("company_id", company.ID.String()),
		logger.IntField("total_saved", len(dataPoints)),
		logger.StringField("overall_sentiment", string(overall)),
	)

	return &dto.RefreshSummary{
		CompanyID:        company.ID,
		TotalSaved:       len(dataPoints),
		OverallSentiment: overall,
		Analysis:         result.Analysis,
		Suggestion:       result.Suggestion,
		Channel:          result.Channel,
	}, nil
}

// saveReport stores the run summary. The data points are already committed,
// so a failure here is only logged.
func (s *refreshService) saveReport(ctx context.Context, company *entity.Company, result *dto.AcquisitionResult, dataPoints []entity.DataPoint, overall entity.Sentiment) {
	summary := entity.ReportSummary{
		Total:            len(dataPoints),
		OverallSentiment: overall,
	}
	for _, dp := range dataPoints {
		switch dp.Sentiment {
		case entity.SentimentNegative:
			summary.Complaints++
		case entity.SentimentPositive:
			summary.Praises++
		default:
			summary.Neutral++
		}
	}

	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		s.logger.Error("Failed to marshal report summary", logger.ErrorField(err))
		return
	}

	report := &entity.Report{
		CompanyID:  company.ID,
		PeriodDays: s.period.Days(),
		Channel:    result.Channel,
		Summary:    summaryJSON,
		Analysis:   result.Analysis,
		Suggestion: result.Suggestion,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		s.logger.Warn("Failed to save report", logger.ErrorField(err), logger.StringField("company_id", company.ID.String()))
	}
}
