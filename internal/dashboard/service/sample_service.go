package service

import (
	"context"

	"reputation-scryper/internal/collector/dto"
	"reputation-scryper/internal/collector/normalizer"
	"reputation-scryper/internal/collector/strategy"
	dashboarddto "reputation-scryper/internal/dashboard/dto"
	"reputation-scryper/pkg/logger"
)

// SampleService builds a small unsaved preview of a company's reputation.
type SampleService interface {
	GetSample(ctx context.Context, companyName string) (*dashboarddto.SampleResponse, error)
}

// NewSampleService creates a new SampleService.
func NewSampleService(acquisition strategy.AcquisitionStrategy, normalizer *normalizer.Normalizer, size int, log *logger.Logger) SampleService {
	return &sampleService{
		acquisition: acquisition,
		normalizer:  normalizer,
		size:        size,
		logger:      log,
	}
}

type sampleService struct {
	acquisition strategy.AcquisitionStrategy
	normalizer  *normalizer.Normalizer
	size        int
	logger      *logger.Logger
}

func (s *sampleService) GetSample(ctx context.Context, companyName string) (*dashboarddto.SampleResponse, error) {
	result, err := s.acquisition.Acquire(ctx, companyName, dto.PeriodLast30Days)
	if err != nil {
		return nil, err
	}

	dataPoints := s.normalizer.Normalize(result)
	if len(dataPoints) > s.size {
		dataPoints = dataPoints[:s.size]
	}

	reviews := make([]dashboarddto.SampleReview, 0, len(dataPoints))
	for _, dp := range dataPoints {
		reviews = append(reviews, dashboarddto.SampleReview{
			Source:    dp.Source,
			Author:    dp.Author,
			Content:   dp.Content,
			Sentiment: dp.Sentiment,
		})
	}

	s.logger.Info("Generated free sample", logger.StringField("company", companyName), logger.IntField("total", len(reviews)))

	return &dashboarddto.SampleResponse{
		Company: companyName,
		Total:   len(reviews),
		Data:    reviews,
	}, nil
}
