package strategy

import (
	"context"

	"reputation-scryper/internal/collector/dto"
	"reputation-scryper/internal/entity"
	"reputation-scryper/pkg/logger"
)

// FallbackStrategy runs a secondary channel when the primary one comes back empty.
// Errors from the primary are returned as is.
type FallbackStrategy struct {
	primary  AcquisitionStrategy
	fallback AcquisitionStrategy
	logger   *logger.Logger
}

// NewFallbackStrategy composes primary and fallback. A nil fallback disables the second attempt.
func NewFallbackStrategy(primary, fallback AcquisitionStrategy, log *logger.Logger) *FallbackStrategy {
	return &FallbackStrategy{
		primary:  primary,
		fallback: fallback,
		logger:   log,
	}
}

// GetType reports the primary channel.
func (s *FallbackStrategy) GetType() entity.ChannelType {
	return s.primary.GetType()
}

func (s *FallbackStrategy) Acquire(ctx context.Context, companyName string, period dto.Period) (*dto.AcquisitionResult, error) {
	result, err := s.primary.Acquire(ctx, companyName, period)
	if err != nil {
		return nil, err
	}
	if !result.IsEmpty() || s.fallback == nil {
		return result, nil
	}

	s.logger.Info("Primary channel returned nothing, trying fallback",
		logger.StringField("primary", string(s.primary.GetType())),
		logger.StringField("fallback", string(s.fallback.GetType())),
		logger.StringField("company", companyName),
	)

	return s.fallback.Acquire(ctx, companyName, period)
}
