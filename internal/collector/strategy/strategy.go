package strategy

import (
	"context"
	"fmt"

	"reputation-scryper/internal/collector/dto"
	"reputation-scryper/internal/entity"
	"reputation-scryper/pkg/logger"
)

// AcquisitionStrategy retrieves raw feedback about a company from one channel.
type AcquisitionStrategy interface {
	Acquire(ctx context.Context, companyName string, period dto.Period) (*dto.AcquisitionResult, error)
	GetType() entity.ChannelType
}

// NewStrategyMap indexes strategies by the channel they serve.
func NewStrategyMap(strategies ...AcquisitionStrategy) map[entity.ChannelType]AcquisitionStrategy {
	strategyMap := make(map[entity.ChannelType]AcquisitionStrategy, len(strategies))
	for _, s := range strategies {
		if s == nil {
			continue
		}
		strategyMap[s.GetType()] = s
	}
	return strategyMap
}

// Resolve picks the configured primary strategy and wraps it with the optional fallback.
func Resolve(primary, fallback string, strategies map[entity.ChannelType]AcquisitionStrategy, log *logger.Logger) (AcquisitionStrategy, error) {
	p, ok := strategies[entity.ChannelType(primary)]
	if !ok {
		return nil, fmt.Errorf("no acquisition strategy found for channel: %s", primary)
	}
	if fallback == "" || fallback == primary {
		return p, nil
	}
	f, ok := strategies[entity.ChannelType(fallback)]
	if !ok {
		return nil, fmt.Errorf("no acquisition strategy found for fallback channel: %s", fallback)
	}
	return NewFallbackStrategy(p, f, log), nil
}
