package strategy

import (
	"context"
	"errors"

	"reputation-scryper/internal/collector/dto"
	"reputation-scryper/internal/collector/repository"
	"reputation-scryper/internal/entity"
	"reputation-scryper/pkg/logger"
)

// AISearchStrategy asks a web-grounded LLM for verbatim customer quotes.
type AISearchStrategy struct {
	searchRepo repository.SearchRepository
	logger     *logger.Logger
}

// NewAISearchStrategy creates a new instance of AISearchStrategy.
func NewAISearchStrategy(searchRepo repository.SearchRepository, log *logger.Logger) *AISearchStrategy {
	return &AISearchStrategy{
		searchRepo: searchRepo,
		logger:     log,
	}
}

// GetType returns the channel this strategy serves.
func (s *AISearchStrategy) GetType() entity.ChannelType {
	return entity.ChannelAISearch
}

// Acquire runs the grounded search. Unreachable channels surface as AcquisitionError;
// unparseable answers degrade to an empty NEUTRAL result.
func (s *AISearchStrategy) Acquire(ctx context.Context, companyName string, period dto.Period) (*dto.AcquisitionResult, error) {
	prompt := repository.BuildReputationSearchPrompt(companyName, period)

	resp, err := s.searchRepo.GroundedSearch(ctx, prompt)
	if err != nil {
		return nil, newAcquisitionError(s.GetType(), err)
	}

	sources := dedupeSources(resp.Sources)

	result, err := parseSearchPayload(s.GetType(), resp.Text)
	if err != nil {
		if errors.Is(err, ErrMalformedUpstreamResponse) {
			s.logger.Warn("Discarding malformed search response",
				logger.ErrorField(err),
				logger.StringField("company", companyName),
				logger.IntField("response_length", len(resp.Text)),
			)
			result = dto.NewEmptyResult(s.GetType())
			result.Sources = sources
			return result, nil
		}
		return nil, err
	}

	result.Sources = sources

	s.logger.Info("Search acquisition completed",
		logger.StringField("company", companyName),
		logger.StringField("period", string(period)),
		logger.IntField("items", len(result.Items)),
		logger.IntField("categories", len(result.Categories)),
		logger.IntField("sources", len(result.Sources)),
	)

	return result, nil
}
