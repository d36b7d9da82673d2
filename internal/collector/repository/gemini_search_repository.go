package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"reputation-scryper/internal/collector/config"
	"reputation-scryper/internal/collector/dto"
	"reputation-scryper/pkg/logger"
	"reputation-scryper/pkg/ratelimit"
	"reputation-scryper/pkg/utils"
)

// geminiSearchRepository is a SearchRepository backed by Gemini with Google Search grounding.
type geminiSearchRepository struct {
	cfg            *config.Config
	logger         *logger.Logger
	tokenLimiter   *ratelimit.TokenLimiter
	requestLimiter *rate.Limiter
	genAiClient    *genai.Client
}

// NewGeminiSearchRepository creates a new instance of geminiSearchRepository.
func NewGeminiSearchRepository(cfg *config.Config, log *logger.Logger, genAiClient *genai.Client) SearchRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.Gemini.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	return &geminiSearchRepository{
		cfg:            cfg,
		logger:         log,
		requestLimiter: requestLimiter,
		tokenLimiter:   ratelimit.NewTokenLimiter(cfg.Gemini.MaxTokenPerMinute),
		genAiClient:    genAiClient,
	}
}

// GroundedSearch sends the prompt with the Google Search tool enabled and returns
// the concatenated text parts and the grounding citations of the first candidate.
func (r *geminiSearchRepository) GroundedSearch(ctx context.Context, prompt string) (*dto.GroundedResponse, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	if r.cfg.Gemini.MaxTokenPerMinute > 0 {
		tokenResp, err := r.genAiClient.Models.CountTokens(ctx, r.cfg.Gemini.Model, contents, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to count tokens: %w", err)
		}

		r.logger.Debug("Gemini token count",
			logger.IntField("total_tokens", int(tokenResp.TotalTokens)),
			logger.IntField("remaining", r.tokenLimiter.GetRemaining()),
		)

		if err := r.tokenLimiter.Wait(ctx, int(tokenResp.TotalTokens)); err != nil {
			return nil, fmt.Errorf("failed to wait for token limit: %w", err)
		}
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	genCfg := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	}
	if r.cfg.Gemini.Temperature > 0 {
		genCfg.Temperature = utils.ToPointer(r.cfg.Gemini.Temperature)
	}

	resp, err := r.genAiClient.Models.GenerateContent(ctx, r.cfg.Gemini.Model, contents, genCfg)
	if err != nil {
		r.logger.Error("Failed to send request to Gemini API", logger.ErrorField(err), logger.StringField("model", r.cfg.Gemini.Model))
		return nil, fmt.Errorf("failed to send request to Gemini API: %w", err)
	}

	return toGroundedResponse(resp), nil
}

func toGroundedResponse(resp *genai.GenerateContentResponse) *dto.GroundedResponse {
	result := &dto.GroundedResponse{Sources: []dto.GroundingSource{}}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return result
	}

	candidate := resp.Candidates[0]
	if candidate.Content != nil {
		var sb strings.Builder
		for _, part := range candidate.Content.Parts {
			if part != nil && part.Text != "" {
				sb.WriteString(part.Text)
			}
		}
		result.Text = sb.String()
	}

	if candidate.GroundingMetadata != nil {
		for _, chunk := range candidate.GroundingMetadata.GroundingChunks {
			if chunk == nil || chunk.Web == nil {
				continue
			}
			result.Sources = append(result.Sources, dto.GroundingSource{
				URI:   chunk.Web.URI,
				Title: chunk.Web.Title,
			})
		}
	}

	return result
}
