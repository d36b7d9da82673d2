package repository

import (
	"fmt"

	"reputation-scryper/internal/collector/dto"
)

// BuildReputationSearchPrompt asks the model to extract first-person quotes about a company.
func BuildReputationSearchPrompt(companyName string, period dto.Period) string {
	return fmt.Sprintf(`ATTENTION: You are NOT a journalist. You are a QUOTE EXTRACTOR, not a summarizer.

TASK:
Find PERSONAL (first person) opinions from real customers about the company "%s" posted during %s.

TARGET SOURCES: Reclame Aqui, Consumidor.gov, Twitter (X), Google Maps reviews, Trustpilot, Reddit.

EXCLUSION RULES (IGNORE):
- News articles from newspapers or tech sites (e.g. "Company announces...", "Shares rise...").
- Financial reports.
- Articles written by editors or journalists.

INCLUSION RULES (KEEP):
- Only texts where the user talks about their own experience (e.g. "I bought it and it never arrived", "The support was awful", "My app crashed").
- Quote the user verbatim, in the original language. Do not paraphrase.
- Find between 10 and 30 REAL and DISTINCT items.

MANDATORY OUTPUT (A SINGLE JSON OBJECT, NOTHING ELSE):
{
  "items": [
    {
      "text": "Direct user quote",
      "source": "Source name (e.g. Reclame Aqui)",
      "url": "Link to the post when available",
      "author": "Public display name when available",
      "type": "COMPLAINT" or "PRAISE",
      "date": "YYYY-MM-DD when available",
      "topics": ["short topic label", "..."]
    }
  ],
  "overallSentiment": "POSITIVE" or "NEUTRAL" or "NEGATIVE",
  "analysisText": "Technical summary of the problems reported by users (about 100 words).",
  "suggestionText": "Corrective action suggested to the company (about 80 words)."
}`, companyName, period.Label())
}
