// Package enrich derives sentiment, priority and a recommended next action
// from free-text customer content, plus a topic motif from keyword rules.
package enrich

import (
	"strings"

	"github.com/freedalab/ticketflow/internal/domain"
)

// Recommended next actions tied to the polarity bands.
const (
	RecommendationEscalate  = "Escalate to tier-2 support (high priority)"
	RecommendationEmpathize = "Respond empathetically and offer a quick resolution"
	RecommendationThank     = "Thank the customer for the positive feedback"
	RecommendationFactual   = "Answer factual questions"
	RecommendationNone      = "No action required"
)

// Classification is the enrichment triple attached to a ticket.
type Classification struct {
	Sentiment      string
	Recommendation string
	Priority       string
}

// PolarityScorer computes a sentiment polarity in [-1, 1] for a text. The
// scoring method is an external capability; only the band thresholds
// below are part of the pipeline contract.
type PolarityScorer interface {
	Score(text string) float64
}

// Enricher classifies free text through a polarity scorer.
type Enricher struct {
	scorer PolarityScorer
}

// NewEnricher builds an enricher. A nil scorer falls back to the built-in
// lexicon scorer.
func NewEnricher(scorer PolarityScorer) *Enricher {
	if scorer == nil {
		scorer = NewLexiconScorer()
	}
	return &Enricher{scorer: scorer}
}

// Classify buckets text into one of four fixed polarity bands. Empty input
// short-circuits without invoking the scorer.
func (e *Enricher) Classify(text string) Classification {
	if text == "" {
		return Classification{
			Sentiment:      domain.SentimentNeutral,
			Recommendation: RecommendationNone,
			Priority:       domain.PriorityLow,
		}
	}

	polarity := e.scorer.Score(text)
	switch {
	case polarity < -0.3:
		return Classification{
			Sentiment:      domain.SentimentNegative,
			Recommendation: RecommendationEscalate,
			Priority:       domain.PriorityCritical,
		}
	case polarity < 0:
		return Classification{
			Sentiment:      domain.SentimentSomewhatNegative,
			Recommendation: RecommendationEmpathize,
			Priority:       domain.PriorityMedium,
		}
	case polarity > 0.3:
		return Classification{
			Sentiment:      domain.SentimentPositive,
			Recommendation: RecommendationThank,
			Priority:       domain.PriorityLow,
		}
	default:
		return Classification{
			Sentiment:      domain.SentimentNeutral,
			Recommendation: RecommendationFactual,
			Priority:       domain.PriorityLow,
		}
	}
}

// keywordGroup order is a tie-break: the first group with a match wins.
type keywordGroup struct {
	motif    string
	keywords []string
}

var motifGroups = []keywordGroup{
	{motif: "technical problem", keywords: []string{"outage", "interruption"}},
	{motif: "billing", keywords: []string{"billing", "refund"}},
	{motif: "connection problem", keywords: []string{"connection", "wifi", "bandwidth"}},
	{motif: "hardware", keywords: []string{"hardware", "router", "modem"}},
	{motif: "mobile", keywords: []string{"mobile", "plan"}},
}

// MotifFromKeywords derives a topic motif by case-insensitive substring
// match against the fixed keyword groups, in order.
func MotifFromKeywords(text string) string {
	lower := strings.ToLower(text)
	for _, group := range motifGroups {
		for _, keyword := range group.keywords {
			if strings.Contains(lower, keyword) {
				return group.motif
			}
		}
	}
	return "other"
}
