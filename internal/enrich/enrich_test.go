package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/freedalab/ticketflow/internal/domain"
)

// fixedScorer returns a constant polarity and counts invocations.
type fixedScorer struct {
	polarity float64
	calls    int
}

func (s *fixedScorer) Score(string) float64 {
	s.calls++
	return s.polarity
}

func TestClassifyBands(t *testing.T) {
	tests := []struct {
		name     string
		polarity float64
		want     Classification
	}{
		{
			name:     "strongly negative escalates",
			polarity: -0.5,
			want: Classification{
				Sentiment:      domain.SentimentNegative,
				Recommendation: RecommendationEscalate,
				Priority:       domain.PriorityCritical,
			},
		},
		{
			name:     "band boundary -0.3 is somewhat negative",
			polarity: -0.3,
			want: Classification{
				Sentiment:      domain.SentimentSomewhatNegative,
				Recommendation: RecommendationEmpathize,
				Priority:       domain.PriorityMedium,
			},
		},
		{
			name:     "slightly negative",
			polarity: -0.1,
			want: Classification{
				Sentiment:      domain.SentimentSomewhatNegative,
				Recommendation: RecommendationEmpathize,
				Priority:       domain.PriorityMedium,
			},
		},
		{
			name:     "zero is neutral",
			polarity: 0,
			want: Classification{
				Sentiment:      domain.SentimentNeutral,
				Recommendation: RecommendationFactual,
				Priority:       domain.PriorityLow,
			},
		},
		{
			name:     "band boundary 0.3 is neutral",
			polarity: 0.3,
			want: Classification{
				Sentiment:      domain.SentimentNeutral,
				Recommendation: RecommendationFactual,
				Priority:       domain.PriorityLow,
			},
		},
		{
			name:     "positive thanks the customer",
			polarity: 0.5,
			want: Classification{
				Sentiment:      domain.SentimentPositive,
				Recommendation: RecommendationThank,
				Priority:       domain.PriorityLow,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enricher := NewEnricher(&fixedScorer{polarity: tt.polarity})
			assert.Equal(t, tt.want, enricher.Classify("some customer text"))
		})
	}
}

func TestClassifyEmptyTextShortCircuits(t *testing.T) {
	scorer := &fixedScorer{polarity: -1}
	enricher := NewEnricher(scorer)

	got := enricher.Classify("")

	assert.Equal(t, domain.SentimentNeutral, got.Sentiment)
	assert.Equal(t, RecommendationNone, got.Recommendation)
	assert.Equal(t, domain.PriorityLow, got.Priority)
	assert.Zero(t, scorer.calls, "scorer must not run on empty input")
}

func TestMotifFromKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "outage", text: "There is an OUTAGE in my area", want: "technical problem"},
		{name: "interruption", text: "service interruption since monday", want: "technical problem"},
		{name: "billing", text: "my billing statement is wrong", want: "billing"},
		{name: "refund", text: "I want a Refund now", want: "billing"},
		{name: "wifi", text: "the wifi drops every hour", want: "connection problem"},
		{name: "bandwidth", text: "bandwidth is terrible at night", want: "connection problem"},
		{name: "router", text: "my router blinks red", want: "hardware"},
		{name: "mobile", text: "question about my mobile subscription", want: "mobile"},
		{name: "plan", text: "how do I change my plan", want: "mobile"},
		{name: "no match", text: "hello, just saying hi", want: "other"},
		{name: "empty", text: "", want: "other"},
		// "outage" precedes "refund" in the group order, so the first
		// group wins when both match.
		{name: "group order breaks ties", text: "outage and I want a refund", want: "technical problem"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MotifFromKeywords(tt.text))
		})
	}
}

func TestLexiconScorer(t *testing.T) {
	scorer := NewLexiconScorer()

	assert.Equal(t, float64(0), scorer.Score("completely unknown vocabulary"))
	assert.Negative(t, scorer.Score("this outage is unacceptable, terrible service"))
	assert.Positive(t, scorer.Score("thanks, the support was excellent"))

	// Bounds hold on arbitrary input.
	for _, text := range []string{"worst awful terrible scam furious", "perfect excellent awesome great love"} {
		polarity := scorer.Score(text)
		assert.GreaterOrEqual(t, polarity, -1.0)
		assert.LessOrEqual(t, polarity, 1.0)
	}
}
