package enrich

import "strings"

// LexiconScorer is a small word-polarity scorer: the score is the average
// weight of the known words found in the text, already in [-1, 1]. It
// satisfies the PolarityScorer capability without pulling in an NLP stack;
// deployments with stronger needs plug in their own scorer.
type LexiconScorer struct {
	weights map[string]float64
}

// NewLexiconScorer builds the default scorer.
func NewLexiconScorer() *LexiconScorer {
	return &LexiconScorer{weights: defaultLexicon}
}

// Score implements PolarityScorer.
func (s *LexiconScorer) Score(text string) float64 {
	var sum float64
	var matched int
	for _, word := range tokenize(text) {
		if weight, ok := s.weights[word]; ok {
			sum += weight
			matched++
		}
	}
	if matched == 0 {
		return 0
	}
	polarity := sum / float64(matched)
	if polarity > 1 {
		polarity = 1
	}
	if polarity < -1 {
		polarity = -1
	}
	return polarity
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
}

var defaultLexicon = map[string]float64{
	// positive
	"thanks":    0.6,
	"thank":     0.6,
	"great":     0.7,
	"perfect":   0.8,
	"excellent": 0.9,
	"love":      0.7,
	"happy":     0.6,
	"good":      0.5,
	"awesome":   0.8,
	"helpful":   0.5,
	"fast":      0.3,
	"resolved":  0.4,

	// negative
	"outage":       -0.5,
	"broken":       -0.6,
	"worst":        -0.9,
	"terrible":     -0.8,
	"awful":        -0.8,
	"angry":        -0.7,
	"furious":      -0.9,
	"unacceptable": -0.8,
	"scam":         -0.9,
	"bad":          -0.5,
	"slow":         -0.3,
	"useless":      -0.7,
	"disappointed": -0.5,
	"waiting":      -0.2,
	"problem":      -0.3,
}
