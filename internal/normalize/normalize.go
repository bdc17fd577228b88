// Package normalize holds the pure field-level mapping functions that turn
// raw source vocabulary into the canonical ticket vocabulary. Every
// function is total over arbitrary string input.
package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/freedalab/ticketflow/internal/domain"
)

// Raw status keys are matched exactly, diacritics included. The source
// exports a fixed French vocabulary.
var statusTable = map[string]string{
	"Nouveau":    domain.StatusNew,
	"En cours":   domain.StatusInProgress,
	"Fermé":      domain.StatusClosed,
	"Critique":   domain.StatusCritical,
	"En attente": domain.StatusWaiting,
	"Résolu":     domain.StatusResolved,
}

var priorityTable = map[string]string{
	"Faible":   domain.PriorityLow,
	"Moyen":    domain.PriorityMedium,
	"Élevé":    domain.PriorityHigh,
	"Critique": domain.PriorityCritical,
}

// Category codes are matched case-insensitively; keys here are lower-case.
var categoryTable = map[string]string{
	"technique":    domain.CategoryTechnical,
	"technical":    domain.CategoryTechnical,
	"facturation":  domain.CategoryBilling,
	"billing":      domain.CategoryBilling,
	"commercial":   domain.CategoryCommercial,
	"sales":        domain.CategoryCommercial,
	"resiliation":  domain.CategoryCancellation,
	"cancellation": domain.CategoryCancellation,
}

const (
	channelAliasChatbot = "chatbot"
	channelChat         = "chat"
)

// Status maps a raw status token to its canonical value. Unmapped input is
// returned with the first letter capitalized rather than rejected.
func Status(raw string) string {
	if canonical, ok := statusTable[raw]; ok {
		return canonical
	}
	return capitalize(raw)
}

// Priority maps a raw urgency token to its canonical value. Unmapped input
// is returned capitalized.
func Priority(raw string) string {
	if canonical, ok := priorityTable[raw]; ok {
		return canonical
	}
	return capitalize(raw)
}

// Category maps a raw category code to its canonical readable label.
// Unlike Status and Priority, unmapped input never leaks through: anything
// outside the closed table becomes the catch-all label.
func Category(raw string) string {
	if label, ok := categoryTable[strings.ToLower(raw)]; ok {
		return label
	}
	return domain.CategoryOther
}

// Channel rewrites the one known alias to its canonical form and passes
// every other value through unchanged.
func Channel(raw string) string {
	if raw == channelAliasChatbot {
		return channelChat
	}
	return raw
}

// Motif returns the category label when the summary is absent, too short
// to be meaningful, or the known placeholder value; otherwise the summary
// verbatim.
func Motif(summary, categoryLabel string) string {
	if summary == "" || utf8.RuneCountInString(summary) < 5 || summary == domain.MotifPlaceholder {
		return categoryLabel
	}
	return summary
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
