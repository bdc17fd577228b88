package resolver

import (
	"strings"

	"github.com/freedalab/ticketflow/internal/domain"
	"github.com/freedalab/ticketflow/internal/normalize"
)

// The two creation paths (batch-ingested local records and on-the-fly
// remote items) must produce structurally identical tickets, so both
// adapters funnel through the same field pipeline.

// adaptRemote converts a primary-store item into a canonical ticket.
func (r *Resolver) adaptRemote(item domain.RemoteItem) domain.Ticket {
	category := normalize.Category(item.Category)
	ticket := domain.Ticket{
		ID:       nonEmpty(item.ID, domain.UnknownTicketID),
		Client:   nonEmpty(item.Client, domain.DefaultClient),
		Category: category,
		Motif:    normalize.Motif(item.Motif, category),
		Status:   normalize.Status(item.Status),
		Priority: normalizePriority(item.Priority),
		Channel:  normalize.Channel(item.Channel),
		Date:     item.Date,
		Agent:    item.Agent,
	}

	ticket.Messages = deriveAuthors(item.Messages)
	ticket.History = flattenHistory(ticket.Messages)

	// The analytics sub-object is only present on remote items; absent
	// enrichment is recomputed from the requester's text.
	var analytics domain.Analytics
	if item.Analytics != nil {
		analytics = *item.Analytics
	}
	ticket.Sentiment = analytics.Sentiment
	ticket.Recommendation = analytics.Recommendation
	if analytics.Priority != "" {
		ticket.Priority = normalize.Priority(analytics.Priority)
	}
	if ticket.Sentiment == "" || ticket.Recommendation == "" {
		classification := r.enricher.Classify(requesterText(ticket.Messages))
		if ticket.Sentiment == "" {
			ticket.Sentiment = classification.Sentiment
		}
		if ticket.Recommendation == "" {
			ticket.Recommendation = classification.Recommendation
		}
	}

	r.applyAgent(&ticket)
	return ticket
}

// adaptLocal converts a persisted local record into a canonical ticket.
func (r *Resolver) adaptLocal(rec domain.LocalRecord) domain.Ticket {
	category := rec.Category
	if category != "" {
		category = normalize.Category(category)
	} else {
		category = domain.CategoryOther
	}
	ticket := domain.Ticket{
		ID:             nonEmpty(rec.ID, domain.UnknownTicketID),
		Client:         nonEmpty(rec.Client, domain.DefaultClient),
		Category:       category,
		Motif:          normalize.Motif(rec.Motif, category),
		Status:         normalize.Status(rec.Status),
		Priority:       normalizePriority(rec.Priority),
		Channel:        normalize.Channel(rec.Channel),
		Date:           rec.Date,
		Agent:          rec.Agent,
		History:        rec.History,
		Recommendation: rec.Recommendation,
		Sentiment:      rec.Sentiment,
	}

	if ticket.Sentiment == "" || ticket.Recommendation == "" {
		classification := r.enricher.Classify(rec.History)
		if ticket.Sentiment == "" {
			ticket.Sentiment = classification.Sentiment
		}
		if ticket.Recommendation == "" {
			ticket.Recommendation = classification.Recommendation
		}
	}

	r.applyAgent(&ticket)
	return ticket
}

// applyAgent fixes the agent designation for AI-handled tickets in
// production mode.
func (r *Resolver) applyAgent(ticket *domain.Ticket) {
	if r.production && ticket.Agent == "" {
		ticket.Agent = domain.AgentAI
	}
}

// deriveAuthors fills the Author field of messages that arrive without
// one: requester roles get the customer label, anything else the agent
// label.
func deriveAuthors(messages []domain.Message) []domain.Message {
	if len(messages) == 0 {
		return nil
	}
	out := make([]domain.Message, len(messages))
	for i, msg := range messages {
		if msg.Author == "" {
			if domain.IsRequesterRole(msg.Role) {
				msg.Author = domain.AuthorCustomer
			} else {
				msg.Author = domain.AuthorAgent
			}
		}
		out[i] = msg
	}
	return out
}

// flattenHistory renders messages as a newline-joined "role: content"
// transcript, kept for consumers that predate structured messages.
func flattenHistory(messages []domain.Message) string {
	if len(messages) == 0 {
		return ""
	}
	lines := make([]string, len(messages))
	for i, msg := range messages {
		lines[i] = msg.Role + ": " + msg.Content
	}
	return strings.Join(lines, "\n")
}

// requesterText concatenates the requester-authored message contents for
// enrichment.
func requesterText(messages []domain.Message) string {
	var parts []string
	for _, msg := range messages {
		if domain.IsRequesterRole(msg.Role) {
			parts = append(parts, msg.Content)
		}
	}
	return strings.Join(parts, " ")
}

// normalizePriority applies the urgency lookup with the Medium default for
// absent values.
func normalizePriority(raw string) string {
	if raw == "" {
		return domain.PriorityMedium
	}
	return normalize.Priority(raw)
}

func nonEmpty(val, fallback string) string {
	if val == "" {
		return fallback
	}
	return val
}
