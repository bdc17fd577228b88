package dto

import "github.com/freedalab/ticketflow/internal/domain"

// TicketResponse is the canonical ticket as served to the dashboard.
type TicketResponse struct {
	ID             string            `json:"id"`
	Client         string            `json:"client"`
	Motif          string            `json:"motif"`
	Category       string            `json:"category"`
	Status         string            `json:"status"`
	Priority       string            `json:"priority"`
	Channel        string            `json:"channel"`
	Date           string            `json:"date"`
	Agent          string            `json:"agent"`
	Messages       []MessageResponse `json:"messages,omitempty"`
	History        string            `json:"history,omitempty"`
	Recommendation string            `json:"recommendation,omitempty"`
	Sentiment      string            `json:"sentiment,omitempty"`
}

// MessageResponse represents one thread message.
type MessageResponse struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
	Author    string `json:"author,omitempty"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatusResponse payload.
type UpdateStatusResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// TokenRequest payload for the admin token exchange.
type TokenRequest struct {
	Key string `json:"key"`
}

// TokenResponse payload.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// FromTicket maps a canonical ticket onto the response shape.
func FromTicket(ticket domain.Ticket) TicketResponse {
	messages := make([]MessageResponse, 0, len(ticket.Messages))
	for _, msg := range ticket.Messages {
		messages = append(messages, MessageResponse{
			Role:      msg.Role,
			Content:   msg.Content,
			Timestamp: msg.Timestamp,
			Author:    msg.Author,
		})
	}
	if len(messages) == 0 {
		messages = nil
	}
	return TicketResponse{
		ID:             ticket.ID,
		Client:         ticket.Client,
		Motif:          ticket.Motif,
		Category:       ticket.Category,
		Status:         ticket.Status,
		Priority:       ticket.Priority,
		Channel:        ticket.Channel,
		Date:           ticket.Date,
		Agent:          ticket.Agent,
		Messages:       messages,
		History:        ticket.History,
		Recommendation: ticket.Recommendation,
		Sentiment:      ticket.Sentiment,
	}
}
