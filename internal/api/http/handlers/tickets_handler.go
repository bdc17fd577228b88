package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/freedalab/ticketflow/internal/api/dto"
	"github.com/freedalab/ticketflow/internal/domain"
	apperrors "github.com/freedalab/ticketflow/pkg/util/errorutil"
)

// TicketSource is the read/mutate surface the handler needs from the
// resolver.
type TicketSource interface {
	Tickets(ctx context.Context) ([]domain.Ticket, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// RefreshTrigger fires an asynchronous ingestion pass.
type RefreshTrigger interface {
	Trigger()
}

// TicketsHandler serves the dashboard ticket endpoints.
type TicketsHandler struct {
	source  TicketSource
	refresh RefreshTrigger
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(source TicketSource, refresh RefreshTrigger) *TicketsHandler {
	return &TicketsHandler{source: source, refresh: refresh}
}

// ListTickets GET /tickets. Returns the full normalized list, unpaginated,
// as a bare array for the dashboard.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	tickets, err := h.source.Tickets(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for _, ticket := range tickets {
		items = append(items, dto.FromTicket(ticket))
	}
	return c.JSON(items)
}

// UpdateStatus PUT /tickets/:id/status.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Status) == "" {
		return apperrors.NewValidationError("status required", nil)
	}

	if err := h.source.UpdateStatus(c.UserContext(), c.Params("id"), req.Status); err != nil {
		return err
	}
	return c.JSON(dto.UpdateStatusResponse{
		Message: "Status updated successfully",
		Status:  req.Status,
	})
}

// Refresh POST /refresh. Fires the ingestion pass and returns immediately.
func (h *TicketsHandler) Refresh(c *fiber.Ctx) error {
	h.refresh.Trigger()
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": "Data processing triggered",
	})
}
