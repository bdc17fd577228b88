package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freedalab/ticketflow/internal/api/dto"
	"github.com/freedalab/ticketflow/internal/domain"
	apperrors "github.com/freedalab/ticketflow/pkg/util/errorutil"
)

type stubSource struct {
	tickets   []domain.Ticket
	updateErr error
	updated   map[string]string
}

func (s *stubSource) Tickets(context.Context) ([]domain.Ticket, error) {
	return s.tickets, nil
}

func (s *stubSource) UpdateStatus(_ context.Context, id, status string) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	if s.updated == nil {
		s.updated = map[string]string{}
	}
	s.updated[id] = status
	return nil
}

type stubTrigger struct{ fired int }

func (s *stubTrigger) Trigger() { s.fired++ }

func newTestApp(source *stubSource, trigger *stubTrigger) *fiber.App {
	app := fiber.New()
	// Minimal error conversion so DomainError status codes surface.
	app.Use(func(c *fiber.Ctx) error {
		err := c.Next()
		if err != nil {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": domainErr.Code})
		}
		return nil
	})
	h := NewTicketsHandler(source, trigger)
	app.Get("/tickets", h.ListTickets)
	app.Put("/tickets/:id/status", h.UpdateStatus)
	app.Post("/refresh", h.Refresh)
	return app
}

func TestListTicketsReturnsBareArray(t *testing.T) {
	source := &stubSource{tickets: []domain.Ticket{
		{ID: "T-1", Client: "Alice", Status: domain.StatusNew},
	}}
	app := newTestApp(source, &stubTrigger{})

	resp, err := app.Test(httptest.NewRequest("GET", "/tickets", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var got []dto.TicketResponse
	require.NoError(t, json.Unmarshal(body, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "T-1", got[0].ID)
}

func TestUpdateStatus(t *testing.T) {
	source := &stubSource{}
	app := newTestApp(source, &stubTrigger{})

	req := httptest.NewRequest("PUT", "/tickets/T-1/status", strings.NewReader(`{"status":"Closed"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Closed", source.updated["T-1"])
}

func TestUpdateStatusNotFound(t *testing.T) {
	source := &stubSource{updateErr: apperrors.NewNotFound("ticket", nil)}
	app := newTestApp(source, &stubTrigger{})

	req := httptest.NewRequest("PUT", "/tickets/missing/status", strings.NewReader(`{"status":"Closed"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUpdateStatusRequiresStatus(t *testing.T) {
	app := newTestApp(&stubSource{}, &stubTrigger{})

	req := httptest.NewRequest("PUT", "/tickets/T-1/status", strings.NewReader(`{"status":"  "}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRefreshRespondsImmediately(t *testing.T) {
	trigger := &stubTrigger{}
	app := newTestApp(&stubSource{}, trigger)

	resp, err := app.Test(httptest.NewRequest("POST", "/refresh", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)
	assert.Equal(t, 1, trigger.fired)
}
