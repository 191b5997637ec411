package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sabaihub/booking-web/internal/core/domain"
	"github.com/sabaihub/booking-web/internal/core/ports"
	"github.com/sabaihub/booking-web/internal/core/service"
)

// DashboardHandler serves the visitor's reservation overview.
type DashboardHandler struct {
	reservations ports.ReservationAPI
	logger       zerolog.Logger
}

func NewDashboardHandler(reservations ports.ReservationAPI, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{reservations: reservations, logger: logger}
}

type dashboardData struct {
	User         *domain.User
	Reservations []domain.Reservation
	Error        string
}

// Dashboard handles GET /dashboard.
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	token, err := ctxToken(c)
	if err != nil {
		return err
	}
	data := dashboardData{User: ctxSession(c).User}

	reservations, err := h.reservations.ListReservations(c.Request().Context(), token)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load reservations")
		data.Error = "Failed to load your reservations. Please try again later."
		return c.Render(http.StatusOK, "dashboard.html", data)
	}

	data.Reservations = reservations
	return c.Render(http.StatusOK, "dashboard.html", data)
}

// Update handles POST /dashboard/reservations/:id, rescheduling a booking.
// The list is not mutated locally; the follow-up dashboard load re-reads the
// backend's confirmed state.
func (h *DashboardHandler) Update(c echo.Context) error {
	var form bookingForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if err := c.Validate(form); err != nil {
		return h.renderError(c, err.Error())
	}

	token, err := ctxToken(c)
	if err != nil {
		return err
	}

	input := ports.ReservationInput{
		ReservationDate: form.ReservationDate,
		StartTime:       form.StartTime,
		EndTime:         form.EndTime,
	}
	if _, err := h.reservations.UpdateReservation(c.Request().Context(), token, c.Param("id"), input); err != nil {
		h.logger.Warn().Err(err).Str("reservation_id", c.Param("id")).Msg("reservation update rejected")
		return h.renderError(c, err.Error())
	}

	return c.Redirect(http.StatusSeeOther, service.DashboardPath)
}

// Cancel handles POST /dashboard/reservations/:id/delete.
func (h *DashboardHandler) Cancel(c echo.Context) error {
	token, err := ctxToken(c)
	if err != nil {
		return err
	}

	if err := h.reservations.DeleteReservation(c.Request().Context(), token, c.Param("id")); err != nil {
		h.logger.Warn().Err(err).Str("reservation_id", c.Param("id")).Msg("reservation cancel rejected")
		return h.renderError(c, err.Error())
	}

	return c.Redirect(http.StatusSeeOther, service.DashboardPath)
}

// renderError re-renders the dashboard with the current backend state plus an
// error banner.
func (h *DashboardHandler) renderError(c echo.Context, msg string) error {
	data := dashboardData{User: ctxSession(c).User, Error: msg}
	if token, err := ctxToken(c); err == nil {
		if reservations, err := h.reservations.ListReservations(c.Request().Context(), token); err == nil {
			data.Reservations = reservations
		}
	}
	return c.Render(http.StatusUnprocessableEntity, "dashboard.html", data)
}
