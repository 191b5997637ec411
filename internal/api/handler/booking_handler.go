package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sabaihub/booking-web/internal/core/domain"
	"github.com/sabaihub/booking-web/internal/core/ports"
	"github.com/sabaihub/booking-web/internal/core/service"
)

// BookingHandler serves the reservation form for one shop.
type BookingHandler struct {
	catalog      *service.CatalogService
	reservations ports.ReservationAPI
	logger       zerolog.Logger
}

func NewBookingHandler(catalog *service.CatalogService, reservations ports.ReservationAPI, logger zerolog.Logger) *BookingHandler {
	return &BookingHandler{catalog: catalog, reservations: reservations, logger: logger}
}

type bookingForm struct {
	ReservationDate string `form:"reservationDate" validate:"required"`
	StartTime       string `form:"startTime"       validate:"required"`
	EndTime         string `form:"endTime"         validate:"required"`
}

type bookingData struct {
	User  *domain.User
	Shop  domain.MassageShop
	Form  bookingForm
	Error string
}

// Show handles GET /booking/:id.
func (h *BookingHandler) Show(c echo.Context) error {
	shop, err := h.catalog.GetShop(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "booking.html", bookingData{
		User: ctxSession(c).User,
		Shop: *shop,
	})
}

// Create handles POST /booking/:id. Success lands on the dashboard; failure
// re-renders the form with the backend's message.
func (h *BookingHandler) Create(c echo.Context) error {
	shopID := c.Param("id")

	var form bookingForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	token, err := ctxToken(c)
	if err != nil {
		return err
	}

	if err := c.Validate(form); err != nil {
		return h.renderFormError(c, shopID, form, err.Error())
	}

	input := ports.ReservationInput{
		ReservationDate: form.ReservationDate,
		StartTime:       form.StartTime,
		EndTime:         form.EndTime,
	}
	reservation, err := h.reservations.CreateReservation(c.Request().Context(), token, shopID, input)
	if err != nil {
		if errors.Is(err, domain.ErrShopNotFound) {
			return err
		}
		h.logger.Warn().Err(err).Str("shop_id", shopID).Msg("reservation rejected")
		return h.renderFormError(c, shopID, form, err.Error())
	}

	h.logger.Info().
		Str("reservation_id", reservation.ID).
		Str("shop_id", shopID).
		Msg("reservation created")
	return c.Redirect(http.StatusSeeOther, service.DashboardPath)
}

// renderFormError re-renders the booking page with the shop details and the
// visitor's input preserved.
func (h *BookingHandler) renderFormError(c echo.Context, shopID string, form bookingForm, msg string) error {
	shop, err := h.catalog.GetShop(c.Request().Context(), shopID)
	if err != nil {
		return err
	}
	return c.Render(http.StatusUnprocessableEntity, "booking.html", bookingData{
		User:  ctxSession(c).User,
		Shop:  *shop,
		Form:  form,
		Error: msg,
	})
}
