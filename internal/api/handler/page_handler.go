package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sabaihub/booking-web/internal/core/domain"
	"github.com/sabaihub/booking-web/internal/core/service"
)

// PageHandler serves the public pages.
type PageHandler struct {
	catalog *service.CatalogService
	logger  zerolog.Logger
}

func NewPageHandler(catalog *service.CatalogService, logger zerolog.Logger) *PageHandler {
	return &PageHandler{catalog: catalog, logger: logger}
}

type homeData struct {
	User  *domain.User
	Shops []domain.MassageShop
	Error string
}

// demoShops is shown when the backend is down so the landing page stays
// browsable; booking them still requires the backend.
var demoShops = []domain.MassageShop{
	{ID: "1", Name: "Thai Massage Spa", Address: "123 Massage St, Bangkok", Tel: "0987654321", OpenTime: "09:00", CloseTime: "18:00", NumMasseurs: 3},
	{ID: "2", Name: "Relax Spa", Address: "456 Relax St, Phuket", Tel: "0123456789", OpenTime: "10:00", CloseTime: "20:00", NumMasseurs: 5},
	{ID: "3", Name: "Wellness Massage Center", Address: "789 Wellness Ave, Chiang Mai", Tel: "0555555555", OpenTime: "08:00", CloseTime: "22:00", NumMasseurs: 4},
}

// Home handles GET /, the shop catalogue.
func (h *PageHandler) Home(c echo.Context) error {
	data := homeData{User: ctxSession(c).User}

	shops, err := h.catalog.ListShops(c.Request().Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load shop catalogue")
		data.Error = "Failed to load massage shops. Please try again later."
		data.Shops = demoShops
		return c.Render(http.StatusOK, "home.html", data)
	}

	data.Shops = shops
	return c.Render(http.StatusOK, "home.html", data)
}
