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

const adminShopsPath = "/admin/shops"

// AdminHandler covers the shop management pages. All of its routes sit behind
// the admin guard; the handlers still pass the bearer token through so the
// backend makes the final authorization call.
type AdminHandler struct {
	catalog *service.CatalogService
	logger  zerolog.Logger
}

func NewAdminHandler(catalog *service.CatalogService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{catalog: catalog, logger: logger}
}

type shopForm struct {
	Name        string `form:"name" validate:"required"`
	Address     string `form:"address" validate:"required"`
	Tel         string `form:"tel" validate:"required"`
	OpenTime    string `form:"openTime" validate:"required"`
	CloseTime   string `form:"closeTime" validate:"required"`
	NumMasseurs int    `form:"numMasseurs" validate:"gt=0"`
}

type adminShopsData struct {
	User  *domain.User
	Shops []domain.MassageShop
	Form  shopForm
	Error string
}

// Shops handles GET /admin/shops.
func (h *AdminHandler) Shops(c echo.Context) error {
	return h.renderShops(c, http.StatusOK, shopForm{}, "")
}

// Create handles POST /admin/shops.
func (h *AdminHandler) Create(c echo.Context) error {
	form, input, err := h.shopInput(c)
	if err != nil {
		return h.renderShops(c, http.StatusUnprocessableEntity, form, err.Error())
	}

	token, err := ctxToken(c)
	if err != nil {
		return err
	}
	shop, err := h.catalog.CreateShop(c.Request().Context(), token, input)
	if err != nil {
		h.logger.Warn().Err(err).Str("shop_name", form.Name).Msg("shop create rejected")
		return h.renderShops(c, http.StatusUnprocessableEntity, form, err.Error())
	}

	h.logger.Info().Str("shop_id", shop.ID).Str("shop_name", shop.Name).Msg("shop created")
	return c.Redirect(http.StatusSeeOther, adminShopsPath)
}

// Update handles POST /admin/shops/:id.
func (h *AdminHandler) Update(c echo.Context) error {
	_, input, err := h.shopInput(c)
	if err != nil {
		return h.renderShops(c, http.StatusUnprocessableEntity, shopForm{}, err.Error())
	}

	token, err := ctxToken(c)
	if err != nil {
		return err
	}
	if _, err := h.catalog.UpdateShop(c.Request().Context(), token, c.Param("id"), input); err != nil {
		h.logger.Warn().Err(err).Str("shop_id", c.Param("id")).Msg("shop update rejected")
		return h.renderShops(c, http.StatusUnprocessableEntity, shopForm{}, err.Error())
	}

	return c.Redirect(http.StatusSeeOther, adminShopsPath)
}

// Delete handles POST /admin/shops/:id/delete.
func (h *AdminHandler) Delete(c echo.Context) error {
	token, err := ctxToken(c)
	if err != nil {
		return err
	}
	if err := h.catalog.DeleteShop(c.Request().Context(), token, c.Param("id")); err != nil {
		h.logger.Warn().Err(err).Str("shop_id", c.Param("id")).Msg("shop delete rejected")
		return h.renderShops(c, http.StatusUnprocessableEntity, shopForm{}, err.Error())
	}

	return c.Redirect(http.StatusSeeOther, adminShopsPath)
}

// shopInput binds and validates the shop form, attaching the uploaded image
// when one was submitted. The image file is optional on both create and
// update.
func (h *AdminHandler) shopInput(c echo.Context) (shopForm, ports.ShopInput, error) {
	var form shopForm
	if err := c.Bind(&form); err != nil {
		return form, ports.ShopInput{}, errors.New("invalid form submission")
	}
	if err := c.Validate(form); err != nil {
		return form, ports.ShopInput{}, err
	}

	input := ports.ShopInput{
		Name:        form.Name,
		Address:     form.Address,
		Tel:         form.Tel,
		OpenTime:    form.OpenTime,
		CloseTime:   form.CloseTime,
		NumMasseurs: form.NumMasseurs,
	}

	file, err := c.FormFile("image")
	if err != nil {
		// http.ErrMissingFile and friends all mean "no upload".
		return form, input, nil
	}
	src, err := file.Open()
	if err != nil {
		return form, ports.ShopInput{}, errors.New("could not read uploaded image")
	}
	input.Image = &ports.ImageUpload{Filename: file.Filename, Content: src}
	return form, input, nil
}

func (h *AdminHandler) renderShops(c echo.Context, status int, form shopForm, msg string) error {
	data := adminShopsData{User: ctxSession(c).User, Form: form, Error: msg}
	shops, err := h.catalog.ListShops(c.Request().Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load shops for admin page")
		if data.Error == "" {
			data.Error = "Failed to load shops. Please try again later."
		}
	} else {
		data.Shops = shops
	}
	return c.Render(status, "admin_shops.html", data)
}
