package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/sabaihub/booking-web/internal/core/domain"
	"github.com/sabaihub/booking-web/internal/core/ports"
)

// shopRecord is the wire shape of a shop document. The backend exposes Mongo
// identifiers as "_id".
type shopRecord struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Tel         string `json:"tel"`
	OpenTime    string `json:"openTime"`
	CloseTime   string `json:"closeTime"`
	NumMasseurs int    `json:"numMasseurs"`
	ImageURL    string `json:"imageUrl"`
}

func (r shopRecord) toDomain() domain.MassageShop {
	return domain.MassageShop{
		ID:          r.ID,
		Name:        r.Name,
		Address:     r.Address,
		Tel:         r.Tel,
		OpenTime:    r.OpenTime,
		CloseTime:   r.CloseTime,
		NumMasseurs: r.NumMasseurs,
		ImageURL:    r.ImageURL,
	}
}

// ListShops fetches the public catalogue via GET /massageshops.
func (c *Client) ListShops(ctx context.Context) ([]domain.MassageShop, error) {
	var records []shopRecord
	if err := c.doJSON(ctx, "list_shops", http.MethodGet, "/massageshops", "", nil, &records); err != nil {
		return nil, err
	}
	shops := make([]domain.MassageShop, 0, len(records))
	for _, r := range records {
		shops = append(shops, r.toDomain())
	}
	return shops, nil
}

// GetShop fetches one shop via GET /massageshops/:id.
func (c *Client) GetShop(ctx context.Context, id string) (*domain.MassageShop, error) {
	var record shopRecord
	if err := c.doJSON(ctx, "get_shop", http.MethodGet, "/massageshops/"+id, "", nil, &record); err != nil {
		if statusOf(err) == http.StatusNotFound {
			return nil, domain.ErrShopNotFound
		}
		return nil, err
	}
	shop := record.toDomain()
	return &shop, nil
}

// CreateShop creates a shop via POST /massageshops. The payload is multipart
// because the record may carry an image file.
func (c *Client) CreateShop(ctx context.Context, token string, input ports.ShopInput) (*domain.MassageShop, error) {
	return c.submitShop(ctx, "create_shop", http.MethodPost, "/massageshops", token, input)
}

// UpdateShop updates a shop via PUT /massageshops/:id.
func (c *Client) UpdateShop(ctx context.Context, token, id string, input ports.ShopInput) (*domain.MassageShop, error) {
	shop, err := c.submitShop(ctx, "update_shop", http.MethodPut, "/massageshops/"+id, token, input)
	if err != nil && statusOf(err) == http.StatusNotFound {
		return nil, domain.ErrShopNotFound
	}
	return shop, err
}

// DeleteShop removes a shop via DELETE /massageshops/:id.
func (c *Client) DeleteShop(ctx context.Context, token, id string) error {
	_, err := c.do(ctx, "delete_shop", http.MethodDelete, "/massageshops/"+id, token, nil, "")
	if err != nil && statusOf(err) == http.StatusNotFound {
		return domain.ErrShopNotFound
	}
	return err
}

func (c *Client) submitShop(ctx context.Context, op, method, path, token string, input ports.ShopInput) (*domain.MassageShop, error) {
	body, contentType, err := encodeShopForm(input)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	env, err := c.do(ctx, op, method, path, token, body, contentType)
	if err != nil {
		return nil, err
	}

	var record shopRecord
	if err := decodeData(env, &record); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	shop := record.toDomain()
	return &shop, nil
}

// encodeShopForm renders the shop fields (and optional image) as a multipart
// form, matching the backend's upload contract.
func encodeShopForm(input ports.ShopInput) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"name":        input.Name,
		"address":     input.Address,
		"tel":         input.Tel,
		"openTime":    input.OpenTime,
		"closeTime":   input.CloseTime,
		"numMasseurs": strconv.Itoa(input.NumMasseurs),
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", name, err)
		}
	}

	if input.Image != nil {
		filename := input.Image.Filename
		if filename == "" {
			// The backend requires a filename with an extension; synthesize one
			// for streamed uploads that arrive without a name.
			filename = uuid.NewString() + ".jpg"
		}
		part, err := w.CreateFormFile("image", filepath.Base(filename))
		if err != nil {
			return nil, "", fmt.Errorf("create image part: %w", err)
		}
		if _, err := io.Copy(part, input.Image.Content); err != nil {
			return nil, "", fmt.Errorf("copy image: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
