package backend

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sabaihub/booking-web/internal/core/domain"
	"github.com/sabaihub/booking-web/internal/core/ports"
)

type reservationRequest struct {
	ReservationDate string `json:"reservationDate"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
}

type reservationRecord struct {
	ID              string     `json:"_id"`
	ReservationDate string     `json:"reservationDate"`
	StartTime       string     `json:"startTime"`
	EndTime         string     `json:"endTime"`
	Status          string     `json:"status"`
	Shop            shopRecord `json:"massageShop"`
	CreatedAt       time.Time  `json:"createdAt"`
}

func (r reservationRecord) toDomain() domain.Reservation {
	return domain.Reservation{
		ID:              r.ID,
		ReservationDate: r.ReservationDate,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		Status:          r.Status,
		Shop:            r.Shop.toDomain(),
		CreatedAt:       r.CreatedAt,
	}
}

// ListReservations fetches the caller's reservations via GET /reservations.
func (c *Client) ListReservations(ctx context.Context, token string) ([]domain.Reservation, error) {
	var records []reservationRecord
	if err := c.doJSON(ctx, "list_reservations", http.MethodGet, "/reservations", token, nil, &records); err != nil {
		return nil, err
	}
	reservations := make([]domain.Reservation, 0, len(records))
	for _, r := range records {
		reservations = append(reservations, r.toDomain())
	}
	return reservations, nil
}

// CreateReservation books a slot via POST /massageshops/:id/reservations.
// Each submission carries a client-generated Idempotency-Key so a retried
// form post cannot double-book.
func (c *Client) CreateReservation(ctx context.Context, token, shopID string, input ports.ReservationInput) (*domain.Reservation, error) {
	payload, err := encodeJSON(reservationRequest{
		ReservationDate: input.ReservationDate,
		StartTime:       input.StartTime,
		EndTime:         input.EndTime,
	})
	if err != nil {
		return nil, err
	}

	path := "/massageshops/" + shopID + "/reservations"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, payload)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Idempotency-Key", uuid.NewString())

	env, err := c.execute("create_reservation", req)
	if err != nil {
		if statusOf(err) == http.StatusNotFound {
			return nil, domain.ErrShopNotFound
		}
		return nil, err
	}

	var record reservationRecord
	if err := decodeData(env, &record); err != nil {
		return nil, err
	}
	reservation := record.toDomain()
	return &reservation, nil
}

// UpdateReservation reschedules a booking via PUT /reservations/:id.
func (c *Client) UpdateReservation(ctx context.Context, token, id string, input ports.ReservationInput) (*domain.Reservation, error) {
	req := reservationRequest{
		ReservationDate: input.ReservationDate,
		StartTime:       input.StartTime,
		EndTime:         input.EndTime,
	}
	var record reservationRecord
	if err := c.doJSON(ctx, "update_reservation", http.MethodPut, "/reservations/"+id, token, req, &record); err != nil {
		if statusOf(err) == http.StatusNotFound {
			return nil, domain.ErrReservationNotFound
		}
		return nil, err
	}
	reservation := record.toDomain()
	return &reservation, nil
}

// DeleteReservation cancels a booking via DELETE /reservations/:id.
func (c *Client) DeleteReservation(ctx context.Context, token, id string) error {
	_, err := c.do(ctx, "delete_reservation", http.MethodDelete, "/reservations/"+id, token, nil, "")
	if err != nil && statusOf(err) == http.StatusNotFound {
		return domain.ErrReservationNotFound
	}
	return err
}
