package ports

import (
	"context"
	"io"

	"github.com/sabaihub/booking-web/internal/core/domain"
)

// AuthAPI is the slice of the booking backend that issues and confirms
// credentials. Tokens are opaque bearer strings; this service never inspects
// them.
type AuthAPI interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, email, password string) (string, error)
	// Register creates an account and returns a bearer token for it.
	Register(ctx context.Context, input RegisterInput) (string, error)
	// Me fetches the profile behind a token, confirming the session.
	Me(ctx context.Context, token string) (*domain.User, error)
	// Logout revokes the token server-side. Best effort for callers.
	Logout(ctx context.Context, token string) error
}

// RegisterInput carries the signup payload. Tel is optional and must be
// omitted from the wire payload entirely when empty.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Tel      string
}

// ShopAPI is the catalogue slice of the backend. Mutations require an admin
// token; reads are public.
type ShopAPI interface {
	ListShops(ctx context.Context) ([]domain.MassageShop, error)
	GetShop(ctx context.Context, id string) (*domain.MassageShop, error)
	CreateShop(ctx context.Context, token string, input ShopInput) (*domain.MassageShop, error)
	UpdateShop(ctx context.Context, token, id string, input ShopInput) (*domain.MassageShop, error)
	DeleteShop(ctx context.Context, token, id string) error
}

// ShopInput carries the admin CRUD payload. Image is optional; when present
// the request is sent as multipart and the image is streamed through.
type ShopInput struct {
	Name        string
	Address     string
	Tel         string
	OpenTime    string
	CloseTime   string
	NumMasseurs int
	Image       *ImageUpload
}

// ImageUpload is a streamed file attachment for a shop record.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// ReservationAPI is the booking slice of the backend. All operations act on
// behalf of the token's owner.
type ReservationAPI interface {
	ListReservations(ctx context.Context, token string) ([]domain.Reservation, error)
	CreateReservation(ctx context.Context, token, shopID string, input ReservationInput) (*domain.Reservation, error)
	UpdateReservation(ctx context.Context, token, id string, input ReservationInput) (*domain.Reservation, error)
	DeleteReservation(ctx context.Context, token, id string) error
}

// ReservationInput carries the booking form fields.
type ReservationInput struct {
	ReservationDate string
	StartTime       string
	EndTime         string
}
