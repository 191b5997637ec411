package backend

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sabaihub/booking-web/internal/core/domain"
	"github.com/sabaihub/booking-web/internal/core/ports"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// registerRequest mirrors POST /auth/register. Tel carries omitempty so an
// unset phone number is absent from the payload, not sent as "".
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Tel      string `json:"tel,omitempty"`
}

// Login exchanges credentials for a bearer token via POST /auth/login.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	env, err := c.doAuth(ctx, "login", "/auth/login", loginRequest{Email: email, Password: password})
	if err != nil {
		if s := statusOf(err); s == http.StatusBadRequest || s == http.StatusUnauthorized {
			return "", fmt.Errorf("%s: %w", err.Error(), domain.ErrInvalidCredentials)
		}
		return "", err
	}
	return env.Token, nil
}

// Register creates an account via POST /auth/register and returns its token.
func (c *Client) Register(ctx context.Context, input ports.RegisterInput) (string, error) {
	req := registerRequest{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Tel:      input.Tel,
	}
	env, err := c.doAuth(ctx, "register", "/auth/register", req)
	if err != nil {
		if statusOf(err) == http.StatusConflict {
			return "", fmt.Errorf("%s: %w", err.Error(), domain.ErrUserExists)
		}
		return "", err
	}
	return env.Token, nil
}

// userRecord is the wire shape of a profile document; "_id" is the backend's
// Mongo identifier.
type userRecord struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Tel       string    `json:"tel"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Me fetches the profile behind a token via GET /auth/me.
func (c *Client) Me(ctx context.Context, token string) (*domain.User, error) {
	var record userRecord
	if err := c.doJSON(ctx, "me", http.MethodGet, "/auth/me", token, nil, &record); err != nil {
		return nil, err
	}
	return &domain.User{
		ID:        record.ID,
		Name:      record.Name,
		Email:     record.Email,
		Tel:       record.Tel,
		Role:      record.Role,
		CreatedAt: record.CreatedAt,
	}, nil
}

// Logout revokes the token via GET /auth/logout.
func (c *Client) Logout(ctx context.Context, token string) error {
	_, err := c.do(ctx, "logout", http.MethodGet, "/auth/logout", token, nil, "")
	return err
}

// doAuth posts a JSON body and returns the raw envelope, which carries the
// token at the top level rather than under data.
func (c *Client) doAuth(ctx context.Context, op, path string, body any) (*envelope, error) {
	payload, err := encodeJSON(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	env, err := c.do(ctx, op, http.MethodPost, path, "", payload, "application/json")
	if err != nil {
		return nil, err
	}
	if env.Token == "" {
		return nil, &Error{Status: http.StatusOK, Message: "backend returned no token"}
	}
	return env, nil
}
