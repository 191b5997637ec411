package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sabaihub/booking-web/internal/core/domain"
	"github.com/sabaihub/booking-web/internal/core/ports"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, time.Second, zerolog.Nop())
}

func TestClient_Login_Success(t *testing.T) {
	var captured map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "token": "tok-1"})
	})

	token, err := c.Login(context.Background(), "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token != "tok-1" {
		t.Fatalf("unexpected token: %q", token)
	}
	if captured["email"] != "alice@example.com" || captured["password"] != "s3cret" {
		t.Fatalf("unexpected payload: %v", captured)
	}
}

func TestClient_Login_Rejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "Invalid credentials"})
	})

	_, err := c.Login(context.Background(), "alice@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if !strings.Contains(err.Error(), "Invalid credentials") {
		t.Fatalf("backend message must be preserved, got %q", err.Error())
	}
}

func TestClient_Register_OmitsEmptyTel(t *testing.T) {
	var raw map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "token": "tok-1"})
	})

	_, err := c.Register(context.Background(), ports.RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, present := raw["tel"]; present {
		t.Fatalf("tel must be absent when not supplied, payload: %v", raw)
	}
}

func TestClient_Register_IncludesTelVerbatim(t *testing.T) {
	var raw map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "token": "tok-1"})
	})

	_, err := c.Register(context.Background(), ports.RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "s3cret",
		Tel:      "0812345678",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if raw["tel"] != "0812345678" {
		t.Fatalf("tel must be sent verbatim, payload: %v", raw)
	}
}

func TestClient_Register_Conflict(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "email already registered"})
	})

	_, err := c.Register(context.Background(), ports.RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "pw"})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestClient_Me_SendsBearerToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Fatalf("unexpected authorization header: %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"_id":   "u1",
				"name":  "Alice",
				"email": "alice@example.com",
				"role":  "admin",
			},
		})
	})

	user, err := c.Me(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("me failed: %v", err)
	}
	if user.ID != "u1" || user.Name != "Alice" || user.Role != domain.RoleAdmin {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestClient_Me_NonSuccessEnvelope(t *testing.T) {
	// 200 with success:false must still be a failure.
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "token expired"})
	})

	if _, err := c.Me(context.Background(), "tok-stale"); err == nil {
		t.Fatalf("expected error for success:false envelope")
	}
}

func TestClient_CreateReservation(t *testing.T) {
	var raw map[string]any
	var idempotencyKey string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/massageshops/s1/reservations" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Fatalf("unexpected authorization header: %q", got)
		}
		idempotencyKey = r.Header.Get("Idempotency-Key")
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"_id":             "r1",
				"reservationDate": "2026-09-15",
				"startTime":       "10:00",
				"endTime":         "11:00",
				"status":          "confirmed",
			},
		})
	})

	res, err := c.CreateReservation(context.Background(), "tok-1", "s1", ports.ReservationInput{
		ReservationDate: "2026-09-15",
		StartTime:       "10:00",
		EndTime:         "11:00",
	})
	if err != nil {
		t.Fatalf("create reservation failed: %v", err)
	}
	if res.ID != "r1" || res.Status != "confirmed" {
		t.Fatalf("unexpected reservation: %+v", res)
	}
	if raw["reservationDate"] != "2026-09-15" || raw["startTime"] != "10:00" || raw["endTime"] != "11:00" {
		t.Fatalf("unexpected payload: %v", raw)
	}
	if idempotencyKey == "" {
		t.Fatalf("expected an Idempotency-Key header")
	}
}

func TestClient_GetShop_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "not found"})
	})

	if _, err := c.GetShop(context.Background(), "missing"); !errors.Is(err, domain.ErrShopNotFound) {
		t.Fatalf("expected ErrShopNotFound, got %v", err)
	}
}

func TestClient_CreateShop_Multipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("expected multipart form: %v", err)
		}
		if r.FormValue("name") != "Thai Massage Spa" || r.FormValue("numMasseurs") != "3" {
			t.Fatalf("unexpected fields: %v", r.MultipartForm.Value)
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			t.Fatalf("expected image part: %v", err)
		}
		defer file.Close()
		if header.Filename != "front.jpg" {
			t.Fatalf("unexpected filename: %s", header.Filename)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"_id": "s9", "name": "Thai Massage Spa"},
		})
	})

	shop, err := c.CreateShop(context.Background(), "tok-admin", ports.ShopInput{
		Name:        "Thai Massage Spa",
		Address:     "123 Massage St, Bangkok",
		Tel:         "0987654321",
		OpenTime:    "09:00",
		CloseTime:   "18:00",
		NumMasseurs: 3,
		Image: &ports.ImageUpload{
			Filename: "front.jpg",
			Content:  strings.NewReader("fake-image-bytes"),
		},
	})
	if err != nil {
		t.Fatalf("create shop failed: %v", err)
	}
	if shop.ID != "s9" {
		t.Fatalf("unexpected shop: %+v", shop)
	}
}
