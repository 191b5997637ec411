package domain

import (
	"errors"
	"time"
)

var ErrReservationNotFound = errors.New("reservation not found")

// Reservation is a booking made by a user at a massage shop. Times are the
// backend's wall-clock strings ("HH:MM"); the date is an ISO day.
type Reservation struct {
	ID              string      `json:"id"`
	ReservationDate string      `json:"reservationDate"`
	StartTime       string      `json:"startTime"`
	EndTime         string      `json:"endTime"`
	Status          string      `json:"status"`
	Shop            MassageShop `json:"massageShop"`
	CreatedAt       time.Time   `json:"createdAt"`
}
