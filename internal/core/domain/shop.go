package domain

import "errors"

var ErrShopNotFound = errors.New("massage shop not found")

// MassageShop is a bookable shop in the catalogue, as owned by the backend.
type MassageShop struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Tel         string `json:"tel"`
	OpenTime    string `json:"openTime"`
	CloseTime   string `json:"closeTime"`
	NumMasseurs int    `json:"numMasseurs"`
	ImageURL    string `json:"imageUrl,omitempty"`
}
