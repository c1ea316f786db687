package model

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog entry of the electronics store. Stock is the only
// invariant-bearing field: it is decremented by checkout, set directly by
// admin CRUD, and must never go negative.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Brand       string    `json:"brand"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"imageUrl"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Rating      float64   `json:"rating"`
	NumReviews  int       `json:"numReviews"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
