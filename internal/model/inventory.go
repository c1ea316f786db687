package model

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem is a warehouse stock record, listed separately from the
// public product catalog.
type InventoryItem struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Brand       string    `json:"brand"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
