package model

import "github.com/google/uuid"

// ServiceProvider is a technician or vendor offering installation and repair
// services alongside the product catalog.
type ServiceProvider struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Expertise    string    `json:"expertise"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	ContactEmail string    `json:"contactEmail"`
	Phone        string    `json:"phone"`
	ImageURL     string    `json:"imageUrl"`
	Available    bool      `json:"available"`
}
