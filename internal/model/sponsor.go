package model

import "time"

// Sponsor represents a brand sponsor shown on the public site, grouped by tier.
type Sponsor struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Tier        string    `json:"tier"`
	LogoURL     string    `json:"logoUrl"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SponsorRequest is the API request body for creating or updating a sponsor.
type SponsorRequest struct {
	Name        string  `json:"name"`
	Tier        string  `json:"tier"`
	LogoURL     string  `json:"logoUrl"`
	Description *string `json:"description,omitempty"`
}
