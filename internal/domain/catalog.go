package domain

import "time"

// Offer is a packaged trip shown on the marketing site's card grid.
type Offer struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Destination  string    `json:"destination"`
	Summary      string    `json:"summary,omitempty"`
	PriceFrom    float64   `json:"price_from"`
	DurationDays int       `json:"duration_days"`
	Featured     bool      `json:"featured"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Destination is a catalog entry for the destinations grid.
type Destination struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	Region    string    `json:"region,omitempty"`
	Blurb     string    `json:"blurb,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
