package models

import "time"

// Jewel is a catalogue entry used when appraising pledged articles
type Jewel struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	JewelType   string    `json:"jewelType"`
	Purity      string    `json:"purity"`
	RatePerGram float64   `json:"ratePerGram"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type JewelRequest struct {
	Name        string  `json:"name" validate:"required"`
	JewelType   string  `json:"jewelType" validate:"required"`
	Purity      string  `json:"purity"`
	RatePerGram float64 `json:"ratePerGram" validate:"gte=0"`
	Description string  `json:"description"`
}
