package models

import (
	"time"

	"github.com/google/uuid"
)

// GeneratedAsset is a row of the generated_assets index.
type GeneratedAsset struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	URL       string    `json:"url"`
	Prompt    string    `json:"prompt"`
	Topic     string    `json:"topic"`
	CreatedAt time.Time `json:"created_at"`
}

// NewGeneratedAsset is the insert shape; id and created_at come from defaults.
type NewGeneratedAsset struct {
	UserID uuid.UUID `json:"user_id"`
	URL    string    `json:"url"`
	Prompt string    `json:"prompt"`
	Topic  string    `json:"topic"`
}
