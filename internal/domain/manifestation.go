package domain

import "time"

// Manifestation is a saved generation owned by a user. Immutable after
// creation except for deletion; both image URLs point at stored objects.
type Manifestation struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	OriginalImageURL  string    `json:"original_image_url"`
	GeneratedImageURL string    `json:"generated_image_url"`
	Dreams            []string  `json:"dreams"`
	Affirmation       string    `json:"affirmation"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
