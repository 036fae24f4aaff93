package domain

import "time"

// Product is a catalog entry. Prices are stored in minor units to avoid
// floating-point money arithmetic.
type Product struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	PriceCents  int64     `json:"price_cents" bson:"price_cents"`
	Currency    string    `json:"currency" bson:"currency"`
	ImageID     string    `json:"image_id,omitempty" bson:"image_id,omitempty"`
	Active      bool      `json:"active" bson:"active"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
