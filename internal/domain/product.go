package domain

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	Name        string    `db:"name" json:"name"`
	SKU         string    `db:"sku" json:"sku"`
	Category    string    `db:"category" json:"category"`
	Quantity    string    `db:"quantity" json:"quantity"`
	Price       string    `db:"price" json:"price"`
	Description string    `db:"description" json:"description"`
	ImageName   *string   `db:"image_name" json:"image_name,omitempty"`
	ImageURL    *string   `db:"image_url" json:"image_url,omitempty"`
	ImageType   *string   `db:"image_type" json:"image_type,omitempty"`
	ImageSize   *string   `db:"image_size" json:"image_size,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
