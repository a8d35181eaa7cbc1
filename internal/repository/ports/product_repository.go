package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/psmahesh/Pinvent_APP_BackEnd/internal/domain"
)

type ProductFields struct {
	Name        *string
	SKU         *string
	Category    *string
	Quantity    *string
	Price       *string
	Description *string
	ImageName   *string
	ImageURL    *string
	ImageType   *string
	ImageSize   *string
}

type ProductRepository interface {
	Create(ctx context.Context, userID uuid.UUID, fields ProductFields) (*domain.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListByUser(ctx context.Context, userID uuid.UUID, categories []string) ([]domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, fields ProductFields) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
