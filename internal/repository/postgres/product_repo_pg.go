package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/psmahesh/Pinvent_APP_BackEnd/internal/domain"
	"github.com/psmahesh/Pinvent_APP_BackEnd/internal/repository/ports"
)

type ProductRepository struct {
	db *sqlx.DB
}

func NewProductRepo(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = "id, user_id, name, sku, category, quantity, price, description, image_name, image_url, image_type, image_size, created_at, updated_at"

func (r *ProductRepository) Create(ctx context.Context, userID uuid.UUID, fields ports.ProductFields) (*domain.Product, error) {
	const query = `
        INSERT INTO product (user_id, name, sku, category, quantity, price, description, image_name, image_url, image_type, image_size)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING ` + productColumns

	row := r.db.QueryRowxContext(ctx, query, userID,
		fields.Name, fields.SKU, fields.Category, fields.Quantity, fields.Price, fields.Description,
		fields.ImageName, fields.ImageURL, fields.ImageType, fields.ImageSize)
	var product domain.Product
	if err := row.StructScan(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	const query = `
        SELECT ` + productColumns + `
        FROM product
        WHERE id = $1
    `
	var product domain.Product
	if err := r.db.GetContext(ctx, &product, query, id); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) ListByUser(ctx context.Context, userID uuid.UUID, categories []string) ([]domain.Product, error) {
	query := `
        SELECT ` + productColumns + `
        FROM product
        WHERE user_id = $1
    `
	params := []interface{}{userID}
	if len(categories) > 0 {
		query += ` AND category = ANY($2)`
		params = append(params, pq.StringArray(categories))
	}
	query += ` ORDER BY created_at DESC`

	products := []domain.Product{}
	if err := r.db.SelectContext(ctx, &products, query, params...); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, id uuid.UUID, fields ports.ProductFields) (*domain.Product, error) {
	const query = `
        UPDATE product
        SET name = COALESCE($2, name),
            sku = COALESCE($3, sku),
            category = COALESCE($4, category),
            quantity = COALESCE($5, quantity),
            price = COALESCE($6, price),
            description = COALESCE($7, description),
            image_name = COALESCE($8, image_name),
            image_url = COALESCE($9, image_url),
            image_type = COALESCE($10, image_type),
            image_size = COALESCE($11, image_size),
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + productColumns

	row := r.db.QueryRowxContext(ctx, query, id,
		fields.Name, fields.SKU, fields.Category, fields.Quantity, fields.Price, fields.Description,
		fields.ImageName, fields.ImageURL, fields.ImageType, fields.ImageSize)
	var product domain.Product
	if err := row.StructScan(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM product WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
