package service

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/psmahesh/Pinvent_APP_BackEnd/internal/domain"
	"github.com/psmahesh/Pinvent_APP_BackEnd/internal/media"
	"github.com/psmahesh/Pinvent_APP_BackEnd/internal/repository/ports"
)

// ProductImage carries an uploaded image file from the multipart form.
type ProductImage struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
}

type ProductInput struct {
	Name        string
	SKU         string
	Category    string
	Quantity    string
	Price       string
	Description string
	Image       *ProductImage
}

type ProductUpdateInput struct {
	Name        *string
	Category    *string
	Quantity    *string
	Price       *string
	Description *string
	Image       *ProductImage
}

type ProductService struct {
	products       ports.ProductRepository
	storage        ports.ObjectStorage
	imageProcessor media.Processor
	bucket         string
	maxImageBytes  int64
}

func NewProductService(
	products ports.ProductRepository,
	storage ports.ObjectStorage,
	imageProcessor media.Processor,
	bucket string,
	maxImageBytes int64,
) *ProductService {
	return &ProductService{
		products:       products,
		storage:        storage,
		imageProcessor: imageProcessor,
		bucket:         bucket,
		maxImageBytes:  maxImageBytes,
	}
}

func (s *ProductService) Create(ctx context.Context, userID uuid.UUID, input ProductInput) (*domain.Product, error) {
	name := strings.TrimSpace(input.Name)
	category := strings.TrimSpace(input.Category)
	quantity := strings.TrimSpace(input.Quantity)
	price := strings.TrimSpace(input.Price)
	description := strings.TrimSpace(input.Description)

	if name == "" || category == "" || quantity == "" || price == "" || description == "" {
		return nil, fmt.Errorf("%w: please fill in all fields", ErrValidation)
	}

	sku := strings.TrimSpace(input.SKU)
	fields := ports.ProductFields{
		Name:        &name,
		SKU:         &sku,
		Category:    &category,
		Quantity:    &quantity,
		Price:       &price,
		Description: &description,
	}

	if input.Image != nil {
		if err := s.attachImage(ctx, userID, input.Image, &fields); err != nil {
			return nil, err
		}
	}

	return s.products.Create(ctx, userID, fields)
}

func (s *ProductService) List(ctx context.Context, userID uuid.UUID, categories []string) ([]domain.Product, error) {
	cleaned := make([]string, 0, len(categories))
	for _, c := range categories {
		if trimmed := strings.TrimSpace(c); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return s.products.ListByUser(ctx, userID, cleaned)
}

func (s *ProductService) Get(ctx context.Context, userID, productID uuid.UUID) (*domain.Product, error) {
	return s.findOwned(ctx, userID, productID)
}

func (s *ProductService) Update(ctx context.Context, userID, productID uuid.UUID, input ProductUpdateInput) (*domain.Product, error) {
	if _, err := s.findOwned(ctx, userID, productID); err != nil {
		return nil, err
	}

	fields := ports.ProductFields{
		Name:        trimPtr(input.Name),
		Category:    trimPtr(input.Category),
		Quantity:    trimPtr(input.Quantity),
		Price:       trimPtr(input.Price),
		Description: trimPtr(input.Description),
	}

	// Image columns stay untouched unless a replacement file arrived.
	if input.Image != nil {
		if err := s.attachImage(ctx, userID, input.Image, &fields); err != nil {
			return nil, err
		}
	}

	return s.products.Update(ctx, productID, fields)
}

func (s *ProductService) Delete(ctx context.Context, userID, productID uuid.UUID) error {
	if _, err := s.findOwned(ctx, userID, productID); err != nil {
		return err
	}
	return s.products.Delete(ctx, productID)
}

// findOwned loads the product and checks ownership. A product owned by a
// different user is reported the same way as a missing one.
func (s *ProductService) findOwned(ctx context.Context, userID, productID uuid.UUID) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if product.UserID != userID {
		return nil, ErrNotAuthorized
	}
	return product, nil
}

func (s *ProductService) attachImage(ctx context.Context, userID uuid.UUID, image *ProductImage, fields *ports.ProductFields) error {
	if s.maxImageBytes > 0 && image.Size > s.maxImageBytes {
		return fmt.Errorf("%w: image exceeds %d bytes", ErrValidation, s.maxImageBytes)
	}

	reader, size, contentType, err := prepareImageForUpload(ctx, s.imageProcessor, media.Upload{
		Reader:      image.Reader,
		Size:        image.Size,
		FileName:    image.FileName,
		ContentType: image.ContentType,
	}, 0)
	if err != nil {
		return fmt.Errorf("image could not be uploaded: %w", err)
	}

	objectName := fmt.Sprintf("products/%s/%d-%s", userID, time.Now().UnixNano(), sanitizeFileName(image.FileName))
	url, err := s.storage.Upload(ctx, s.bucket, objectName, contentType, reader, size)
	if err != nil {
		return fmt.Errorf("image could not be uploaded: %w", err)
	}

	fileName := image.FileName
	sizeLabel := formatFileSize(size, 2)
	fields.ImageName = &fileName
	fields.ImageURL = &url
	fields.ImageType = &contentType
	fields.ImageSize = &sizeLabel
	return nil
}

func sanitizeFileName(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return "image"
	}
	replacer := strings.NewReplacer(" ", "-", "/", "-", "\\", "-")
	return replacer.Replace(name)
}

// formatFileSize renders a byte count the way the product listing displays it,
// e.g. "2.53 MB".
func formatFileSize(bytes int64, decimals int) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	if decimals < 0 {
		decimals = 0
	}
	units := []string{"Bytes", "KB", "MB", "GB", "TB"}
	idx := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if idx >= len(units) {
		idx = len(units) - 1
	}
	value := float64(bytes) / math.Pow(1024, float64(idx))
	return fmt.Sprintf("%.*f %s", decimals, value, units[idx])
}
