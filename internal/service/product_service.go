package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Lixing-Zhang/icecream-api/internal/models"
	"github.com/Lixing-Zhang/icecream-api/internal/repository"
)

var (
	ErrProductExists = errors.New("product already exists")
)

// ProductService handles business logic for products.
//
// Every operation loads the full collection from the store and, when it
// changes something, saves the full collection back. The two store calls are
// not covered by one lock.
type ProductService struct {
	repo      repository.ProductStore
	processor ProductProcessor
}

// NewProductService creates a new product service
func NewProductService(repo repository.ProductStore, processor ProductProcessor) *ProductService {
	return &ProductService{
		repo:      repo,
		processor: processor,
	}
}

// ListProducts returns all stored products in insertion order
func (s *ProductService) ListProducts(ctx context.Context) []models.Product {
	return s.repo.Load(ctx)
}

// GetProduct returns a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id int32) (*models.Product, error) {
	products := s.repo.Load(ctx)

	i := indexOf(products, id)
	if i < 0 {
		return nil, repository.ErrProductNotFound
	}

	product := products[i]
	return &product, nil
}

// CreateProduct stores a new product after validating and enriching it.
// An existing ID is reported before any validation runs.
func (s *ProductService) CreateProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	products := s.repo.Load(ctx)

	if indexOf(products, product.ID) >= 0 {
		return nil, ErrProductExists
	}

	if err := s.processor.ValidateProduct(ctx, product); err != nil {
		return nil, err
	}

	product = s.processor.EnrichProduct(ctx, product)

	products = append(products, product)
	if err := s.repo.Save(ctx, products); err != nil {
		return nil, fmt.Errorf("failed to save products: %w", err)
	}

	return &product, nil
}

// DeleteProduct removes a product by ID
func (s *ProductService) DeleteProduct(ctx context.Context, id int32) error {
	products := s.repo.Load(ctx)

	i := indexOf(products, id)
	if i < 0 {
		return repository.ErrProductNotFound
	}

	products = append(products[:i], products[i+1:]...)
	if err := s.repo.Save(ctx, products); err != nil {
		return fmt.Errorf("failed to save products: %w", err)
	}

	return nil
}

func indexOf(products []models.Product, id int32) int {
	for i, p := range products {
		if p.ID == id {
			return i
		}
	}
	return -1
}
