package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/Lixing-Zhang/icecream-api/internal/models"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductStore defines whole-collection access to the product catalogue.
//
// Load never fails: a store that cannot be read reports an empty collection.
// Save reports every failure to the caller.
type ProductStore interface {
	Load(ctx context.Context) []models.Product
	Save(ctx context.Context, products []models.Product) error
}

// InMemoryProductRepository implements ProductStore without touching the filesystem
type InMemoryProductRepository struct {
	mu       sync.Mutex
	products []models.Product
}

// NewInMemoryProductRepository creates a new in-memory product repository with seed data
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return NewInMemoryProductRepositoryWith(models.SeedProducts())
}

// NewInMemoryProductRepositoryWith creates an in-memory repository holding a copy of products
func NewInMemoryProductRepositoryWith(products []models.Product) *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: cloneProducts(products),
	}
}

// Load returns a copy of the stored collection
func (r *InMemoryProductRepository) Load(ctx context.Context) []models.Product {
	r.mu.Lock()
	defer r.mu.Unlock()

	return cloneProducts(r.products)
}

// Save replaces the stored collection
func (r *InMemoryProductRepository) Save(ctx context.Context, products []models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = cloneProducts(products)
	return nil
}

func cloneProducts(products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)
	return out
}
