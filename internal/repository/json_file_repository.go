package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/Lixing-Zhang/icecream-api/internal/models"
	"github.com/google/uuid"
)

const filePerm = 0o644

// JSONFileProductRepository persists the whole product collection as a JSON array in one file.
//
// Each Load and each Save holds mu for the full file access. A caller doing
// Load, mutate, Save takes the lock twice, so two such cycles running at the
// same time can overwrite each other's change.
type JSONFileProductRepository struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

// NewJSONFileProductRepository creates a repository backed by the file at path.
// The file is created with seed data on first Load if it does not exist.
func NewJSONFileProductRepository(path string, logger *slog.Logger) *JSONFileProductRepository {
	return &JSONFileProductRepository{
		path:   path,
		logger: logger,
	}
}

// Path returns the backing file location
func (r *JSONFileProductRepository) Path() string {
	return r.path
}

// Load reads the full collection. A missing file is bootstrapped with seed data.
// Any read or decode failure is logged and reported as an empty collection.
func (r *JSONFileProductRepository) Load(ctx context.Context) []models.Product {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		seed := models.SeedProducts()
		if err := r.write(seed); err != nil {
			r.logger.Error("failed to create products file", "path", r.path, "error", err)
			return []models.Product{}
		}
		r.logger.Info("created products file with seed data", "path", r.path, "count", len(seed))
		return seed
	}
	if err != nil {
		r.logger.Error("failed to read products file", "path", r.path, "error", err)
		return []models.Product{}
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		r.logger.Error("failed to decode products file", "path", r.path, "error", err)
		return []models.Product{}
	}
	if products == nil {
		products = []models.Product{}
	}

	return products
}

// Save replaces the file contents with the given collection
func (r *JSONFileProductRepository) Save(ctx context.Context, products []models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.write(products); err != nil {
		r.logger.Error("failed to save products file", "path", r.path, "error", err)
		return err
	}
	return nil
}

// write encodes products and swaps them into place with a rename. Callers hold mu.
func (r *JSONFileProductRepository) write(products []models.Product) error {
	if products == nil {
		products = []models.Product{}
	}

	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode products: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(r.path), uuid.NewString()))
	if err := os.WriteFile(tmp, data, filePerm); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tmp, r.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", r.path, err)
	}

	return nil
}
