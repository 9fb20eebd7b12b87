package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Lixing-Zhang/icecream-api/internal/models"
)

// DefaultProcessingDelay is how long validation and enrichment each take
const DefaultProcessingDelay = 100 * time.Millisecond

const premiumCategory = "premium"

// ValidationError describes why a product was rejected by business validation
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ProductProcessor validates and enriches products before they are stored
type ProductProcessor interface {
	ValidateProduct(ctx context.Context, product models.Product) error
	EnrichProduct(ctx context.Context, product models.Product) models.Product
}

// DefaultProductProcessor applies the catalogue business rules.
// Both steps block for a fixed delay that is not interrupted by ctx.
type DefaultProductProcessor struct {
	delay  time.Duration
	logger *slog.Logger
}

// NewProductProcessor creates a processor that suspends for delay in each step
func NewProductProcessor(delay time.Duration, logger *slog.Logger) *DefaultProductProcessor {
	return &DefaultProductProcessor{
		delay:  delay,
		logger: logger,
	}
}

// ValidateProduct returns a *ValidationError for the first rule the product breaks
func (p *DefaultProductProcessor) ValidateProduct(ctx context.Context, product models.Product) error {
	p.logger.Info("validating product", "product_name", product.Name)

	if strings.TrimSpace(product.Name) == "" {
		return &ValidationError{Reason: "Product name cannot be empty"}
	}

	if product.Price <= 0 {
		return &ValidationError{Reason: "Price must be greater than 0"}
	}

	if strings.TrimSpace(product.Category) == "" {
		return &ValidationError{Reason: "Category cannot be empty"}
	}

	p.wait()

	return nil
}

// EnrichProduct prefixes premium products with "Premium " unless the name already says so
func (p *DefaultProductProcessor) EnrichProduct(ctx context.Context, product models.Product) models.Product {
	p.logger.Info("enriching product", "product_name", product.Name)

	p.wait()

	if strings.EqualFold(product.Category, premiumCategory) && !strings.Contains(product.Name, "Premium") {
		product.Name = "Premium " + product.Name
	}

	return product
}

func (p *DefaultProductProcessor) wait() {
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
}
