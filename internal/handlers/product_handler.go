package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Lixing-Zhang/icecream-api/internal/models"
	"github.com/Lixing-Zhang/icecream-api/internal/repository"
	"github.com/Lixing-Zhang/icecream-api/internal/service"
	"github.com/Lixing-Zhang/icecream-api/internal/validation"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// ListProducts handles GET /products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products := h.service.ListProducts(r.Context())

	WriteJSON(w, http.StatusOK, products, h.logger)
}

// GetProduct handles GET /products/{id}
// - 200: product found
// - 400: ID is not an integer
// - 404: no product with that ID
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	h.logger.Info("retrieving product", "product_id", id)

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			h.logger.Warn("product not found", "product_id", id)
			WriteText(w, http.StatusNotFound, fmt.Sprintf("Product with ID %d not found", id), h.logger)
			return
		}

		h.logger.Error("failed to get product", "product_id", id, "error", err)
		WriteText(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, product, h.logger)
}

// CreateProduct handles POST /products
// - 201: product stored, Location points at it
// - 400: malformed body, field constraints, duplicate ID or business validation
// - 500: the collection could not be saved
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product

	if err := decodeProduct(w, r, &product); err != nil {
		h.logger.Warn("failed to decode product request", "error", err)
		WriteText(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	if err := validation.Validate(product); err != nil {
		msg := validation.Message(err)
		h.logger.Warn("product request failed field constraints", "product_id", product.ID, "error", msg)
		WriteText(w, http.StatusBadRequest, msg, h.logger)
		return
	}

	h.logger.Info("adding product", "product_id", product.ID, "product_name", product.Name)

	created, err := h.service.CreateProduct(r.Context(), product)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.Is(err, service.ErrProductExists):
			h.logger.Warn("product already exists", "product_id", product.ID)
			WriteText(w, http.StatusBadRequest, fmt.Sprintf("Product with ID %d already exists", product.ID), h.logger)
		case errors.As(err, &verr):
			h.logger.Warn("product validation failed", "product_id", product.ID, "reason", verr.Reason)
			WriteText(w, http.StatusBadRequest, verr.Reason, h.logger)
		default:
			h.logger.Error("failed to create product", "product_id", product.ID, "error", err)
			WriteText(w, http.StatusInternalServerError, "Internal server error", h.logger)
		}
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/products/%d", created.ID))
	WriteJSON(w, http.StatusCreated, created, h.logger)
	h.logger.Info("product added", "product_id", created.ID, "product_name", created.Name)
}

// DeleteProduct handles DELETE /products/{id}
// - 200: product removed
// - 400: ID is not an integer
// - 404: no product with that ID
// - 500: the collection could not be saved
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	h.logger.Info("deleting product", "product_id", id)

	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			h.logger.Warn("product not found for deletion", "product_id", id)
			WriteText(w, http.StatusNotFound, fmt.Sprintf("Product with ID %d not found", id), h.logger)
			return
		}

		h.logger.Error("failed to delete product", "product_id", id, "error", err)
		WriteText(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteText(w, http.StatusOK, fmt.Sprintf("Product with ID %d deleted successfully", id), h.logger)
	h.logger.Info("product deleted", "product_id", id)
}

// productID parses the {id} URL parameter, answering 400 when it is not an integer
func (h *ProductHandler) productID(w http.ResponseWriter, r *http.Request) (int32, bool) {
	raw := chi.URLParam(r, "id")

	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		h.logger.Warn("invalid product ID format", "product_id", raw, "error", err)
		WriteText(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return 0, false
	}

	return int32(id), true
}

// decodeProduct reads exactly one JSON object from the request body
func decodeProduct(w http.ResponseWriter, r *http.Request, product *models.Product) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))

	if err := dec.Decode(product); err != nil {
		return err
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must contain a single JSON object")
	}

	return nil
}
