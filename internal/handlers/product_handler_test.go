package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Lixing-Zhang/icecream-api/internal/models"
	"github.com/Lixing-Zhang/icecream-api/internal/repository"
	"github.com/Lixing-Zhang/icecream-api/internal/service"
	"github.com/Lixing-Zhang/icecream-api/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenStore serves the seed data but cannot persist anything
type brokenStore struct{}

func (brokenStore) Load(ctx context.Context) []models.Product {
	return models.SeedProducts()
}

func (brokenStore) Save(ctx context.Context, products []models.Product) error {
	return errors.New("read-only filesystem")
}

func newTestRouter(store repository.ProductStore) *chi.Mux {
	log := logger.Discard()
	svc := service.NewProductService(store, service.NewProductProcessor(0, log))
	handler := NewProductHandler(svc, log)

	r := chi.NewRouter()
	r.Get("/products", handler.ListProducts)
	r.Get("/products/{id}", handler.GetProduct)
	r.Post("/products", handler.CreateProduct)
	r.Delete("/products/{id}", handler.DeleteProduct)
	return r
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListProducts(t *testing.T) {
	r := newTestRouter(repository.NewInMemoryProductRepository())

	w := doRequest(r, http.MethodGet, "/products", "")
	require.Equal(t, http.StatusOK, w.Code)

	var products []models.Product
	require.NoError(t, json.NewDecoder(w.Body).Decode(&products))
	assert.Len(t, products, 2)
}

func TestGetProduct_Seeded(t *testing.T) {
	r := newTestRouter(repository.NewInMemoryProductRepository())

	testCases := []struct {
		id         string
		expectedID int32
		name       string
		category   string
	}{
		{"1", 1, "Vanilla", "Classic"},
		{"2", 2, "Pandan Coconut", "Premium"},
	}

	for _, tc := range testCases {
		t.Run(tc.id, func(t *testing.T) {
			w := doRequest(r, http.MethodGet, "/products/"+tc.id, "")

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var product models.Product
			require.NoError(t, json.NewDecoder(w.Body).Decode(&product))
			assert.Equal(t, tc.expectedID, product.ID)
			assert.Equal(t, tc.name, product.Name)
			assert.Equal(t, tc.category, product.Category)
		})
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	r := newTestRouter(repository.NewInMemoryProductRepository())

	w := doRequest(r, http.MethodGet, "/products/999", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product with ID 999 not found", w.Body.String())
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain"))
}

func TestGetProduct_InvalidID(t *testing.T) {
	r := newTestRouter(repository.NewInMemoryProductRepository())

	testCases := []struct {
		name string
		id   string
	}{
		{"letters", "invalid"},
		{"special chars", "abc@123"},
		{"float", "12.34"},
		{"above int32", "3000000000"},
		{"below int32", "-2147483649"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for _, method := range []string{http.MethodGet, http.MethodDelete} {
				w := doRequest(r, method, "/products/"+tc.id, "")

				assert.Equal(t, http.StatusBadRequest, w.Code, method)
				assert.Equal(t, "Invalid ID supplied", w.Body.String(), method)
			}
		})
	}
}

func TestCreateProduct_Success(t *testing.T) {
	r := newTestRouter(repository.NewInMemoryProductRepository())

	w := doRequest(r, http.MethodPost, "/products",
		`{"id": 3, "name": "Chocolate Chip", "price": 12.99, "category": "Classic"}`)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "/products/3", w.Header().Get("Location"))

	var product models.Product
	require.NoError(t, json.NewDecoder(w.Body).Decode(&product))
	assert.Equal(t, models.Product{ID: 3, Name: "Chocolate Chip", Price: 12.99, Category: "Classic"}, product)

	w = doRequest(r, http.MethodGet, "/products/3", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateProduct_MaxInt32ID(t *testing.T) {
	r := newTestRouter(repository.NewInMemoryProductRepository())

	w := doRequest(r, http.MethodPost, "/products",
		`{"id": 2147483647, "name": "Chocolate Chip", "price": 12.99, "category": "Classic"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "/products/2147483647", w.Header().Get("Location"))

	w = doRequest(r, http.MethodGet, "/products/2147483647", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateProduct_PremiumIsEnriched(t *testing.T) {
	r := newTestRouter(repository.NewInMemoryProductRepository())

	w := doRequest(r, http.MethodPost, "/products",
		`{"id": 5, "name": "Black Sesame", "price": 15.50, "category": "premium"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var product models.Product
	require.NoError(t, json.NewDecoder(w.Body).Decode(&product))
	assert.Equal(t, "Premium Black Sesame", product.Name)

	w = doRequest(r, http.MethodGet, "/products/5", "")
	require.NoError(t, json.NewDecoder(w.Body).Decode(&product))
	assert.Equal(t, "Premium Black Sesame", product.Name)
}

func TestCreateProduct_BadRequest(t *testing.T) {
	testCases := []struct {
		name         string
		body         string
		expectedBody string
	}{
		{
			name:         "duplicate id",
			body:         `{"id": 1, "name": "Vanilla Bean", "price": 10.99, "category": "Classic"}`,
			expectedBody: "Product with ID 1 already exists",
		},
		{
			name:         "duplicate id wins over invalid category",
			body:         `{"id": 2, "name": "Pandan", "price": 19.99, "category": "  "}`,
			expectedBody: "Product with ID 2 already exists",
		},
		{
			name:         "short name and negative price",
			body:         `{"id": 4, "name": "X", "price": -10.00, "category": "Classic"}`,
			expectedBody: "name must be at least 3 characters long; price must be greater than or equal to 0.01",
		},
		{
			name:         "price above range",
			body:         `{"id": 4, "name": "Gold Leaf", "price": 10000.01, "category": "Classic"}`,
			expectedBody: "price must be less than or equal to 10000",
		},
		{
			name:         "missing category",
			body:         `{"id": 4, "name": "Mint", "price": 3.50}`,
			expectedBody: "category is required",
		},
		{
			name:         "blank category",
			body:         `{"id": 4, "name": "Mint", "price": 3.50, "category": "   "}`,
			expectedBody: "Category cannot be empty",
		},
		{
			name:         "blank name",
			body:         `{"id": 4, "name": "    ", "price": 3.50, "category": "Classic"}`,
			expectedBody: "Product name cannot be empty",
		},
		{
			name:         "malformed json",
			body:         `{"id": 4, "name": `,
			expectedBody: "Invalid request body",
		},
		{
			name:         "wrong id type",
			body:         `{"id": "four", "name": "Mint", "price": 3.50, "category": "Classic"}`,
			expectedBody: "Invalid request body",
		},
		{
			name:         "id above int32",
			body:         `{"id": 3000000000, "name": "Mint", "price": 3.50, "category": "Classic"}`,
			expectedBody: "Invalid request body",
		},
		{
			name:         "trailing object",
			body:         `{"id": 4, "name": "Mint", "price": 3.50, "category": "Classic"}{"id": 5}`,
			expectedBody: "Invalid request body",
		},
		{
			name:         "trailing garbage",
			body:         `{"id": 4, "name": "Mint", "price": 3.50, "category": "Classic"} extra`,
			expectedBody: "Invalid request body",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := repository.NewInMemoryProductRepository()
			r := newTestRouter(store)

			w := doRequest(r, http.MethodPost, "/products", tc.body)

			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.expectedBody, w.Body.String())
			assert.Len(t, store.Load(context.Background()), 2, "collection should stay unchanged")
		})
	}
}

func TestCreateProduct_TrailingWhitespaceAccepted(t *testing.T) {
	r := newTestRouter(repository.NewInMemoryProductRepository())

	w := doRequest(r, http.MethodPost, "/products",
		"{\"id\": 4, \"name\": \"Mint\", \"price\": 3.50, \"category\": \"Classic\"}\n\t ")

	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestCreateProduct_SaveFailure(t *testing.T) {
	r := newTestRouter(brokenStore{})

	w := doRequest(r, http.MethodPost, "/products",
		`{"id": 3, "name": "Chocolate Chip", "price": 12.99, "category": "Classic"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestDeleteProduct(t *testing.T) {
	r := newTestRouter(repository.NewInMemoryProductRepository())

	w := doRequest(r, http.MethodDelete, "/products/2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Product with ID 2 deleted successfully", w.Body.String())

	w = doRequest(r, http.MethodGet, "/products/2", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(r, http.MethodGet, "/products/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	store := repository.NewInMemoryProductRepository()
	r := newTestRouter(store)

	w := doRequest(r, http.MethodDelete, "/products/999", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product with ID 999 not found", w.Body.String())
	assert.Len(t, store.Load(context.Background()), 2)
}

func TestDeleteProduct_SaveFailure(t *testing.T) {
	r := newTestRouter(brokenStore{})

	w := doRequest(r, http.MethodDelete, "/products/1", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
