package models

// Product represents an ice cream product in the catalogue.
// The validate tags are the structural constraints checked when a request body is decoded.
type Product struct {
	ID       int32   `json:"id"`
	Name     string  `json:"name" validate:"required,min=3,max=100"`
	Price    float64 `json:"price" validate:"gte=0.01,lte=10000"`
	Category string  `json:"category" validate:"required"`
}

// SeedProducts returns the records a fresh store starts with
func SeedProducts() []Product {
	return []Product{
		{ID: 1, Name: "Vanilla", Price: 9.99, Category: "Classic"},
		{ID: 2, Name: "Pandan Coconut", Price: 19.99, Category: "Premium"},
	}
}
