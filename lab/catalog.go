// Package lab holds the mock data behind the Automation Lab playgrounds.
package lab

import (
	"slices"

	apperrors "github.com/jrsteele09/portfolio-lab/internal/errors"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	InStock     bool
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var products = []Product{
	{ID: 1, Name: "Laptop", Description: "High-performance laptop with 16GB RAM and 512GB SSD", Price: price("999.99"), Category: "Electronics", InStock: true},
	{ID: 2, Name: "Smartphone", Description: "Latest smartphone with 128GB storage and 5G capability", Price: price("699.99"), Category: "Electronics", InStock: true},
	{ID: 3, Name: "Headphones", Description: "Wireless noise-cancelling headphones with 20-hour battery life", Price: price("149.99"), Category: "Electronics", InStock: true},
	{ID: 4, Name: "T-shirt", Description: "Comfortable cotton t-shirt in various colors", Price: price("19.99"), Category: "Clothing", InStock: true},
	{ID: 5, Name: "Jeans", Description: "Classic denim jeans with a modern fit", Price: price("49.99"), Category: "Clothing", InStock: false},
	{ID: 6, Name: "Coffee Maker", Description: "Programmable coffee maker with 12-cup capacity", Price: price("79.99"), Category: "Home", InStock: true},
}

// Catalog is the fixed product list used by the API and project playgrounds.
type Catalog struct {
	products []Product
}

func NewCatalog() *Catalog {
	return &Catalog{products: products}
}

func (c *Catalog) Products() []Product {
	return slices.Clone(c.products)
}

func (c *Catalog) Product(id int) (Product, error) {
	for _, p := range c.products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, apperrors.Wrapf(apperrors.ErrNotFound, "[Catalog Product] product %d", id)
}
