package domain

import (
	"math"
	"strings"
)

const (
	// PlaceholderProductName replaces missing or blank product names
	PlaceholderProductName = "Unnamed Product"

	// UncategorizedCategory is used for items without a category
	UncategorizedCategory = "Uncategorized"
)

// RawExtractedItem is an untrusted item as produced by the model or the text heuristics.
// Price holds whatever the source gave us: a float64, a string such as "$12.50", or nil.
type RawExtractedItem struct {
	ProductName string `json:"product_name,omitempty"`
	Price       any    `json:"price,omitempty"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
}

// Product is the canonical, fully-populated menu product
type Product struct {
	Name         string   `json:"product_name"`
	Price        float64  `json:"price"`
	Description  string   `json:"description"`
	IsVegetarian bool     `json:"isVegetarian"`
	IsSpicy      bool     `json:"isSpicy"`
	IsHalal      bool     `json:"isHalal"`
	Calories     *float64 `json:"calories"`
}

// NewProduct is the only way a Product gets built. Every default lives here.
func NewProduct(name string, price float64, description string) Product {
	name = strings.TrimSpace(name)
	if name == "" {
		name = PlaceholderProductName
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		price = 0
	}

	return Product{
		Name:        name,
		Price:       price,
		Description: strings.TrimSpace(description),
		Calories:    nil,
	}
}

// CategoryGroup is a named bucket of products sharing one category string
type CategoryGroup struct {
	CategoryName string    `json:"categorie_name"`
	Products     []Product `json:"products"`
}

// ExtractionOutcome tells the caller how to present a finished extraction
type ExtractionOutcome string

const (
	OutcomeSuccess ExtractionOutcome = "success"
	OutcomeEmpty   ExtractionOutcome = "empty" // no items detected, not a failure
)

// ExtractionResult is the immutable result of one pipeline run
type ExtractionResult struct {
	ExtractionID string            `json:"extractionId"`
	Outcome      ExtractionOutcome `json:"outcome"`
	Strategy     string            `json:"strategy"`
	Groups       []CategoryGroup   `json:"groups"`
	ProductCount int               `json:"productCount"`
}

// ExportDocument is the interchange shape used for file download, clipboard and bulk import
type ExportDocument struct {
	Categories []CategoryGroup `json:"categories"`
}
