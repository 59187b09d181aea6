package usecase

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/menuscan/backend/internal/domain"
)

// FormatExport wraps grouped results in the interchange document.
// File download and clipboard output both go through MarshalExport on this value.
func FormatExport(groups []domain.CategoryGroup) domain.ExportDocument {
	categories := make([]domain.CategoryGroup, 0, len(groups))
	for _, group := range groups {
		products := group.Products
		if products == nil {
			products = []domain.Product{}
		}
		categories = append(categories, domain.CategoryGroup{
			CategoryName: group.CategoryName,
			Products:     products,
		})
	}

	return domain.ExportDocument{Categories: categories}
}

// MarshalExport renders the document as pretty-printed JSON
func MarshalExport(doc domain.ExportDocument) ([]byte, error) {
	if doc.Categories == nil {
		doc.Categories = []domain.CategoryGroup{}
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode export document: %w", err)
	}

	return buf.Bytes(), nil
}
