package usecase

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/menuscan/backend/internal/domain"
)

// numericTokenRegex finds the first number in a price string like "$12.50" or "1.200,00 MAD"
var numericTokenRegex = regexp.MustCompile(`\d+(?:[.,]\d+)*`)

// SanitizeProduct normalizes an untrusted item into a fully-populated Product.
// It is pure and cannot fail. Category is left to the grouper.
func SanitizeProduct(item domain.RawExtractedItem) domain.Product {
	return domain.NewProduct(item.ProductName, coercePrice(item.Price), item.Description)
}

// coercePrice turns any price representation into a number, 0 on failure
func coercePrice(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		return parsePriceString(v)
	default:
		return 0
	}
}

// parsePriceString reads the first numeric token, treating the last separator
// as the decimal point when it is followed by one or two digits
func parsePriceString(s string) float64 {
	token := numericTokenRegex.FindString(s)
	if token == "" {
		return 0
	}

	lastDot := strings.LastIndex(token, ".")
	lastComma := strings.LastIndex(token, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			token = strings.ReplaceAll(token, ".", "")
			token = strings.Replace(token, ",", ".", 1)
		} else {
			token = strings.ReplaceAll(token, ",", "")
		}
	case lastComma >= 0:
		token = normalizeSingleSeparator(token, ",")
	case lastDot >= 0:
		token = normalizeSingleSeparator(token, ".")
	}

	value, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0
	}
	return value
}

// normalizeSingleSeparator handles tokens using only one kind of separator:
// one separator followed by 1-2 digits is decimal, anything else is grouping
func normalizeSingleSeparator(token, sep string) string {
	if strings.Count(token, sep) == 1 {
		idx := strings.Index(token, sep)
		if decimals := len(token) - idx - 1; decimals >= 1 && decimals <= 2 {
			return strings.Replace(token, sep, ".", 1)
		}
		if sep == "." {
			return token
		}
	}
	return strings.ReplaceAll(token, sep, "")
}
