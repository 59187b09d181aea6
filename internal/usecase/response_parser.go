package usecase

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/menuscan/backend/internal/domain"
)

// Parser strategy names, in precedence order
const (
	StrategyStrictJSON     = "strict-json"
	StrategyLineHeuristics = "line-heuristics"
	StrategyRegexSweep     = "regex-sweep"
	StrategyNone           = "none"
)

// ParseStrategy turns raw model text into items.
// Conclusive means no later strategy may run, even when items is empty.
type ParseStrategy struct {
	Name  string
	Parse func(text string) (items []domain.RawExtractedItem, conclusive bool)
}

// parseStrategies are tried in order; a well-formed JSON answer never reaches the heuristics
var parseStrategies = []ParseStrategy{
	{Name: StrategyStrictJSON, Parse: parseStrictJSON},
	{Name: StrategyLineHeuristics, Parse: parseLineHeuristics},
	{Name: StrategyRegexSweep, Parse: parseRegexSweep},
}

var jsonFenceRegex = regexp.MustCompile("(?s)```(?:json|JSON)?[ \t]*\\r?\\n?(.*?)```")

// ParseResponse extracts raw items from free-form model output.
// Finding nothing is not an error; only blank input is.
func ParseResponse(raw string) ([]domain.RawExtractedItem, error) {
	items, _, err := parseWithStrategy(raw)
	return items, err
}

// parseWithStrategy also reports which strategy produced the items
func parseWithStrategy(raw string) ([]domain.RawExtractedItem, string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, StrategyNone, domain.ErrEmptyResponse
	}

	for _, strategy := range parseStrategies {
		items, conclusive := strategy.Parse(raw)
		if !conclusive {
			continue
		}
		if len(items) == 0 && strategy.Name != StrategyStrictJSON {
			return []domain.RawExtractedItem{}, StrategyNone, nil
		}
		if items == nil {
			items = []domain.RawExtractedItem{}
		}
		return items, strategy.Name, nil
	}

	return []domain.RawExtractedItem{}, StrategyNone, nil
}

// responseShape tags the top-level structure of a decoded model answer
type responseShape int

const (
	shapeUnparseable    responseShape = iota
	shapeProducts                     // {"products": [...]}
	shapeProductsDirect               // [...]
	shapeSingleItem                   // {"product_name": ...}
)

type decodedResponse struct {
	shape responseShape
	items []domain.RawExtractedItem
}

// parseStrictJSON is Strategy A. It is conclusive whenever the JSON decodes.
func parseStrictJSON(text string) ([]domain.RawExtractedItem, bool) {
	candidate := extractJSONCandidate(text)
	if candidate == "" {
		return nil, false
	}

	var value any
	if err := json.Unmarshal([]byte(candidate), &value); err != nil {
		return nil, false
	}

	decoded := classifyResponse(value)
	if decoded.shape == shapeUnparseable {
		return nil, false
	}

	return decoded.items, true
}

// extractJSONCandidate returns the body of the first ```json fence,
// or failing that the first balanced top-level {...} or [...] span that decodes.
func extractJSONCandidate(text string) string {
	if match := jsonFenceRegex.FindStringSubmatch(text); match != nil {
		if body := strings.TrimSpace(match[1]); body != "" {
			return body
		}
	}
	return findFirstJSONValue(text)
}

// findFirstJSONValue returns the first balanced object or array that is valid JSON.
// Spans that balance but do not decode, like "[see below]", are skipped.
func findFirstJSONValue(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] != '{' && s[i] != '[' {
			continue
		}
		end := closingBracket(s, i)
		if end < 0 {
			continue
		}
		if span := s[i : end+1]; json.Valid([]byte(span)) {
			return span
		}
		i = end
	}
	return ""
}

// closingBracket returns the index that closes the bracket opened at start,
// the index of the first mismatched closer, or -1 if the span never closes.
// Brackets inside strings are ignored.
func closingBracket(s string, start int) int {
	var stack []byte
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if stack[len(stack)-1] != c {
				return i
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i
			}
		}
	}

	return -1
}

func classifyResponse(value any) decodedResponse {
	switch v := value.(type) {
	case []any:
		return decodedResponse{shape: shapeProductsDirect, items: coerceItems(v)}
	case map[string]any:
		products, ok := v["products"]
		if !ok {
			return decodedResponse{shape: shapeSingleItem, items: coerceItems([]any{v})}
		}
		switch p := products.(type) {
		case []any:
			return decodedResponse{shape: shapeProducts, items: coerceItems(p)}
		case map[string]any:
			return decodedResponse{shape: shapeProducts, items: coerceItems([]any{p})}
		case nil:
			return decodedResponse{shape: shapeProducts, items: []domain.RawExtractedItem{}}
		}
	}
	return decodedResponse{shape: shapeUnparseable}
}

// coerceItems keeps only elements that are objects carrying at least one item field
func coerceItems(values []any) []domain.RawExtractedItem {
	items := make([]domain.RawExtractedItem, 0, len(values))
	for _, value := range values {
		obj, ok := value.(map[string]any)
		if !ok {
			continue
		}
		if item, ok := coerceItem(obj); ok {
			items = append(items, item)
		}
	}
	return items
}

func coerceItem(obj map[string]any) (domain.RawExtractedItem, bool) {
	name, hasName := obj["product_name"]
	if !hasName {
		name, hasName = obj["name"]
	}
	price, hasPrice := obj["price"]
	category, hasCategory := obj["category"]
	description, hasDescription := obj["description"]

	if !hasName && !hasPrice && !hasCategory && !hasDescription {
		return domain.RawExtractedItem{}, false
	}

	item := domain.RawExtractedItem{
		ProductName: scalarString(name),
		Category:    scalarString(category),
		Description: scalarString(description),
	}
	switch p := price.(type) {
	case float64, string:
		item.Price = p
	}

	return item, true
}

func scalarString(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
