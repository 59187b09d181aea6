package usecase

import (
	"sort"
	"strings"

	"github.com/menuscan/backend/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// GroupProducts buckets items by exact category string using the root collation order
func GroupProducts(items []domain.RawExtractedItem) []domain.CategoryGroup {
	return GroupProductsWithLocale(items, language.Und)
}

// GroupProductsWithLocale buckets items by category and sorts groups for the given locale.
// Categories are case-sensitive: "Drinks" and "drinks" stay separate groups.
func GroupProductsWithLocale(items []domain.RawExtractedItem, locale language.Tag) []domain.CategoryGroup {
	groups := make([]domain.CategoryGroup, 0)
	index := make(map[string]int)

	for _, item := range items {
		name := strings.TrimSpace(item.Category)
		if name == "" {
			name = domain.UncategorizedCategory
		}

		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, domain.CategoryGroup{
				CategoryName: name,
				Products:     []domain.Product{},
			})
		}
		groups[i].Products = append(groups[i].Products, SanitizeProduct(item))
	}

	sortGroups(groups, locale)
	return groups
}

// sortGroups orders groups by locale-aware comparison, falling back to byte order on ties
func sortGroups(groups []domain.CategoryGroup, locale language.Tag) {
	// collators keep internal buffers and are not safe for concurrent use
	collator := collate.New(locale)

	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i].CategoryName, groups[j].CategoryName
		if cmp := collator.CompareString(a, b); cmp != 0 {
			return cmp < 0
		}
		return a < b
	})
}
