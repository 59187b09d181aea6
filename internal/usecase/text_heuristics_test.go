package usecase

import (
	"testing"

	"github.com/menuscan/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLineHeuristics_CategoriesAndPrices(t *testing.T) {
	raw := `## Hot Drinks
Espresso - 12
Cappuccino ........ 18.50

DESSERTS
Tiramisu 35 DH
Cold Drinks:
Latte: 25 / 30 (large)`

	items, strategy, err := parseWithStrategy(raw)

	require.NoError(t, err)
	assert.Equal(t, StrategyLineHeuristics, strategy)
	assert.Equal(t, []domain.RawExtractedItem{
		{ProductName: "Espresso", Price: 12.0, Category: "Hot Drinks"},
		{ProductName: "Cappuccino", Price: 18.5, Category: "Hot Drinks"},
		{ProductName: "Tiramisu", Price: 35.0, Category: "DESSERTS"},
		{ProductName: "Latte", Price: 25.0, Category: "Cold Drinks"},
	}, items)
}

func TestParseLineHeuristics_NoJSON(t *testing.T) {
	items, err := ParseResponse("Sorry, the photo is blurry.\nBurger - 45")

	require.NoError(t, err)
	assert.Equal(t, []domain.RawExtractedItem{
		{ProductName: "Burger", Price: 45.0, Category: domain.UncategorizedCategory},
	}, items)
}

func TestParseLineHeuristics_ItemsBeforeAnyHeader(t *testing.T) {
	items, ok := parseLineHeuristics("• Café Crème $3.50\n**Latte** 4")

	require.True(t, ok)
	assert.Equal(t, []domain.RawExtractedItem{
		{ProductName: "Café Crème", Price: 3.5, Category: domain.UncategorizedCategory},
		{ProductName: "Latte", Price: 4.0, Category: domain.UncategorizedCategory},
	}, items)
}

func TestParseLineHeuristics_NothingFoundIsInconclusive(t *testing.T) {
	items, ok := parseLineHeuristics("Welcome to our cafe\nOpen every day")

	assert.False(t, ok)
	assert.Empty(t, items)
}

func TestParseLineHeuristics_PriceInsideLine(t *testing.T) {
	items, strategy, err := parseWithStrategy("Espresso $3.50 (double)\nLatte $4.00\nPizza 4 Saisons 80 DH")

	require.NoError(t, err)
	assert.Equal(t, StrategyLineHeuristics, strategy)
	assert.Equal(t, []domain.RawExtractedItem{
		{ProductName: "Espresso (double)", Price: 3.5, Category: domain.UncategorizedCategory},
		{ProductName: "Latte", Price: 4.0, Category: domain.UncategorizedCategory},
		{ProductName: "Pizza 4 Saisons", Price: 80.0, Category: domain.UncategorizedCategory},
	}, items)
}

func TestParseLineHeuristics_GroupedThousands(t *testing.T) {
	items, ok := parseLineHeuristics("Steak 1,200\nPlateau Royal 1.234,50 €\nCaviar: 2,500 MAD")

	require.True(t, ok)
	assert.Equal(t, []domain.RawExtractedItem{
		{ProductName: "Steak", Price: 1200.0, Category: domain.UncategorizedCategory},
		{ProductName: "Plateau Royal", Price: 1234.5, Category: domain.UncategorizedCategory},
		{ProductName: "Caviar", Price: 2500.0, Category: domain.UncategorizedCategory},
	}, items)
}

func TestParseRegexSweep(t *testing.T) {
	t.Run("name and price on separate lines", func(t *testing.T) {
		items, strategy, err := parseWithStrategy("Burger\n45")

		require.NoError(t, err)
		assert.Equal(t, StrategyRegexSweep, strategy)
		assert.Equal(t, []domain.RawExtractedItem{
			{ProductName: "Burger", Price: 45.0, Category: domain.UncategorizedCategory},
		}, items)
	})

	t.Run("grouped thousands", func(t *testing.T) {
		items, ok := parseRegexSweep("Steak\n1,200")

		require.True(t, ok)
		require.Len(t, items, 1)
		assert.Equal(t, 1200.0, items[0].Price)
	})

	t.Run("not reached when line passes found items", func(t *testing.T) {
		items, strategy, err := parseWithStrategy("Burger - 45\nFries\n15")

		require.NoError(t, err)
		assert.Equal(t, StrategyLineHeuristics, strategy)
		require.Len(t, items, 1)
		assert.Equal(t, "Burger", items[0].ProductName)
	})

	t.Run("numbers without names are ignored", func(t *testing.T) {
		items, ok := parseRegexSweep("42 (17)")

		assert.True(t, ok)
		assert.Empty(t, items)
	})
}

func TestCategoryHeader(t *testing.T) {
	testCases := []struct {
		line     string
		expected string
		ok       bool
	}{
		{"## Hot Drinks", "Hot Drinks", true},
		{"# Menu #", "Menu", true},
		{"**DESSERTS**", "DESSERTS", true},
		{"PIZZA:", "PIZZA", true},
		{"PLATS DU JOUR", "PLATS DU JOUR", true},
		{"Plats du Jour:", "Plats du Jour", true},
		{"Cold Drinks:", "Cold Drinks", true},
		{"Espresso 12", "", false},
		{"SOUPS 2024", "", false},
		{"A", "", false},
		{"cold drinks:", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.line, func(t *testing.T) {
			got, ok := categoryHeader(tc.line)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.expected, got)
			}
		})
	}
}

func TestCleanItemName(t *testing.T) {
	testCases := map[string]string{
		"- Espresso ....":   "Espresso",
		"• Café   Crème":    "Café Crème",
		"**Latte**":         "Latte",
		"\"Mint Tea\",":     "Mint Tea",
		"  Pain au chocolat": "Pain au chocolat",
	}

	for input, expected := range testCases {
		assert.Equal(t, expected, cleanItemName(input), input)
	}
}

func TestParsePriceToken(t *testing.T) {
	testCases := []struct {
		token    string
		expected float64
		ok       bool
	}{
		{"12", 12, true},
		{"$3.50", 3.5, true},
		{"$ 7", 7, true},
		{"12,5", 12.5, true},
		{"1,200", 1200, true},
		{"1.234,50 €", 1234.5, true},
		{"70 DH", 70, true},
		{"abc", 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.token, func(t *testing.T) {
			got, ok := parsePriceToken(tc.token)
			assert.Equal(t, tc.ok, ok)
			assert.InDelta(t, tc.expected, got, 0.0001)
		})
	}
}
