package usecase

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/menuscan/backend/internal/domain"
)

// Compiled regex patterns for the heuristic fallback
var (
	// "## Hot Drinks"
	markdownHeadingPattern = regexp.MustCompile(`^#{1,6}\s+(.+?)\s*#*$`)

	// "Hot Drinks:" / "Plats du Jour:"
	titleCaseHeaderPattern = regexp.MustCompile(`^(\p{Lu}[\p{L}'’&-]*(?:\s+(?:&|and|of|the|et|de|du|des|la|le|\p{Lu}[\p{L}'’&-]*))*)\s*:$`)

	// "Name: rest"
	colonLinePattern = regexp.MustCompile(`^([^:]+):\s*(.+)$`)

	// a currency-like number anywhere in a line, with an optional trailing currency:
	// "$3.50", "1,200", "1.234,50 €", "70 DH"
	pricePattern = regexp.MustCompile(`\$?\s?(?:\d{1,3}(?:[.,]\d{3})+(?:[.,]\d{1,2})?|\d{1,6}(?:[.,]\d{1,2})?)(?:\s?(?:€|£|\$|(?i:dhs?|mad|dt|tnd|da|eur|usd)\b))?`)

	// what may sit between size variants: "25 / 30", "12 | 18"
	priceSeparatorPattern = regexp.MustCompile(`^[\s/|-]*$`)

	// last resort: (<letters/spaces/punct>)(<number>) pairs across the whole text
	sweepPattern = regexp.MustCompile(`([\p{L}\s'’&.,:()\-–]+)\$?(\d{1,3}(?:[.,]\d{3})+(?:[.,]\d{1,2})?|\d+(?:[.,]\d{1,2})?)`)

	whitespacePattern = regexp.MustCompile(`\s+`)
)

const (
	maxHeaderRunes = 40
	maxHeaderWords = 6
	nameTrimChars  = " \t-–—:,.…*_|\"}]€£$"
	bulletChars    = " \t-–—*•·>_\"{["
)

// lineState carries the category context between lines
type lineState struct {
	category string
}

// lineRule is one per-line pass. Matched stops later rules for that line.
type lineRule struct {
	name  string
	apply func(line string, state *lineState) (item *domain.RawExtractedItem, matched bool)
}

// lineRules run in precedence order for every line. "Name: price" lines split on
// the colon before the general price rule gets to cut the price out.
var lineRules = []lineRule{
	{name: "category-header", apply: applyCategoryHeader},
	{name: "colon-line", apply: applyColonLine},
	{name: "price-line", apply: applyPriceLine},
}

// parseLineHeuristics is Strategy B passes 1-3. Conclusive only when it finds something.
func parseLineHeuristics(text string) ([]domain.RawExtractedItem, bool) {
	state := &lineState{}
	var items []domain.RawExtractedItem

	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}
		for _, rule := range lineRules {
			item, matched := rule.apply(line, state)
			if !matched {
				continue
			}
			if item != nil {
				items = append(items, *item)
			}
			break
		}
	}

	return items, len(items) > 0
}

// parseRegexSweep is the lowest-precision pass. It always concludes the chain.
func parseRegexSweep(text string) ([]domain.RawExtractedItem, bool) {
	items := []domain.RawExtractedItem{}

	for _, match := range sweepPattern.FindAllStringSubmatch(text, -1) {
		name := cleanItemName(whitespacePattern.ReplaceAllString(match[1], " "))
		if !hasLetter(name) {
			continue
		}
		price, ok := parsePriceToken(match[2])
		if !ok {
			continue
		}
		items = append(items, domain.RawExtractedItem{
			ProductName: name,
			Price:       price,
			Category:    domain.UncategorizedCategory,
		})
	}

	return items, true
}

func applyCategoryHeader(line string, state *lineState) (*domain.RawExtractedItem, bool) {
	category, ok := categoryHeader(line)
	if !ok {
		return nil, false
	}
	state.category = category
	return nil, true
}

// applyPriceLine takes the last price on the line as the item price. The name is
// the line with that price cut out; a trailing note like "(double)" is kept.
func applyPriceLine(line string, state *lineState) (*domain.RawExtractedItem, bool) {
	matches := pricePattern.FindAllStringIndex(line, -1)
	if len(matches) == 0 {
		return nil, false
	}

	// size variants such as "25 / 30" are one run priced at its first entry
	last := len(matches) - 1
	first := last
	for first > 0 && priceSeparatorPattern.MatchString(line[matches[first-1][1]:matches[first][0]]) {
		first--
	}

	name := cleanItemName(line[:matches[first][0]])
	if first == last {
		if note := strings.Trim(line[matches[last][1]:], nameTrimChars); note != "" {
			name = strings.TrimSpace(name + " " + note)
		}
	}

	return newHeuristicItem(name, line[matches[first][0]:matches[first][1]], state)
}

func applyColonLine(line string, state *lineState) (*domain.RawExtractedItem, bool) {
	match := colonLinePattern.FindStringSubmatch(line)
	if match == nil {
		return nil, false
	}
	priceMatch := pricePattern.FindString(match[2])
	if priceMatch == "" {
		return nil, false
	}
	return newHeuristicItem(match[1], priceMatch, state)
}

func newHeuristicItem(rawName, rawPrice string, state *lineState) (*domain.RawExtractedItem, bool) {
	name := cleanItemName(rawName)
	if !hasLetter(name) {
		return nil, false
	}
	price, ok := parsePriceToken(rawPrice)
	if !ok {
		return nil, false
	}

	category := state.category
	if category == "" {
		category = domain.UncategorizedCategory
	}

	return &domain.RawExtractedItem{
		ProductName: name,
		Price:       price,
		Category:    category,
	}, true
}

// categoryHeader recognises markdown headings, short ALL-CAPS lines and "Title Case:" lines
func categoryHeader(line string) (string, bool) {
	if match := markdownHeadingPattern.FindStringSubmatch(line); match != nil {
		name := cleanHeader(match[1])
		return name, hasLetter(name)
	}

	if isAllCapsHeader(line) {
		return cleanHeader(line), true
	}

	stripped := strings.Trim(line, "*_ ")
	if match := titleCaseHeaderPattern.FindStringSubmatch(stripped); match != nil {
		return cleanHeader(match[1]), true
	}

	return "", false
}

func isAllCapsHeader(line string) bool {
	text := strings.TrimRight(strings.Trim(line, "*_ "), ":")
	if utf8.RuneCountInString(text) > maxHeaderRunes || len(strings.Fields(text)) > maxHeaderWords {
		return false
	}

	letters := 0
	for _, r := range text {
		switch {
		case unicode.IsDigit(r), unicode.IsLower(r):
			return false
		case unicode.IsLetter(r):
			letters++
		}
	}
	return letters >= 2
}

func cleanHeader(s string) string {
	s = strings.Trim(s, "*_#: \t")
	return whitespacePattern.ReplaceAllString(s, " ")
}

// cleanItemName strips list bullets and the punctuation left behind by the removed price
func cleanItemName(s string) string {
	s = strings.TrimLeft(s, bulletChars)
	s = strings.TrimRight(s, nameTrimChars)
	s = strings.Trim(s, "*_ ")
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

// parsePriceToken reads a matched price like "$12.50", "12,5" or "1,200" with the
// same separator rules the sanitizer applies to string prices
func parsePriceToken(token string) (float64, bool) {
	if numericTokenRegex.FindString(token) == "" {
		return 0, false
	}
	return parsePriceString(token), true
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
