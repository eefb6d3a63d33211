package catalog

import (
	"strings"

	"github.com/iliyamo/blackmouth-booking/internal/model"
)

// AllToken disables the size or ingredient criterion.
const AllToken = "all"

// Size tokens accepted by the size criterion.
const (
	SizeClassic    = "clásica"
	SizeIndividual = "individual"
)

// SizeTokens lists the size options in display order.
var SizeTokens = []string{AllToken, SizeClassic, SizeIndividual}

// FilterState holds the three independent menu criteria.  The zero value
// is not "show everything"; use DefaultFilter for that.
type FilterState struct {
	Size       string `json:"size"`
	Ingredient string `json:"ingredient"`
	Search     string `json:"search"`
}

// DefaultFilter returns the state that matches the whole catalog.
func DefaultFilter() FilterState {
	return FilterState{Size: AllToken, Ingredient: AllToken}
}

// Normalized fills empty tokens with AllToken and lowercases them.
func (f FilterState) Normalized() FilterState {
	f.Size = strings.ToLower(strings.TrimSpace(f.Size))
	if f.Size == "" {
		f.Size = AllToken
	}
	f.Ingredient = strings.ToLower(strings.TrimSpace(f.Ingredient))
	if f.Ingredient == "" {
		f.Ingredient = AllToken
	}
	return f
}

// Active reports whether any criterion narrows the catalog.  The search
// text counts as soon as it is non-empty, even if it is only blanks.
func (f FilterState) Active() bool {
	return f.Size != AllToken || f.Ingredient != AllToken || f.Search != ""
}

// ValidSize reports whether token is one of SizeTokens.
func ValidSize(token string) bool {
	for _, s := range SizeTokens {
		if s == token {
			return true
		}
	}
	return false
}

// Filter returns the subsequence of items matching every criterion of f,
// preserving the input order.
func Filter(items []model.CatalogItem, f FilterState) []model.CatalogItem {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]model.CatalogItem, 0, len(items))
	for _, it := range items {
		name := strings.ToLower(it.Name)
		if f.Size != AllToken && !strings.Contains(name, f.Size) {
			continue
		}
		if f.Ingredient != AllToken && !strings.HasPrefix(name, f.Ingredient) {
			continue
		}
		if search != "" &&
			!strings.Contains(name, search) &&
			!strings.Contains(strings.ToLower(it.Description), search) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// IngredientTokens derives the ingredient options: AllToken followed by the
// lowercased first word of every item name, deduplicated in first-seen order.
func IngredientTokens(items []model.CatalogItem) []string {
	out := []string{AllToken}
	seen := map[string]bool{AllToken: true}
	for _, it := range items {
		words := strings.Fields(it.Name)
		if len(words) == 0 {
			continue
		}
		tok := strings.ToLower(words[0])
		if !seen[tok] {
			seen[tok] = true
			out = append(out, tok)
		}
	}
	return out
}
