package storefront

import (
	"cmp"
	"slices"
	"strings"

	"github.com/KingGimer44/VideoJuego/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLocale orders titles the way the storefront's audience expects.
var DefaultLocale = language.Spanish

// FilterAndSort returns a new slice holding the games matching q, ordered
// by q's sort key. games is left untouched.
func FilterAndSort(games []models.Game, q models.ListGamesQuery) []models.Game {
	return FilterAndSortLocale(games, q, DefaultLocale)
}

// FilterAndSortLocale is FilterAndSort with an explicit title collation locale.
func FilterAndSortLocale(games []models.Game, q models.ListGamesQuery, tag language.Tag) []models.Game {
	search := strings.ToLower(q.Search)
	out := make([]models.Game, 0, len(games))
	for _, g := range games {
		if search != "" &&
			!strings.Contains(strings.ToLower(g.Title), search) &&
			!strings.Contains(strings.ToLower(g.Genre), search) {
			continue
		}
		if q.FiltersGenre() && g.Genre != q.Genre {
			continue
		}
		out = append(out, g)
	}

	switch q.SortKey() {
	case models.SortRating:
		slices.SortStableFunc(out, func(a, b models.Game) int { return cmp.Compare(b.Rating, a.Rating) })
	case models.SortPrice:
		slices.SortStableFunc(out, func(a, b models.Game) int { return cmp.Compare(a.Price, b.Price) })
	default:
		// Collators keep scratch buffers, one per call.
		c := collate.New(tag)
		slices.SortStableFunc(out, func(a, b models.Game) int { return c.CompareString(a.Title, b.Title) })
	}
	return out
}
