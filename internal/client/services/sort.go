package services

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/blogclient/internal/client/models"
)

// SortKey selects the post listing order. The zero value is newest first.
type SortKey string

const (
	SortNewest    SortKey = ""
	SortIDAsc     SortKey = "idAsc"
	SortIDDesc    SortKey = "idDesc"
	SortTitleAsc  SortKey = "titleAsc"
	SortTitleDesc SortKey = "titleDesc"
)

// ParseSortKey accepts "" and the four named orders.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case SortNewest, SortIDAsc, SortIDDesc, SortTitleAsc, SortTitleDesc:
		return k, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// SortPosts returns a sorted copy. Equal keys keep their input order.
// Posts whose creation date cannot be parsed sort after dated ones.
func SortPosts(posts []models.Post, key SortKey) []models.Post {
	out := slices.Clone(posts)

	var order func(a, b models.Post) int
	switch key {
	case SortIDAsc:
		order = func(a, b models.Post) int { return cmp.Compare(a.ID, b.ID) }
	case SortIDDesc:
		order = func(a, b models.Post) int { return cmp.Compare(b.ID, a.ID) }
	case SortTitleAsc:
		order = func(a, b models.Post) int { return strings.Compare(a.Title, b.Title) }
	case SortTitleDesc:
		order = func(a, b models.Post) int { return strings.Compare(b.Title, a.Title) }
	default:
		order = func(a, b models.Post) int { return b.CreatedAt().Compare(a.CreatedAt()) }
	}

	slices.SortStableFunc(out, order)
	return out
}

// FilterPosts keeps posts whose title contains search, ignoring case. An
// empty search keeps everything.
func FilterPosts(posts []models.Post, search string) []models.Post {
	if search == "" {
		return posts
	}
	needle := strings.ToLower(search)

	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if strings.Contains(strings.ToLower(p.Title), needle) {
			out = append(out, p)
		}
	}
	return out
}
