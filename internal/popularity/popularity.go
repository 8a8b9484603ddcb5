// Package popularity ranks films by how many users liked them.
package popularity

import (
	"cmp"
	"errors"
	"slices"

	"filmorate/internal/data/entity"
)

// DefaultCount is the size of the ranking when the caller does not ask for one.
const DefaultCount = 10

// ErrInvalidCount is returned by Top for a non-positive n.
var ErrInvalidCount = errors.New("count must be a positive integer")

// Top returns the n most liked films, most likes first. Films with equal like
// counts are ordered by ascending id. The input slice is not modified.
func Top(films []entity.FilmDetail, n int) ([]entity.FilmDetail, error) {
	if n <= 0 {
		return nil, ErrInvalidCount
	}

	ranked := slices.Clone(films)
	slices.SortFunc(ranked, func(a, b entity.FilmDetail) int {
		if c := cmp.Compare(b.LikeCount(), a.LikeCount()); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked, nil
}
