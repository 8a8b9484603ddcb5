package entity

import (
	"time"
)

// EarliestReleaseDate is the first public film screening; nothing can be released before it.
var EarliestReleaseDate = time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)

type Film struct {
	Identity
	Name        string    `db:"name"`
	Description string    `db:"description"`
	ReleaseDate time.Time `db:"release_date"`
	Duration    int       `db:"duration"`
	MpaID       int       `db:"mpa_id"`
}

// FilmDetail is a film together with its association sets and resolved reference names.
// Genres are ordered by ascending id, likes by ascending user id.
type FilmDetail struct {
	Film
	Mpa    Mpa
	Genres []Genre
	Likes  []int64
}

// LikeCount is the popularity key.
func (f FilmDetail) LikeCount() int {
	return len(f.Likes)
}
