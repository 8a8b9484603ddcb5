package response

import (
	"filmorate/internal/data/entity"
)

type FilmResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ReleaseDate string          `json:"releaseDate"`
	Duration    int             `json:"duration"`
	Mpa         MpaResponse     `json:"mpa"`
	Genres      []GenreResponse `json:"genres"`
	Likes       []int64         `json:"likes"`
}

// Helper converters
func FilmToResponse(film *entity.FilmDetail) FilmResponse {
	genres := make([]GenreResponse, len(film.Genres))
	for i := range film.Genres {
		genres[i] = GenreToResponse(&film.Genres[i])
	}

	likes := film.Likes
	if likes == nil {
		likes = []int64{}
	}

	return FilmResponse{
		ID:          film.ID,
		Name:        film.Name,
		Description: film.Description,
		ReleaseDate: film.ReleaseDate.Format("2006-01-02"),
		Duration:    film.Duration,
		Mpa:         MpaToResponse(&film.Mpa),
		Genres:      genres,
		Likes:       likes,
	}
}

func FilmsToResponse(films []entity.FilmDetail) []FilmResponse {
	out := make([]FilmResponse, len(films))
	for i := range films {
		out[i] = FilmToResponse(&films[i])
	}
	return out
}
