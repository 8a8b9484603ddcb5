package entity

type FilmGenre struct {
	FilmID  int64 `db:"film_id"`
	GenreID int   `db:"genre_id"`
}
