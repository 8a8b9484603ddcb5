package entity

type Like struct {
	FilmID int64 `db:"film_id"`
	UserID int64 `db:"user_id"`
}
