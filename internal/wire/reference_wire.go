package wire

import (
	"filmorate/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReference(r chi.Router, genreHandler *adaptor.GenreHandler, mpaHandler *adaptor.MpaHandler) {
	r.Get("/genres", genreHandler.GetGenres)
	r.Get("/genres/{id}", genreHandler.GetGenreByID)

	r.Get("/mpa", mpaHandler.GetMpaList)
	r.Get("/mpa/{id}", mpaHandler.GetMpaByID)
}
