package wire

import (
	"filmorate/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireFilm(r chi.Router, filmHandler *adaptor.FilmHandler) {
	r.Route("/films", func(r chi.Router) {
		r.Get("/", filmHandler.GetFilms)
		r.Post("/", filmHandler.CreateFilm)
		r.Put("/", filmHandler.UpdateFilm)

		// Static segment wins over {id} in chi's tree
		r.Get("/popular", filmHandler.GetPopular)
		r.Get("/{id}", filmHandler.GetFilmByID)

		r.Put("/{id}/like/{userId}", filmHandler.AddLike)
		r.Delete("/{id}/like/{userId}", filmHandler.RemoveLike)
	})
}
