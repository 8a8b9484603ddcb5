package adaptor

import (
	"net/http"

	"filmorate/internal/usecase"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

type GenreHandler struct {
	service usecase.GenreService
	log     *zap.Logger
}

func NewGenreHandler(service usecase.GenreService, log *zap.Logger) *GenreHandler {
	return &GenreHandler{
		service: service,
		log:     log.With(zap.String("handler", "genre")),
	}
}

// GetGenres handles GET /genres
func (h *GenreHandler) GetGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.service.GetAllGenres(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get genres")
		return
	}

	utils.ResponseSuccess(w, "Genres retrieved successfully", genres)
}

// GetGenreByID handles GET /genres/{id}
func (h *GenreHandler) GetGenreByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	genre, err := h.service.GetGenre(r.Context(), int(id))
	if err != nil {
		handleServiceError(w, h.log, err, "get genre")
		return
	}

	utils.ResponseSuccess(w, "Genre retrieved successfully", genre)
}

type MpaHandler struct {
	service usecase.MpaService
	log     *zap.Logger
}

func NewMpaHandler(service usecase.MpaService, log *zap.Logger) *MpaHandler {
	return &MpaHandler{
		service: service,
		log:     log.With(zap.String("handler", "mpa")),
	}
}

// GetMpaList handles GET /mpa
func (h *MpaHandler) GetMpaList(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.service.GetAllMpa(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get mpa")
		return
	}

	utils.ResponseSuccess(w, "MPA ratings retrieved successfully", ratings)
}

// GetMpaByID handles GET /mpa/{id}
func (h *MpaHandler) GetMpaByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	mpa, err := h.service.GetMpa(r.Context(), int(id))
	if err != nil {
		handleServiceError(w, h.log, err, "get mpa")
		return
	}

	utils.ResponseSuccess(w, "MPA rating retrieved successfully", mpa)
}
