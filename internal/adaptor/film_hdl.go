package adaptor

import (
	"net/http"

	"filmorate/internal/dto/request"
	"filmorate/internal/usecase"
	"filmorate/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type FilmHandler struct {
	service    usecase.FilmService
	defaultTop int
	log        *zap.Logger
}

func NewFilmHandler(service usecase.FilmService, defaultTop int, log *zap.Logger) *FilmHandler {
	return &FilmHandler{
		service:    service,
		defaultTop: defaultTop,
		log:        log.With(zap.String("handler", "film")),
	}
}

// GetFilms handles GET /films
func (h *FilmHandler) GetFilms(w http.ResponseWriter, r *http.Request) {
	films, err := h.service.GetAllFilms(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get films")
		return
	}

	utils.ResponseSuccess(w, "Films retrieved successfully", films)
}

// GetFilmByID handles GET /films/{id}
func (h *FilmHandler) GetFilmByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	film, err := h.service.GetFilm(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get film")
		return
	}

	utils.ResponseSuccess(w, "Film retrieved successfully", film)
}

// CreateFilm handles POST /films
func (h *FilmHandler) CreateFilm(w http.ResponseWriter, r *http.Request) {
	var req request.FilmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	film, err := h.service.CreateFilm(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create film")
		return
	}

	utils.ResponseCreated(w, "Film created successfully", film)
}

// UpdateFilm handles PUT /films; the id travels in the body.
func (h *FilmHandler) UpdateFilm(w http.ResponseWriter, r *http.Request) {
	var req request.FilmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	film, err := h.service.UpdateFilm(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update film")
		return
	}

	utils.ResponseSuccess(w, "Film updated successfully", film)
}

// AddLike handles PUT /films/{id}/like/{userId}
func (h *FilmHandler) AddLike(w http.ResponseWriter, r *http.Request) {
	filmID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	if err := h.service.AddLike(r.Context(), filmID, userID); err != nil {
		handleServiceError(w, h.log, err, "add like")
		return
	}

	utils.ResponseSuccess(w, "Like added successfully", nil)
}

// RemoveLike handles DELETE /films/{id}/like/{userId}
func (h *FilmHandler) RemoveLike(w http.ResponseWriter, r *http.Request) {
	filmID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	if err := h.service.RemoveLike(r.Context(), filmID, userID); err != nil {
		handleServiceError(w, h.log, err, "remove like")
		return
	}

	utils.ResponseSuccess(w, "Like removed successfully", nil)
}

// GetPopular handles GET /films/popular?count=N
func (h *FilmHandler) GetPopular(w http.ResponseWriter, r *http.Request) {
	count, err := utils.ParseOptionalInt(r.URL.Query().Get("count"), h.defaultTop)
	if err != nil {
		h.log.Warn("Invalid count", zap.String("count", r.URL.Query().Get("count")))
		utils.ResponseBadRequest(w, "Invalid count", map[string]string{"count": "Must be an integer"})
		return
	}

	films, err := h.service.TopFilms(r.Context(), count)
	if err != nil {
		handleServiceError(w, h.log, err, "get popular films")
		return
	}

	utils.ResponseSuccess(w, "Popular films retrieved successfully", films)
}
