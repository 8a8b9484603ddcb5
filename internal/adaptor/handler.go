package adaptor

import (
	"errors"
	"net/http"

	"filmorate/internal/usecase"
	"filmorate/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Film  *FilmHandler
	User  *UserHandler
	Genre *GenreHandler
	Mpa   *MpaHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Film:  NewFilmHandler(service.Film, config.Domain.TopFilmsDefault, log),
		User:  NewUserHandler(service.User, log),
		Genre: NewGenreHandler(service.Genre, log),
		Mpa:   NewMpaHandler(service.Mpa, log),
	}
}

// handleServiceError maps usecase errors to a response: not found is 404,
// validation is 400 and anything else is a 500 with a generic message.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var verr *usecase.ValidationError

	switch {
	case errors.As(err, &verr):
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, "Validation failed", verr.Fields)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrValidation):
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// pathID reads a positive int64 URL parameter, answering 400 itself when it is not one.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := utils.ParseID(chi.URLParam(r, name))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid "+name, map[string]string{name: "Must be a positive integer"})
		return 0, false
	}
	return id, true
}
