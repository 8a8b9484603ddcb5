package usecase

import (
	"context"
	"fmt"

	"filmorate/internal/data/repository"
	"filmorate/internal/dto/response"

	"go.uber.org/zap"
)

type GenreService interface {
	GetAllGenres(ctx context.Context) ([]response.GenreResponse, error)
	GetGenre(ctx context.Context, id int) (*response.GenreResponse, error)
}

type MpaService interface {
	GetAllMpa(ctx context.Context) ([]response.MpaResponse, error)
	GetMpa(ctx context.Context, id int) (*response.MpaResponse, error)
}

type genreService struct {
	genreRepo repository.GenreRepository
	log       *zap.Logger
}

func NewGenreService(genreRepo repository.GenreRepository, log *zap.Logger) GenreService {
	return &genreService{
		genreRepo: genreRepo,
		log:       log.With(zap.String("service", "genre")),
	}
}

func (s *genreService) GetAllGenres(ctx context.Context) ([]response.GenreResponse, error) {
	genres, err := s.genreRepo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get genres", zap.Error(err))
		return nil, fmt.Errorf("get genres: %w", err)
	}

	out := make([]response.GenreResponse, len(genres))
	for i, g := range genres {
		out[i] = response.GenreToResponse(g)
	}
	return out, nil
}

func (s *genreService) GetGenre(ctx context.Context, id int) (*response.GenreResponse, error) {
	genre, err := s.genreRepo.FindByID(ctx, id)
	if err != nil {
		logFailure(s.log, "Failed to get genre", err, zap.Int("genre_id", id))
		return nil, err
	}

	resp := response.GenreToResponse(genre)
	return &resp, nil
}

type mpaService struct {
	mpaRepo repository.MpaRepository
	log     *zap.Logger
}

func NewMpaService(mpaRepo repository.MpaRepository, log *zap.Logger) MpaService {
	return &mpaService{
		mpaRepo: mpaRepo,
		log:     log.With(zap.String("service", "mpa")),
	}
}

func (s *mpaService) GetAllMpa(ctx context.Context) ([]response.MpaResponse, error) {
	ratings, err := s.mpaRepo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get MPA ratings", zap.Error(err))
		return nil, fmt.Errorf("get mpa: %w", err)
	}

	out := make([]response.MpaResponse, len(ratings))
	for i, m := range ratings {
		out[i] = response.MpaToResponse(m)
	}
	return out, nil
}

func (s *mpaService) GetMpa(ctx context.Context, id int) (*response.MpaResponse, error) {
	mpa, err := s.mpaRepo.FindByID(ctx, id)
	if err != nil {
		logFailure(s.log, "Failed to get MPA rating", err, zap.Int("mpa_id", id))
		return nil, err
	}

	resp := response.MpaToResponse(mpa)
	return &resp, nil
}
