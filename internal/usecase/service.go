package usecase

import (
	"filmorate/internal/data/repository"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Film  FilmService
	User  UserService
	Genre GenreService
	Mpa   MpaService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) (*Service, error) {
	policy, err := ParseFriendshipPolicy(config.Domain.FriendshipPolicy)
	if err != nil {
		return nil, err
	}

	return &Service{
		Film:  NewFilmService(repo, NewFilmAssociations(log), log),
		User:  NewUserService(repo, NewFriendships(log), policy, log),
		Genre: NewGenreService(repo.Genre, log),
		Mpa:   NewMpaService(repo.Mpa, log),
	}, nil
}
