package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"filmorate/internal/data/entity"
	"filmorate/internal/data/repository"
	"filmorate/internal/dto/request"
	"filmorate/internal/dto/response"
	"filmorate/internal/popularity"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

type FilmService interface {
	GetAllFilms(ctx context.Context) ([]response.FilmResponse, error)
	GetFilm(ctx context.Context, id int64) (*response.FilmResponse, error)
	CreateFilm(ctx context.Context, req *request.FilmRequest) (*response.FilmResponse, error)
	UpdateFilm(ctx context.Context, req *request.FilmRequest) (*response.FilmResponse, error)
	AddLike(ctx context.Context, filmID, userID int64) error
	RemoveLike(ctx context.Context, filmID, userID int64) error
	TopFilms(ctx context.Context, count int) ([]response.FilmResponse, error)
}

type filmService struct {
	repo  *repository.Repository
	assoc *FilmAssociations
	log   *zap.Logger
}

func NewFilmService(repo *repository.Repository, assoc *FilmAssociations, log *zap.Logger) FilmService {
	return &filmService{
		repo:  repo,
		assoc: assoc,
		log:   log.With(zap.String("service", "film")),
	}
}

func (s *filmService) GetAllFilms(ctx context.Context) ([]response.FilmResponse, error) {
	films, err := s.allDetails(ctx)
	if err != nil {
		return nil, err
	}

	s.log.Info("Films retrieved", zap.Int("count", len(films)))
	return response.FilmsToResponse(films), nil
}

func (s *filmService) GetFilm(ctx context.Context, id int64) (*response.FilmResponse, error) {
	film, err := s.detail(ctx, s.repo, id)
	if err != nil {
		logFailure(s.log, "Failed to get film", err, zap.Int64("film_id", id))
		return nil, err
	}

	resp := response.FilmToResponse(film)
	return &resp, nil
}

func (s *filmService) CreateFilm(ctx context.Context, req *request.FilmRequest) (*response.FilmResponse, error) {
	film, err := filmFromRequest(req)
	if err != nil {
		s.log.Warn("Invalid film", zap.Error(err))
		return nil, err
	}
	genreIDs, likes := req.GenreIDs(), req.Likes

	var created *entity.FilmDetail
	err = s.repo.WithinTx(ctx, func(tx *repository.Repository) error {
		if err := s.checkReferences(ctx, tx, film.MpaID, genreIDs, likes); err != nil {
			return err
		}
		if err := tx.Film.Create(ctx, film); err != nil {
			return fmt.Errorf("create film: %w", err)
		}
		if err := s.assoc.Sync(ctx, tx, film.ID, genreIDs, likes); err != nil {
			return err
		}
		created, err = s.detail(ctx, tx, film.ID)
		return err
	})
	if err != nil {
		logFailure(s.log, "Failed to create film", err, zap.String("name", req.Name))
		return nil, err
	}

	s.log.Info("Film created",
		zap.Int64("film_id", created.ID),
		zap.String("name", created.Name),
		zap.Int("genre_count", len(created.Genres)),
	)

	resp := response.FilmToResponse(created)
	return &resp, nil
}

func (s *filmService) UpdateFilm(ctx context.Context, req *request.FilmRequest) (*response.FilmResponse, error) {
	film, err := filmFromRequest(req)
	if err != nil {
		s.log.Warn("Invalid film", zap.Int64("film_id", req.ID), zap.Error(err))
		return nil, err
	}
	if film.IsNew() {
		return nil, invalid("id", "Must be greater than 0")
	}
	genreIDs, likes := req.GenreIDs(), req.Likes

	var updated *entity.FilmDetail
	err = s.repo.WithinTx(ctx, func(tx *repository.Repository) error {
		// A missing film fails here, before references or associations are checked.
		if err := tx.Film.Update(ctx, film); err != nil {
			return fmt.Errorf("update film: %w", err)
		}
		if _, err := tx.Mpa.FindByID(ctx, film.MpaID); err != nil {
			return fmt.Errorf("check mpa: %w", err)
		}
		if err := s.checkReferences(ctx, tx, 0, genreIDs, likes); err != nil {
			return err
		}
		if err := s.assoc.Sync(ctx, tx, film.ID, genreIDs, likes); err != nil {
			return err
		}
		updated, err = s.detail(ctx, tx, film.ID)
		return err
	})
	if err != nil {
		logFailure(s.log, "Failed to update film", err, zap.Int64("film_id", req.ID))
		return nil, err
	}

	s.log.Info("Film updated",
		zap.Int64("film_id", updated.ID),
		zap.Int("genre_count", len(updated.Genres)),
		zap.Int("like_count", updated.LikeCount()),
	)

	resp := response.FilmToResponse(updated)
	return &resp, nil
}

func (s *filmService) AddLike(ctx context.Context, filmID, userID int64) error {
	err := s.repo.WithinTx(ctx, func(tx *repository.Repository) error {
		likes, err := s.likesOf(ctx, tx, filmID, userID)
		if err != nil {
			return err
		}
		if slices.Contains(likes, userID) {
			return nil
		}
		return s.assoc.SyncLikes(ctx, tx, filmID, append(likes, userID))
	})
	if err != nil {
		logFailure(s.log, "Failed to add like", err, zap.Int64("film_id", filmID), zap.Int64("user_id", userID))
		return err
	}

	s.log.Info("Like added", zap.Int64("film_id", filmID), zap.Int64("user_id", userID))
	return nil
}

func (s *filmService) RemoveLike(ctx context.Context, filmID, userID int64) error {
	err := s.repo.WithinTx(ctx, func(tx *repository.Repository) error {
		likes, err := s.likesOf(ctx, tx, filmID, userID)
		if err != nil {
			return err
		}
		if !slices.Contains(likes, userID) {
			return fmt.Errorf("user %d on film %d: %w", userID, filmID, ErrLikeNotFound)
		}
		return s.assoc.SyncLikes(ctx, tx, filmID, slices.DeleteFunc(likes, func(id int64) bool { return id == userID }))
	})
	if err != nil {
		logFailure(s.log, "Failed to remove like", err, zap.Int64("film_id", filmID), zap.Int64("user_id", userID))
		return err
	}

	s.log.Info("Like removed", zap.Int64("film_id", filmID), zap.Int64("user_id", userID))
	return nil
}

func (s *filmService) TopFilms(ctx context.Context, count int) ([]response.FilmResponse, error) {
	films, err := s.allDetails(ctx)
	if err != nil {
		return nil, err
	}

	top, err := popularity.Top(films, count)
	if errors.Is(err, popularity.ErrInvalidCount) {
		s.log.Warn("Invalid popular count", zap.Int("count", count))
		return nil, invalid("count", err.Error())
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("Popular films retrieved", zap.Int("count", count), zap.Int("returned", len(top)))
	return response.FilmsToResponse(top), nil
}

// likesOf checks that both the film and the user exist and returns the film's likes.
func (s *filmService) likesOf(ctx context.Context, repo *repository.Repository, filmID, userID int64) ([]int64, error) {
	if _, err := repo.Film.FindByID(ctx, filmID); err != nil {
		return nil, err
	}
	if _, err := repo.User.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	likes, err := repo.Like.FindByFilmID(ctx, filmID)
	if err != nil {
		return nil, fmt.Errorf("load likes: %w", err)
	}
	return likes, nil
}

// checkReferences verifies that the rating (when mpaID > 0), every genre and every liking user exist.
func (s *filmService) checkReferences(ctx context.Context, repo *repository.Repository, mpaID int, genreIDs []int, userIDs []int64) error {
	if mpaID > 0 {
		if _, err := repo.Mpa.FindByID(ctx, mpaID); err != nil {
			return fmt.Errorf("check mpa: %w", err)
		}
	}

	if len(genreIDs) > 0 {
		genres, err := repo.Genre.FindAll(ctx)
		if err != nil {
			return fmt.Errorf("load genres: %w", err)
		}
		for _, id := range genreIDs {
			if !slices.ContainsFunc(genres, func(g *entity.Genre) bool { return g.ID == id }) {
				return fmt.Errorf("genre %d: %w", id, ErrNotFound)
			}
		}
	}

	if len(userIDs) > 0 {
		users, err := repo.User.FindByIDs(ctx, userIDs)
		if err != nil {
			return fmt.Errorf("load users: %w", err)
		}
		for _, id := range userIDs {
			if !slices.ContainsFunc(users, func(u *entity.User) bool { return u.ID == id }) {
				return fmt.Errorf("user %d: %w", id, ErrNotFound)
			}
		}
	}

	return nil
}

func (s *filmService) detail(ctx context.Context, repo *repository.Repository, id int64) (*entity.FilmDetail, error) {
	film, err := repo.Film.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	mpa, err := repo.Mpa.FindByID(ctx, film.MpaID)
	if err != nil {
		return nil, fmt.Errorf("load mpa: %w", err)
	}
	genreIDs, err := repo.FilmGenre.FindByFilmID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load film genres: %w", err)
	}
	likes, err := repo.Like.FindByFilmID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load likes: %w", err)
	}
	genres, err := s.genreIndex(ctx, repo)
	if err != nil {
		return nil, err
	}

	detail := newFilmDetail(film, mpa, genreIDs, likes, genres)
	return &detail, nil
}

// allDetails decorates every film with four table scans instead of one lookup per film.
func (s *filmService) allDetails(ctx context.Context) ([]entity.FilmDetail, error) {
	films, err := s.repo.Film.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get films", zap.Error(err))
		return nil, fmt.Errorf("get films: %w", err)
	}

	mpaList, err := s.repo.Mpa.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load mpa: %w", err)
	}
	mpaByID := make(map[int]*entity.Mpa, len(mpaList))
	for _, m := range mpaList {
		mpaByID[m.ID] = m
	}

	genres, err := s.genreIndex(ctx, s.repo)
	if err != nil {
		return nil, err
	}

	filmGenres, err := s.repo.FilmGenre.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load film genres: %w", err)
	}
	genresByFilm := make(map[int64][]int)
	for _, fg := range filmGenres {
		genresByFilm[fg.FilmID] = append(genresByFilm[fg.FilmID], fg.GenreID)
	}

	likes, err := s.repo.Like.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load likes: %w", err)
	}
	likesByFilm := make(map[int64][]int64)
	for _, l := range likes {
		likesByFilm[l.FilmID] = append(likesByFilm[l.FilmID], l.UserID)
	}

	out := make([]entity.FilmDetail, 0, len(films))
	for _, film := range films {
		mpa, ok := mpaByID[film.MpaID]
		if !ok {
			return nil, fmt.Errorf("mpa %d of film %d: %w", film.MpaID, film.ID, ErrNotFound)
		}
		out = append(out, newFilmDetail(film, mpa, genresByFilm[film.ID], likesByFilm[film.ID], genres))
	}
	return out, nil
}

func (s *filmService) genreIndex(ctx context.Context, repo *repository.Repository) (map[int]entity.Genre, error) {
	genres, err := repo.Genre.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load genres: %w", err)
	}
	idx := make(map[int]entity.Genre, len(genres))
	for _, g := range genres {
		idx[g.ID] = *g
	}
	return idx, nil
}

// newFilmDetail orders genres and likes by id; persisted sets carry no order.
func newFilmDetail(film *entity.Film, mpa *entity.Mpa, genreIDs []int, likes []int64, genres map[int]entity.Genre) entity.FilmDetail {
	ids := slices.Clone(genreIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	detail := entity.FilmDetail{
		Film:   *film,
		Mpa:    *mpa,
		Genres: make([]entity.Genre, 0, len(ids)),
		Likes:  slices.Clone(likes),
	}
	for _, id := range ids {
		genre, ok := genres[id]
		if !ok {
			genre = entity.Genre{ID: id}
		}
		detail.Genres = append(detail.Genres, genre)
	}
	slices.Sort(detail.Likes)
	return detail
}

func filmFromRequest(req *request.FilmRequest) (*entity.Film, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	releaseDate, err := time.Parse(utils.DateLayout, req.ReleaseDate)
	if err != nil {
		return nil, invalid("releaseDate", err.Error())
	}

	film := &entity.Film{
		Name:        req.Name,
		Description: req.Description,
		ReleaseDate: releaseDate,
		Duration:    req.Duration,
		MpaID:       req.Mpa.ID,
	}
	film.ID = req.ID
	return film, nil
}
