package repository

import (
	"context"
	"fmt"

	"filmorate/internal/data/entity"
	"filmorate/pkg/database"

	"go.uber.org/zap"
)

type FilmGenreRepository interface {
	// Bridge table operations
	FindByFilmID(ctx context.Context, filmID int64) ([]int, error)
	FindAll(ctx context.Context) ([]entity.FilmGenre, error)
	CreateBatch(ctx context.Context, filmID int64, genreIDs []int) error
	DeleteBatch(ctx context.Context, filmID int64, genreIDs []int) error
}

type filmGenreRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewFilmGenreRepository(db database.Querier, log *zap.Logger) FilmGenreRepository {
	return &filmGenreRepository{
		db:  db,
		log: log.With(zap.String("repository", "film_genre")),
	}
}

func (r *filmGenreRepository) FindByFilmID(ctx context.Context, filmID int64) ([]int, error) {
	query := `SELECT genre_id FROM film_genres WHERE film_id = $1`

	rows, err := r.db.Query(ctx, query, filmID)
	if err != nil {
		r.log.Error("Failed to find film_genres by film ID",
			zap.Error(err),
			zap.Int64("film_id", filmID),
		)
		return nil, fmt.Errorf("failed to find film_genres: %w", err)
	}
	defer rows.Close()

	var genreIDs []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			r.log.Error("Failed to scan film_genre row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan film_genre: %w", err)
		}
		genreIDs = append(genreIDs, id)
	}

	return genreIDs, rows.Err()
}

func (r *filmGenreRepository) FindAll(ctx context.Context) ([]entity.FilmGenre, error) {
	query := `SELECT film_id, genre_id FROM film_genres`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all film_genres", zap.Error(err))
		return nil, fmt.Errorf("failed to find film_genres: %w", err)
	}
	defer rows.Close()

	var pairs []entity.FilmGenre
	for rows.Next() {
		var fg entity.FilmGenre
		if err := rows.Scan(&fg.FilmID, &fg.GenreID); err != nil {
			r.log.Error("Failed to scan film_genre row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan film_genre: %w", err)
		}
		pairs = append(pairs, fg)
	}

	return pairs, rows.Err()
}

func (r *filmGenreRepository) CreateBatch(ctx context.Context, filmID int64, genreIDs []int) error {
	if len(genreIDs) == 0 {
		return nil
	}

	// Build batch insert
	query := `INSERT INTO film_genres (film_id, genre_id) VALUES `
	args := []interface{}{filmID}

	for i, genreID := range genreIDs {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($1, $%d)", i+2)
		args = append(args, genreID)
	}

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to create batch film_genres",
			zap.Error(err),
			zap.Int64("film_id", filmID),
			zap.Ints("genre_ids", genreIDs),
		)
		return fmt.Errorf("failed to create batch film_genres: %w", err)
	}

	return nil
}

func (r *filmGenreRepository) DeleteBatch(ctx context.Context, filmID int64, genreIDs []int) error {
	if len(genreIDs) == 0 {
		return nil
	}

	query := `DELETE FROM film_genres WHERE film_id = $1 AND genre_id = ANY($2)`

	_, err := r.db.Exec(ctx, query, filmID, genreIDs)
	if err != nil {
		r.log.Error("Failed to delete film_genres",
			zap.Error(err),
			zap.Int64("film_id", filmID),
			zap.Ints("genre_ids", genreIDs),
		)
		return fmt.Errorf("failed to delete film_genres: %w", err)
	}

	return nil
}
