package repository

import (
	"context"
	"errors"
	"fmt"

	"filmorate/internal/data/entity"
	"filmorate/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type GenreRepository interface {
	FindByID(ctx context.Context, id int) (*entity.Genre, error)
	FindAll(ctx context.Context) ([]*entity.Genre, error)
}

type genreRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewGenreRepository(db database.Querier, log *zap.Logger) GenreRepository {
	return &genreRepository{
		db:  db,
		log: log.With(zap.String("repository", "genre")),
	}
}

func (r *genreRepository) FindByID(ctx context.Context, id int) (*entity.Genre, error) {
	query := `SELECT genre_id, name FROM genres WHERE genre_id = $1`

	var genre entity.Genre
	err := r.db.QueryRow(ctx, query, id).Scan(&genre.ID, &genre.Name)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("genre %d: %w", id, ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to find genre by ID",
			zap.Error(err),
			zap.Int("genre_id", id),
		)
		return nil, fmt.Errorf("find genre by id: %w", err)
	}

	return &genre, nil
}

func (r *genreRepository) FindAll(ctx context.Context) ([]*entity.Genre, error) {
	query := `SELECT genre_id, name FROM genres ORDER BY genre_id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all genres", zap.Error(err))
		return nil, fmt.Errorf("find all genres: %w", err)
	}
	defer rows.Close()

	var genres []*entity.Genre
	for rows.Next() {
		var genre entity.Genre
		if err := rows.Scan(&genre.ID, &genre.Name); err != nil {
			r.log.Error("Failed to scan genre row", zap.Error(err))
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		genres = append(genres, &genre)
	}

	return genres, rows.Err()
}
