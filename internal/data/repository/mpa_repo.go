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

type MpaRepository interface {
	FindByID(ctx context.Context, id int) (*entity.Mpa, error)
	FindAll(ctx context.Context) ([]*entity.Mpa, error)
}

type mpaRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewMpaRepository(db database.Querier, log *zap.Logger) MpaRepository {
	return &mpaRepository{
		db:  db,
		log: log.With(zap.String("repository", "mpa")),
	}
}

func (r *mpaRepository) FindByID(ctx context.Context, id int) (*entity.Mpa, error) {
	query := `SELECT mpa_id, name FROM mpa WHERE mpa_id = $1`

	var rating entity.Mpa
	err := r.db.QueryRow(ctx, query, id).Scan(&rating.ID, &rating.Name)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("mpa %d: %w", id, ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to find MPA rating by ID",
			zap.Error(err),
			zap.Int("mpa_id", id),
		)
		return nil, fmt.Errorf("find mpa by id: %w", err)
	}

	return &rating, nil
}

func (r *mpaRepository) FindAll(ctx context.Context) ([]*entity.Mpa, error) {
	query := `SELECT mpa_id, name FROM mpa ORDER BY mpa_id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all MPA ratings", zap.Error(err))
		return nil, fmt.Errorf("find all mpa ratings: %w", err)
	}
	defer rows.Close()

	var ratings []*entity.Mpa
	for rows.Next() {
		var rating entity.Mpa
		if err := rows.Scan(&rating.ID, &rating.Name); err != nil {
			r.log.Error("Failed to scan MPA row", zap.Error(err))
			return nil, fmt.Errorf("scan mpa row: %w", err)
		}
		ratings = append(ratings, &rating)
	}

	return ratings, rows.Err()
}
