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

type FilmRepository interface {
	// Create inserts the scalar attributes and stores the assigned id in film.ID.
	Create(ctx context.Context, film *entity.Film) error
	FindByID(ctx context.Context, id int64) (*entity.Film, error)
	FindAll(ctx context.Context) ([]*entity.Film, error)
	// Update overwrites the scalar attributes of film.ID; ErrNotFound if there is no such film.
	Update(ctx context.Context, film *entity.Film) error
}

type filmRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewFilmRepository(db database.Querier, log *zap.Logger) FilmRepository {
	return &filmRepository{
		db:  db,
		log: log.With(zap.String("repository", "film")),
	}
}

func (r *filmRepository) Create(ctx context.Context, film *entity.Film) error {
	query := `
		INSERT INTO films (name, description, release_date, duration, mpa_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING film_id
	`

	err := r.db.QueryRow(ctx, query,
		film.Name,
		film.Description,
		film.ReleaseDate,
		film.Duration,
		film.MpaID,
	).Scan(&film.ID)

	if err != nil {
		r.log.Error("Failed to create film",
			zap.Error(err),
			zap.String("name", film.Name),
		)
		return fmt.Errorf("failed to create film: %w", err)
	}

	return nil
}

func (r *filmRepository) FindByID(ctx context.Context, id int64) (*entity.Film, error) {
	query := `
		SELECT film_id, name, description, release_date, duration, mpa_id
		FROM films
		WHERE film_id = $1
	`

	var film entity.Film
	err := r.db.QueryRow(ctx, query, id).Scan(
		&film.ID,
		&film.Name,
		&film.Description,
		&film.ReleaseDate,
		&film.Duration,
		&film.MpaID,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("film %d: %w", id, ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to find film by ID",
			zap.Error(err),
			zap.Int64("film_id", id),
		)
		return nil, fmt.Errorf("failed to find film: %w", err)
	}

	return &film, nil
}

func (r *filmRepository) FindAll(ctx context.Context) ([]*entity.Film, error) {
	query := `
		SELECT film_id, name, description, release_date, duration, mpa_id
		FROM films
		ORDER BY film_id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all films", zap.Error(err))
		return nil, fmt.Errorf("failed to find films: %w", err)
	}
	defer rows.Close()

	var films []*entity.Film
	for rows.Next() {
		var film entity.Film
		err := rows.Scan(
			&film.ID,
			&film.Name,
			&film.Description,
			&film.ReleaseDate,
			&film.Duration,
			&film.MpaID,
		)
		if err != nil {
			r.log.Error("Failed to scan film row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan film: %w", err)
		}
		films = append(films, &film)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	r.log.Debug("Films found", zap.Int("count", len(films)))

	return films, nil
}

func (r *filmRepository) Update(ctx context.Context, film *entity.Film) error {
	query := `
		UPDATE films
		SET name = $2, description = $3, release_date = $4, duration = $5, mpa_id = $6
		WHERE film_id = $1
	`

	result, err := r.db.Exec(ctx, query,
		film.ID,
		film.Name,
		film.Description,
		film.ReleaseDate,
		film.Duration,
		film.MpaID,
	)

	if err != nil {
		r.log.Error("Failed to update film",
			zap.Error(err),
			zap.Int64("film_id", film.ID),
		)
		return fmt.Errorf("failed to update film: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("film %d: %w", film.ID, ErrNotFound)
	}

	return nil
}
