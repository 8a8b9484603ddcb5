package repository

import (
	"context"
	"fmt"

	"filmorate/internal/data/entity"
	"filmorate/pkg/database"

	"go.uber.org/zap"
)

type LikeRepository interface {
	FindByFilmID(ctx context.Context, filmID int64) ([]int64, error)
	FindAll(ctx context.Context) ([]entity.Like, error)
	CreateBatch(ctx context.Context, filmID int64, userIDs []int64) error
	DeleteBatch(ctx context.Context, filmID int64, userIDs []int64) error
}

type likeRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewLikeRepository(db database.Querier, log *zap.Logger) LikeRepository {
	return &likeRepository{
		db:  db,
		log: log.With(zap.String("repository", "like")),
	}
}

func (r *likeRepository) FindByFilmID(ctx context.Context, filmID int64) ([]int64, error) {
	query := `SELECT user_id FROM likes WHERE film_id = $1`

	rows, err := r.db.Query(ctx, query, filmID)
	if err != nil {
		r.log.Error("Failed to find likes by film ID",
			zap.Error(err),
			zap.Int64("film_id", filmID),
		)
		return nil, fmt.Errorf("failed to find likes: %w", err)
	}
	defer rows.Close()

	var userIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			r.log.Error("Failed to scan like row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan like: %w", err)
		}
		userIDs = append(userIDs, id)
	}

	return userIDs, rows.Err()
}

func (r *likeRepository) FindAll(ctx context.Context) ([]entity.Like, error) {
	query := `SELECT film_id, user_id FROM likes`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all likes", zap.Error(err))
		return nil, fmt.Errorf("failed to find likes: %w", err)
	}
	defer rows.Close()

	var likes []entity.Like
	for rows.Next() {
		var like entity.Like
		if err := rows.Scan(&like.FilmID, &like.UserID); err != nil {
			r.log.Error("Failed to scan like row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan like: %w", err)
		}
		likes = append(likes, like)
	}

	return likes, rows.Err()
}

func (r *likeRepository) CreateBatch(ctx context.Context, filmID int64, userIDs []int64) error {
	if len(userIDs) == 0 {
		return nil
	}

	query := `INSERT INTO likes (film_id, user_id) SELECT $1, unnest($2::bigint[])`

	_, err := r.db.Exec(ctx, query, filmID, userIDs)
	if err != nil {
		r.log.Error("Failed to create likes",
			zap.Error(err),
			zap.Int64("film_id", filmID),
			zap.Int64s("user_ids", userIDs),
		)
		return fmt.Errorf("failed to create likes: %w", err)
	}

	return nil
}

func (r *likeRepository) DeleteBatch(ctx context.Context, filmID int64, userIDs []int64) error {
	if len(userIDs) == 0 {
		return nil
	}

	query := `DELETE FROM likes WHERE film_id = $1 AND user_id = ANY($2)`

	_, err := r.db.Exec(ctx, query, filmID, userIDs)
	if err != nil {
		r.log.Error("Failed to delete likes",
			zap.Error(err),
			zap.Int64("film_id", filmID),
			zap.Int64s("user_ids", userIDs),
		)
		return fmt.Errorf("failed to delete likes: %w", err)
	}

	return nil
}
