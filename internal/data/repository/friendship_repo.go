package repository

import (
	"context"
	"fmt"

	"filmorate/internal/data/entity"
	"filmorate/pkg/database"

	"go.uber.org/zap"
)

type FriendshipRepository interface {
	FindByUserID(ctx context.Context, userID int64) ([]entity.Friendship, error)
	CreateBatch(ctx context.Context, userID int64, friendships []entity.Friendship) error
	// UpdateBatch rewrites only the confirmation flag of existing records.
	UpdateBatch(ctx context.Context, userID int64, friendships []entity.Friendship) error
	DeleteBatch(ctx context.Context, userID int64, friendIDs []int64) error
}

type friendshipRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewFriendshipRepository(db database.Querier, log *zap.Logger) FriendshipRepository {
	return &friendshipRepository{
		db:  db,
		log: log.With(zap.String("repository", "friendship")),
	}
}

func (r *friendshipRepository) FindByUserID(ctx context.Context, userID int64) ([]entity.Friendship, error) {
	query := `SELECT user_id, friend_id, confirmed FROM friendships WHERE user_id = $1 ORDER BY friend_id`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find friendships by user ID",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return nil, fmt.Errorf("failed to find friendships: %w", err)
	}
	defer rows.Close()

	var friendships []entity.Friendship
	for rows.Next() {
		var f entity.Friendship
		if err := rows.Scan(&f.UserID, &f.FriendID, &f.Confirmed); err != nil {
			r.log.Error("Failed to scan friendship row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan friendship: %w", err)
		}
		friendships = append(friendships, f)
	}

	return friendships, rows.Err()
}

func (r *friendshipRepository) CreateBatch(ctx context.Context, userID int64, friendships []entity.Friendship) error {
	if len(friendships) == 0 {
		return nil
	}

	query := `INSERT INTO friendships (user_id, friend_id, confirmed) VALUES `
	args := []interface{}{userID}

	for i, f := range friendships {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($1, $%d, $%d)", i*2+2, i*2+3)
		args = append(args, f.FriendID, f.Confirmed)
	}

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to create friendships",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int("count", len(friendships)),
		)
		return fmt.Errorf("failed to create friendships: %w", err)
	}

	return nil
}

func (r *friendshipRepository) UpdateBatch(ctx context.Context, userID int64, friendships []entity.Friendship) error {
	query := `UPDATE friendships SET confirmed = $3 WHERE user_id = $1 AND friend_id = $2`

	for _, f := range friendships {
		result, err := r.db.Exec(ctx, query, userID, f.FriendID, f.Confirmed)
		if err != nil {
			r.log.Error("Failed to update friendship",
				zap.Error(err),
				zap.Int64("user_id", userID),
				zap.Int64("friend_id", f.FriendID),
			)
			return fmt.Errorf("failed to update friendship: %w", err)
		}
		if result.RowsAffected() == 0 {
			return fmt.Errorf("friendship %d->%d: %w", userID, f.FriendID, ErrNotFound)
		}
	}

	return nil
}

func (r *friendshipRepository) DeleteBatch(ctx context.Context, userID int64, friendIDs []int64) error {
	if len(friendIDs) == 0 {
		return nil
	}

	query := `DELETE FROM friendships WHERE user_id = $1 AND friend_id = ANY($2)`

	_, err := r.db.Exec(ctx, query, userID, friendIDs)
	if err != nil {
		r.log.Error("Failed to delete friendships",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int64s("friend_ids", friendIDs),
		)
		return fmt.Errorf("failed to delete friendships: %w", err)
	}

	return nil
}
