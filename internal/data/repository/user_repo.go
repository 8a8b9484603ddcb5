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

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	// FindByIDs returns the users that exist among ids, ordered by id. Missing ids are skipped.
	FindByIDs(ctx context.Context, ids []int64) ([]*entity.User, error)
	FindAll(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}

type userRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewUserRepository(db database.Querier, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

// Create inserts a new user record into the database
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (email, login, name, birthday)
		VALUES ($1, $2, $3, $4)
		RETURNING user_id
	`

	err := ur.db.QueryRow(ctx, query,
		user.Email,
		user.Login,
		user.Name,
		user.Birthday,
	).Scan(&user.ID)

	if err != nil {
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
			zap.String("login", user.Login),
		)
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `
		SELECT user_id, email, login, name, birthday
		FROM users
		WHERE user_id = $1
	`

	var user entity.User
	err := ur.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.Login,
		&user.Name,
		&user.Birthday,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	if err != nil {
		ur.log.Error("Failed to find user by ID", zap.Error(err), zap.Int64("user_id", id))
		return nil, fmt.Errorf("find user by id: %w", err)
	}

	return &user, nil
}

func (ur *userRepository) FindByIDs(ctx context.Context, ids []int64) ([]*entity.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT user_id, email, login, name, birthday
		FROM users
		WHERE user_id = ANY($1)
		ORDER BY user_id
	`

	rows, err := ur.db.Query(ctx, query, ids)
	if err != nil {
		ur.log.Error("Failed to find users by IDs", zap.Error(err), zap.Int64s("user_ids", ids))
		return nil, fmt.Errorf("find users by ids: %w", err)
	}
	defer rows.Close()

	return ur.scanUsers(rows)
}

func (ur *userRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	query := `
		SELECT user_id, email, login, name, birthday
		FROM users
		ORDER BY user_id
	`

	rows, err := ur.db.Query(ctx, query)
	if err != nil {
		ur.log.Error("Failed to find all users", zap.Error(err))
		return nil, fmt.Errorf("find all users: %w", err)
	}
	defer rows.Close()

	return ur.scanUsers(rows)
}

func (ur *userRepository) scanUsers(rows pgx.Rows) ([]*entity.User, error) {
	var users []*entity.User
	for rows.Next() {
		var user entity.User
		err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.Login,
			&user.Name,
			&user.Birthday,
		)
		if err != nil {
			ur.log.Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		ur.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

func (ur *userRepository) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET email = $2, login = $3, name = $4, birthday = $5
		WHERE user_id = $1
	`

	result, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Email,
		user.Login,
		user.Name,
		user.Birthday,
	)
	if err != nil {
		ur.log.Error("Failed to update user", zap.Error(err), zap.Int64("user_id", user.ID))
		return fmt.Errorf("update user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", user.ID, ErrNotFound)
	}

	return nil
}
