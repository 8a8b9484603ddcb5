package repository

import (
	"context"
	"fmt"

	"filmorate/pkg/database"

	"go.uber.org/zap"
)

// Transactor runs fn against repositories bound to a single unit of work.
// The unit commits when fn returns nil and is rolled back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(repo *Repository) error) error
}

type Repository struct {
	Film       FilmRepository
	FilmGenre  FilmGenreRepository
	Like       LikeRepository
	User       UserRepository
	Friendship FriendshipRepository
	Genre      GenreRepository
	Mpa        MpaRepository

	// Tx is nil for repositories that are already inside a unit of work.
	Tx Transactor
}

// WithinTx runs fn in a transaction, or directly when the receiver is already transactional.
func (r *Repository) WithinTx(ctx context.Context, fn func(repo *Repository) error) error {
	if r.Tx == nil {
		return fn(r)
	}
	return r.Tx.WithinTx(ctx, fn)
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	repo := newRepository(db, log)
	repo.Tx = &pgTransactor{db: db, log: log.With(zap.String("repository", "tx"))}
	return repo
}

func newRepository(q database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		Film:       NewFilmRepository(q, log),
		FilmGenre:  NewFilmGenreRepository(q, log),
		Like:       NewLikeRepository(q, log),
		User:       NewUserRepository(q, log),
		Friendship: NewFriendshipRepository(q, log),
		Genre:      NewGenreRepository(q, log),
		Mpa:        NewMpaRepository(q, log),
	}
}

type pgTransactor struct {
	db  database.PgxIface
	log *zap.Logger
}

func (t *pgTransactor) WithinTx(ctx context.Context, fn func(repo *Repository) error) error {
	tx, err := t.db.Begin(ctx)
	if err != nil {
		t.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin tx: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		// Rollback after a failed Commit is a no-op returning ErrTxClosed.
		if rbErr := tx.Rollback(ctx); rbErr != nil && ctx.Err() == nil {
			t.log.Debug("Rollback returned error", zap.Error(rbErr))
		}
	}()

	if err := fn(newRepository(tx, t.log)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		t.log.Error("Failed to commit transaction", zap.Error(err))
		return fmt.Errorf("commit tx: %w", err)
	}
	committed = true

	return nil
}
