package usecase

import (
	"context"
	"fmt"

	"filmorate/internal/data/repository"
	"filmorate/internal/reconcile"
	"filmorate/pkg/metrics"

	"go.uber.org/zap"
)

// FilmAssociations reconciles the genre and like sets of a film.
// Both are pure existence sets, so a delta never carries updates.
type FilmAssociations struct {
	log *zap.Logger
}

func NewFilmAssociations(log *zap.Logger) *FilmAssociations {
	return &FilmAssociations{log: log.With(zap.String("service", "film_associations"))}
}

// Sync reconciles both sets. A nil set is left as persisted; an empty one is cleared.
func (a *FilmAssociations) Sync(ctx context.Context, repo *repository.Repository, filmID int64, genreIDs []int, userIDs []int64) error {
	if genreIDs != nil {
		if err := a.SyncGenres(ctx, repo, filmID, genreIDs); err != nil {
			return err
		}
	}
	if userIDs != nil {
		if err := a.SyncLikes(ctx, repo, filmID, userIDs); err != nil {
			return err
		}
	}
	return nil
}

func (a *FilmAssociations) SyncGenres(ctx context.Context, repo *repository.Repository, filmID int64, desired []int) error {
	before, err := repo.FilmGenre.FindByFilmID(ctx, filmID)
	if err != nil {
		return fmt.Errorf("load film genres: %w", err)
	}

	delta := reconcile.Diff(before, desired, reconcile.Value[int])
	err = delta.Apply(ctx, reconcile.Steps[int]{
		Remove: func(ctx context.Context, ids []int) error { return repo.FilmGenre.DeleteBatch(ctx, filmID, ids) },
		Add:    func(ctx context.Context, ids []int) error { return repo.FilmGenre.CreateBatch(ctx, filmID, ids) },
	})
	if err != nil {
		logFailure(a.log, "Failed to reconcile film genres", err, zap.Int64("film_id", filmID))
		return fmt.Errorf("reconcile genres of film %d: %w", filmID, err)
	}

	metrics.RecordAssociationChanges(metrics.AssociationGenre, len(delta.Add), 0, len(delta.Remove))
	return nil
}

func (a *FilmAssociations) SyncLikes(ctx context.Context, repo *repository.Repository, filmID int64, desired []int64) error {
	before, err := repo.Like.FindByFilmID(ctx, filmID)
	if err != nil {
		return fmt.Errorf("load film likes: %w", err)
	}

	delta := reconcile.Diff(before, desired, reconcile.Value[int64])
	err = delta.Apply(ctx, reconcile.Steps[int64]{
		Remove: func(ctx context.Context, ids []int64) error { return repo.Like.DeleteBatch(ctx, filmID, ids) },
		Add:    func(ctx context.Context, ids []int64) error { return repo.Like.CreateBatch(ctx, filmID, ids) },
	})
	if err != nil {
		logFailure(a.log, "Failed to reconcile film likes", err, zap.Int64("film_id", filmID))
		return fmt.Errorf("reconcile likes of film %d: %w", filmID, err)
	}

	metrics.RecordAssociationChanges(metrics.AssociationLike, len(delta.Add), 0, len(delta.Remove))
	return nil
}
