package usecase

import (
	"context"
	"fmt"

	"filmorate/internal/data/entity"
	"filmorate/internal/data/repository"
	"filmorate/internal/reconcile"
	"filmorate/pkg/metrics"

	"go.uber.org/zap"
)

// Friendships reconciles a user's persisted friendship records with a desired set.
// Records are keyed by friend id; a change of the confirmation flag is an update.
type Friendships struct {
	log *zap.Logger
}

func NewFriendships(log *zap.Logger) *Friendships {
	return &Friendships{log: log.With(zap.String("service", "friendships"))}
}

// Apply writes the difference between before and desired for userID.
func (f *Friendships) Apply(ctx context.Context, repo *repository.Repository, userID int64, before, desired []entity.Friendship) error {
	owned := make([]entity.Friendship, len(desired))
	for i, rec := range desired {
		rec.UserID = userID
		owned[i] = rec
	}

	delta := reconcile.DiffFunc(before, owned, friendKey, confirmationChanged)
	if delta.Empty() {
		return nil
	}

	err := delta.Apply(ctx, reconcile.Steps[entity.Friendship]{
		Remove: func(ctx context.Context, recs []entity.Friendship) error {
			ids := make([]int64, len(recs))
			for i, rec := range recs {
				ids[i] = rec.FriendID
			}
			return repo.Friendship.DeleteBatch(ctx, userID, ids)
		},
		Update: func(ctx context.Context, recs []entity.Friendship) error {
			return repo.Friendship.UpdateBatch(ctx, userID, recs)
		},
		Add: func(ctx context.Context, recs []entity.Friendship) error {
			return repo.Friendship.CreateBatch(ctx, userID, recs)
		},
	})
	if err != nil {
		logFailure(f.log, "Failed to reconcile friendships", err, zap.Int64("user_id", userID))
		return fmt.Errorf("reconcile friendships of user %d: %w", userID, err)
	}

	metrics.RecordAssociationChanges(metrics.AssociationFriendship, len(delta.Add), len(delta.Update), len(delta.Remove))
	f.log.Debug("Friendships reconciled",
		zap.Int64("user_id", userID),
		zap.Int("added", len(delta.Add)),
		zap.Int("updated", len(delta.Update)),
		zap.Int("removed", len(delta.Remove)),
	)
	return nil
}

func friendKey(f entity.Friendship) int64 { return f.FriendID }

func confirmationChanged(before, desired entity.Friendship) bool {
	return before.Confirmed != desired.Confirmed
}
