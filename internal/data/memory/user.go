package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"filmorate/internal/data/entity"
	"filmorate/internal/data/repository"
)

type userRepository struct{ v *view }

func (r userRepository) Create(_ context.Context, user *entity.User) error {
	return r.v.write(func(t *tables) error {
		t.nextUserID++
		user.ID = t.nextUserID
		t.users[user.ID] = *user
		return nil
	})
}

func (r userRepository) FindByID(_ context.Context, id int64) (*entity.User, error) {
	var (
		user entity.User
		ok   bool
	)
	r.v.read(func(t *tables) { user, ok = t.users[id] })
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, repository.ErrNotFound)
	}
	return &user, nil
}

func (r userRepository) FindByIDs(_ context.Context, ids []int64) ([]*entity.User, error) {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	var users []*entity.User
	r.v.read(func(t *tables) {
		for _, id := range sorted {
			if user, ok := t.users[id]; ok {
				users = append(users, &user)
			}
		}
	})
	return users, nil
}

func (r userRepository) FindAll(_ context.Context) ([]*entity.User, error) {
	var users []*entity.User
	r.v.read(func(t *tables) {
		for _, id := range slices.Sorted(maps.Keys(t.users)) {
			user := t.users[id]
			users = append(users, &user)
		}
	})
	return users, nil
}

func (r userRepository) Update(_ context.Context, user *entity.User) error {
	return r.v.write(func(t *tables) error {
		if _, ok := t.users[user.ID]; !ok {
			return fmt.Errorf("user %d: %w", user.ID, repository.ErrNotFound)
		}
		t.users[user.ID] = *user
		return nil
	})
}

type friendshipRepository struct{ v *view }

func (r friendshipRepository) FindByUserID(_ context.Context, userID int64) ([]entity.Friendship, error) {
	var out []entity.Friendship
	r.v.read(func(t *tables) {
		records := t.friendships[userID]
		for _, friendID := range slices.Sorted(maps.Keys(records)) {
			out = append(out, entity.Friendship{UserID: userID, FriendID: friendID, Confirmed: records[friendID]})
		}
	})
	return out, nil
}

func (r friendshipRepository) CreateBatch(_ context.Context, userID int64, friendships []entity.Friendship) error {
	return r.v.write(func(t *tables) error {
		if _, ok := t.users[userID]; !ok {
			return fmt.Errorf("user %d: %w", userID, repository.ErrNotFound)
		}
		records := t.friendships[userID]
		if records == nil {
			records = map[int64]bool{}
			t.friendships[userID] = records
		}
		for _, f := range friendships {
			if _, ok := t.users[f.FriendID]; !ok {
				return fmt.Errorf("user %d: %w", f.FriendID, repository.ErrNotFound)
			}
			if _, dup := records[f.FriendID]; dup {
				return fmt.Errorf("friendship %d->%d already exists", userID, f.FriendID)
			}
		}
		for _, f := range friendships {
			records[f.FriendID] = f.Confirmed
		}
		return nil
	})
}

func (r friendshipRepository) UpdateBatch(_ context.Context, userID int64, friendships []entity.Friendship) error {
	return r.v.write(func(t *tables) error {
		records := t.friendships[userID]
		for _, f := range friendships {
			if _, ok := records[f.FriendID]; !ok {
				return fmt.Errorf("friendship %d->%d: %w", userID, f.FriendID, repository.ErrNotFound)
			}
		}
		for _, f := range friendships {
			records[f.FriendID] = f.Confirmed
		}
		return nil
	})
}

func (r friendshipRepository) DeleteBatch(_ context.Context, userID int64, friendIDs []int64) error {
	return r.v.write(func(t *tables) error {
		for _, id := range friendIDs {
			delete(t.friendships[userID], id)
		}
		return nil
	})
}
