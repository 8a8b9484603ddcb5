package usecase

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"filmorate/internal/data/entity"
	"filmorate/internal/data/repository"
	"filmorate/internal/dto/request"
	"filmorate/internal/dto/response"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

type UserService interface {
	GetAllUsers(ctx context.Context) ([]response.UserResponse, error)
	GetUser(ctx context.Context, id int64) (*response.UserResponse, error)
	CreateUser(ctx context.Context, req *request.UserRequest) (*response.UserResponse, error)
	UpdateUser(ctx context.Context, req *request.UserRequest) (*response.UserResponse, error)
	AddFriend(ctx context.Context, userID, friendID int64) error
	RemoveFriend(ctx context.Context, userID, friendID int64) error
	GetFriends(ctx context.Context, userID int64) ([]response.UserResponse, error)
	GetCommonFriends(ctx context.Context, userID, otherID int64) ([]response.UserResponse, error)
}

type userService struct {
	repo    *repository.Repository
	friends *Friendships
	policy  FriendshipPolicy
	log     *zap.Logger
}

func NewUserService(repo *repository.Repository, friends *Friendships, policy FriendshipPolicy, log *zap.Logger) UserService {
	return &userService{
		repo:    repo,
		friends: friends,
		policy:  policy,
		log:     log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetAllUsers(ctx context.Context) ([]response.UserResponse, error) {
	users, err := us.repo.User.FindAll(ctx)
	if err != nil {
		us.log.Error("Failed to get all users", zap.Error(err))
		return nil, fmt.Errorf("get users: %w", err)
	}

	details, err := us.details(ctx, us.repo, users)
	if err != nil {
		return nil, err
	}

	us.log.Info("Users retrieved", zap.Int("count", len(details)))
	return response.UsersToResponse(details), nil
}

func (us *userService) GetUser(ctx context.Context, id int64) (*response.UserResponse, error) {
	detail, err := us.detail(ctx, us.repo, id)
	if err != nil {
		logFailure(us.log, "Failed to get user", err, zap.Int64("user_id", id))
		return nil, err
	}

	resp := response.UserToResponse(detail)
	return &resp, nil
}

func (us *userService) CreateUser(ctx context.Context, req *request.UserRequest) (*response.UserResponse, error) {
	user, err := userFromRequest(req)
	if err != nil {
		us.log.Warn("Invalid user", zap.Error(err))
		return nil, err
	}
	desired := friendsFromRequest(req)

	var created *entity.UserDetail
	err = us.repo.WithinTx(ctx, func(tx *repository.Repository) error {
		if err := checkFriends(ctx, tx, 0, desired); err != nil {
			return err
		}
		if err := tx.User.Create(ctx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		if len(desired) > 0 {
			if err := us.syncFriends(ctx, tx, user.ID, desired); err != nil {
				return err
			}
		}
		created, err = us.detail(ctx, tx, user.ID)
		return err
	})
	if err != nil {
		logFailure(us.log, "Failed to create user", err, zap.String("login", req.Login))
		return nil, err
	}

	us.log.Info("User created", zap.Int64("user_id", created.ID), zap.String("login", created.Login))

	resp := response.UserToResponse(created)
	return &resp, nil
}

func (us *userService) UpdateUser(ctx context.Context, req *request.UserRequest) (*response.UserResponse, error) {
	user, err := userFromRequest(req)
	if err != nil {
		us.log.Warn("Invalid user", zap.Int64("user_id", req.ID), zap.Error(err))
		return nil, err
	}
	if user.IsNew() {
		return nil, invalid("id", "Must be greater than 0")
	}
	desired := friendsFromRequest(req)

	var updated *entity.UserDetail
	err = us.repo.WithinTx(ctx, func(tx *repository.Repository) error {
		// A missing user fails here, before any friendship is touched.
		if err := tx.User.Update(ctx, user); err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		if desired != nil {
			if err := checkFriends(ctx, tx, user.ID, desired); err != nil {
				return err
			}
			if err := us.syncFriends(ctx, tx, user.ID, desired); err != nil {
				return err
			}
		}
		updated, err = us.detail(ctx, tx, user.ID)
		return err
	})
	if err != nil {
		logFailure(us.log, "Failed to update user", err, zap.Int64("user_id", req.ID))
		return nil, err
	}

	us.log.Info("User updated", zap.Int64("user_id", updated.ID), zap.Int("friend_count", len(updated.Friends)))

	resp := response.UserToResponse(updated)
	return &resp, nil
}

func (us *userService) AddFriend(ctx context.Context, userID, friendID int64) error {
	if err := us.changeFriendship(ctx, userID, friendID, us.policy.afterAdd); err != nil {
		logFailure(us.log, "Failed to add friend", err, zap.Int64("user_id", userID), zap.Int64("friend_id", friendID))
		return err
	}

	us.log.Info("Friend added",
		zap.Int64("user_id", userID),
		zap.Int64("friend_id", friendID),
		zap.Stringer("policy", us.policy),
	)
	return nil
}

func (us *userService) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	if err := us.changeFriendship(ctx, userID, friendID, us.policy.afterRemove); err != nil {
		logFailure(us.log, "Failed to remove friend", err, zap.Int64("user_id", userID), zap.Int64("friend_id", friendID))
		return err
	}

	us.log.Info("Friend removed",
		zap.Int64("user_id", userID),
		zap.Int64("friend_id", friendID),
		zap.Stringer("policy", us.policy),
	)
	return nil
}

type friendshipChange func(userID, friendID int64, userSet, friendSet []entity.Friendship) ([]entity.Friendship, []entity.Friendship)

// changeFriendship loads both users and both record sets before writing either side.
func (us *userService) changeFriendship(ctx context.Context, userID, friendID int64, change friendshipChange) error {
	if userID == friendID {
		return invalid("friendId", "A user cannot befriend themselves")
	}

	return us.repo.WithinTx(ctx, func(tx *repository.Repository) error {
		if _, err := tx.User.FindByID(ctx, userID); err != nil {
			return err
		}
		if _, err := tx.User.FindByID(ctx, friendID); err != nil {
			return err
		}

		userSet, err := tx.Friendship.FindByUserID(ctx, userID)
		if err != nil {
			return fmt.Errorf("load friendships: %w", err)
		}
		friendSet, err := tx.Friendship.FindByUserID(ctx, friendID)
		if err != nil {
			return fmt.Errorf("load friendships: %w", err)
		}

		userDesired, friendDesired := change(userID, friendID, userSet, friendSet)
		if err := us.friends.Apply(ctx, tx, userID, userSet, userDesired); err != nil {
			return err
		}
		return us.friends.Apply(ctx, tx, friendID, friendSet, friendDesired)
	})
}

// syncFriends moves userID's friend set to desired one friend at a time
// through the policy, so the other side of every added or removed friendship
// follows the same model as AddFriend and RemoveFriend.
func (us *userService) syncFriends(ctx context.Context, tx *repository.Repository, userID int64, desired []int64) error {
	before, err := tx.Friendship.FindByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("load friendships: %w", err)
	}

	current := before
	otherBefore := make(map[int64][]entity.Friendship)
	otherDesired := make(map[int64][]entity.Friendship)
	step := func(friendID int64, change friendshipChange) error {
		set, ok := otherDesired[friendID]
		if !ok {
			if set, err = tx.Friendship.FindByUserID(ctx, friendID); err != nil {
				return fmt.Errorf("load friendships: %w", err)
			}
			otherBefore[friendID] = set
		}
		current, otherDesired[friendID] = change(userID, friendID, current, set)
		return nil
	}

	for _, id := range friendIDs(before) {
		if !slices.Contains(desired, id) {
			if err := step(id, us.policy.afterRemove); err != nil {
				return err
			}
		}
	}
	for _, id := range desired {
		if _, ok := findFriend(current, id); !ok {
			if err := step(id, us.policy.afterAdd); err != nil {
				return err
			}
		}
	}

	if err := us.friends.Apply(ctx, tx, userID, before, current); err != nil {
		return err
	}
	others := slices.Sorted(maps.Keys(otherDesired))
	for _, id := range others {
		if err := us.friends.Apply(ctx, tx, id, otherBefore[id], otherDesired[id]); err != nil {
			return err
		}
	}
	return nil
}

func (us *userService) GetFriends(ctx context.Context, userID int64) ([]response.UserResponse, error) {
	if _, err := us.repo.User.FindByID(ctx, userID); err != nil {
		logFailure(us.log, "Failed to get friends", err, zap.Int64("user_id", userID))
		return nil, err
	}

	records, err := us.repo.Friendship.FindByUserID(ctx, userID)
	if err != nil {
		us.log.Error("Failed to load friendships", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("load friendships: %w", err)
	}

	return us.usersByID(ctx, friendIDs(records))
}

func (us *userService) GetCommonFriends(ctx context.Context, userID, otherID int64) ([]response.UserResponse, error) {
	var sets [2][]int64
	for i, id := range []int64{userID, otherID} {
		if _, err := us.repo.User.FindByID(ctx, id); err != nil {
			logFailure(us.log, "Failed to get common friends", err, zap.Int64("user_id", userID), zap.Int64("other_id", otherID))
			return nil, err
		}
		records, err := us.repo.Friendship.FindByUserID(ctx, id)
		if err != nil {
			us.log.Error("Failed to load friendships", zap.Error(err), zap.Int64("user_id", id))
			return nil, fmt.Errorf("load friendships: %w", err)
		}
		sets[i] = friendIDs(records)
	}

	common := slices.DeleteFunc(sets[0], func(id int64) bool { return !slices.Contains(sets[1], id) })
	return us.usersByID(ctx, common)
}

// usersByID returns the users in ascending id order.
func (us *userService) usersByID(ctx context.Context, ids []int64) ([]response.UserResponse, error) {
	if len(ids) == 0 {
		return []response.UserResponse{}, nil
	}

	users, err := us.repo.User.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	details, err := us.details(ctx, us.repo, users)
	if err != nil {
		return nil, err
	}
	return response.UsersToResponse(details), nil
}

func (us *userService) detail(ctx context.Context, repo *repository.Repository, id int64) (*entity.UserDetail, error) {
	user, err := repo.User.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	details, err := us.details(ctx, repo, []*entity.User{user})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func (us *userService) details(ctx context.Context, repo *repository.Repository, users []*entity.User) ([]entity.UserDetail, error) {
	out := make([]entity.UserDetail, 0, len(users))
	for _, user := range users {
		records, err := repo.Friendship.FindByUserID(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("load friendships of user %d: %w", user.ID, err)
		}
		slices.SortFunc(records, func(a, b entity.Friendship) int { return cmp.Compare(a.FriendID, b.FriendID) })
		out = append(out, entity.UserDetail{User: *user, Friends: records})
	}
	return out, nil
}

// checkFriends rejects self-friendship and unknown friend ids. userID is 0 for a user not yet stored.
func checkFriends(ctx context.Context, repo *repository.Repository, userID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if userID != 0 && slices.Contains(ids, userID) {
		return invalid("friends", "A user cannot befriend themselves")
	}

	users, err := repo.User.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	for _, id := range ids {
		if !slices.ContainsFunc(users, func(u *entity.User) bool { return u.ID == id }) {
			return fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
	}
	return nil
}

func friendIDs(records []entity.Friendship) []int64 {
	ids := make([]int64, len(records))
	for i, f := range records {
		ids[i] = f.FriendID
	}
	return ids
}

func userFromRequest(req *request.UserRequest) (*entity.User, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	birthday, err := time.Parse(utils.DateLayout, req.Birthday)
	if err != nil {
		return nil, invalid("birthday", err.Error())
	}

	user := &entity.User{
		Email:    req.Email,
		Login:    req.Login,
		Name:     req.Name,
		Birthday: birthday,
	}
	user.ID = req.ID
	user.NormalizeName()
	return user, nil
}

// friendsFromRequest returns the requested friend ids, or nil when the request
// carried no friends list. Confirmation flags are derived by the policy.
func friendsFromRequest(req *request.UserRequest) []int64 {
	if req.Friends == nil {
		return nil
	}
	out := make([]int64, 0, len(req.Friends))
	for _, f := range req.Friends {
		out = append(out, f.ID)
	}
	return out
}
