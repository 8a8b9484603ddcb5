package usecase

import (
	"fmt"
	"slices"
	"strings"

	"filmorate/internal/data/entity"
)

// FriendshipPolicy decides how adding or removing a friend changes the
// friendship records of both users.
type FriendshipPolicy int

const (
	// PolicyConfirmation keeps one-way records. A record is confirmed once
	// the other user holds a record back; removing drops the other side to
	// unconfirmed.
	PolicyConfirmation FriendshipPolicy = iota
	// PolicyMutual adds and removes both records together, always confirmed.
	PolicyMutual
)

func ParseFriendshipPolicy(s string) (FriendshipPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "confirmation":
		return PolicyConfirmation, nil
	case "mutual":
		return PolicyMutual, nil
	default:
		return 0, fmt.Errorf("unknown friendship policy %q", s)
	}
}

func (p FriendshipPolicy) String() string {
	switch p {
	case PolicyConfirmation:
		return "confirmation"
	case PolicyMutual:
		return "mutual"
	default:
		return fmt.Sprintf("FriendshipPolicy(%d)", int(p))
	}
}

// afterAdd returns the desired record sets of user and friend once user adds friend.
func (p FriendshipPolicy) afterAdd(userID, friendID int64, userSet, friendSet []entity.Friendship) (userDesired, friendDesired []entity.Friendship) {
	if p == PolicyMutual {
		return withRecord(userSet, userID, friendID, true), withRecord(friendSet, friendID, userID, true)
	}

	_, reciprocal := findFriend(friendSet, userID)
	userDesired = withRecord(userSet, userID, friendID, reciprocal)
	friendDesired = friendSet
	if reciprocal {
		friendDesired = withRecord(friendSet, friendID, userID, true)
	}
	return userDesired, friendDesired
}

// afterRemove returns the desired record sets of user and friend once user removes friend.
func (p FriendshipPolicy) afterRemove(userID, friendID int64, userSet, friendSet []entity.Friendship) (userDesired, friendDesired []entity.Friendship) {
	userDesired = withoutFriend(userSet, friendID)
	if p == PolicyMutual {
		return userDesired, withoutFriend(friendSet, userID)
	}

	friendDesired = friendSet
	if _, ok := findFriend(friendSet, userID); ok {
		friendDesired = withRecord(friendSet, friendID, userID, false)
	}
	return userDesired, friendDesired
}

func findFriend(set []entity.Friendship, friendID int64) (entity.Friendship, bool) {
	i := slices.IndexFunc(set, func(f entity.Friendship) bool { return f.FriendID == friendID })
	if i < 0 {
		return entity.Friendship{}, false
	}
	return set[i], true
}

// withRecord returns a copy of set where owner's record for friendID exists with the given flag.
func withRecord(set []entity.Friendship, ownerID, friendID int64, confirmed bool) []entity.Friendship {
	out := withoutFriend(set, friendID)
	return append(out, entity.Friendship{UserID: ownerID, FriendID: friendID, Confirmed: confirmed})
}

func withoutFriend(set []entity.Friendship, friendID int64) []entity.Friendship {
	out := make([]entity.Friendship, 0, len(set)+1)
	for _, f := range set {
		if f.FriendID != friendID {
			out = append(out, f)
		}
	}
	return out
}
