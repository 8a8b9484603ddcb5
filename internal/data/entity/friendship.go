package entity

// Friendship is one directional record owned by UserID.
// UserID's record for FriendID is independent of FriendID's record for UserID.
type Friendship struct {
	UserID    int64 `db:"user_id"`
	FriendID  int64 `db:"friend_id"`
	Confirmed bool  `db:"confirmed"`
}
