package response

import (
	"filmorate/internal/data/entity"
)

type UserResponse struct {
	ID       int64                `json:"id"`
	Email    string               `json:"email"`
	Login    string               `json:"login"`
	Name     string               `json:"name"`
	Birthday string               `json:"birthday"`
	Friends  []FriendshipResponse `json:"friends"`
}

type FriendshipResponse struct {
	ID        int64 `json:"id"`
	Confirmed bool  `json:"confirmed"`
}

// Helper converters
func UserToResponse(user *entity.UserDetail) UserResponse {
	friends := make([]FriendshipResponse, len(user.Friends))
	for i, f := range user.Friends {
		friends[i] = FriendshipResponse{ID: f.FriendID, Confirmed: f.Confirmed}
	}

	return UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		Login:    user.Login,
		Name:     user.Name,
		Birthday: user.Birthday.Format("2006-01-02"),
		Friends:  friends,
	}
}

func UsersToResponse(users []entity.UserDetail) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = UserToResponse(&users[i])
	}
	return out
}
