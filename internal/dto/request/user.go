package request

type UserRequest struct {
	ID       int64               `json:"id"`
	Email    string              `json:"email" validate:"required,email"`
	Login    string              `json:"login" validate:"required,nowhitespace"`
	Name     string              `json:"name"`
	Birthday string              `json:"birthday" validate:"required,datetime=2006-01-02,notfuture"`
	Friends  []FriendshipRequest `json:"friends,omitempty" validate:"omitempty,dive"`
}

type FriendshipRequest struct {
	ID        int64 `json:"id" validate:"gt=0"`
	Confirmed bool  `json:"confirmed"`
}
