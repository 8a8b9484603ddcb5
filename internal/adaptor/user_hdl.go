package adaptor

import (
	"net/http"

	"filmorate/internal/dto/request"
	"filmorate/internal/usecase"
	"filmorate/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// GetUsers handles GET /users
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.GetAllUsers(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get users")
		return
	}

	utils.ResponseSuccess(w, "Users retrieved successfully", users)
}

// GetUserByID handles GET /users/{id}
func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get user")
		return
	}

	utils.ResponseSuccess(w, "User retrieved successfully", user)
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req request.UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	user, err := h.service.CreateUser(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create user")
		return
	}

	utils.ResponseCreated(w, "User created successfully", user)
}

// UpdateUser handles PUT /users; the id travels in the body.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req request.UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	user, err := h.service.UpdateUser(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update user")
		return
	}

	utils.ResponseSuccess(w, "User updated successfully", user)
}

// AddFriend handles PUT /users/{id}/friends/{friendId}
func (h *UserHandler) AddFriend(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	friendID, ok := pathID(w, r, "friendId")
	if !ok {
		return
	}

	if err := h.service.AddFriend(r.Context(), id, friendID); err != nil {
		handleServiceError(w, h.log, err, "add friend")
		return
	}

	utils.ResponseSuccess(w, "Friend added successfully", nil)
}

// RemoveFriend handles DELETE /users/{id}/friends/{friendId}
func (h *UserHandler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	friendID, ok := pathID(w, r, "friendId")
	if !ok {
		return
	}

	if err := h.service.RemoveFriend(r.Context(), id, friendID); err != nil {
		handleServiceError(w, h.log, err, "remove friend")
		return
	}

	utils.ResponseSuccess(w, "Friend removed successfully", nil)
}

// GetFriends handles GET /users/{id}/friends
func (h *UserHandler) GetFriends(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	friends, err := h.service.GetFriends(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get friends")
		return
	}

	utils.ResponseSuccess(w, "Friends retrieved successfully", friends)
}

// GetCommonFriends handles GET /users/{id}/friends/common/{otherId}
func (h *UserHandler) GetCommonFriends(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	otherID, ok := pathID(w, r, "otherId")
	if !ok {
		return
	}

	friends, err := h.service.GetCommonFriends(r.Context(), id, otherID)
	if err != nil {
		handleServiceError(w, h.log, err, "get common friends")
		return
	}

	utils.ResponseSuccess(w, "Common friends retrieved successfully", friends)
}
