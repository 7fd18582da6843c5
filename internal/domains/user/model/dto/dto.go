package dto

import (
	"proctor/internal/domains/user/model"
)

type LoginRequest struct {
	Handle   string `json:"user_id"  validate:"required,max=100"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type UserResponse struct {
	ID     int64      `json:"id"`
	Handle string     `json:"user_id"`
	Role   model.Role `json:"role"`
}

func FromModel(user model.User) UserResponse {
	return UserResponse{
		ID:     user.ID,
		Handle: user.Handle,
		Role:   user.Role,
	}
}

func FromModels(users []model.User) []UserResponse {
	res := make([]UserResponse, 0, len(users))
	for _, user := range users {
		res = append(res, FromModel(user))
	}

	return res
}
