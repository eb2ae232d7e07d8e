package user

import (
	"context"

	"shop/internal/types"
)

type User struct {
	UserID       string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	passwordHash string
	Balance      int `json:"balance"`
}

type UserRepo interface {
	Register(ctx context.Context, email, username, password string) (User, error)
	Login(ctx context.Context, email, password string) (User, error)

	Info(ctx context.Context, userID string) (types.Profile, error)
	UpdateProfile(ctx context.Context, userID, newUsername, newPassword string) error
}
