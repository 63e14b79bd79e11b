package models

import "time"

type User struct {
	Id           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Profile 1:1 с пользователем, создаётся вместе с ним при регистрации
type Profile struct {
	UserId              int64  `json:"user_id" db:"user_id"`
	DisplayName         string `json:"display_name" db:"display_name"`
	DefaultFromCurrency string `json:"default_from_currency" db:"default_from_currency"`
	DefaultToCurrency   string `json:"default_to_currency" db:"default_to_currency"`
}

type SignUpInput struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	DisplayName string `json:"display_name"`
}

type SignInInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshToken struct {
	Token     string    `db:"token"`
	UserId    int64     `db:"user_id"`
	ExpiresAt time.Time `db:"expires_at"`
}

type PasswordReset struct {
	Token     string    `db:"token"`
	UserId    int64     `db:"user_id"`
	ExpiresAt time.Time `db:"expires_at"`
}

type UpdateProfileInput struct {
	DisplayName         *string `json:"display_name"`
	DefaultFromCurrency *string `json:"default_from_currency"`
	DefaultToCurrency   *string `json:"default_to_currency"`
}
