package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance — строка кошелька (user_id, currency), одна на каждую валюту пользователя
type Balance struct {
	Id        int64           `json:"id" db:"id"`
	UserId    int64           `json:"user_id" db:"user_id"`
	Currency  string          `json:"currency" db:"currency"`
	Balance   decimal.Decimal `json:"balance" db:"balance"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

type DepositInput struct {
	Currency string          `json:"currency" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Method   string          `json:"method"`
}

type SendInput struct {
	PixKey string          `json:"pix_key" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}
