package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TxTypeDeposit = "deposit"
	TxTypeSend    = "send"
	TxTypeConvert = "convert"
)

// Transaction — append-only журнал операций кошелька
type Transaction struct {
	Id        int64           `json:"id" db:"id"`
	UserId    int64           `json:"user_id" db:"user_id"`
	Type      string          `json:"type" db:"type"`
	Currency  string          `json:"currency" db:"currency"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	Method    string          `json:"method" db:"method"`
	PixKey    *string         `json:"pix_key,omitempty" db:"pix_key"` // может быть NULL
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}
