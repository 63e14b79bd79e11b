package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type QuoteRequest struct {
	From   string          `json:"from" binding:"required"`
	To     string          `json:"to" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// ConversionQuote — предварительный расчёт конвертации, состояние не меняет.
// Действует ограниченное время, после чего Commit вернёт ошибку.
type ConversionQuote struct {
	Id          string          `json:"id"`
	UserId      int64           `json:"user_id"`
	From        string          `json:"from"`
	To          string          `json:"to"`
	Amount      decimal.Decimal `json:"amount"`
	Rate        decimal.Decimal `json:"rate"`
	GrossResult decimal.Decimal `json:"gross_result"`
	NetResult   decimal.Decimal `json:"net_result"`
	FeeRate     decimal.Decimal `json:"fee_rate"`
	FeeAmount   decimal.Decimal `json:"fee_amount"`
	CreatedAt   time.Time       `json:"created_at"`
}

type CommitRequest struct {
	QuoteId string `json:"quote_id" binding:"required"`
}

// ConversionRecord — запись истории конвертаций
type ConversionRecord struct {
	Id           int64           `json:"id" db:"id"`
	UserId       int64           `json:"user_id" db:"user_id"`
	FromCurrency string          `json:"from_currency" db:"from_currency"`
	ToCurrency   string          `json:"to_currency" db:"to_currency"`
	Amount       decimal.Decimal `json:"amount" db:"amount"`
	Result       decimal.Decimal `json:"result" db:"result"`
	Rate         decimal.Decimal `json:"rate" db:"rate"`
	FeeRate      decimal.Decimal `json:"fee_rate" db:"fee_rate"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}
