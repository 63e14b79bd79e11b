package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WatchlistEntry — валютная пара пользователя с необязательным порогом алерта.
// Поле Triggered хранится в базе: алерт срабатывает один раз на пересечение
// порога и взводится заново, когда курс опускается ниже.
type WatchlistEntry struct {
	Id           int64            `json:"id" db:"id"`
	UserId       int64            `json:"user_id" db:"user_id"`
	FromCurrency string           `json:"from_currency" db:"from_currency"`
	ToCurrency   string           `json:"to_currency" db:"to_currency"`
	AlertEnabled bool             `json:"alert_enabled" db:"alert_enabled"`
	AlertRate    *decimal.Decimal `json:"alert_rate" db:"alert_rate"` // может быть NULL
	Triggered    bool             `json:"triggered" db:"triggered"`
	CreatedAt    time.Time        `json:"created_at" db:"created_at"`
}

type WatchlistAddInput struct {
	From         string           `json:"from" binding:"required"`
	To           string           `json:"to" binding:"required"`
	AlertEnabled bool             `json:"alert_enabled"`
	AlertRate    *decimal.Decimal `json:"alert_rate"`
}

type WatchlistUpdateInput struct {
	AlertEnabled *bool            `json:"alert_enabled"`
	AlertRate    *decimal.Decimal `json:"alert_rate"`
}

// AlertEvent — событие срабатывания алерта, уходит в лог и нотификатору
type AlertEvent struct {
	Entry       WatchlistEntry
	CurrentRate decimal.Decimal
	OccurredAt  time.Time
}
