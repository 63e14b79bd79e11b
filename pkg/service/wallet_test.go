package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cambio_wallet_back/models"
	"cambio_wallet_back/pkg/apperr"
)

// Первое пополнение создаёт строку баланса и пишет одну deposit-транзакцию
func TestDepositCreatesBalance(t *testing.T) {
	store := newFakeStore()
	svc := NewWalletService(store)

	err := svc.Deposit(1, models.DepositInput{
		Currency: "usd",
		Amount:   decimal.NewFromInt(200),
		Method:   "boleto",
	})
	require.NoError(t, err)

	assert.True(t, store.balances["USD"].Equal(decimal.NewFromInt(200)), "код валюты нормализуется")
	require.Len(t, store.transactions, 1)
	assert.Equal(t, models.TxTypeDeposit, store.transactions[0].Type)
	assert.Equal(t, "boleto", store.transactions[0].Method)
}

func TestDepositValidation(t *testing.T) {
	store := newFakeStore()
	svc := NewWalletService(store)

	err := svc.Deposit(1, models.DepositInput{Currency: "XXX", Amount: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, apperr.ErrInvalidPair)

	err = svc.Deposit(1, models.DepositInput{Currency: "USD", Amount: decimal.NewFromInt(-5)})
	assert.Error(t, err)

	assert.Empty(t, store.transactions)
}

// Перевод 60 BRL при балансе 50 отклоняется, баланс не меняется
func TestSendInsufficientFunds(t *testing.T) {
	store := newFakeStore()
	store.balances["BRL"] = decimal.NewFromInt(50)
	svc := NewWalletService(store)

	err := svc.Send(1, models.SendInput{
		PixKey: "maria@example.com",
		Amount: decimal.NewFromInt(60),
	})
	assert.ErrorIs(t, err, apperr.ErrInsufficientFunds)
	assert.True(t, store.balances["BRL"].Equal(decimal.NewFromInt(50)))
	assert.Empty(t, store.transactions)
}

func TestSendDebitsBalance(t *testing.T) {
	store := newFakeStore()
	store.balances["BRL"] = decimal.NewFromInt(50)
	svc := NewWalletService(store)

	err := svc.Send(1, models.SendInput{
		PixKey: "maria@example.com",
		Amount: decimal.NewFromInt(50),
	})
	require.NoError(t, err, "перевод ровно всего баланса проходит")
	assert.True(t, store.balances["BRL"].IsZero())

	require.Len(t, store.transactions, 1)
	tx := store.transactions[0]
	assert.Equal(t, models.TxTypeSend, tx.Type)
	require.NotNil(t, tx.PixKey)
	assert.Equal(t, "maria@example.com", *tx.PixKey)
}

func TestSendValidation(t *testing.T) {
	store := newFakeStore()
	svc := NewWalletService(store)

	err := svc.Send(1, models.SendInput{PixKey: "", Amount: decimal.NewFromInt(10)})
	assert.Error(t, err, "pix-ключ обязателен")

	err = svc.Send(1, models.SendInput{PixKey: "x@y.com", Amount: decimal.Zero})
	assert.Error(t, err, "сумма должна быть положительной")
}
