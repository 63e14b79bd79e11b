package service

import (
	"github.com/pkg/errors"

	"cambio_wallet_back/models"
	"cambio_wallet_back/pkg/apperr"
	"cambio_wallet_back/pkg/currency"
	"cambio_wallet_back/pkg/repository"
)

type WalletService struct {
	repos repository.Wallet
}

func NewWalletService(repos repository.Wallet) *WalletService {
	return &WalletService{repos: repos}
}

func (s *WalletService) Balances(userId int64) ([]models.Balance, error) {
	return s.repos.GetBalances(userId)
}

func (s *WalletService) Deposit(userId int64, input models.DepositInput) error {
	code := currency.Normalize(input.Currency)
	if !currency.IsSupported(code) {
		return errors.Wrapf(apperr.ErrInvalidPair, "валюта %s", input.Currency)
	}
	if !input.Amount.IsPositive() {
		return errors.New("сумма пополнения должна быть больше нуля")
	}

	method := input.Method
	if method == "" {
		method = "pix"
	}

	return s.repos.Deposit(userId, code, input.Amount, method)
}

func (s *WalletService) Send(userId int64, input models.SendInput) error {
	if input.PixKey == "" {
		return errors.New("не указан pix-ключ получателя")
	}
	if !input.Amount.IsPositive() {
		return errors.New("сумма перевода должна быть больше нуля")
	}

	return s.repos.Send(userId, input.PixKey, input.Amount)
}

func (s *WalletService) Transactions(userId int64) ([]models.Transaction, error) {
	return s.repos.GetTransactions(userId)
}
