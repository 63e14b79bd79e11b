package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"cambio_wallet_back/models"
	"cambio_wallet_back/pkg/apperr"
	"cambio_wallet_back/pkg/currency"
	"cambio_wallet_back/pkg/fees"
	"cambio_wallet_back/pkg/rates"
	"cambio_wallet_back/pkg/repository"
)

type ConversionService struct {
	wallet   repository.Wallet
	history  repository.Conversion
	rates    RateSource
	quoteTTL time.Duration

	mu     sync.Mutex
	quotes map[string]models.ConversionQuote
}

func NewConversionService(wallet repository.Wallet, history repository.Conversion, rates RateSource, quoteTTL time.Duration) *ConversionService {
	if quoteTTL <= 0 {
		quoteTTL = 30 * time.Second
	}
	return &ConversionService{
		wallet:   wallet,
		history:  history,
		rates:    rates,
		quoteTTL: quoteTTL,
		quotes:   make(map[string]models.ConversionQuote),
	}
}

// Rates отдаёт снимок всех курсов для базовой валюты
func (s *ConversionService) Rates(ctx context.Context, base string) (*rates.LatestResponse, error) {
	return s.rates.Snapshot(ctx, base)
}

// Quote считает предварительный результат конвертации, ничего не меняя.
// Комиссии вычитаются из сконвертированной суммы (4% спред + 1% конвертация).
func (s *ConversionService) Quote(ctx context.Context, userId int64, req models.QuoteRequest) (models.ConversionQuote, error) {
	from := currency.Normalize(req.From)
	to := currency.Normalize(req.To)

	if !currency.IsSupported(from) || !currency.IsSupported(to) || from == to {
		return models.ConversionQuote{}, errors.Wrapf(apperr.ErrInvalidPair, "пара %s/%s", req.From, req.To)
	}
	if !req.Amount.IsPositive() {
		return models.ConversionQuote{}, errors.New("сумма конвертации должна быть больше нуля")
	}

	rate, err := s.rates.GetRate(ctx, from, to)
	if err != nil {
		return models.ConversionQuote{}, err
	}

	gross := req.Amount.Mul(rate)
	breakdown := fees.ApplyFees(gross, fees.MethodNone)

	quote := models.ConversionQuote{
		Id:          uuid.NewString(),
		UserId:      userId,
		From:        from,
		To:          to,
		Amount:      req.Amount,
		Rate:        rate,
		GrossResult: gross,
		NetResult:   breakdown.NetAmount,
		FeeRate:     breakdown.TotalFeeRate,
		FeeAmount:   breakdown.TotalFees,
		CreatedAt:   time.Now(),
	}

	s.mu.Lock()
	s.purgeExpiredLocked()
	s.quotes[quote.Id] = quote
	s.mu.Unlock()

	return quote, nil
}

// Commit применяет ранее рассчитанную котировку: списание, зачисление,
// история и транзакция — всё в одной db-транзакции в репозитории.
// Котировка одноразовая и живёт ограниченное время.
func (s *ConversionService) Commit(ctx context.Context, userId int64, quoteId string) (models.ConversionRecord, error) {
	s.mu.Lock()
	quote, ok := s.quotes[quoteId]
	if ok {
		delete(s.quotes, quoteId)
	}
	s.mu.Unlock()

	if !ok || quote.UserId != userId {
		return models.ConversionRecord{}, apperr.ErrNotFound
	}
	if time.Since(quote.CreatedAt) > s.quoteTTL {
		return models.ConversionRecord{}, apperr.ErrQuoteExpired
	}

	record := models.ConversionRecord{
		UserId:       userId,
		FromCurrency: quote.From,
		ToCurrency:   quote.To,
		Amount:       quote.Amount,
		Result:       quote.NetResult,
		Rate:         quote.Rate,
		FeeRate:      quote.FeeRate,
		CreatedAt:    time.Now(),
	}

	if err := s.wallet.ApplyConversion(record); err != nil {
		return models.ConversionRecord{}, err
	}

	logrus.Infof("Конвертация применена: user=%d %s %s -> %s %s (курс %s)",
		userId, record.Amount, record.FromCurrency, record.Result, record.ToCurrency, record.Rate)

	return record, nil
}

func (s *ConversionService) History(userId int64) ([]models.ConversionRecord, error) {
	return s.history.GetHistory(userId)
}

func (s *ConversionService) DeleteRecord(userId, recordId int64) error {
	return s.history.DeleteRecord(userId, recordId)
}

func (s *ConversionService) purgeExpiredLocked() {
	now := time.Now()
	for id, q := range s.quotes {
		if now.Sub(q.CreatedAt) > s.quoteTTL {
			delete(s.quotes, id)
		}
	}
}
