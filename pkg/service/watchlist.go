package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"cambio_wallet_back/models"
	"cambio_wallet_back/pkg/apperr"
	"cambio_wallet_back/pkg/currency"
	"cambio_wallet_back/pkg/repository"
)

type WatchlistService struct {
	repos    repository.Watchlist
	users    repository.Authorization
	rates    RateSource
	notifier Notifier
}

func NewWatchlistService(repos repository.Watchlist, users repository.Authorization, rates RateSource, notifier Notifier) *WatchlistService {
	return &WatchlistService{
		repos:    repos,
		users:    users,
		rates:    rates,
		notifier: notifier,
	}
}

func (s *WatchlistService) Add(userId int64, input models.WatchlistAddInput) (models.WatchlistEntry, error) {
	from := currency.Normalize(input.From)
	to := currency.Normalize(input.To)

	if !currency.IsSupported(from) || !currency.IsSupported(to) || from == to {
		return models.WatchlistEntry{}, errors.Wrapf(apperr.ErrInvalidPair, "пара %s/%s", input.From, input.To)
	}
	if input.AlertRate != nil && !input.AlertRate.IsPositive() {
		return models.WatchlistEntry{}, errors.New("порог алерта должен быть больше нуля")
	}

	entry := models.WatchlistEntry{
		UserId:       userId,
		FromCurrency: from,
		ToCurrency:   to,
		AlertEnabled: input.AlertEnabled,
		AlertRate:    input.AlertRate,
	}

	id, err := s.repos.Create(entry)
	if err != nil {
		return models.WatchlistEntry{}, err
	}
	entry.Id = id
	return entry, nil
}

func (s *WatchlistService) List(userId int64) ([]models.WatchlistEntry, error) {
	return s.repos.List(userId)
}

func (s *WatchlistService) Update(userId, id int64, input models.WatchlistUpdateInput) error {
	if input.AlertRate != nil && !input.AlertRate.IsPositive() {
		return errors.New("порог алерта должен быть больше нуля")
	}
	return s.repos.Update(userId, id, input)
}

func (s *WatchlistService) Delete(userId, id int64) error {
	return s.repos.Delete(userId, id)
}

// EvaluateOnce — один проход по всем включённым алертам.
// Алерт срабатывает один раз на пересечение порога вверх: после срабатывания
// запись помечается triggered и взводится заново, когда курс опустится ниже.
func (s *WatchlistService) EvaluateOnce(ctx context.Context) ([]models.AlertEvent, error) {
	entries, err := s.repos.ListAlertEnabled()
	if err != nil {
		return nil, err
	}

	var events []models.AlertEvent
	for _, entry := range entries {
		if entry.AlertRate == nil {
			continue
		}

		rate, err := s.rates.GetRate(ctx, entry.FromCurrency, entry.ToCurrency)
		if err != nil {
			logrus.Errorf("Опрос watchlist: не удалось получить курс %s/%s: %s",
				entry.FromCurrency, entry.ToCurrency, err)
			continue
		}

		crossed := rate.GreaterThanOrEqual(*entry.AlertRate)
		switch {
		case crossed && !entry.Triggered:
			event := models.AlertEvent{
				Entry:       entry,
				CurrentRate: rate,
				OccurredAt:  time.Now(),
			}
			events = append(events, event)

			if err := s.repos.SetTriggered(entry.Id, true); err != nil {
				logrus.Errorf("Не удалось пометить алерт %d как сработавший: %s", entry.Id, err)
				continue
			}

			logrus.Infof("Алерт watchlist: %s/%s курс %s достиг порога %s (user=%d)",
				entry.FromCurrency, entry.ToCurrency, rate, entry.AlertRate, entry.UserId)

			if user, err := s.users.GetUserById(entry.UserId); err == nil {
				s.notifier.AlertTriggered(user.Email, event)
			}
		case !crossed && entry.Triggered:
			// курс вернулся ниже порога — алерт можно взводить снова
			if err := s.repos.SetTriggered(entry.Id, false); err != nil {
				logrus.Errorf("Не удалось перевзвести алерт %d: %s", entry.Id, err)
			}
		}
	}

	return events, nil
}

// Evaluator — серверный фоновый опрос курсов, не привязан к сессии клиента
type Evaluator struct {
	watchlist Watchlist
	interval  time.Duration
}

func NewEvaluator(watchlist Watchlist, interval time.Duration) *Evaluator {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Evaluator{
		watchlist: watchlist,
		interval:  interval,
	}
}

// Run крутит опрос до отмены контекста
func (e *Evaluator) Run(ctx context.Context) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	logrus.Infof("Фоновый опрос watchlist запущен, интервал %s", e.interval)

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Фоновый опрос watchlist остановлен")
			return
		case <-ticker.C:
			if _, err := e.watchlist.EvaluateOnce(ctx); err != nil {
				logrus.Errorf("Ошибка прохода по watchlist: %s", err)
			}
		}
	}
}
