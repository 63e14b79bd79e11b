package apperr

import "errors"

// Сигнальные ошибки доменного уровня, проверяются через errors.Is()
var (
	ErrRateUnavailable   = errors.New("курс недоступен")
	ErrInvalidPair       = errors.New("некорректная валютная пара")
	ErrInsufficientFunds = errors.New("недостаточно средств на балансе")
	ErrConcurrentUpdate  = errors.New("баланс изменён параллельной операцией")
	ErrQuoteExpired      = errors.New("котировка устарела")
	ErrPairExists        = errors.New("валютная пара уже в watchlist")
	ErrNotFound          = errors.New("запись не найдена")
)
