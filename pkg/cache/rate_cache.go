package cache

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type CachedRate struct {
	Rate      decimal.Decimal
	Timestamp time.Time
}

var (
	cachedRates   = make(map[string]CachedRate)
	cacheDuration = time.Minute
	mu            sync.Mutex
)

// SetDuration задаёт время жизни записей кэша (по умолчанию минута)
func SetDuration(d time.Duration) {
	mu.Lock()
	defer mu.Unlock()
	if d > 0 {
		cacheDuration = d
	}
}

// GetCachedRate возвращает курс из кэша или false, если его нет или он устарел
func GetCachedRate(key string) (decimal.Decimal, bool) {
	mu.Lock()
	defer mu.Unlock()

	rateData, ok := cachedRates[key]
	if !ok {
		return decimal.Zero, false
	}

	if time.Since(rateData.Timestamp) > cacheDuration {
		return decimal.Zero, false
	}

	return rateData.Rate, true
}

// SetCachedRate сохраняет курс в кэш
func SetCachedRate(key string, rate decimal.Decimal) {
	mu.Lock()
	defer mu.Unlock()

	cachedRates[key] = CachedRate{
		Rate:      rate,
		Timestamp: time.Now(),
	}
}

// Reset очищает кэш, используется в тестах
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	cachedRates = make(map[string]CachedRate)
}
