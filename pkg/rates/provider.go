package rates

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"cambio_wallet_back/pkg/apperr"
	"cambio_wallet_back/pkg/cache"
	"cambio_wallet_back/pkg/currency"
)

// LatestResponse — ответ апстрима GET /latest/{BASE}
type LatestResponse struct {
	Base  string                     `json:"base"`
	Date  string                     `json:"date"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

type Provider struct {
	baseURL string
	client  *resty.Client
}

func NewProvider(baseURL string) *Provider {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetHeader("Accept", "application/json")

	return &Provider{
		baseURL: baseURL,
		client:  client,
	}
}

// GetRate возвращает курс: 1 единица base = rate единиц quote.
// Ошибку апстрима не глотаем — вызывающий обязан остановить операцию.
func (p *Provider) GetRate(ctx context.Context, base, quote string) (decimal.Decimal, error) {
	base = currency.Normalize(base)
	quote = currency.Normalize(quote)

	if !currency.IsSupported(base) || !currency.IsSupported(quote) {
		return decimal.Zero, errors.Wrapf(apperr.ErrInvalidPair, "пара %s/%s", base, quote)
	}

	key := base + "_" + quote
	if rate, found := cache.GetCachedRate(key); found {
		return rate, nil
	}

	snapshot, err := p.Snapshot(ctx, base)
	if err != nil {
		return decimal.Zero, err
	}

	rate, ok := snapshot.Rates[quote]
	if !ok || !rate.IsPositive() {
		return decimal.Zero, errors.Wrapf(apperr.ErrRateUnavailable, "апстрим не вернул курс %s для базы %s", quote, base)
	}

	cache.SetCachedRate(key, rate)
	return rate, nil
}

// Snapshot запрашивает у апстрима все курсы для базовой валюты
func (p *Provider) Snapshot(ctx context.Context, base string) (*LatestResponse, error) {
	base = currency.Normalize(base)
	if !currency.IsSupported(base) {
		return nil, errors.Wrapf(apperr.ErrInvalidPair, "валюта %s", base)
	}

	url := p.baseURL + "/latest/" + base

	resp, err := p.client.R().
		SetContext(ctx).
		SetResult(&LatestResponse{}).
		Get(url)

	if err != nil {
		logrus.Errorf("Ошибка запроса курса %s: %s", url, err)
		return nil, errors.Wrap(apperr.ErrRateUnavailable, err.Error())
	}
	if resp.IsError() {
		logrus.Errorf("Апстрим курсов вернул статус %d для %s", resp.StatusCode(), url)
		return nil, errors.Wrapf(apperr.ErrRateUnavailable, "статус %d", resp.StatusCode())
	}

	result := resp.Result().(*LatestResponse)
	if len(result.Rates) == 0 {
		return nil, errors.Wrap(apperr.ErrRateUnavailable, "пустой ответ апстрима")
	}
	return result, nil
}
