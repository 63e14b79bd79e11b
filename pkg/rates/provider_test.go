package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cambio_wallet_back/pkg/apperr"
	"cambio_wallet_back/pkg/cache"
)

func newRateServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/latest/USD":
			w.Write([]byte(`{"base":"USD","date":"2025-01-15","rates":{"BRL":5.0,"EUR":0.85,"GBP":0.73,"JPY":110}}`))
		case "/latest/BRL":
			w.Write([]byte(`{"base":"BRL","date":"2025-01-15","rates":{"USD":0.2}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestGetRate(t *testing.T) {
	cache.Reset()
	srv := newRateServer(t)
	defer srv.Close()

	p := NewProvider(srv.URL)
	rate, err := p.GetRate(context.Background(), "usd", "brl")
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.NewFromFloat(5.0)))
}

func TestGetRateReciprocal(t *testing.T) {
	cache.Reset()
	srv := newRateServer(t)
	defer srv.Close()

	p := NewProvider(srv.URL)
	forward, err := p.GetRate(context.Background(), "USD", "BRL")
	require.NoError(t, err)
	backward, err := p.GetRate(context.Background(), "BRL", "USD")
	require.NoError(t, err)

	assert.True(t, forward.Mul(backward).Equal(decimal.NewFromInt(1)),
		"на одном снимке курсы взаимно обратны")
}

func TestGetRateUsesCache(t *testing.T) {
	cache.Reset()
	srv := newRateServer(t)

	p := NewProvider(srv.URL)
	_, err := p.GetRate(context.Background(), "USD", "BRL")
	require.NoError(t, err)

	// апстрим недоступен, курс берётся из кэша
	srv.Close()
	rate, err := p.GetRate(context.Background(), "USD", "BRL")
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.NewFromFloat(5.0)))
}

func TestGetRateMissingQuote(t *testing.T) {
	cache.Reset()
	srv := newRateServer(t)
	defer srv.Close()

	p := NewProvider(srv.URL)
	// ARS поддерживается, но апстрим его не вернул
	_, err := p.GetRate(context.Background(), "USD", "ARS")
	assert.ErrorIs(t, err, apperr.ErrRateUnavailable)
}

func TestGetRateUnsupportedCode(t *testing.T) {
	cache.Reset()
	srv := newRateServer(t)
	defer srv.Close()

	p := NewProvider(srv.URL)
	_, err := p.GetRate(context.Background(), "USD", "XXX")
	assert.ErrorIs(t, err, apperr.ErrInvalidPair)
}

func TestGetRateUpstreamDown(t *testing.T) {
	cache.Reset()
	srv := newRateServer(t)
	srv.Close()

	p := NewProvider(srv.URL)
	_, err := p.GetRate(context.Background(), "USD", "BRL")
	assert.ErrorIs(t, err, apperr.ErrRateUnavailable, "ошибка апстрима доходит до вызывающего")
}

func TestSnapshot(t *testing.T) {
	cache.Reset()
	srv := newRateServer(t)
	defer srv.Close()

	p := NewProvider(srv.URL)
	snapshot, err := p.Snapshot(context.Background(), "USD")
	require.NoError(t, err)
	assert.Equal(t, "USD", snapshot.Base)
	assert.Len(t, snapshot.Rates, 4)
	assert.True(t, snapshot.Rates["JPY"].Equal(decimal.NewFromInt(110)))
}
