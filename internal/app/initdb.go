package app

import (
	"context"
	"net/http"
	"time"

	"github.com/guonaihong/gout"
	"github.com/pkg/errors"
	"github.com/salesdash/salesdash/internal/domain"
	"go.uber.org/zap"
)

const defaultSeedTimeout = 30 * time.Second

// FetchSeed downloads the seed document from url
func (a *Application) FetchSeed(ctx context.Context, url string) ([]byte, error) {
	timeout := defaultSeedTimeout
	if a.appConfig != nil && a.appConfig.Seed.TimeoutSecs > 0 {
		timeout = time.Duration(a.appConfig.Seed.TimeoutSecs) * time.Second
	}

	var body []byte
	var code int
	err := gout.GET(url).
		WithContext(ctx).
		SetTimeout(timeout).
		BindBody(&body).
		Code(&code).
		Do()
	if err != nil {
		return nil, errors.Wrapf(err, "fetch seed %s", url)
	}
	if code < http.StatusOK || code >= http.StatusMultipleChoices {
		return nil, errors.Errorf("fetch seed %s: unexpected status %d", url, code)
	}
	return body, nil
}

// LoadSeed decodes data and replaces the store contents with it
func (a *Application) LoadSeed(ctx context.Context, data []byte) (int, error) {
	txs, err := domain.DecodeSeed(data, a.location)
	if err != nil {
		return 0, err
	}
	n, err := a.store.ReplaceAll(ctx, txs)
	if err != nil {
		return 0, err
	}
	zap.L().Info("initialized product transactions", zap.Int("count", n))
	return n, nil
}

// InitializeDatabase fetches the configured seed document and loads it
func (a *Application) InitializeDatabase(ctx context.Context) (int, error) {
	url := a.appConfig.Seed.URL
	data, err := a.FetchSeed(ctx, url)
	if err != nil {
		return 0, err
	}
	return a.LoadSeed(ctx, data)
}
