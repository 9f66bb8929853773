package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Lutefd/frankfurter-service/internal/commons"
	"github.com/Lutefd/frankfurter-service/internal/logger"
	"github.com/Lutefd/frankfurter-service/internal/model"
)

// RateSender is satisfied by frankfurter.Service.
type RateSender interface {
	Send(ctx context.Context, request any) (model.Result, error)
}

// CacheWarmer keeps the shared cache filled with the latest rate table of
// every configured base currency.
type CacheWarmer struct {
	sender   RateSender
	bases    []string
	interval time.Duration
}

// NewCacheWarmer falls back to commons.WarmInterval when interval is not
// positive.
func NewCacheWarmer(sender RateSender, bases []string, interval time.Duration) *CacheWarmer {
	if interval <= 0 {
		interval = commons.WarmInterval
	}
	return &CacheWarmer{
		sender:   sender,
		bases:    append([]string(nil), bases...),
		interval: interval,
	}
}

// Start warms once right away and then on every tick until ctx is done.
func (cw *CacheWarmer) Start(ctx context.Context) {
	if err := cw.warm(ctx); err != nil {
		logger.Errorf("error warming rate cache: %v", err)
	}

	ticker := time.NewTicker(cw.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("cache warmer stopped")
			return
		case <-ticker.C:
			if err := cw.warm(ctx); err != nil {
				logger.Errorf("error warming rate cache: %v", err)
			}
		}
	}
}

// warm fetches the latest table for each base. Asking for the base itself as
// quote keeps the request URL identical to any other rate lookup on that base;
// the rate itself is usually absent from the table, so ErrorResults are
// expected here and ignored.
func (cw *CacheWarmer) warm(ctx context.Context) error {
	var errs []error
	for _, base := range cw.bases {
		if ctx.Err() != nil {
			break
		}
		_, err := cw.sender.Send(ctx, model.CurrentRateRequest{Base: base, Quote: base})
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to warm %s: %w", base, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	logger.Infof("rate cache warmed for %d base currencies", len(cw.bases))
	return nil
}
