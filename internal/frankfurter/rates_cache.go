package frankfurter

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Lutefd/frankfurter-service/internal/cache"
	"github.com/Lutefd/frankfurter-service/internal/logger"
	"github.com/Lutefd/frankfurter-service/internal/model"
	"golang.org/x/crypto/blake2b"
)

const cacheKeyPrefix = "frankfurter:rates:"

func cacheKey(url string) string {
	sum := blake2b.Sum256([]byte(url))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

// retrieveRates returns the rate table behind url, from the cache when
// possible. Only successfully decoded tables are stored.
func (s *Service) retrieveRates(ctx context.Context, url string) (model.RateTable, error) {
	key := cacheKey(url)

	payload, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		var table model.RateTable
		decodeErr := json.Unmarshal(payload, &table)
		if decodeErr == nil {
			return table, nil
		}
		logger.Errorf("discarding undecodable cache entry %s: %v", key, decodeErr)
	case !errors.Is(err, cache.ErrCacheMiss):
		logger.Errorf("failed to read rates from cache: %v", err)
	}

	table, err := s.fetchRates(ctx, url)
	if err != nil {
		return model.RateTable{}, err
	}

	payload, err = json.Marshal(table)
	if err != nil {
		return model.RateTable{}, fmt.Errorf("failed to encode rates: %w", err)
	}
	if err := s.cache.Set(ctx, key, payload, s.ttl); err != nil {
		logger.Errorf("failed to store rates in cache: %v", err)
	}

	return table, nil
}
