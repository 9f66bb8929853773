package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Lutefd/frankfurter-service/internal/model"
	"github.com/golang-sql/civil"
	"github.com/shopspring/decimal"
)

type CurrencyService struct {
	provider RateProvider
}

func NewCurrencyService(provider RateProvider) *CurrencyService {
	return &CurrencyService{
		provider: provider,
	}
}

// Rate looks up the base/quote rate, on date when given or the latest one
// otherwise.
func (s *CurrencyService) Rate(ctx context.Context, base, quote string, date *civil.Date) (model.Result, error) {
	base, quote = strings.ToUpper(base), strings.ToUpper(quote)

	var request model.Request = model.CurrentRateRequest{Base: base, Quote: quote}
	if date != nil {
		request = model.HistoricalRateRequest{Base: base, Quote: quote, Date: *date}
	}

	return s.send(ctx, request)
}

// Convert asks the provider to convert amount from one currency to another.
func (s *CurrencyService) Convert(ctx context.Context, from, to string, amount decimal.Decimal, date *civil.Date) (model.Result, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)

	var request model.Request = model.CurrentConversionRequest{Amount: amount, Base: from, Quote: to}
	if date != nil {
		request = model.HistoricalConversionRequest{Amount: amount, Base: from, Quote: to, Date: *date}
	}

	return s.send(ctx, request)
}

func (s *CurrencyService) send(ctx context.Context, request model.Request) (model.Result, error) {
	result, err := s.provider.Send(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rates for %s/%s: %w", request.BaseCurrency(), request.QuoteCurrency(), err)
	}
	return result, nil
}
