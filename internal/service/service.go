package service

import (
	"context"

	"github.com/Lutefd/frankfurter-service/internal/model"
	"github.com/golang-sql/civil"
	"github.com/shopspring/decimal"
)

type CurrencyServiceInterface interface {
	Rate(ctx context.Context, base, quote string, date *civil.Date) (model.Result, error)
	Convert(ctx context.Context, from, to string, amount decimal.Decimal, date *civil.Date) (model.Result, error)
}

// RateProvider is the request/result contract of frankfurter.Service.
type RateProvider interface {
	Send(ctx context.Context, request any) (model.Result, error)
}
