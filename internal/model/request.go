package model

import (
	"github.com/golang-sql/civil"
	"github.com/shopspring/decimal"
)

// Request is one of the four lookups the rate service understands. The set is
// closed: only types declared in this package satisfy it.
type Request interface {
	BaseCurrency() string
	QuoteCurrency() string
	isRequest()
}

type CurrentRateRequest struct {
	Base  string
	Quote string
}

type HistoricalRateRequest struct {
	Base  string
	Quote string
	Date  civil.Date
}

type CurrentConversionRequest struct {
	Amount decimal.Decimal
	Base   string
	Quote  string
}

type HistoricalConversionRequest struct {
	Amount decimal.Decimal
	Base   string
	Quote  string
	Date   civil.Date
}

func (r CurrentRateRequest) BaseCurrency() string           { return r.Base }
func (r CurrentRateRequest) QuoteCurrency() string          { return r.Quote }
func (r HistoricalRateRequest) BaseCurrency() string        { return r.Base }
func (r HistoricalRateRequest) QuoteCurrency() string       { return r.Quote }
func (r CurrentConversionRequest) BaseCurrency() string     { return r.Base }
func (r CurrentConversionRequest) QuoteCurrency() string    { return r.Quote }
func (r HistoricalConversionRequest) BaseCurrency() string  { return r.Base }
func (r HistoricalConversionRequest) QuoteCurrency() string { return r.Quote }

func (CurrentRateRequest) isRequest()          {}
func (HistoricalRateRequest) isRequest()       {}
func (CurrentConversionRequest) isRequest()    {}
func (HistoricalConversionRequest) isRequest() {}

// RequestVariants returns a zero value of every Request type. Dispatchers use
// it in tests to prove they handle the whole set.
func RequestVariants() []Request {
	return []Request{
		CurrentRateRequest{},
		HistoricalRateRequest{},
		CurrentConversionRequest{},
		HistoricalConversionRequest{},
	}
}
