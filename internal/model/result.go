package model

import (
	"github.com/golang-sql/civil"
	"github.com/shopspring/decimal"
)

// Result is what a rate service answers with when the call itself succeeded:
// a rate, a converted amount or a domain error.
type Result interface {
	isResult()
}

type RateResult struct {
	Rate decimal.Decimal
	Date civil.Date
}

type ConversionResult struct {
	Amount decimal.Decimal
	Date   civil.Date
}

type ErrorKind string

const (
	KindUnsupportedRequest     ErrorKind = "unsupported_request"
	KindExchangeRateNotFound   ErrorKind = "exchange_rate_not_found"
	KindConversionNotPerformed ErrorKind = "conversion_not_performed"
)

type ErrorResult struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

// IsNotFound reports whether the result describes a rate the remote side does
// not have, regardless of whether it was asked as a rate or a conversion.
func (r ErrorResult) IsNotFound() bool {
	return r.Kind == KindExchangeRateNotFound || r.Kind == KindConversionNotPerformed
}

func (r ErrorResult) String() string {
	return r.Message
}

func (RateResult) isResult()       {}
func (ConversionResult) isResult() {}
func (ErrorResult) isResult()      {}
