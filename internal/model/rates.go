package model

import (
	"github.com/golang-sql/civil"
	"github.com/shopspring/decimal"
)

// RateTable is one Frankfurter answer: every rate for a base currency on a
// single date. When the request carried an amount, the rates are already
// multiplied by it.
type RateTable struct {
	Date  civil.Date                 `json:"date"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

func (t RateTable) Lookup(currency string) (decimal.Decimal, bool) {
	rate, ok := t.Rates[currency]
	return rate, ok
}
