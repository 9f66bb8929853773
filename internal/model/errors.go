package model

import (
	"fmt"
	"reflect"
)

// UnsupportedRequestError builds the result returned for values that are not
// a Request.
func UnsupportedRequestError(request any) ErrorResult {
	return ErrorResult{
		Kind:    KindUnsupportedRequest,
		Message: fmt.Sprintf("Unsupported request type: %q", typeName(request)),
	}
}

// NotFoundError builds the result returned when the rate for request is not
// available. Rate lookups and conversions are reported with different kinds
// and wording.
func NotFoundError(request Request, cause error) ErrorResult {
	var kind ErrorKind
	var message string

	switch r := request.(type) {
	case CurrentRateRequest:
		kind = KindExchangeRateNotFound
		message = fmt.Sprintf("Unable to find exchange rate for %s/%s", r.Base, r.Quote)
	case HistoricalRateRequest:
		kind = KindExchangeRateNotFound
		message = fmt.Sprintf("Unable to find exchange rate for %s/%s on %s", r.Base, r.Quote, r.Date)
	case CurrentConversionRequest:
		kind = KindConversionNotPerformed
		message = fmt.Sprintf("Unable to convert %s %s to %s", r.Amount, r.Base, r.Quote)
	case HistoricalConversionRequest:
		kind = KindConversionNotPerformed
		message = fmt.Sprintf("Unable to convert %s %s to %s on %s", r.Amount, r.Base, r.Quote, r.Date)
	default:
		panic(fmt.Sprintf("model: unhandled request variant %T", request))
	}

	return ErrorResult{Kind: kind, Message: message, Cause: cause}
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}
