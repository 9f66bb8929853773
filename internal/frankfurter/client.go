package frankfurter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Lutefd/frankfurter-service/internal/logger"
	"github.com/Lutefd/frankfurter-service/internal/model"
	"github.com/golang-sql/civil"
	"github.com/shopspring/decimal"
)

const (
	Version          = "1.0.0"
	userAgentProduct = "frankfurter-service"
	notFoundMessage  = "not found"
)

// ErrMalformedResponse means a 200 answer did not carry a rate table. A
// working Frankfurter deployment never produces it.
var ErrMalformedResponse = errors.New("unexpected response")

var errRatesNotFound = errors.New("rates not found")

// HTTPFailureError carries an HTTP answer the service could not interpret as
// rates.
type HTTPFailureError struct {
	StatusCode int
	Body       string
}

func (e *HTTPFailureError) Error() string {
	return fmt.Sprintf("HTTP error %d. Response is \"%s\"", e.StatusCode, e.Body)
}

type ratesPayload struct {
	Date  *civil.Date                `json:"date"`
	Rates map[string]*decimal.Decimal `json:"rates"`
}

type errorPayload struct {
	Message string `json:"message"`
}

func userAgent(existing string) string {
	agent := userAgentProduct + "/" + Version
	if existing == "" {
		return agent
	}
	return existing + " " + agent
}

// fetchRates performs the GET. A 404 carrying Frankfurter's "not found"
// message is reported as errRatesNotFound; any other non-200 answer is an
// *HTTPFailureError.
func (s *Service) fetchRates(ctx context.Context, url string) (model.RateTable, error) {
	req, err := s.newRequest(ctx, http.MethodGet, url)
	if err != nil {
		return model.RateTable{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent(req.Header.Get("User-Agent")))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return model.RateTable{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.RateTable{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound && isNotFoundBody(body) {
		return model.RateTable{}, fmt.Errorf("%w: %w", errRatesNotFound, &HTTPFailureError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
		})
	}
	if resp.StatusCode != http.StatusOK {
		logger.Errorf("frankfurter request %s failed with status %d", url, resp.StatusCode)
		return model.RateTable{}, &HTTPFailureError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	table, err := decodeRateTable(body)
	if err != nil {
		return model.RateTable{}, err
	}

	logger.Infof("fetched %d rates for %s from %s", len(table.Rates), table.Date, url)
	return table, nil
}

func isNotFoundBody(body []byte) bool {
	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return false
	}
	return payload.Message == notFoundMessage
}

func decodeRateTable(body []byte) (model.RateTable, error) {
	var payload *ratesPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return model.RateTable{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if payload == nil {
		return model.RateTable{}, fmt.Errorf("%w: no rates in the response", ErrMalformedResponse)
	}
	if payload.Date == nil {
		return model.RateTable{}, fmt.Errorf("%w: date missing", ErrMalformedResponse)
	}

	// A null rate means the currency is unknown for that date.
	rates := make(map[string]decimal.Decimal, len(payload.Rates))
	for currency, rate := range payload.Rates {
		if rate != nil {
			rates[currency] = *rate
		}
	}
	return model.RateTable{Date: *payload.Date, Rates: rates}, nil
}
