// Package frankfurter answers exchange-rate and conversion requests from a
// Frankfurter API deployment (https://frankfurter.dev).
package frankfurter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/Lutefd/frankfurter-service/internal/cache"
	"github.com/Lutefd/frankfurter-service/internal/model"
	"github.com/golang-sql/civil"
	"github.com/shopspring/decimal"
)

const (
	DefaultHostname = "https://api.frankfurter.dev"
	DefaultCacheTTL = time.Hour
)

var schemePrefix = regexp.MustCompile(`(?i)^[a-z][a-z0-9+.-]+://.`)

// HTTPClient executes a prepared request. *http.Client satisfies it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// RequestFactory builds the outgoing request. It may attach headers of its
// own; a User-Agent set here is kept in front of the service's one.
type RequestFactory func(ctx context.Context, method, url string) (*http.Request, error)

type Service struct {
	hostname        string
	symbols         []string
	multiconversion bool
	cache           cache.Cache
	ttl             time.Duration
	httpClient      HTTPClient
	newRequest      RequestFactory
}

type Option func(*Service)

func WithHostname(hostname string) Option {
	return func(s *Service) { s.hostname = hostname }
}

// WithSymbols restricts the quote currencies ever requested from the API.
func WithSymbols(symbols ...string) Option {
	return func(s *Service) { s.symbols = append([]string(nil), symbols...) }
}

// WithMulticonversion makes conversions fetch every allowed currency at once
// so that conversions sharing base, date and amount hit the same cache entry.
func WithMulticonversion(enabled bool) Option {
	return func(s *Service) { s.multiconversion = enabled }
}

func WithCache(c cache.Cache) Option {
	return func(s *Service) { s.cache = c }
}

func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) { s.ttl = ttl }
}

func WithHTTPClient(client HTTPClient) Option {
	return func(s *Service) { s.httpClient = client }
}

func WithRequestFactory(factory RequestFactory) Option {
	return func(s *Service) { s.newRequest = factory }
}

func NewService(opts ...Option) *Service {
	s := &Service{
		hostname:   DefaultHostname,
		cache:      cache.NullCache{},
		ttl:        DefaultCacheTTL,
		httpClient: &http.Client{},
		newRequest: defaultRequestFactory,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.hostname = normalizeHostname(s.hostname)
	return s
}

func defaultRequestFactory(ctx context.Context, method, url string) (*http.Request, error) {
	return http.NewRequestWithContext(ctx, method, url, nil)
}

func normalizeHostname(hostname string) string {
	if !schemePrefix.MatchString(hostname) {
		hostname = "https://" + hostname
	}
	return strings.TrimRight(hostname, "/")
}

func (s *Service) Hostname() string {
	return s.hostname
}

// Send answers request. Unsupported requests and rates the API does not know
// come back as a model.ErrorResult. The error return is reserved for failures
// the caller must not mistake for an answer: unexpected HTTP statuses,
// network errors and malformed payloads.
func (s *Service) Send(ctx context.Context, request any) (model.Result, error) {
	q, ok := describe(request)
	if !ok {
		return model.UnsupportedRequestError(request), nil
	}

	table, err := s.retrieveRates(ctx, s.buildURL(q))
	if err != nil {
		if errors.Is(err, errRatesNotFound) {
			var cause error
			var failure *HTTPFailureError
			if errors.As(err, &failure) {
				cause = failure
			}
			return model.NotFoundError(q.request, cause), nil
		}
		return nil, err
	}

	return interpret(table, q), nil
}

func (s *Service) Supports(request any) bool {
	_, ok := describe(request)
	return ok
}

// query is the part of a request the rest of the pipeline needs.
type query struct {
	request    model.Request
	base       string
	quote      string
	amount     decimal.Decimal
	date       civil.Date
	current    bool
	conversion bool
}

func describe(request any) (query, bool) {
	switch r := request.(type) {
	case model.CurrentRateRequest:
		return query{request: r, base: r.Base, quote: r.Quote, current: true}, true
	case model.HistoricalRateRequest:
		return query{request: r, base: r.Base, quote: r.Quote, date: r.Date}, true
	case model.CurrentConversionRequest:
		return query{request: r, base: r.Base, quote: r.Quote, amount: r.Amount, current: true, conversion: true}, true
	case model.HistoricalConversionRequest:
		return query{request: r, base: r.Base, quote: r.Quote, amount: r.Amount, date: r.Date, conversion: true}, true
	case *model.CurrentRateRequest:
		return describePointer(r)
	case *model.HistoricalRateRequest:
		return describePointer(r)
	case *model.CurrentConversionRequest:
		return describePointer(r)
	case *model.HistoricalConversionRequest:
		return describePointer(r)
	case model.Request:
		panic(fmt.Sprintf("frankfurter: unhandled request variant %T", request))
	default:
		return query{}, false
	}
}

func describePointer[T model.Request](r *T) (query, bool) {
	if r == nil {
		return query{}, false
	}
	return describe(*r)
}
