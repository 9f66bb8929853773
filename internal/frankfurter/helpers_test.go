package frankfurter_test

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

type fakeResponse struct {
	status int
	body   string
}

// fakeClient answers from a table keyed by "path?query" and records every
// request it sees.
type fakeClient struct {
	mu        sync.Mutex
	responses map[string]fakeResponse
	fallback  *fakeResponse
	requests  []*http.Request
}

func newFakeClient() *fakeClient {
	responses := make(map[string]fakeResponse, len(fixtures))
	for key, resp := range fixtures {
		responses[key] = resp
	}
	return &fakeClient{responses: responses}
}

func newFallbackClient(status int, body string) *fakeClient {
	return &fakeClient{
		responses: map[string]fakeResponse{},
		fallback:  &fakeResponse{status: status, body: body},
	}
}

func (c *fakeClient) Do(req *http.Request) (*http.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.requests = append(c.requests, req)

	resp, ok := c.responses[req.URL.Path+"?"+req.URL.RawQuery]
	if !ok {
		if c.fallback == nil {
			return nil, fmt.Errorf("non-mocked URL: %s", req.URL)
		}
		resp = *c.fallback
	}

	return &http.Response{
		StatusCode: resp.status,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader(resp.body)),
		Request:    req,
	}, nil
}

func (c *fakeClient) set(key string, status int, body string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responses[key] = fakeResponse{status: status, body: body}
}

func (c *fakeClient) requestCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.requests)
}

func (c *fakeClient) lastRequest() *http.Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.requests) == 0 {
		return nil
	}
	return c.requests[len(c.requests)-1]
}

const notFoundBody = `{"message":"not found"}`

var fixtures = map[string]fakeResponse{
	// latest rates
	"/v1/latest?amount=1&base=EUR": {http.StatusOK,
		`{"amount":1.0,"base":"EUR","date":"2025-12-17","rates":{"BYN":3.4139,"JPY":182.38,"PHP":68.797,"TRY":50.123,"USD":1.1722}}`},
	"/v1/latest?amount=1&base=USD": {http.StatusOK,
		`{"amount":1.0,"base":"USD","date":"2025-12-17","rates":{"EUR":0.8531,"JPY":155.59,"PHP":58.669}}`},
	"/v1/latest?amount=1&base=EUR&symbols=USD%2CJPY%2CBYN": {http.StatusOK,
		`{"amount":1.0,"base":"EUR","date":"2025-12-17","rates":{"BYN":3.4139,"JPY":182.38,"USD":1.1722}}`},
	"/v1/latest?amount=1&base=XBT": {http.StatusNotFound, notFoundBody},

	// latest conversions
	"/v1/latest?amount=1234.56&base=EUR&symbols=USD": {http.StatusOK,
		`{"amount":1234.56,"base":"EUR","date":"2025-12-17","rates":{"USD":1447.15}}`},
	"/v1/latest?amount=1234.56&base=EUR&symbols=JPY": {http.StatusOK,
		`{"amount":1234.56,"base":"EUR","date":"2025-12-17","rates":{"JPY":225159}}`},
	"/v1/latest?amount=1234.56&base=EUR": {http.StatusOK,
		`{"amount":1234.56,"base":"EUR","date":"2025-12-17","rates":{"JPY":225159,"PHP":84903,"TRY":61880,"USD":1447.15}}`},
	"/v1/latest?amount=12.3456&base=EUR": {http.StatusOK,
		`{"amount":12.3456,"base":"EUR","date":"2025-12-17","rates":{"JPY":2251.59,"PHP":849.03,"USD":14.4715}}`},
	"/v1/latest?amount=1234.56&base=USD": {http.StatusOK,
		`{"amount":1234.56,"base":"USD","date":"2025-12-17","rates":{"EUR":1053.2,"JPY":192083}}`},
	"/v1/latest?amount=1234.56&base=EUR&symbols=USD%2CJPY%2CPHP%2CBYN": {http.StatusOK,
		`{"amount":1234.56,"base":"EUR","date":"2025-12-17","rates":{"BYN":4214.6,"JPY":225159,"PHP":84903,"USD":1447.15}}`},
	"/v1/latest?amount=1&base=XBT&symbols=USD": {http.StatusNotFound, notFoundBody},
	"/v1/latest?amount=1&base=USD&symbols=XBT": {http.StatusNotFound, notFoundBody},

	// historical rates
	"/v1/2025-06-13?amount=1&base=EUR": {http.StatusOK,
		`{"amount":1.0,"base":"EUR","date":"2025-06-13","rates":{"JPY":166.02,"PHP":64.705,"USD":1.1512}}`},
	"/v1/2025-06-13?amount=1&base=EUR&symbols=USD%2CJPY%2CBYN": {http.StatusOK,
		`{"amount":1.0,"base":"EUR","date":"2025-06-13","rates":{"BYN":3.7725,"JPY":166.02,"USD":1.1512}}`},
	"/v1/2025-06-15?amount=1&base=EUR": {http.StatusOK,
		`{"amount":1.0,"base":"EUR","date":"2025-06-13","rates":{"USD":1.1512}}`},

	// historical conversions
	"/v1/2025-06-13?amount=1234.56&base=EUR&symbols=USD": {http.StatusOK,
		`{"amount":1234.56,"base":"EUR","date":"2025-06-13","rates":{"USD":1421.23}}`},
	"/v1/2025-06-13?amount=1234.56&base=EUR": {http.StatusOK,
		`{"amount":1234.56,"base":"EUR","date":"2025-06-13","rates":{"JPY":204863,"PHP":79883,"USD":1421.23}}`},
	"/v1/2025-06-13?amount=1&base=XBT&symbols=USD": {http.StatusNotFound, notFoundBody},
	"/v1/2025-06-13?amount=1&base=USD&symbols=XBT": {http.StatusNotFound, notFoundBody},
}
