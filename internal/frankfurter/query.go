package frankfurter

import (
	"net/url"
	"strings"
)

const (
	latestEndpoint     = "/v1/latest"
	historicalEndpoint = "/v1/"
)

// buildURL maps q onto the Frankfurter endpoint and query string. Parameters
// come out as amount, base, symbols; symbols is left out when every currency
// is wanted.
func (s *Service) buildURL(q query) string {
	params := url.Values{}

	if q.conversion {
		params.Set("amount", q.amount.String())
	} else {
		params.Set("amount", "1")
	}
	params.Set("base", q.base)

	if !q.conversion || s.multiconversion {
		if len(s.symbols) > 0 {
			params.Set("symbols", strings.Join(s.symbols, ","))
		}
	} else {
		params.Set("symbols", q.quote)
	}

	endpoint := latestEndpoint
	if !q.current {
		endpoint = historicalEndpoint + q.date.String()
	}

	return s.hostname + endpoint + "?" + params.Encode()
}
