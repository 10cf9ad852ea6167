package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// Payload is a decoded provider response.
type Payload map[string]any

// Fetch issues a query with the given parameters and classifies the response.
// The API key is always added. Calls beyond the concurrency bound wait for a free slot
// or for ctx to be done.
func (c *Client) Fetch(ctx context.Context, params url.Values) (Payload, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, &TransportError{Err: errors.Wrap(err, "waiting for a provider slot")}
	}
	defer c.sem.Release(1)

	query := maps.Clone(c.query)
	for key, values := range params {
		query[key] = values
	}

	reqURL := fmt.Sprintf("%s?%s", c.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, &TransportError{Err: errors.Wrap(err, "creating request")}
	}
	req.Header = c.header.Clone()

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: errors.Wrap(err, "performing request")}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &TransportError{Err: errors.Errorf("unexpected status code: %d", res.StatusCode)}
	}

	var payload Payload
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, &TransportError{Err: errors.Wrap(err, "decoding response")}
	}

	return payload, classify(payload)
}

// classify maps provider-level error indicators onto the package's error values.
func classify(payload Payload) error {
	if msg, ok := payload["Error Message"]; ok {
		return fmt.Errorf("%w: %v", ErrInvalidSymbol, msg)
	}
	if _, ok := payload["Note"]; ok {
		return ErrRateLimited
	}
	// Newer keys report the quota under "Information".
	if info, ok := payload["Information"].(string); ok && strings.Contains(strings.ToLower(info), "rate limit") {
		return ErrRateLimited
	}
	return nil
}
