package alphavantage

import (
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/semaphore"
)

const (
	// DefaultBaseURL is the Alpha Vantage query endpoint.
	DefaultBaseURL = "https://www.alphavantage.co/query"
	// DefaultTimeout bounds every provider call.
	DefaultTimeout = 10 * time.Second
	// DefaultMaxConcurrency is the number of provider calls allowed in flight at once.
	DefaultMaxConcurrency = 5
)

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=alphavantage_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a client for the Alpha Vantage API.
type Client struct {
	// baseURL is the query endpoint.
	baseURL string
	// httpClient performs the requests.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
	// query contains parameters sent with each request, including the API key.
	query url.Values
	// maxConcurrency bounds the number of outstanding calls.
	maxConcurrency int64
	sem            *semaphore.Weighted
}

// Option is a configuration option for the Alpha Vantage client.
type Option func(*Client)

// WithBaseURL sets the query endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) Option {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// WithMaxConcurrency sets how many provider calls may be outstanding at once.
func WithMaxConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxConcurrency = int64(n)
		}
	}
}

// NewHTTPClient returns an http.Client tuned for provider calls with the given timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 3 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   DefaultMaxConcurrency,
		ForceAttemptHTTP2:     true,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   3 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: transport}
}

// NewClient creates a new Alpha Vantage client.
func NewClient(apiKey string, options ...Option) *Client {
	c := &Client{
		baseURL:        DefaultBaseURL,
		httpClient:     NewHTTPClient(DefaultTimeout),
		header:         http.Header{},
		query:          url.Values{},
		maxConcurrency: DefaultMaxConcurrency,
	}
	c.query.Set("apikey", apiKey)
	for _, option := range options {
		option(c)
	}
	c.sem = semaphore.NewWeighted(c.maxConcurrency)
	return c
}
