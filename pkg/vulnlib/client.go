package vulnlib

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultURL     = "http://localhost:8000"
	DefaultTimeout = 30 * time.Second

	searchPath = "/cve/search"
)

// ErrUnavailable covers every way a lookup can fail: transport errors,
// non-success status codes and malformed payloads
var ErrUnavailable = errors.New("vulnerability service unavailable")

type Client struct {
	Cli *http.Client
	URL string
}

// Query is the body of a search request, vendor is optional
type Query struct {
	Vendor  string `json:"vendor,omitempty"`
	Product string `json:"product"`
	Version string `json:"version"`
}

// Vulnerability is one record of a search response
type Vulnerability struct {
	CVE      string  `json:"cve"`
	Severity string  `json:"severity"`
	Score    float64 `json:"score"`
	Vector   string  `json:"vector"`
	Summary  string  `json:"summary"`
}

type Option func(*Client)

// WithHTTPClient replaces the default http client, its timeout included
func WithHTTPClient(cli *http.Client) Option {
	return func(c *Client) { c.Cli = cli }
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.Cli.Timeout = timeout }
}

func NewClient(url string, opts ...Option) *Client {
	if url == "" {
		url = DefaultURL
	}

	tr := &http.Transport{
		Proxy:           http.ProxyFromEnvironment,
		IdleConnTimeout: 60 * time.Second,
	}

	c := &Client{
		Cli: &http.Client{
			Transport: tr,
			Timeout:   DefaultTimeout,
		},
		URL: strings.TrimRight(url, "/"),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Close releases idle connections held by the client
func (c *Client) Close() {
	c.Cli.CloseIdleConnections()
}
