package provider

import (
	"net/http"
	"time"
)

// Option configures an adapter's HTTP plumbing.
type Option func(*clientConfig)

type clientConfig struct {
	baseURL string
	http    *http.Client
}

// WithBaseURL overrides the adapter's default API base URL.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *clientConfig) {
		c.http = hc
	}
}

func newClientConfig(baseURL string, opts ...Option) clientConfig {
	c := clientConfig{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, o := range opts {
		o(&c)
	}
	return c
}
