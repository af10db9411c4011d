package github

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"golang.org/x/oauth2"
)

type Config struct {
	APIURL         string
	PerPage        int
	MaxRetries     int
	Workers        int
	RequestTimeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		APIURL:         "https://api.github.com",
		PerPage:        100,
		MaxRetries:     5,
		Workers:        runtime.NumCPU(),
		RequestTimeout: 10 * time.Second,
	}
}

// NewHTTPClient builds the HTTP client used for all commit-listing requests.
// With a token, requests are authenticated through an oauth2 static token
// source; without one, GitHub serves the unauthenticated rate limit.
func NewHTTPClient(token string, timeout time.Duration) *http.Client {
	if token == "" {
		return &http.Client{Timeout: timeout}
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := oauth2.NewClient(context.Background(), ts)
	client.Timeout = timeout
	return client
}
