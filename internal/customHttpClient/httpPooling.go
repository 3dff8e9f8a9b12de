package customHttpClient

import (
	"net/http"
	"time"

	"github.com/akolanti/IngestAPI/internal/config"
)

var pooledTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

// NewPooledClient builds an http client sharing the pooled transport.
// The partitioning engine gets hit once per run with a multi-minute
// upload, so connection reuse matters there.
func NewPooledClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: pooledTransport,
		Timeout:   timeout,
	}
}
