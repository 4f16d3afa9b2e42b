package customHttpClient

import (
	"net/http"
	"time"

	"github.com/akolanti/DocQueryAPI/internal/config"
)

//shared transport so the stage and completion gateways reuse connections

var customTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

// NewPooledClient returns a client on the shared transport. timeout of 0
// means no client-side deadline, which the streaming download path needs -
// everything else should pass one.
func NewPooledClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: customTransport,
		Timeout:   timeout,
	}
}
