// Package httpc builds the HTTP clients used for model calls and for
// talking to a running daemon. Everything gets an explicit timeout; the
// zero-timeout http.DefaultClient is never used.
package httpc

import (
	"net"
	"net/http"
	"time"
)

// DefaultTimeout suits short local calls like the daemon REST API.
const DefaultTimeout = 30 * time.Second

// Connection tuning shared by every client. Model responses arrive slowly
// but connections are local, so connect failures should surface fast.
const (
	connectTimeout  = 10 * time.Second
	keepAlive       = 30 * time.Second
	idleConnTimeout = 90 * time.Second
)

// Client is the shared client for daemon REST calls. Model calls build
// their own client with a per-tier timeout via NewClient.
var Client = NewClient(DefaultTimeout)

// NewClient returns a client with the given overall timeout and the
// shared transport tuning.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   connectTimeout,
				KeepAlive: keepAlive,
			}).DialContext,
			MaxIdleConns:        64,
			MaxIdleConnsPerHost: 8,
			IdleConnTimeout:     idleConnTimeout,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}
