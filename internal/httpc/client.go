// Package httpc provides shared HTTP clients with sensible defaults.
// Use these instead of http.DefaultClient to ensure timeouts are set.
package httpc

import (
	"net"
	"net/http"
	"time"
)

// Default timeouts for HTTP operations.
const (
	DefaultTimeout        = 30 * time.Second
	DefaultConnectTimeout = 5 * time.Second
	DefaultKeepAlive      = 30 * time.Second

	// MotorTimeout bounds a single motor command round-trip to the
	// drive controller. The controller lives on the local link; if it
	// has not answered in 5s it is not going to.
	MotorTimeout = 5 * time.Second
)

// Client is a shared HTTP client for general API calls.
var Client = NewClient(DefaultTimeout)

// Motor is the client used for drive-controller commands. Short timeout
// so a dead controller cannot wedge the mission runner indefinitely.
var Motor = NewClient(MotorTimeout)

// NewClient creates an HTTP client with the specified overall timeout.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   DefaultConnectTimeout,
				KeepAlive: DefaultKeepAlive,
			}).DialContext,
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}
