package provider

import (
	"net/http"
	"strings"
	"time"

	"github.com/okian/pitchmap/pkg/logger"
)

const (
	// DefaultTimeout bounds a single provider request.
	DefaultTimeout = 30 * time.Second
	// DefaultMaxBodyBytes caps a response body. A World Cup event log is
	// roughly 4MB.
	DefaultMaxBodyBytes int64 = 32 << 20
)

// HTTPOption configures an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithBaseURL sets the root URL that matches/ and events/ hang off.
func WithBaseURL(u string) HTTPOption {
	return func(s *HTTPSource) {
		if u = strings.TrimRight(strings.TrimSpace(u), "/"); u != "" {
			s.baseURL = u
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		if c != nil {
			s.client = c
		}
	}
}

// WithTimeout sets the client timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) HTTPOption {
	return func(s *HTTPSource) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithMaxBodyBytes caps the size of a response body.
func WithMaxBodyBytes(n int64) HTTPOption {
	return func(s *HTTPSource) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// WithLogger sets the logger of an HTTPSource.
func WithLogger(l logger.Logger) HTTPOption {
	return func(s *HTTPSource) {
		if l != nil {
			s.log = l
		}
	}
}

// DirOption configures a DirSource.
type DirOption func(*DirSource)

// WithDirLogger sets the logger of a DirSource.
func WithDirLogger(l logger.Logger) DirOption {
	return func(s *DirSource) {
		if l != nil {
			s.log = l
		}
	}
}
