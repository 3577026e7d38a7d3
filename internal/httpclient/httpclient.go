package httpclient

import (
	"net/http"
	"time"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// New returns a plain client whose timeout covers the whole request.
func New(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
