// Package endpoint holds the proxy service base URL shared by the
// conversation session and the model catalog.
package endpoint

import "sync"

// Default is the service URL used when nothing else is configured.
const Default = "https://nexuproxy.onrender.com/"

// Endpoint is a mutable base URL. Readers must call Get at request
// construction time rather than caching the value.
type Endpoint struct {
	mu  sync.RWMutex
	url string
}

// New returns an Endpoint set to url, or to Default when url is empty.
func New(url string) *Endpoint {
	if url == "" {
		url = Default
	}
	return &Endpoint{url: url}
}

func (e *Endpoint) Get() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.url
}

// Set replaces the base URL unconditionally.
func (e *Endpoint) Set(url string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.url = url
}
