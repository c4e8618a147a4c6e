// Package adapter is the host-facing surface: one conversation session and
// one model catalog sharing a mutable service endpoint.
package adapter

import (
	"context"
	"log/slog"
	"sync"

	"github.com/nexuchat/nexuchat/internal/catalog"
	"github.com/nexuchat/nexuchat/internal/endpoint"
	"github.com/nexuchat/nexuchat/internal/session"
)

// Adapter owns the session, the catalog and the endpoint they both read.
// Background catalog refreshes run under an internal context that Close
// cancels.
type Adapter struct {
	endpoint *endpoint.Endpoint
	session  *session.Session
	catalog  *catalog.Catalog

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New wires the components and starts the initial catalog load in the
// background. It does not wait for the load.
func New(ep *endpoint.Endpoint, sess *session.Session, cat *catalog.Catalog) *Adapter {
	ctx, cancel := context.WithCancel(context.Background())
	a := &Adapter{
		endpoint: ep,
		session:  sess,
		catalog:  cat,
		ctx:      ctx,
		cancel:   cancel,
	}
	a.refreshAsync("startup")
	return a
}

func (a *Adapter) Session() *session.Session { return a.session }
func (a *Adapter) Catalog() *catalog.Catalog { return a.catalog }

// Endpoint returns the current service URL.
func (a *Adapter) Endpoint() string { return a.endpoint.Get() }

// SetEndpoint replaces the service URL and reloads the catalog in the
// background. It returns without waiting for the reload.
func (a *Adapter) SetEndpoint(url string) {
	a.endpoint.Set(url)
	slog.Info("adapter: endpoint changed", "endpoint", url)
	a.refreshAsync("endpoint change")
}

// RefreshModels reloads the catalog and waits for it. Failures are logged
// by the catalog and never returned.
func (a *Adapter) RefreshModels(ctx context.Context) {
	a.catalog.Refresh(ctx)
}

// Wait blocks until every background refresh started so far has finished.
func (a *Adapter) Wait() {
	a.wg.Wait()
}

// Close stops outstanding background refreshes from waiting and waits for
// them to return. A fetch already on the wire is bounded by the HTTP client.
func (a *Adapter) Close() {
	a.cancel()
	a.wg.Wait()
}

func (a *Adapter) refreshAsync(reason string) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		slog.Debug("adapter: background catalog refresh", "reason", reason)
		a.catalog.Refresh(a.ctx)
	}()
}
