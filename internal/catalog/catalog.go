// Package catalog caches the list of models offered by the proxy service.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/nexuchat/nexuchat/internal/endpoint"
	"github.com/nexuchat/nexuchat/internal/proxy"
	"github.com/nexuchat/nexuchat/internal/schema"
)

const (
	// NotLoadedText is what ListAsText reports for an empty catalog.
	NotLoadedText = "Models not loaded yet. Use refresh models block."
	// NotLoaded is what GetByIndex reports for an empty catalog.
	NotLoaded = "Models not loaded"
)

// ErrStaleEndpoint is returned by Load when the endpoint changed while the
// fetch was in flight; the fetched list is discarded.
var ErrStaleEndpoint = errors.New("endpoint changed during refresh")

// Lister is the part of the proxy client the catalog needs.
type Lister interface {
	ListModels(ctx context.Context, base string) ([]schema.Model, error)
}

// Catalog holds the models in the order the service returned them.
// It starts empty and is only ever replaced wholesale by a successful fetch.
type Catalog struct {
	client   Lister
	endpoint *endpoint.Endpoint
	group    singleflight.Group

	mu     sync.RWMutex
	models []schema.Model
}

func New(client Lister, ep *endpoint.Endpoint) *Catalog {
	return &Catalog{client: client, endpoint: ep}
}

// Load fetches the model list once and replaces the catalog on success.
// On any error the current catalog is left untouched.
//
// Concurrent loads against the same endpoint share one request. The shared
// request does not inherit any caller's cancellation; each caller stops
// waiting when its own ctx is done.
func (c *Catalog) Load(ctx context.Context) error {
	base := c.endpoint.Get()

	ch := c.group.DoChan(base, func() (any, error) {
		return c.client.ListModels(context.WithoutCancel(ctx), base)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		// Later loads start a fresh request instead of joining one nobody waits on.
		c.group.Forget(base)
		return ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return res.Err
	}

	models, _ := res.Val.([]schema.Model)
	if len(models) == 0 {
		return proxy.ErrNoModels
	}

	fresh := make([]schema.Model, len(models))
	copy(fresh, models)

	// The endpoint is re-read under mu: a load for a newer endpoint always
	// stores after that endpoint was set, so it cannot be overwritten here.
	c.mu.Lock()
	defer c.mu.Unlock()
	if current := c.endpoint.Get(); current != base {
		return fmt.Errorf("%w: fetched from %s, current is %s", ErrStaleEndpoint, base, current)
	}
	c.models = fresh
	return nil
}

// Refresh is the best-effort form of Load: failures are logged, never returned.
func (c *Catalog) Refresh(ctx context.Context) {
	if err := c.Load(ctx); err != nil {
		slog.Warn("catalog: refresh failed, keeping previous models", "err", err, "count", c.Count())
		return
	}
	slog.Info("catalog: loaded models", "count", c.Count())
}

// Count returns the number of cached models.
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.models)
}

// Models returns a copy of the cached models.
func (c *Catalog) Models() []schema.Model {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]schema.Model, len(c.models))
	copy(out, c.models)
	return out
}

// ModelAt returns the model at a 1-based position.
func (c *Catalog) ModelAt(index int) (schema.Model, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if index < 1 || index > len(c.models) {
		return schema.Model{}, false
	}
	return c.models[index-1], true
}

// GetByIndex returns the id at a 1-based position, or a message describing
// why there is none.
func (c *Catalog) GetByIndex(index int) string {
	n := c.Count()
	if n == 0 {
		return NotLoaded
	}
	m, ok := c.ModelAt(index)
	if !ok {
		return fmt.Sprintf("Invalid index. Use 1-%d", n)
	}
	return m.ID
}

// ListAsText renders the catalog as a numbered, human-readable list.
func (c *Catalog) ListAsText() string {
	models := c.Models()
	if len(models) == 0 {
		return NotLoadedText
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d models available:\n\n", len(models))
	for i, m := range models {
		fmt.Fprintf(&sb, "%d. %s\n   ID: %s\n\n", i+1, m.Name, m.ID)
	}
	return sb.String()
}
