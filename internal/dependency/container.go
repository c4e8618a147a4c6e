// Package dependency wires core nexuchat services using go.uber.org/dig.
package dependency

import (
	"net/http"

	"go.uber.org/dig"

	"github.com/nexuchat/nexuchat/internal/adapter"
	"github.com/nexuchat/nexuchat/internal/catalog"
	"github.com/nexuchat/nexuchat/internal/config"
	"github.com/nexuchat/nexuchat/internal/endpoint"
	"github.com/nexuchat/nexuchat/internal/proxy"
	"github.com/nexuchat/nexuchat/internal/session"
)

// Container holds the resolved core service singletons.
// Callers use the typed getter methods; they never need to import dig directly.
type Container struct {
	adapter   *adapter.Adapter
	scheduler *catalog.Scheduler
}

func (c *Container) Adapter() *adapter.Adapter      { return c.adapter }
func (c *Container) Scheduler() *catalog.Scheduler { return c.scheduler }

// Close stops background work owned by the container.
func (c *Container) Close() { c.adapter.Close() }

// New builds and wires all core services from cfg using a plain
// *http.Client bounded by cfg's timeout.
func New(cfg *config.Config) (*Container, error) {
	return NewWithDoer(cfg, &http.Client{Timeout: cfg.Timeout()})
}

// NewWithDoer is New with a caller-supplied HTTP capability.
func NewWithDoer(cfg *config.Config, doer proxy.Doer) (*Container, error) {
	d := dig.New()

	if err := d.Provide(func() *config.Config { return cfg }); err != nil {
		return nil, err
	}
	if err := d.Provide(func() proxy.Doer { return doer }); err != nil {
		return nil, err
	}
	if err := d.Provide(proxy.NewClient); err != nil {
		return nil, err
	}
	if err := d.Provide(newEndpoint); err != nil {
		return nil, err
	}
	if err := d.Provide(newSession); err != nil {
		return nil, err
	}
	if err := d.Provide(newCatalog); err != nil {
		return nil, err
	}
	if err := d.Provide(newScheduler); err != nil {
		return nil, err
	}
	if err := d.Provide(adapter.New); err != nil {
		return nil, err
	}

	var result *Container
	err := d.Invoke(func(a *adapter.Adapter, s *catalog.Scheduler) {
		result = &Container{
			adapter:   a,
			scheduler: s,
		}
	})
	return result, err
}

func newEndpoint(cfg *config.Config) *endpoint.Endpoint {
	return endpoint.New(cfg.Endpoint)
}

func newSession(client *proxy.Client, ep *endpoint.Endpoint, cfg *config.Config) *session.Session {
	s := session.New(client, ep)
	if cfg.Model != "" {
		s.SetModel(cfg.Model)
	}
	return s
}

func newCatalog(client *proxy.Client, ep *endpoint.Endpoint) *catalog.Catalog {
	return catalog.New(client, ep)
}

func newScheduler(cat *catalog.Catalog, cfg *config.Config) (*catalog.Scheduler, error) {
	return catalog.NewScheduler(cat, cfg.CatalogRefresh)
}
