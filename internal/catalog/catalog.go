package catalog

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ErrNotReady is returned when the catalog is queried before a successful
// load, or after a failed one.
var ErrNotReady = errors.New("catalog not ready")

// Source supplies the full product list.
type Source interface {
	ListProducts(ctx context.Context) ([]Product, error)
}

// State is the catalog lifecycle state.
type State int

const (
	StateLoading State = iota
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Catalog holds the authoritative in-memory product list and answers filter
// queries against it. Loads are tagged with a monotonic generation so a slow
// response from an earlier reload can never overwrite the result of a newer
// one.
type Catalog struct {
	source Source
	logger *zap.Logger

	mu         sync.RWMutex
	state      State
	products   []Product
	loadErr    error
	generation uint64
}

func New(source Source, logger *zap.Logger) *Catalog {
	return &Catalog{
		source: source,
		logger: logger,
		state:  StateLoading,
	}
}

// Load fetches the full product list. A failed load moves the catalog to
// StateError with an empty list; there is no retry. Concurrent or
// overlapping loads are resolved by generation: only the latest issued load
// may apply its result.
func (c *Catalog) Load(ctx context.Context) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	products, err := c.source.ListProducts(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		// A newer load was issued while this one was in flight; its result,
		// whatever it was, wins.
		c.logger.Debug("discarding stale catalog load",
			zap.Uint64("generation", gen),
			zap.Uint64("latest", c.generation))
		return nil
	}

	if err != nil {
		c.state = StateError
		c.products = nil
		c.loadErr = err
		c.logger.Error("catalog load failed", zap.Error(err))
		return err
	}

	c.state = StateReady
	c.products = products
	c.loadErr = nil
	c.logger.Info("catalog loaded", zap.Int("products", len(products)))
	return nil
}

// State returns the current lifecycle state.
func (c *Catalog) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Products returns a copy of the full product list, or ErrNotReady before a
// successful load.
func (c *Catalog) Products() ([]Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.state != StateReady {
		return nil, c.notReadyErr()
	}
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out, nil
}

// Query derives the visible list for a filter state.
func (c *Catalog) Query(f Filters) ([]Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.state != StateReady {
		return nil, c.notReadyErr()
	}
	return Apply(c.products, f), nil
}

// Options returns the facet option lists for the full product list.
func (c *Catalog) Options() (FacetOptions, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.state != StateReady {
		return FacetOptions{}, c.notReadyErr()
	}
	return Options(c.products), nil
}

func (c *Catalog) notReadyErr() error {
	if c.loadErr != nil {
		return c.loadErr
	}
	return ErrNotReady
}
