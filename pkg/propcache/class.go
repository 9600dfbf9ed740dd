package propcache

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vnykmshr/propcache-go/internal/eviction"
	"github.com/vnykmshr/propcache-go/internal/store/memory"
	redisstore "github.com/vnykmshr/propcache-go/internal/store/redis"
	"github.com/vnykmshr/propcache-go/pkg/metrics"
)

// Class hosts a set of cached properties and observes their activity. It
// plays the role of the type the descriptors are defined on: properties are
// registered once with Define, instances are created with NewInstance or
// supplied by the caller as any Instance implementation.
type Class struct {
	name   string
	config *Config
	logger Logger
	hooks  *Hooks
	stats  *Stats

	mu    sync.RWMutex
	props map[string]*Property

	exporter     metrics.Exporter
	exportLabels metrics.Labels
	reporterStop chan struct{}
	reporterDone chan struct{}
	closeOnce    sync.Once
}

// NewClass creates a class with the given name. A nil config gets defaults:
// unbounded in-memory stores, no logging, no metrics.
func NewClass(name string, config *Config) (*Class, error) {
	if name == "" {
		return nil, fmt.Errorf("propcache: class name is required")
	}
	if config == nil {
		config = NewDefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = NewNoOpLogger()
	}
	hooks := config.Hooks
	if hooks == nil {
		hooks = &Hooks{}
	}

	c := &Class{
		name:   name,
		config: config,
		logger: logger,
		hooks:  hooks,
		stats:  &Stats{},
		props:  make(map[string]*Property),
	}

	if config.Metrics != nil && config.Metrics.Exporter != nil {
		mc := config.Metrics.Config
		if mc == nil {
			mc = metrics.NewDefaultConfig()
		}
		if mc.Enabled {
			c.exporter = config.Metrics.Exporter
			c.exportLabels = metrics.Labels{"class": name}
			c.startReporter(mc.ReportingInterval)
		}
	}

	return c, nil
}

// Name returns the class name.
func (c *Class) Name() string {
	return c.name
}

// Define binds a property to an attribute name on this class. Binding is
// permanent; defining the same property under the same name again is a no-op
// while any other rebind fails with ErrRebound. Defining a different property
// under an already-taken name is rejected.
func (c *Class) Define(name string, p *Property) (*Property, error) {
	if name == "" {
		return nil, fmt.Errorf("propcache: attribute name is required")
	}
	if p == nil {
		return nil, fmt.Errorf("propcache: property is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.props[name]; ok {
		if existing == p {
			return p, nil
		}
		return nil, fmt.Errorf("propcache: attribute %s.%s already defined", c.name, name)
	}

	if err := p.bind(c, name); err != nil {
		return nil, err
	}

	c.props[name] = p
	c.stats.setPropertyCount(int64(len(c.props)))
	c.logger.Debug("Property defined", F("class", c.name), F("attribute", name))
	return p, nil
}

// MustDefine is like Define but panics on error. Intended for package-level
// property declarations.
func (c *Class) MustDefine(name string, p *Property) *Property {
	p, err := c.Define(name, p)
	if err != nil {
		panic(err)
	}
	return p
}

// Property returns the property bound to an attribute name.
func (c *Class) Property(name string) (*Property, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.props[name]
	return p, ok
}

// Properties returns the defined attribute names in sorted order.
func (c *Class) Properties() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.props))
	for name := range c.props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Object is an instance created by Class.NewInstance. It carries its own
// attribute store built from the class config and convenience accessors that
// route through the class's properties.
type Object struct {
	id    string
	class *Class
	store AttributeStore
}

// NewInstance creates an instance with a fresh attribute store per the class
// config.
func (c *Class) NewInstance() (*Object, error) {
	id := NewInstanceID()
	s, err := c.StoreFor(id)
	if err != nil {
		return nil, err
	}
	return &Object{id: id, class: c, store: s}, nil
}

// StoreFor builds an attribute store for an instance id per the class
// config. Useful when the caller manages its own Instance implementation but
// wants class-configured storage.
func (c *Class) StoreFor(instanceID string) (AttributeStore, error) {
	switch c.config.StoreType {
	case StoreMemory, "":
		return memory.NewUnbounded(), nil

	case StoreLRU:
		s, err := memory.New(c.config.Capacity)
		if err != nil {
			return nil, err
		}
		s.SetEvictCallback(c.observeEvict)
		return s, nil

	case StoreLFU, StoreFIFO:
		s, err := memory.NewWithStrategy(eviction.Config{
			Type:     eviction.Type(c.config.StoreType),
			Capacity: c.config.Capacity,
		})
		if err != nil {
			return nil, err
		}
		s.SetEvictCallback(c.observeEvict)
		return s, nil

	case StoreRedis:
		opts := c.config.Redis
		prefix := opts.KeyPrefix
		if prefix == "" {
			prefix = "propcache:"
		}
		return redisstore.New(&redisstore.Config{
			Client:    opts.Client,
			KeyPrefix: fmt.Sprintf("%s%s:%s:", prefix, c.name, instanceID),
			Encoding:  redisstore.Encoding(opts.Encoding),
			Context:   opts.Context,
		})

	default:
		return nil, fmt.Errorf("propcache: unknown store type %q", c.config.StoreType)
	}
}

// ID returns the instance's unique id.
func (o *Object) ID() string {
	return o.id
}

// Class returns the class the instance belongs to.
func (o *Object) Class() *Class {
	return o.class
}

// AttributeStore returns the instance's attribute store.
func (o *Object) AttributeStore() AttributeStore {
	return o.store
}

// Get reads an attribute through its property.
func (o *Object) Get(name string) (any, error) {
	p, ok := o.class.Property(name)
	if !ok {
		return nil, fmt.Errorf("propcache: %s has no attribute %q", o.class.Name(), name)
	}
	return p.Get(o)
}

// Set assigns an attribute through its property.
func (o *Object) Set(name string, value any) error {
	p, ok := o.class.Property(name)
	if !ok {
		return fmt.Errorf("propcache: %s has no attribute %q", o.class.Name(), name)
	}
	return p.Set(o, value)
}

// Delete removes an attribute through its property.
func (o *Object) Delete(name string) error {
	p, ok := o.class.Property(name)
	if !ok {
		return fmt.Errorf("propcache: %s has no attribute %q", o.class.Name(), name)
	}
	return p.Delete(o)
}

var _ Instance = (*Object)(nil)

// Stats returns the class's attribute cache statistics.
func (c *Class) Stats() *Stats {
	return c.stats
}

// Hooks returns the class's event hooks.
func (c *Class) Hooks() *Hooks {
	return c.hooks
}

// Close stops the metrics reporter and flushes a final stats snapshot.
func (c *Class) Close() error {
	var err error
	c.closeOnce.Do(func() {
		if c.reporterStop != nil {
			close(c.reporterStop)
			<-c.reporterDone
		}
		if c.exporter != nil {
			if exportErr := c.exporter.ExportStats(c.stats, c.exportLabels); exportErr != nil {
				c.logger.Warn("Final stats export failed", F("error", exportErr))
			}
			err = c.exporter.Close()
		}
	})
	return err
}

// startReporter periodically pushes stats snapshots to the exporter.
func (c *Class) startReporter(interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Second
	}

	c.reporterStop = make(chan struct{})
	c.reporterDone = make(chan struct{})

	go func() {
		defer close(c.reporterDone)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := c.exporter.ExportStats(c.stats, c.exportLabels); err != nil {
					c.logger.Warn("Stats export failed", F("error", err))
				}
			case <-c.reporterStop:
				return
			}
		}
	}()
}

// Event observers, called by properties bound to this class.

func (c *Class) observeHit(name string, value any) {
	c.stats.incHits()
	c.hooks.invokeOnHit(name, value)
}

func (c *Class) observeMiss(name string) {
	c.stats.incMisses()
	c.hooks.invokeOnMiss(name)
}

func (c *Class) observeCompute(name string, duration time.Duration) {
	c.stats.incComputes()
	c.hooks.invokeOnCompute(name, duration)

	if c.exporter != nil {
		if err := c.exporter.RecordOperation(metrics.OperationCompute, duration, c.exportLabels); err != nil {
			c.logger.Warn("Operation record failed", F("error", err))
		}
	}
}

func (c *Class) observeSet(name string, value any) {
	c.stats.incSets()
	c.hooks.invokeOnSet(name, value)
}

func (c *Class) observeInvalidate(name string) {
	c.stats.incInvalidations()
	c.hooks.invokeOnInvalidate(name)
}

func (c *Class) observeEvict(name string, value any) {
	c.stats.incEvictions()
	c.hooks.invokeOnEvict(name, value)
}

func (c *Class) observeGeneratorWrapped(name string) {
	c.stats.incGeneratorsWrapped()
	c.hooks.invokeOnGeneratorWrap(name)
}

func (c *Class) computeStarted() {
	c.stats.incInFlight()
}

func (c *Class) computeFinished() {
	c.stats.decInFlight()
}

// keep the metrics contract in sync with the stats implementation
var _ metrics.Stats = (*Stats)(nil)
