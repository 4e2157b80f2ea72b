package oracle

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/eth2030/acvmwitness/fields"
	"github.com/eth2030/acvmwitness/log"
	"github.com/eth2030/acvmwitness/metrics"
)

// Dispatcher errors.
var (
	ErrUnknownOracle   = errors.New("oracle: unknown oracle")
	ErrDuplicateOracle = errors.New("oracle: oracle already registered")
	ErrNilHandler      = errors.New("oracle: nil handler")
)

// Handler serves one oracle. Arguments arrive as the ACVM passes them: one
// element slice per parameter, arrays flattened. The returned elements go
// back to the circuit in order.
type Handler func(ctx context.Context, args [][]fields.Element) ([]fields.Element, error)

// Config holds the dispatcher's ambient dependencies.
type Config struct {
	Logger  *log.Logger
	Metrics *metrics.Registry
}

// DefaultConfig logs through the default logger and records into the
// default metrics registry.
func DefaultConfig() Config {
	return Config{
		Logger:  log.Default(),
		Metrics: metrics.DefaultRegistry,
	}
}

// Dispatcher routes oracle calls from a running circuit to their handlers.
// It is safe for concurrent use.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]Handler

	log        *log.Logger
	calls      *metrics.Counter
	errs       *metrics.Counter
	returned   *metrics.Counter
	latency    *metrics.Histogram
	registered *metrics.Gauge
}

// NewDispatcher returns an empty dispatcher. Zero-valued fields of cfg
// fall back to DefaultConfig.
func NewDispatcher(cfg Config) *Dispatcher {
	def := DefaultConfig()
	if cfg.Logger == nil {
		cfg.Logger = def.Logger
	}
	if cfg.Metrics == nil {
		cfg.Metrics = def.Metrics
	}
	return &Dispatcher{
		handlers:   make(map[string]Handler),
		log:        cfg.Logger.Module("oracle"),
		calls:      cfg.Metrics.Counter(metrics.OracleCallsName),
		errs:       cfg.Metrics.Counter(metrics.OracleErrorsName),
		returned:   cfg.Metrics.Counter(metrics.OracleFieldsName),
		latency:    cfg.Metrics.Histogram(metrics.OracleLatencyName),
		registered: cfg.Metrics.Gauge(metrics.OracleRegisteredName),
	}
}

// Register installs h under name.
func (d *Dispatcher) Register(name string, h Handler) error {
	if h == nil {
		return fmt.Errorf("%w: %s", ErrNilHandler, name)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.handlers[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateOracle, name)
	}
	d.handlers[name] = h
	d.registered.Set(int64(len(d.handlers)))
	return nil
}

// Names returns the registered oracle names, sorted.
func (d *Dispatcher) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Call serves one oracle call. Handler errors are returned unchanged apart
// from the oracle name; the simulator decides how to report them.
func (d *Dispatcher) Call(ctx context.Context, name string, args [][]fields.Element) ([]fields.Element, error) {
	d.mu.RLock()
	h, ok := d.handlers[name]
	d.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOracle, name)
	}

	d.calls.Inc()
	timer := metrics.NewTimer(d.latency)
	out, err := h(ctx, args)
	elapsed := timer.Stop()
	if err != nil {
		d.errs.Inc()
		return nil, fmt.Errorf("oracle %s: %w", name, err)
	}
	d.returned.Add(int64(len(out)))
	d.log.Debug("oracle call", "name", name, "args", len(args), "fields", len(out), "elapsed", elapsed)
	return out, nil
}
