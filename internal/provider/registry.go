package provider

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/vanlang/stock-api/internal/market"
	"github.com/vanlang/stock-api/pkg/logger"
)

// ProbeResult records one startup probe
type ProbeResult struct {
	Name         string       `json:"name"`
	Reachable    bool         `json:"reachable"`
	LatencyMS    int64        `json:"latency_ms"`
	Layout       string       `json:"layout,omitempty"`
	Capabilities Capabilities `json:"capabilities"`
	Error        string       `json:"error,omitempty"`
	CheckedAt    time.Time    `json:"checked_at"`
}

// probeSymbol is a liquid HOSE ticker every vendor lists
const probeSymbol = "VNM"

// Registry holds the live providers. It is built once at startup and
// probed before the server accepts traffic; afterwards it is read-only.
// ⭐ SSOT: default source selection happens only here
type Registry struct {
	mu          sync.RWMutex
	providers   map[string]Provider
	order       []string
	preferred   string
	defaultName string
	results     map[string]ProbeResult
	logger      *logger.Logger
}

// NewRegistry registers providers in the order given. preferred is the
// configured default source.
func NewRegistry(preferred string, log *logger.Logger, providers ...Provider) *Registry {
	r := &Registry{
		providers: make(map[string]Provider, len(providers)),
		preferred: strings.ToUpper(preferred),
		results:   make(map[string]ProbeResult, len(providers)),
		logger:    log,
	}
	for _, p := range providers {
		name := strings.ToUpper(p.Name())
		if _, dup := r.providers[name]; dup {
			continue
		}
		r.providers[name] = p
		r.order = append(r.order, name)
	}
	r.defaultName = r.pickDefault()
	return r
}

// Names lists registered providers in registration order
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Len is the number of registered providers
func (r *Registry) Len() int {
	return len(r.order)
}

// Default is the source used when a request names none
func (r *Registry) Default() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultName
}

// Get resolves a source name; "" means the default. Unknown names are
// invalid input.
func (r *Registry) Get(name string) (Provider, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		name = r.Default()
	}
	p, ok := r.providers[name]
	if !ok {
		return nil, market.InvalidInput("unknown source %q, valid sources: %s", name, strings.Join(r.order, ", "))
	}
	return p, nil
}

// Probe runs one cheap call per provider concurrently, stores the results
// and re-selects the default source
func (r *Registry) Probe(ctx context.Context, timeout time.Duration) []ProbeResult {
	results := make([]ProbeResult, len(r.order))

	var wg sync.WaitGroup
	for i, name := range r.order {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			results[i] = r.probeOne(ctx, name, timeout)
		}(i, name)
	}
	wg.Wait()

	r.mu.Lock()
	for _, res := range results {
		r.results[res.Name] = res
	}
	r.defaultName = r.pickDefault()
	r.mu.Unlock()

	r.logger.WithFields(logger.Fields{
		"default": r.Default(),
		"sources": len(results),
	}).Info("Provider probe finished")

	return results
}

func (r *Registry) probeOne(ctx context.Context, name string, timeout time.Duration) ProbeResult {
	p := r.providers[name]
	res := ProbeResult{Name: name, Capabilities: p.Capabilities()}

	pctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	var err error
	if pr, ok := p.(Prober); ok {
		res.Layout, err = pr.Probe(pctx)
	} else {
		_, err = p.PriceBoard(pctx, []string{probeSymbol})
	}
	res.LatencyMS = time.Since(start).Milliseconds()
	res.CheckedAt = time.Now().UTC()

	log := r.logger.WithUpstream(name, probeSymbol, "probe")
	if err != nil {
		res.Error = err.Error()
		log.WithError(err).Warn("Provider unreachable at startup")
		return res
	}

	res.Reachable = true
	log.WithFields(logger.Fields{
		"latency_ms": res.LatencyMS,
		"layout":     res.Layout,
	}).Info("Provider reachable")
	return res
}

// pickDefault: the preferred source if reachable, else the first reachable
// in FallbackOrder, else the first reachable registered. Before any probe
// (or when nothing is reachable) the preferred source wins if registered.
// Caller holds the write lock or is the constructor.
func (r *Registry) pickDefault() string {
	if len(r.order) == 0 {
		return ""
	}
	if len(r.results) > 0 {
		if r.reachable(r.preferred) {
			return r.preferred
		}
		for _, name := range FallbackOrder {
			if r.reachable(name) {
				return name
			}
		}
		for _, name := range r.order {
			if r.reachable(name) {
				return name
			}
		}
	}
	if _, ok := r.providers[r.preferred]; ok {
		return r.preferred
	}
	for _, name := range FallbackOrder {
		if _, ok := r.providers[name]; ok {
			return name
		}
	}
	return r.order[0]
}

func (r *Registry) reachable(name string) bool {
	res, ok := r.results[name]
	return ok && res.Reachable
}

// Results returns the stored probe results keyed by source name
func (r *Registry) Results() map[string]ProbeResult {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]ProbeResult, len(r.order))
	for _, name := range r.order {
		if res, ok := r.results[name]; ok {
			out[name] = res
			continue
		}
		out[name] = ProbeResult{Name: name, Capabilities: r.providers[name].Capabilities(), Error: "not probed"}
	}
	return out
}

// IsInvalidInput is a convenience for handlers
func IsInvalidInput(err error) bool {
	return errors.Is(err, market.ErrInvalidInput)
}
