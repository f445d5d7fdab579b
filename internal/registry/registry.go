package registry

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/petrijr/stepform/pkg/api"
)

// Registry maps validator names to functions. A registry may be shared by
// several controllers, so access is lock-guarded.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]api.ValidatorFunc
	logger *slog.Logger
}

// New returns a registry with the built-in validators registered.
func New(logger *slog.Logger) *Registry {
	r := Empty(logger)
	r.byName[api.ValidatorRequiredIf] = RequiredIf
	r.byName[api.ValidatorEquals] = Equals
	return r
}

// Empty returns a registry without any validators.
func Empty(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		byName: make(map[string]api.ValidatorFunc),
		logger: logger,
	}
}

// Register adds fn under name, replacing (with a warning) any validator
// already registered under it.
func (r *Registry) Register(name string, fn api.ValidatorFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[name]; exists {
		r.logger.Warn("stepform: validator overwritten", slog.String("validator", name))
	}
	r.byName[name] = fn
}

// Unregister removes name and reports whether it was registered.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[name]; !exists {
		return false
	}
	delete(r.byName, name)
	return true
}

// Get returns the validator registered under name.
func (r *Registry) Get(name string) (api.ValidatorFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.byName[name]
	return fn, ok
}

// Run invokes the validator registered under name. Unknown names log a
// warning and pass.
func (r *Registry) Run(name string, value any, ctx api.ValidatorContext, params api.Params) error {
	fn, ok := r.Get(name)
	if !ok {
		r.logger.Warn("stepform: validator not found",
			slog.String("validator", name),
			slog.String("step", ctx.StepID),
			slog.String("field", ctx.FieldID),
		)
		return nil
	}
	return fn(value, ctx, params)
}

// Names returns the registered validator names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.byName))
	for name := range r.byName {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}
