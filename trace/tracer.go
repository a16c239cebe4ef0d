package trace

import (
	"errors"
	"sync"

	"github.com/ktp-forked-repos/emacs-debug-hooks/hook"
	"github.com/ktp-forked-repos/emacs-debug-hooks/logging"
)

// Tracer instruments hook callbacks with logging advice.
//
// The tracer resolves named hooks to their bound callbacks and drives an
// Installer over every one of them. It tracks which callbacks are already
// wrapped, so instrumentation is idempotent: a callback carries exactly one
// wrapper no matter how many times or through how many hooks it is
// instrumented.
type Tracer struct {
	mu sync.Mutex

	registry  *hook.Registry
	installer *Installer

	// bound maps callback ID to the hook name its wrapper logs.
	bound map[string]string
}

// Option configures a Tracer.
type Option func(*tracerConfig)

type tracerConfig struct {
	logger *logging.Logger
}

// WithLogger sets the diagnostic logger. Defaults to logging.Null.
func WithLogger(l *logging.Logger) Option {
	return func(c *tracerConfig) {
		c.logger = l
	}
}

// New creates a Tracer over the given registry and sink. Wrappers are
// attached to the registry's advice table.
func New(registry *hook.Registry, sink Sink, opts ...Option) *Tracer {
	cfg := tracerConfig{logger: logging.Null}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Tracer{
		registry:  registry,
		installer: NewInstaller(registry, sink, cfg.logger),
		bound:     make(map[string]string),
	}
}

// InstrumentCallback wraps a single callback, recording invocations under
// the given hook name.
//
// Re-instrumenting never stacks a second wrapper: the same (callback, hook)
// pair is a no-op, and a different hook name replaces the existing wrapper
// so the most recently bound hook name wins. Returns hook.ErrUnknownCallback
// if the ID is not defined in the registry.
func (t *Tracer) InstrumentCallback(callbackID, hookName string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if current, ok := t.bound[callbackID]; ok {
		if current == hookName {
			return nil
		}
		// Rebinding under a new hook name: replace, don't stack.
		if err := t.installer.Uninstall(callbackID); err != nil {
			return err
		}
		delete(t.bound, callbackID)
	}

	if err := t.installer.Install(callbackID, hookName); err != nil {
		return err
	}
	t.bound[callbackID] = hookName
	return nil
}

// InstrumentHooks wraps every callback bound to each named hook.
//
// Hooks are processed independently: a hook that fails to resolve is
// reported in the returned error but does not abort instrumentation of the
// remaining hooks. A hook with one callback and a hook with many are handled
// identically.
func (t *Tracer) InstrumentHooks(hookNames ...string) error {
	var errs []error

	for _, name := range hookNames {
		ids, err := t.registry.Resolve(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, id := range ids {
			if err := t.InstrumentCallback(id, name); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Uninstall removes the wrapper installed on the callback, restoring it to
// its unwrapped state. Calling Uninstall on a clean callback is a no-op.
func (t *Tracer) Uninstall(callbackID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.installer.Uninstall(callbackID); err != nil {
		return err
	}
	delete(t.bound, callbackID)
	return nil
}

// UninstallAll removes every wrapper this tracer installed. Safe to run
// unconditionally, including after a partially failed batch.
func (t *Tracer) UninstallAll() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for id := range t.bound {
		_ = t.installer.Uninstall(id)
		delete(t.bound, id)
	}
}

// Wrappers returns the wrapper IDs currently attached to the callback, in
// attach order. Diagnostic support for verifying the single-wrapper
// invariant.
func (t *Tracer) Wrappers(callbackID string) []string {
	return t.installer.Wrappers(callbackID)
}

// Installed returns the callback IDs this tracer currently has wrapped.
func (t *Tracer) Installed() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids := make([]string, 0, len(t.bound))
	for id := range t.bound {
		ids = append(ids, id)
	}
	return ids
}
