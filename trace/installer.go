package trace

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ktp-forked-repos/emacs-debug-hooks/advice"
	"github.com/ktp-forked-repos/emacs-debug-hooks/hook"
	"github.com/ktp-forked-repos/emacs-debug-hooks/logging"
)

// Installer attaches and removes logging advice on individual callbacks.
//
// Install attaches unconditionally: deduplication is the caller's job (the
// Tracer tracks what is already wrapped). The installer remembers every
// wrapper it attached so Uninstall removes exactly those, leaving advice
// attached by anyone else in place.
type Installer struct {
	mu sync.Mutex

	registry *hook.Registry
	table    *advice.Table
	sink     Sink
	logger   *logging.Logger

	// attached maps callback ID to the wrapper IDs this installer added.
	attached map[string][]string
}

// NewInstaller creates an Installer over the registry's advice table.
func NewInstaller(registry *hook.Registry, sink Sink, logger *logging.Logger) *Installer {
	if logger == nil {
		logger = logging.Null
	}
	return &Installer{
		registry: registry,
		table:    registry.Advice(),
		sink:     sink,
		logger:   logger.WithComponent("trace"),
		attached: make(map[string][]string),
	}
}

// Install attaches a logging wrapper to the callback. Every future
// invocation appends "<hookName> - <callbackID>" to the sink before the
// original callback runs, with arguments and results passing through
// unchanged. Returns hook.ErrUnknownCallback if the ID is not defined in
// the registry.
func (in *Installer) Install(callbackID, hookName string) error {
	if !in.registry.Defined(callbackID) {
		return fmt.Errorf("install %q: %w", callbackID, hook.ErrUnknownCallback)
	}

	wrapperID, err := in.table.Attach(callbackID, in.loggingAdvice(hookName, callbackID))
	if err != nil {
		return fmt.Errorf("install %q: %w", callbackID, err)
	}

	in.mu.Lock()
	in.attached[callbackID] = append(in.attached[callbackID], wrapperID)
	in.mu.Unlock()

	in.logger.Debug("installed wrapper on %s under %s", callbackID, hookName)
	return nil
}

// Uninstall removes every wrapper this installer attached to the callback,
// restoring it to its pre-instrumentation state. A callback with no
// installed wrappers is a no-op, never an error.
func (in *Installer) Uninstall(callbackID string) error {
	in.mu.Lock()
	ids := in.attached[callbackID]
	delete(in.attached, callbackID)
	in.mu.Unlock()

	for _, id := range ids {
		// Already-detached wrappers count as uninstalled.
		if err := in.table.Detach(id); err != nil && !errors.Is(err, advice.ErrUnknownWrapper) {
			return fmt.Errorf("uninstall %q: %w", callbackID, err)
		}
	}
	if len(ids) > 0 {
		in.logger.Debug("uninstalled %d wrapper(s) from %s", len(ids), callbackID)
	}
	return nil
}

// Wrappers returns the wrapper IDs currently attached to the callback, in
// attach order. Diagnostic support for verifying wrapper counts; the result
// includes advice attached by others.
func (in *Installer) Wrappers(callbackID string) []string {
	return in.table.ListAttached(callbackID)
}

// Installed returns the callback IDs that currently carry at least one of
// this installer's wrappers.
func (in *Installer) Installed() []string {
	in.mu.Lock()
	defer in.mu.Unlock()

	ids := make([]string, 0, len(in.attached))
	for id := range in.attached {
		ids = append(ids, id)
	}
	return ids
}

// loggingAdvice builds the around-advice for one callback: append the trace
// line, then delegate unchanged.
func (in *Installer) loggingAdvice(hookName, callbackID string) advice.Advice {
	return func(next advice.Func, args ...any) ([]any, error) {
		in.sink.Append(fmt.Sprintf("%s - %s", hookName, callbackID))
		return next(args...)
	}
}
