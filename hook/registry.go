package hook

import (
	"fmt"
	"sync"

	"github.com/ktp-forked-repos/emacs-debug-hooks/advice"
)

// Registry owns the host's named hooks and the pool of callables they bind.
//
// A hook is a named extension point bound to an ordered list of callback IDs.
// Each callback ID resolves to a function defined in the registry's function
// table. Dispatch (Run) invokes every bound callback in order, routing each
// call through the injected advice table so attached wrappers observe the
// invocation.
//
// The registry never reorders a hook's bindings: the order callbacks were
// added is the order they run.
type Registry struct {
	mu sync.RWMutex

	// funcs is the function table: callback ID -> callable.
	funcs map[string]advice.Func

	// bindings maps hook name -> ordered callback IDs.
	bindings map[string][]string

	table *advice.Table
}

// NewRegistry creates a registry that routes invocations through the given
// advice table. A nil table gets a fresh one.
func NewRegistry(table *advice.Table) *Registry {
	if table == nil {
		table = advice.NewTable()
	}
	return &Registry{
		funcs:    make(map[string]advice.Func),
		bindings: make(map[string][]string),
		table:    table,
	}
}

// Advice returns the advice table invocations are routed through.
func (r *Registry) Advice() *advice.Table {
	return r.table
}

// Define adds or replaces a function in the function table.
func (r *Registry) Define(callbackID string, fn advice.Func) error {
	if fn == nil {
		return ErrNilFunc
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[callbackID] = fn
	return nil
}

// Undefine removes a function from the function table. Bindings that
// reference the ID are left in place; running them fails until the ID is
// defined again.
func (r *Registry) Undefine(callbackID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.funcs, callbackID)
}

// Defined reports whether the callback ID resolves to a function.
func (r *Registry) Defined(callbackID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.funcs[callbackID]
	return ok
}

// Add appends a callback to the named hook's binding, creating the hook if
// needed. Adding an already-bound callback is a no-op; order is preserved.
func (r *Registry) Add(hookName, callbackID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.bindings[hookName] {
		if id == callbackID {
			return
		}
	}
	r.bindings[hookName] = append(r.bindings[hookName], callbackID)
}

// Remove drops a callback from the named hook's binding.
// Returns true if the callback was bound.
func (r *Registry) Remove(hookName, callbackID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := r.bindings[hookName]
	for i, id := range ids {
		if id == callbackID {
			r.bindings[hookName] = append(ids[:i], ids[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveHook drops the named hook and its entire binding.
func (r *Registry) RemoveHook(hookName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.bindings, hookName)
}

// Resolve returns the ordered callback IDs bound to the named hook.
// Returns ErrUnknownHook if the hook has no binding.
func (r *Registry) Resolve(hookName string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids, ok := r.bindings[hookName]
	if !ok {
		return nil, fmt.Errorf("hook %q: %w", hookName, ErrUnknownHook)
	}
	return append([]string{}, ids...), nil
}

// Hooks returns the names of all bound hooks.
func (r *Registry) Hooks() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.bindings))
	for name := range r.bindings {
		names = append(names, name)
	}
	return names
}

// Call invokes a single callback by ID through the advice table. Advice
// attached to the ID fires even when the hook dispatch path is bypassed.
func (r *Registry) Call(callbackID string, args ...any) ([]any, error) {
	r.mu.RLock()
	base, ok := r.funcs[callbackID]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("callback %q: %w", callbackID, ErrUnknownCallback)
	}
	return r.table.Wrap(callbackID, base)(args...)
}

// Run dispatches the named hook: every bound callback is invoked in binding
// order with the given arguments. Dispatch stops at the first callback error.
func (r *Registry) Run(hookName string, args ...any) error {
	ids, err := r.Resolve(hookName)
	if err != nil {
		return err
	}

	for _, id := range ids {
		if _, err := r.Call(id, args...); err != nil {
			return fmt.Errorf("hook %q: %w", hookName, err)
		}
	}
	return nil
}
