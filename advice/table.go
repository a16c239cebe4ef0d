package advice

import (
	"sync"

	"github.com/google/uuid"
)

// Table tracks the advice attached to each named callable. It is the single
// source of truth for interception state: attaching adds a wrapper, detaching
// removes it, and Wrap folds the current wrappers around a base callable at
// invocation time.
//
// A Table is safe for concurrent use, though the typical host drives it from
// a single goroutine.
type Table struct {
	mu sync.RWMutex

	// attached maps callback ID to its wrappers in attach order.
	attached map[string][]*wrapper

	// byID maps wrapper ID back to its callback for detachment.
	byID map[string]string
}

// wrapper is a single attached advice with its identity.
type wrapper struct {
	id     string
	advice Advice
}

// NewTable creates an empty advice table.
func NewTable() *Table {
	return &Table{
		attached: make(map[string][]*wrapper),
		byID:     make(map[string]string),
	}
}

// Attach adds around-advice to the named callable and returns the wrapper ID
// used to detach it later. Advice attached later runs outermost.
func (t *Table) Attach(callbackID string, adv Advice) (string, error) {
	if adv == nil {
		return "", ErrNilAdvice
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	w := &wrapper{
		id:     uuid.NewString(),
		advice: adv,
	}
	t.attached[callbackID] = append(t.attached[callbackID], w)
	t.byID[w.id] = callbackID
	return w.id, nil
}

// Detach removes a single wrapper by ID.
// Returns ErrUnknownWrapper if the ID is not currently attached.
func (t *Table) Detach(wrapperID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	callbackID, ok := t.byID[wrapperID]
	if !ok {
		return ErrUnknownWrapper
	}

	wrappers := t.attached[callbackID]
	for i, w := range wrappers {
		if w.id == wrapperID {
			t.attached[callbackID] = append(wrappers[:i], wrappers[i+1:]...)
			break
		}
	}
	if len(t.attached[callbackID]) == 0 {
		delete(t.attached, callbackID)
	}
	delete(t.byID, wrapperID)
	return nil
}

// DetachAll removes every wrapper attached to the named callable and returns
// the number removed. Safe to call on a callable with no wrappers.
func (t *Table) DetachAll(callbackID string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	wrappers := t.attached[callbackID]
	for _, w := range wrappers {
		delete(t.byID, w.id)
	}
	delete(t.attached, callbackID)
	return len(wrappers)
}

// ListAttached returns the wrapper IDs attached to the named callable, in
// attach order. Returns an empty slice for an unwrapped callable.
func (t *Table) ListAttached(callbackID string) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	wrappers := t.attached[callbackID]
	ids := make([]string, len(wrappers))
	for i, w := range wrappers {
		ids[i] = w.id
	}
	return ids
}

// Wrap folds the advice currently attached to callbackID around base and
// returns the composed callable. The most recently attached advice is
// outermost. A callable with no advice is returned unchanged.
func (t *Table) Wrap(callbackID string, base Func) Func {
	t.mu.RLock()
	wrappers := make([]*wrapper, len(t.attached[callbackID]))
	copy(wrappers, t.attached[callbackID])
	t.mu.RUnlock()

	fn := base
	for _, w := range wrappers {
		adv := w.advice
		next := fn
		fn = func(args ...any) ([]any, error) {
			return adv(next, args...)
		}
	}
	return fn
}
