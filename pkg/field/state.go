// Package field implements a single-line (optionally secure) text field that
// bridges a native platform input control into a declarative host UI. The
// host owns the field's text and active flag; the bridge keeps the native
// control in sync with them on every render pass, and the delegate reflects
// native editing events back into them.
package field

import (
	"sync"

	"github.com/go-quill/quill/pkg/platform"
)

// FocusFlag is an observable boolean marking whether a field holds input
// focus. The host flips it to move focus programmatically; the field's
// delegate flips it when the user focuses or leaves the control.
type FocusFlag struct {
	mu             sync.RWMutex
	value          bool
	listeners      map[int]func(bool)
	nextListenerID int
}

// NewFocusFlag creates a flag with the given initial value.
func NewFocusFlag(initial bool) *FocusFlag {
	return &FocusFlag{
		value:     initial,
		listeners: make(map[int]func(bool)),
	}
}

// Get returns the current value.
func (f *FocusFlag) Get() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.value
}

// Set updates the value. Listeners are notified only on actual change.
func (f *FocusFlag) Set(value bool) {
	f.mu.Lock()
	if f.value == value {
		f.mu.Unlock()
		return
	}
	f.value = value
	listeners := make([]func(bool), 0, len(f.listeners))
	for _, fn := range f.listeners {
		listeners = append(listeners, fn)
	}
	f.mu.Unlock()

	for _, fn := range listeners {
		fn(value)
	}
}

// AddListener registers a change callback and returns an unsubscribe func.
func (f *FocusFlag) AddListener(fn func(bool)) func() {
	f.mu.Lock()
	id := f.nextListenerID
	f.nextListenerID++
	f.listeners[id] = fn
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		delete(f.listeners, id)
		f.mu.Unlock()
	}
}

// State is the externally owned state the bridge synchronizes against: the
// text value and the active (focused) flag. The host application creates it
// and keeps it alive across renders; the bridge's delegate writes to it only
// in response to genuine native control events.
type State struct {
	// Text holds the field's text content.
	Text *platform.TextEditingController

	// Active marks whether the field holds input focus.
	Active *FocusFlag
}

// NewState creates host-owned state with the given initial text and an
// inactive focus flag.
func NewState(text string) *State {
	return &State{
		Text:   platform.NewTextEditingController(text),
		Active: NewFocusFlag(false),
	}
}
