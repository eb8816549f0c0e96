package field

import (
	"sync"

	"github.com/go-quill/quill/pkg/platform"
)

// Delegate is the persistent event sink installed on the native control. It
// is created once when the control materializes and survives every
// subsequent render; only its configuration snapshot is refreshed, so
// in-flight events never observe a torn-down sink.
//
// Begin/end transitions are deferred to the next turn of the UI event loop:
// they arrive while the native toolkit is still inside its own delegate
// dispatch, and mutating shared state from that stack frame re-enters the
// control mid-callback. The text-changed path stays synchronous so the
// external text value never lags a visible keystroke.
type Delegate struct {
	mu      sync.Mutex
	state   *State
	control *platform.TextControl
	config  Config
}

func newDelegate(state *State, control *platform.TextControl, config Config) *Delegate {
	return &Delegate{
		state:   state,
		control: control,
		config:  config,
	}
}

// setConfig refreshes the delegate's configuration snapshot on update.
func (d *Delegate) setConfig(config Config) {
	d.mu.Lock()
	d.config = config
	d.mu.Unlock()
}

func (d *Delegate) snapshot() (*State, Config) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state, d.config
}

// EditingBegan implements platform.TextControlDelegate.
func (d *Delegate) EditingBegan() {
	state, config := d.snapshot()

	platform.Dispatch(func() {
		if !state.Active.Get() {
			state.Active.Set(true)
		}
		if config.ClearsOnBeginEditing {
			// The native control already cleared its display; mirror
			// that into the external value.
			state.Text.Clear()
		}
		if config.Callbacks.OnBegin != nil {
			config.Callbacks.OnBegin()
		}
	})
}

// TextChanged implements platform.TextControlDelegate.
func (d *Delegate) TextChanged(value platform.TextEditingValue) {
	state, config := d.snapshot()

	state.Text.SetValue(value)
	if config.Callbacks.OnChange != nil {
		config.Callbacks.OnChange()
	}
}

// EditingEnded implements platform.TextControlDelegate.
func (d *Delegate) EditingEnded() {
	state, config := d.snapshot()

	platform.Dispatch(func() {
		if state.Active.Get() {
			state.Active.Set(false)
		}
		if config.Callbacks.OnEnd != nil {
			config.Callbacks.OnEnd()
		}
	})
}

// ReturnPressed implements platform.TextControlDelegate. The default return
// action is always suppressed; what return means is the host's decision.
func (d *Delegate) ReturnPressed() bool {
	state, config := d.snapshot()

	state.Active.Set(false)
	if config.Callbacks.OnReturn != nil {
		config.Callbacks.OnReturn()
	}
	return false
}

// ClearPressed implements platform.TextControlDelegate. The bridge performs
// the clearing itself, so the control's own default clear is suppressed.
func (d *Delegate) ClearPressed() bool {
	state, config := d.snapshot()

	if config.Callbacks.OnClear != nil {
		config.Callbacks.OnClear()
	}
	state.Text.Clear()
	d.control.Clear()
	return false
}
