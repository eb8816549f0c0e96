package field

import (
	"github.com/go-quill/quill/pkg/platform"
)

// Create materializes a native control for the given configuration and
// external state. Attributes are applied in a fixed order: text and chrome
// first, interaction-enabled next, secure entry after the initial text
// assignment (applying it earlier masks the text prematurely on some hosts),
// and focus last. The returned delegate is already installed on the control
// and holds write access to the external state; it must be kept for the
// lifetime of the control and passed to every Update.
func Create(config Config, state *State, env Environment) (*platform.TextControl, *Delegate, error) {
	control, err := platform.NewTextControl(config.resolve(env), state.Text.Value())
	if err != nil {
		return nil, nil, err
	}

	delegate := newDelegate(state, control, config)
	control.SetDelegate(delegate)

	control.SetEnabled(!config.Disabled)
	control.SetSecure(config.Secure)

	if state.Active.Get() {
		control.Focus()
	}

	return control, delegate, nil
}

// Update reconciles a live control against a new configuration and the
// current external state. Every attribute is re-applied (idempotently; the
// control skips redundant channel traffic itself), then focus is resolved
// from the active flag unconditionally — that is what lets the host steal or
// release focus by flipping the flag at any time.
func Update(control *platform.TextControl, delegate *Delegate, config Config, state *State, env Environment) {
	delegate.setConfig(config)

	// Programmatic text changes flow declarative -> native. User edits
	// have already been copied the other way by the delegate, in which
	// case this is a no-op and the native cursor stays put.
	if value := state.Text.Value(); value.Text != control.Text() {
		control.SetValue(value)
	}

	control.UpdateConfig(config.resolve(env))
	control.SetEnabled(!config.Disabled)

	applySecure(control, config.Secure)

	if state.Active.Get() {
		control.Focus()
	} else {
		control.Blur()
	}
}

// applySecure reconciles the secure-entry mode. Flipping the mode is a plain
// attribute write except on hosts where the native control discards its text
// when secure rendering begins mid-edit; there the bridge saves the text,
// clears the control, and re-inserts the text through the keystroke input
// path (keeping undo and autocomplete state coherent), then restores the
// cursor.
func applySecure(control *platform.TextControl, secure bool) {
	if control.IsSecure() == secure {
		return
	}

	selection := control.Selection()
	wasFocused := control.IsFocused()
	saved := control.Text()

	control.SetSecure(secure)

	if secure && wasFocused && platform.HostDiscardsTextOnSecure() {
		control.Clear()
		control.InsertText(saved)
	}

	if wasFocused {
		control.SetSelection(selection)
	}
}
