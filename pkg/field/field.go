package field

import (
	"github.com/go-quill/quill/pkg/graphics"
	"github.com/go-quill/quill/pkg/platform"
)

// TextField is the declarative description of a text field for one render
// pass: a placeholder, a text binding, an optional focus binding, and a
// configuration built up through chained With* calls. It is a value — every
// builder returns a modified copy — and it is cheap to rebuild each render.
//
//	username := platform.NewTextEditingController("")
//	active := field.NewFocusFlag(false)
//
//	f := field.New("Username", username).
//		WithActiveFlag(active).
//		WithAutocorrection(platform.BehaviorDisabled).
//		WithReturnKeyType(platform.ReturnKeyNext).
//		OnReturn(func() { passwordActive.Set(true) })
//
//	mounted, err := f.Mount(field.Environment{})
//	...
//	mounted.Update(f) // each subsequent render
type TextField struct {
	config Config
	text   *platform.TextEditingController
	active *FocusFlag
}

// New creates a field description with the given placeholder and text
// binding. The text controller is required and must outlive the field's
// mounted lifetime; the focus binding is optional (see WithActiveFlag).
func New(placeholder string, text *platform.TextEditingController) TextField {
	return TextField{
		config: Config{Placeholder: placeholder},
		text:   text,
	}
}

// Config returns the field's configuration snapshot.
func (f TextField) Config() Config {
	return f.config
}

// WithActiveFlag binds the field's focus state to a host-owned flag. When
// omitted, Mount creates an internally owned flag, and focus can only change
// through user interaction.
func (f TextField) WithActiveFlag(flag *FocusFlag) TextField {
	f.active = flag
	return f
}

// WithConfig replaces the whole configuration snapshot.
func (f TextField) WithConfig(config Config) TextField {
	f.config = config
	return f
}

// WithFont sets the font. Nil keeps the previous value.
func (f TextField) WithFont(font *graphics.Font) TextField {
	f.config = f.config.WithFont(font)
	return f
}

// WithTextColor sets the text color. Nil keeps the previous value.
func (f TextField) WithTextColor(color *graphics.Color) TextField {
	f.config = f.config.WithTextColor(color)
	return f
}

// WithAccentColor sets the cursor/tint color. Nil keeps the previous value.
func (f TextField) WithAccentColor(color *graphics.Color) TextField {
	f.config = f.config.WithAccentColor(color)
	return f
}

// WithPlaceholderColor sets the placeholder color. Nil keeps the previous value.
func (f TextField) WithPlaceholderColor(color *graphics.Color) TextField {
	f.config = f.config.WithPlaceholderColor(color)
	return f
}

// WithAlignment sets the text alignment.
func (f TextField) WithAlignment(alignment graphics.TextAlignment) TextField {
	f.config = f.config.WithAlignment(alignment)
	return f
}

// WithContentType sets the autofill content hint.
func (f TextField) WithContentType(contentType platform.ContentType) TextField {
	f.config = f.config.WithContentType(contentType)
	return f
}

// WithAutocorrection sets the autocorrection behavior.
func (f TextField) WithAutocorrection(behavior platform.Behavior) TextField {
	f.config = f.config.WithAutocorrection(behavior)
	return f
}

// WithAutocapitalization sets the capitalization mode.
func (f TextField) WithAutocapitalization(mode platform.TextCapitalization) TextField {
	f.config = f.config.WithAutocapitalization(mode)
	return f
}

// WithSpellChecking sets the spell-checking behavior.
func (f TextField) WithSpellChecking(behavior platform.Behavior) TextField {
	f.config = f.config.WithSpellChecking(behavior)
	return f
}

// WithSmartDashes sets the smart-dashes behavior.
func (f TextField) WithSmartDashes(behavior platform.Behavior) TextField {
	f.config = f.config.WithSmartDashes(behavior)
	return f
}

// WithSmartQuotes sets the smart-quotes behavior.
func (f TextField) WithSmartQuotes(behavior platform.Behavior) TextField {
	f.config = f.config.WithSmartQuotes(behavior)
	return f
}

// WithSmartInsertDelete sets the smart-insert-delete behavior.
func (f TextField) WithSmartInsertDelete(behavior platform.Behavior) TextField {
	f.config = f.config.WithSmartInsertDelete(behavior)
	return f
}

// WithKeyboardType sets the keyboard variant.
func (f TextField) WithKeyboardType(keyboard platform.KeyboardType) TextField {
	f.config = f.config.WithKeyboardType(keyboard)
	return f
}

// WithReturnKeyType sets the return-key variant.
func (f TextField) WithReturnKeyType(returnKey platform.ReturnKeyType) TextField {
	f.config = f.config.WithReturnKeyType(returnKey)
	return f
}

// WithSecure switches masked (password) entry on or off.
func (f TextField) WithSecure(secure bool) TextField {
	f.config = f.config.WithSecure(secure)
	return f
}

// WithDisabled disables or enables interaction.
func (f TextField) WithDisabled(disabled bool) TextField {
	f.config = f.config.WithDisabled(disabled)
	return f
}

// WithClearsOnBeginEditing sets whether the text clears when editing begins.
func (f TextField) WithClearsOnBeginEditing(clears bool) TextField {
	f.config = f.config.WithClearsOnBeginEditing(clears)
	return f
}

// WithClearsOnInsertion sets whether existing text is replaced on insertion.
func (f TextField) WithClearsOnInsertion(clears bool) TextField {
	f.config = f.config.WithClearsOnInsertion(clears)
	return f
}

// WithClearButtonMode sets the clear-button visibility policy.
func (f TextField) WithClearButtonMode(mode platform.ClearButtonMode) TextField {
	f.config = f.config.WithClearButtonMode(mode)
	return f
}

// WithPasswordRules sets password composition rules and forces secure entry.
// Nil keeps the previous value.
func (f TextField) WithPasswordRules(rules *platform.PasswordRules) TextField {
	f.config = f.config.WithPasswordRules(rules)
	return f
}

// OnBegin registers the begin-editing callback.
func (f TextField) OnBegin(fn func()) TextField {
	f.config.Callbacks.OnBegin = fn
	return f
}

// OnChange registers the text-changed callback.
func (f TextField) OnChange(fn func()) TextField {
	f.config.Callbacks.OnChange = fn
	return f
}

// OnEnd registers the end-editing callback.
func (f TextField) OnEnd(fn func()) TextField {
	f.config.Callbacks.OnEnd = fn
	return f
}

// OnReturn registers the return-key callback.
func (f TextField) OnReturn(fn func()) TextField {
	f.config.Callbacks.OnReturn = fn
	return f
}

// OnClear registers the clear-button callback.
func (f TextField) OnClear(fn func()) TextField {
	f.config.Callbacks.OnClear = fn
	return f
}

// Mount materializes the native control for this field. The returned Mounted
// owns the control handle and delegate; call Update on it with a fresh
// TextField value on every subsequent render, and Dispose when the field
// leaves the tree.
func (f TextField) Mount(env Environment) (*Mounted, error) {
	active := f.active
	if active == nil {
		active = NewFocusFlag(false)
	}
	state := &State{Text: f.text, Active: active}

	control, delegate, err := Create(f.config, state, env)
	if err != nil {
		return nil, err
	}

	return &Mounted{
		control:  control,
		delegate: delegate,
		state:    state,
		env:      env,
	}, nil
}

// Mounted is a live field: the native control handle, the persistent
// delegate, and the external state they synchronize. It is created once per
// control lifetime and updated — never recreated — on each render.
type Mounted struct {
	control  *platform.TextControl
	delegate *Delegate
	state    *State
	env      Environment
}

// Update reconciles the live control against a new field description. The
// text and focus bindings are fixed at mount time; only the configuration is
// taken from the new value.
func (m *Mounted) Update(f TextField) {
	Update(m.control, m.delegate, f.config, m.state, m.env)
}

// SetEnvironment replaces the environment used to resolve subsequent updates
// (e.g., when the host switches color scheme or layout direction).
func (m *Mounted) SetEnvironment(env Environment) {
	m.env = env
}

// Control exposes the native control handle.
func (m *Mounted) Control() *platform.TextControl {
	return m.control
}

// State exposes the external state the field synchronizes against.
func (m *Mounted) State() *State {
	return m.state
}

// Dispose destroys the native control.
func (m *Mounted) Dispose() {
	m.control.Dispose()
}
