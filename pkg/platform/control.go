package platform

import (
	"sync"
	"unicode/utf8"
)

// TextControlConfig is the styling and behavior snapshot handed to the native
// control. It is a plain comparable struct so the bridge can cheaply skip
// updates when nothing changed. Secure entry and interaction-enabled are
// deliberately not part of it: both have side effects on the native side and
// are applied through dedicated methods in a fixed order.
type TextControlConfig struct {
	Placeholder string

	FontFamily string
	FontSize   float64
	FontWeight int
	FontItalic bool

	TextColor        uint32 // ARGB
	AccentColor      uint32 // ARGB, cursor/tint
	PlaceholderColor uint32 // ARGB
	TextAlignment    int    // 0=leading, 1=center, 2=trailing

	ContentType    ContentType
	KeyboardType   KeyboardType
	ReturnKeyType  ReturnKeyType
	Capitalization TextCapitalization

	Autocorrection    Behavior
	SpellChecking     Behavior
	SmartDashes       Behavior
	SmartQuotes       Behavior
	SmartInsertDelete Behavior

	ClearButtonMode      ClearButtonMode
	ClearsOnBeginEditing bool
	ClearsOnInsertion    bool

	// PasswordRules is the platform rule descriptor; empty means none.
	PasswordRules string
}

// TextControlDelegate receives the native control's lifecycle and interaction
// events. One delegate is installed per control for the control's lifetime.
type TextControlDelegate interface {
	// EditingBegan is raised when the control gains focus.
	EditingBegan()

	// TextChanged is raised after every user edit with the control's
	// current text and selection.
	TextChanged(value TextEditingValue)

	// EditingEnded is raised when the control loses focus.
	EditingEnded()

	// ReturnPressed is raised when the return key is pressed. Returning
	// false suppresses the control's default return action.
	ReturnPressed() bool

	// ClearPressed is raised when the clear button is tapped. Returning
	// false suppresses the control's own clearing.
	ClearPressed() bool
}

// TextControl is the Go-side handle for one native text input control. It
// mirrors the native control's observable state (text, selection, focus,
// secure mode) and forwards mutations over the control channel.
type TextControl struct {
	id       int64
	config   TextControlConfig
	delegate TextControlDelegate

	text    string
	selBase int
	selExt  int
	focused bool
	secure  bool
	enabled bool

	mu sync.RWMutex
}

// ID returns the control's channel identifier.
func (c *TextControl) ID() int64 {
	return c.id
}

// SetDelegate installs the event sink for this control.
func (c *TextControl) SetDelegate(d TextControlDelegate) {
	c.mu.Lock()
	c.delegate = d
	c.mu.Unlock()
}

// Text returns the currently displayed text. For secure controls this is the
// unmasked internal value; masking is purely a rendering concern.
func (c *TextControl) Text() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.text
}

// Selection returns the current selection in rune offsets.
func (c *TextControl) Selection() TextSelection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return TextSelection{BaseOffset: c.selBase, ExtentOffset: c.selExt}
}

// Value returns text and selection as one snapshot.
func (c *TextControl) Value() TextEditingValue {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return TextEditingValue{
		Text:      c.text,
		Selection: TextSelection{BaseOffset: c.selBase, ExtentOffset: c.selExt},
	}
}

// IsFocused returns whether the native control holds input focus.
func (c *TextControl) IsFocused() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.focused
}

// IsSecure returns whether the control renders masked.
func (c *TextControl) IsSecure() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.secure
}

// IsEnabled returns whether the control accepts interaction.
func (c *TextControl) IsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.enabled
}

// Config returns the last applied control config.
func (c *TextControl) Config() TextControlConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

// SetText replaces the displayed text, clamping the selection to the new
// length. This is the raw attribute path; user-equivalent insertion goes
// through InsertText.
func (c *TextControl) SetText(text string) {
	n := utf8.RuneCountInString(text)
	c.mu.Lock()
	c.text = text
	if c.selBase > n {
		c.selBase = n
	}
	if c.selExt > n {
		c.selExt = n
	}
	c.mu.Unlock()

	controlRegistry().invokeControlMethod(c.id, "setText", map[string]any{
		"text": text,
	})
}

// SetValue replaces text and selection atomically.
func (c *TextControl) SetValue(value TextEditingValue) {
	c.mu.Lock()
	c.text = value.Text
	c.selBase = value.Selection.BaseOffset
	c.selExt = value.Selection.ExtentOffset
	c.mu.Unlock()

	controlRegistry().invokeControlMethod(c.id, "setValue", map[string]any{
		"text":            value.Text,
		"selectionBase":   value.Selection.BaseOffset,
		"selectionExtent": value.Selection.ExtentOffset,
	})
}

// SetSelection moves the cursor/selection.
func (c *TextControl) SetSelection(sel TextSelection) {
	c.mu.Lock()
	c.selBase = sel.BaseOffset
	c.selExt = sel.ExtentOffset
	c.mu.Unlock()

	controlRegistry().invokeControlMethod(c.id, "setSelection", map[string]any{
		"selectionBase":   sel.BaseOffset,
		"selectionExtent": sel.ExtentOffset,
	})
}

// InsertText inserts text at the current selection through the same input
// path a keystroke takes, so undo state and autocomplete context stay intact.
// The selection collapses after the inserted text.
func (c *TextControl) InsertText(text string) {
	c.mu.Lock()
	c.text, c.selBase, c.selExt = insertAtSelection(c.text, c.selBase, c.selExt, text)
	c.mu.Unlock()

	controlRegistry().invokeControlMethod(c.id, "insertText", map[string]any{
		"text": text,
	})
}

// Clear empties the control.
func (c *TextControl) Clear() {
	c.mu.Lock()
	c.text = ""
	c.selBase = 0
	c.selExt = 0
	c.mu.Unlock()

	controlRegistry().invokeControlMethod(c.id, "clear", nil)
}

// SetSecure switches masked rendering on or off. On hosts whose controls
// discard their text when entering secure mode while focused (see
// HostInfo.SecureDiscardsText), the mirror reflects that loss; callers that
// need the text preserved must capture and re-insert it around this call.
func (c *TextControl) SetSecure(secure bool) {
	c.mu.Lock()
	entering := secure && !c.secure
	c.secure = secure
	if entering && c.focused && hostDiscardsTextOnSecure() {
		c.text = ""
		c.selBase = 0
		c.selExt = 0
	}
	c.mu.Unlock()

	controlRegistry().invokeControlMethod(c.id, "setSecure", map[string]any{
		"secure": secure,
	})
}

// SetEnabled toggles whether the control accepts interaction.
func (c *TextControl) SetEnabled(enabled bool) {
	c.mu.Lock()
	changed := c.enabled != enabled
	c.enabled = enabled
	c.mu.Unlock()
	if !changed {
		return
	}

	controlRegistry().invokeControlMethod(c.id, "setEnabled", map[string]any{
		"enabled": enabled,
	})
}

// UpdateConfig re-applies the styling/behavior snapshot. The channel call is
// skipped when the config is unchanged; re-sending an identical config to
// some native controls resets cursor state.
func (c *TextControl) UpdateConfig(config TextControlConfig) {
	c.mu.Lock()
	if c.config == config {
		c.mu.Unlock()
		return
	}
	c.config = config
	c.mu.Unlock()

	controlRegistry().invokeControlMethod(c.id, "updateConfig", configParams(config))
}

// Focus asks the native control to become first responder.
func (c *TextControl) Focus() {
	controlRegistry().invokeControlMethod(c.id, "focus", nil)
}

// Blur asks the native control to resign first responder.
func (c *TextControl) Blur() {
	controlRegistry().invokeControlMethod(c.id, "blur", nil)
}

// Dispose destroys the native control and unregisters the handle.
func (c *TextControl) Dispose() {
	controlRegistry().dispose(c.id)
}

// handleEditingBegan processes the native focus-gained event. The payload
// carries the control's text because begin-editing may itself mutate it
// (clears-on-begin-editing happens natively before the event fires).
func (c *TextControl) handleEditingBegan(text string, selBase, selExt int) {
	c.mu.Lock()
	c.focused = true
	c.text = text
	c.selBase = selBase
	c.selExt = selExt
	delegate := c.delegate
	c.mu.Unlock()

	setFocusedControl(c.id)
	if delegate != nil {
		delegate.EditingBegan()
	}
}

// handleTextChanged processes a native user edit.
func (c *TextControl) handleTextChanged(text string, selBase, selExt int) {
	c.mu.Lock()
	c.text = text
	c.selBase = selBase
	c.selExt = selExt
	delegate := c.delegate
	c.mu.Unlock()

	if delegate != nil {
		delegate.TextChanged(TextEditingValue{
			Text:      text,
			Selection: TextSelection{BaseOffset: selBase, ExtentOffset: selExt},
		})
	}
}

// handleEditingEnded processes the native focus-lost event.
func (c *TextControl) handleEditingEnded() {
	c.mu.Lock()
	c.focused = false
	delegate := c.delegate
	c.mu.Unlock()

	clearFocusedControl(c.id)
	if delegate != nil {
		delegate.EditingEnded()
	}
}

// handleReturnPressed asks the delegate whether the native default return
// action should run.
func (c *TextControl) handleReturnPressed() bool {
	c.mu.RLock()
	delegate := c.delegate
	c.mu.RUnlock()

	if delegate == nil {
		return true
	}
	return delegate.ReturnPressed()
}

// handleClearPressed asks the delegate whether the native control should
// perform its own clearing.
func (c *TextControl) handleClearPressed() bool {
	c.mu.RLock()
	delegate := c.delegate
	c.mu.RUnlock()

	if delegate == nil {
		return true
	}
	return delegate.ClearPressed()
}

// insertAtSelection replaces the selected rune range with the inserted text
// and returns the new text plus a selection collapsed after the insertion.
func insertAtSelection(text string, selBase, selExt int, inserted string) (string, int, int) {
	runes := []rune(text)
	start, end := selBase, selExt
	if start > end {
		start, end = end, start
	}
	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}
	if start > len(runes) {
		start = len(runes)
	}

	ins := []rune(inserted)
	out := make([]rune, 0, len(runes)-(end-start)+len(ins))
	out = append(out, runes[:start]...)
	out = append(out, ins...)
	out = append(out, runes[end:]...)

	caret := start + len(ins)
	return string(out), caret, caret
}
