package platform

import (
	"fmt"
	"sync"
)

// Simulator is an in-memory NativeHost that emulates the native toolkit's
// text controls: it services the control channel, keeps per-control state,
// and raises delegate events back into Go the way a real host would. It backs
// the package tests, the quillsim scenario runner, and the interactive demo.
//
// The emulation includes the secure-entry quirk found on the reference
// platform: enabling secure mode while a control is focused silently discards
// the displayed text. Set SecureDiscardsText to false to model toolkits
// without the quirk.
type Simulator struct {
	// Version is reported in the handshake. Defaults to a supported version.
	Version string

	// SecureDiscardsText enables the secure-mode text-discard quirk.
	SecureDiscardsText bool

	controls  map[int64]*simControl
	focusedID int64
	mu        sync.Mutex
}

// simControl is the simulator's native-side state for one control.
type simControl struct {
	id      int64
	text    string
	selBase int
	selExt  int
	focused bool
	secure  bool
	enabled bool

	clearsOnBeginEditing bool
	clearsOnInsertion    bool
	clearButtonMode      ClearButtonMode

	// pendingClearOnInsert arms the clears-on-insertion behavior at focus
	// time; the first insertion afterwards replaces the whole text.
	pendingClearOnInsert bool

	configUpdates  int
	defaultReturns int
	defaultClears  int
}

// NewSimulator returns a simulator reporting a supported host version with
// the secure-entry quirk enabled.
func NewSimulator() *Simulator {
	return &Simulator{
		Version:            "v1.4.0",
		SecureDiscardsText: true,
		controls:           make(map[int64]*simControl),
	}
}

// InvokeMethod implements NativeHost.
func (s *Simulator) InvokeMethod(channel, method string, args []byte) ([]byte, error) {
	if channel != controlChannelName {
		return nil, ErrChannelNotFound
	}

	decoded, err := DefaultCodec.Decode(args)
	if err != nil {
		return nil, err
	}
	params, _ := decoded.(map[string]any)

	switch method {
	case "handshake":
		return DefaultCodec.Encode(map[string]any{
			"version":            s.Version,
			"secureDiscardsText": s.SecureDiscardsText,
		})

	case "create":
		s.handleCreate(params)
		return DefaultCodec.Encode(nil)

	case "dispose":
		id, _ := toInt64(params["controlId"])
		s.mu.Lock()
		delete(s.controls, id)
		if s.focusedID == id {
			s.focusedID = 0
		}
		s.mu.Unlock()
		return DefaultCodec.Encode(nil)

	case "invokeControlMethod":
		if err := s.handleControlMethod(params); err != nil {
			return nil, err
		}
		return DefaultCodec.Encode(nil)

	default:
		return nil, ErrMethodNotFound
	}
}

func (s *Simulator) handleCreate(params map[string]any) {
	id, _ := toInt64(params["controlId"])
	text, _ := params["text"].(string)
	base, _ := toInt(params["selectionBase"])
	extent, _ := toInt(params["selectionExtent"])

	c := &simControl{
		id:      id,
		text:    text,
		selBase: base,
		selExt:  extent,
		enabled: true,
	}
	c.applyConfig(params)

	s.mu.Lock()
	s.controls[id] = c
	s.mu.Unlock()
}

func (s *Simulator) handleControlMethod(params map[string]any) error {
	id, _ := toInt64(params["controlId"])
	method, _ := params["method"].(string)

	s.mu.Lock()
	c := s.controls[id]
	s.mu.Unlock()
	if c == nil {
		return ErrControlNotFound
	}

	switch method {
	case "setText":
		text, _ := params["text"].(string)
		s.mu.Lock()
		c.setText(text)
		s.mu.Unlock()

	case "setValue":
		text, _ := params["text"].(string)
		base, _ := toInt(params["selectionBase"])
		extent, _ := toInt(params["selectionExtent"])
		s.mu.Lock()
		c.text = text
		c.selBase = base
		c.selExt = extent
		s.mu.Unlock()

	case "setSelection":
		base, _ := toInt(params["selectionBase"])
		extent, _ := toInt(params["selectionExtent"])
		s.mu.Lock()
		c.selBase = base
		c.selExt = extent
		s.mu.Unlock()

	case "insertText":
		text, _ := params["text"].(string)
		// Keystroke-path insertion: runs the editing pipeline and
		// raises textChanged like a real key press.
		s.insert(c, text)

	case "clear":
		s.mu.Lock()
		c.text = ""
		c.selBase = 0
		c.selExt = 0
		s.mu.Unlock()

	case "setSecure":
		secure, _ := params["secure"].(bool)
		s.mu.Lock()
		entering := secure && !c.secure
		c.secure = secure
		if entering && c.focused && s.SecureDiscardsText {
			// The quirk: the native control resets its text when
			// secure rendering begins mid-edit, with no delegate
			// notification.
			c.text = ""
			c.selBase = 0
			c.selExt = 0
		}
		s.mu.Unlock()

	case "setEnabled":
		enabled, _ := params["enabled"].(bool)
		s.mu.Lock()
		c.enabled = enabled
		s.mu.Unlock()

	case "updateConfig":
		s.mu.Lock()
		c.applyConfig(params)
		c.configUpdates++
		s.mu.Unlock()

	case "focus":
		s.focusControl(c)

	case "blur":
		s.blurControl(c)

	default:
		return ErrMethodNotFound
	}
	return nil
}

func (c *simControl) applyConfig(params map[string]any) {
	if v, ok := params["clearsOnBeginEditing"].(bool); ok {
		c.clearsOnBeginEditing = v
	}
	if v, ok := params["clearsOnInsertion"].(bool); ok {
		c.clearsOnInsertion = v
	}
	if v, ok := toInt(params["clearButtonMode"]); ok {
		c.clearButtonMode = ClearButtonMode(v)
	}
}

func (c *simControl) setText(text string) {
	c.text = text
	n := len([]rune(text))
	if c.selBase > n {
		c.selBase = n
	}
	if c.selExt > n {
		c.selExt = n
	}
}

// focusControl gives a control keyboard focus, blurring the previous one.
func (s *Simulator) focusControl(c *simControl) {
	s.mu.Lock()
	if c.focused || !c.enabled {
		s.mu.Unlock()
		return
	}
	var previous *simControl
	if s.focusedID != 0 {
		previous = s.controls[s.focusedID]
	}
	s.mu.Unlock()

	if previous != nil {
		s.blurControl(previous)
	}

	s.mu.Lock()
	c.focused = true
	s.focusedID = c.id
	if c.clearsOnBeginEditing {
		c.text = ""
		c.selBase = 0
		c.selExt = 0
	}
	c.pendingClearOnInsert = c.clearsOnInsertion && c.text != ""
	text, base, extent := c.text, c.selBase, c.selExt
	s.mu.Unlock()

	s.emit(c.id, "editingBegan", map[string]any{
		"text":            text,
		"selectionBase":   base,
		"selectionExtent": extent,
	})
}

// blurControl removes keyboard focus from a control.
func (s *Simulator) blurControl(c *simControl) {
	s.mu.Lock()
	if !c.focused {
		s.mu.Unlock()
		return
	}
	c.focused = false
	if s.focusedID == c.id {
		s.focusedID = 0
	}
	s.mu.Unlock()

	s.emit(c.id, "editingEnded", nil)
}

// insert runs text through the editing pipeline and raises textChanged.
func (s *Simulator) insert(c *simControl, text string) {
	s.mu.Lock()
	if c.pendingClearOnInsert {
		c.text = ""
		c.selBase = 0
		c.selExt = 0
		c.pendingClearOnInsert = false
	}
	c.text, c.selBase, c.selExt = insertAtSelection(c.text, c.selBase, c.selExt, text)
	newText, base, extent := c.text, c.selBase, c.selExt
	s.mu.Unlock()

	s.emit(c.id, "textChanged", map[string]any{
		"text":            newText,
		"selectionBase":   base,
		"selectionExtent": extent,
	})
}

// emit delivers a native event into the Go side of the channel.
func (s *Simulator) emit(id int64, method string, params map[string]any) {
	args := make(map[string]any, len(params)+1)
	for k, v := range params {
		args[k] = v
	}
	args["controlId"] = id

	data, err := DefaultCodec.Encode(args)
	if err != nil {
		return
	}
	HandleMethodCall(controlChannelName, method, data)
}

// emitWithResult delivers an event and decodes the Go side's reply.
func (s *Simulator) emitWithResult(id int64, method string) (map[string]any, error) {
	data, err := DefaultCodec.Encode(map[string]any{"controlId": id})
	if err != nil {
		return nil, err
	}
	resultData, err := HandleMethodCall(controlChannelName, method, data)
	if err != nil {
		return nil, err
	}
	result, err := DefaultCodec.Decode(resultData)
	if err != nil {
		return nil, err
	}
	params, _ := result.(map[string]any)
	return params, nil
}

// --- user gesture surface (driving tests and demos) ---

// Tap simulates the user tapping a control, giving it focus.
func (s *Simulator) Tap(id int64) error {
	c := s.lookup(id)
	if c == nil {
		return fmt.Errorf("simulator: %w: %d", ErrControlNotFound, id)
	}
	s.focusControl(c)
	return nil
}

// TapOutside simulates tapping outside any control, blurring the focused one.
func (s *Simulator) TapOutside() {
	s.mu.Lock()
	var focused *simControl
	if s.focusedID != 0 {
		focused = s.controls[s.focusedID]
	}
	s.mu.Unlock()

	if focused != nil {
		s.blurControl(focused)
	}
}

// Type simulates the user typing text into the focused control.
func (s *Simulator) Type(text string) error {
	c := s.focused()
	if c == nil {
		return fmt.Errorf("simulator: no focused control")
	}
	for _, r := range text {
		s.insert(c, string(r))
	}
	return nil
}

// Backspace simulates a single backspace key press.
func (s *Simulator) Backspace() error {
	c := s.focused()
	if c == nil {
		return fmt.Errorf("simulator: no focused control")
	}

	s.mu.Lock()
	runes := []rune(c.text)
	start, end := c.selBase, c.selExt
	if start > end {
		start, end = end, start
	}
	if start == end && start > 0 {
		start--
	}
	c.text = string(runes[:start]) + string(runes[end:])
	c.selBase = start
	c.selExt = start
	newText, base, extent := c.text, c.selBase, c.selExt
	s.mu.Unlock()

	s.emit(c.id, "textChanged", map[string]any{
		"text":            newText,
		"selectionBase":   base,
		"selectionExtent": extent,
	})
	return nil
}

// PressReturn simulates pressing the return key on the focused control. If
// the Go side allows the default action, the host dismisses the keyboard.
func (s *Simulator) PressReturn() error {
	c := s.focused()
	if c == nil {
		return fmt.Errorf("simulator: no focused control")
	}

	result, err := s.emitWithResult(c.id, "returnPressed")
	if err != nil {
		return err
	}
	if perform, _ := result["performDefault"].(bool); perform {
		s.mu.Lock()
		c.defaultReturns++
		s.mu.Unlock()
		s.blurControl(c)
	}
	return nil
}

// PressClear simulates tapping the clear button. The button only exists when
// the config shows it and the control has text. If the Go side allows the
// default action, the host clears the text itself.
func (s *Simulator) PressClear() error {
	c := s.focused()
	if c == nil {
		return fmt.Errorf("simulator: no focused control")
	}

	s.mu.Lock()
	visible := c.clearButtonMode == ClearButtonAlways && c.text != ""
	s.mu.Unlock()
	if !visible {
		return fmt.Errorf("simulator: clear button not visible")
	}

	result, err := s.emitWithResult(c.id, "clearPressed")
	if err != nil {
		return err
	}
	if perform, _ := result["performDefault"].(bool); perform {
		s.mu.Lock()
		c.defaultClears++
		c.text = ""
		c.selBase = 0
		c.selExt = 0
		newText := c.text
		s.mu.Unlock()
		s.emit(c.id, "textChanged", map[string]any{
			"text":            newText,
			"selectionBase":   0,
			"selectionExtent": 0,
		})
	}
	return nil
}

// MoveCursor simulates the user placing the caret at the given rune offset.
func (s *Simulator) MoveCursor(offset int) error {
	c := s.focused()
	if c == nil {
		return fmt.Errorf("simulator: no focused control")
	}

	s.mu.Lock()
	n := len([]rune(c.text))
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		offset = n
	}
	c.selBase = offset
	c.selExt = offset
	text, base, extent := c.text, c.selBase, c.selExt
	s.mu.Unlock()

	s.emit(c.id, "textChanged", map[string]any{
		"text":            text,
		"selectionBase":   base,
		"selectionExtent": extent,
	})
	return nil
}

// --- assertion surface ---

// ControlState is a snapshot of the simulator's native-side control state.
type ControlState struct {
	Text    string
	SelBase int
	SelExt  int
	Focused bool
	Secure  bool
	Enabled bool
}

// State returns the native-side state of a control.
func (s *Simulator) State(id int64) (ControlState, bool) {
	c := s.lookup(id)
	if c == nil {
		return ControlState{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return ControlState{
		Text:    c.text,
		SelBase: c.selBase,
		SelExt:  c.selExt,
		Focused: c.focused,
		Secure:  c.secure,
		Enabled: c.enabled,
	}, true
}

// Exists reports whether the native side still holds the control.
func (s *Simulator) Exists(id int64) bool {
	return s.lookup(id) != nil
}

// DefaultReturnCount returns how often the default return action ran.
func (s *Simulator) DefaultReturnCount(id int64) int {
	c := s.lookup(id)
	if c == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.defaultReturns
}

// DefaultClearCount returns how often the control performed its own clear.
func (s *Simulator) DefaultClearCount(id int64) int {
	c := s.lookup(id)
	if c == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.defaultClears
}

// ConfigUpdateCount returns how many updateConfig calls reached the control.
func (s *Simulator) ConfigUpdateCount(id int64) int {
	c := s.lookup(id)
	if c == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.configUpdates
}

func (s *Simulator) lookup(id int64) *simControl {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controls[id]
}

func (s *Simulator) focused() *simControl {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.focusedID == 0 {
		return nil
	}
	return s.controls[s.focusedID]
}
