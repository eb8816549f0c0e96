package platform

import (
	"testing"
)

// recordingDelegate captures delegate events for assertions.
type recordingDelegate struct {
	events        []string
	values        []TextEditingValue
	performReturn bool
	performClear  bool
}

func (d *recordingDelegate) EditingBegan() {
	d.events = append(d.events, "began")
}

func (d *recordingDelegate) TextChanged(value TextEditingValue) {
	d.events = append(d.events, "changed")
	d.values = append(d.values, value)
}

func (d *recordingDelegate) EditingEnded() {
	d.events = append(d.events, "ended")
}

func (d *recordingDelegate) ReturnPressed() bool {
	d.events = append(d.events, "return")
	return d.performReturn
}

func (d *recordingDelegate) ClearPressed() bool {
	d.events = append(d.events, "clear")
	return d.performClear
}

func newTestControl(t *testing.T, config TextControlConfig, text string) *TextControl {
	t.Helper()
	control, err := NewTextControl(config, TextEditingValue{
		Text:      text,
		Selection: TextSelectionCollapsed(len([]rune(text))),
	})
	if err != nil {
		t.Fatalf("NewTextControl: %v", err)
	}
	return control
}

func TestNewTextControl_CreatesNativeControl(t *testing.T) {
	sim, _ := SetupSimulator(t.Cleanup)

	control := newTestControl(t, TextControlConfig{Placeholder: "Name"}, "hello")

	state, ok := sim.State(control.ID())
	if !ok {
		t.Fatal("native control not created")
	}
	if state.Text != "hello" {
		t.Errorf("native text = %q, want %q", state.Text, "hello")
	}
	if !state.Enabled {
		t.Error("native control not enabled after create")
	}
	if state.Focused {
		t.Error("native control focused after create; controls start unfocused")
	}
}

func TestNewTextControl_WithoutHost(t *testing.T) {
	t.Cleanup(ResetForTest)

	if _, err := NewTextControl(TextControlConfig{}, TextEditingValue{}); err == nil {
		t.Fatal("NewTextControl succeeded with no host attached")
	}
}

func TestControl_UserTypingUpdatesMirror(t *testing.T) {
	sim, _ := SetupSimulator(t.Cleanup)

	control := newTestControl(t, TextControlConfig{}, "")
	delegate := &recordingDelegate{}
	control.SetDelegate(delegate)

	sim.Tap(control.ID())
	sim.Type("hi")

	if got := control.Text(); got != "hi" {
		t.Errorf("mirror text = %q, want %q", got, "hi")
	}
	if sel := control.Selection(); sel.BaseOffset != 2 || sel.ExtentOffset != 2 {
		t.Errorf("mirror selection = (%d, %d), want (2, 2)", sel.BaseOffset, sel.ExtentOffset)
	}
	if len(delegate.values) != 2 {
		t.Fatalf("TextChanged calls = %d, want 2 (one per keystroke)", len(delegate.values))
	}
	if last := delegate.values[1]; last.Text != "hi" {
		t.Errorf("last TextChanged value = %q, want %q", last.Text, "hi")
	}
}

func TestControl_FocusEvents(t *testing.T) {
	sim, _ := SetupSimulator(t.Cleanup)

	control := newTestControl(t, TextControlConfig{}, "")
	delegate := &recordingDelegate{}
	control.SetDelegate(delegate)

	sim.Tap(control.ID())
	if !control.IsFocused() {
		t.Error("mirror not focused after tap")
	}
	if FocusedControlID() != control.ID() {
		t.Errorf("FocusedControlID() = %d, want %d", FocusedControlID(), control.ID())
	}

	sim.TapOutside()
	if control.IsFocused() {
		t.Error("mirror still focused after tap outside")
	}
	if HasFocus() {
		t.Error("HasFocus() still true after tap outside")
	}

	want := []string{"began", "ended"}
	if len(delegate.events) != len(want) {
		t.Fatalf("events = %v, want %v", delegate.events, want)
	}
	for i := range want {
		if delegate.events[i] != want[i] {
			t.Fatalf("events = %v, want %v", delegate.events, want)
		}
	}
}

func TestControl_SetValueDoesNotEcho(t *testing.T) {
	sim, _ := SetupSimulator(t.Cleanup)

	control := newTestControl(t, TextControlConfig{}, "")
	delegate := &recordingDelegate{}
	control.SetDelegate(delegate)

	control.SetValue(TextEditingValue{Text: "set", Selection: TextSelectionCollapsed(3)})

	state, _ := sim.State(control.ID())
	if state.Text != "set" {
		t.Errorf("native text = %q, want %q", state.Text, "set")
	}
	// Programmatic writes must not come back as textChanged events.
	if len(delegate.events) != 0 {
		t.Errorf("events = %v, want none for a programmatic write", delegate.events)
	}
}

func TestControl_InsertTextTakesKeystrokePath(t *testing.T) {
	sim, _ := SetupSimulator(t.Cleanup)

	control := newTestControl(t, TextControlConfig{}, "ab")
	delegate := &recordingDelegate{}
	control.SetDelegate(delegate)

	control.SetSelection(TextSelectionCollapsed(1))
	control.InsertText("X")

	if got := control.Text(); got != "aXb" {
		t.Errorf("mirror text = %q, want %q", got, "aXb")
	}
	state, _ := sim.State(control.ID())
	if state.Text != "aXb" {
		t.Errorf("native text = %q, want %q", state.Text, "aXb")
	}
	// Insertion runs the editing pipeline and raises textChanged.
	if len(delegate.values) != 1 {
		t.Fatalf("TextChanged calls = %d, want 1", len(delegate.values))
	}
}

func TestControl_SetSecureMirrorsQuirkDiscard(t *testing.T) {
	sim, _ := SetupSimulator(t.Cleanup)

	control := newTestControl(t, TextControlConfig{}, "secret")
	sim.Tap(control.ID())

	control.SetSecure(true)

	// Entering secure mode while focused discards the text on this host;
	// the mirror has to predict that so reads stay truthful.
	if got := control.Text(); got != "" {
		t.Errorf("mirror text = %q after secure flip, want empty", got)
	}
	state, _ := sim.State(control.ID())
	if state.Text != "" {
		t.Errorf("native text = %q after secure flip, want empty", state.Text)
	}
	if !state.Secure {
		t.Error("native control not secure")
	}
}

func TestControl_SetSecureUnfocusedKeepsText(t *testing.T) {
	sim, _ := SetupSimulator(t.Cleanup)

	control := newTestControl(t, TextControlConfig{}, "secret")
	control.SetSecure(true)

	if got := control.Text(); got != "secret" {
		t.Errorf("mirror text = %q, want %q", got, "secret")
	}
	state, _ := sim.State(control.ID())
	if state.Text != "secret" {
		t.Errorf("native text = %q, want %q", state.Text, "secret")
	}
}

func TestControl_SetSecureNoQuirkHost(t *testing.T) {
	t.Cleanup(ResetForTest)

	sim := NewSimulator()
	sim.SecureDiscardsText = false
	if _, err := AttachHost(sim); err != nil {
		t.Fatalf("AttachHost: %v", err)
	}
	queue := &TaskQueue{}
	RegisterDispatch(queue.Enqueue)

	control := newTestControl(t, TextControlConfig{}, "secret")
	sim.Tap(control.ID())
	control.SetSecure(true)

	if got := control.Text(); got != "secret" {
		t.Errorf("mirror text = %q, want %q", got, "secret")
	}
}

func TestControl_UpdateConfigSkipsIdentical(t *testing.T) {
	sim, _ := SetupSimulator(t.Cleanup)

	config := TextControlConfig{Placeholder: "Name", FontSize: 17}
	control := newTestControl(t, config, "")

	control.UpdateConfig(config)
	control.UpdateConfig(config)
	if got := sim.ConfigUpdateCount(control.ID()); got != 0 {
		t.Errorf("ConfigUpdateCount = %d after identical updates, want 0", got)
	}

	config.Placeholder = "Full name"
	control.UpdateConfig(config)
	if got := sim.ConfigUpdateCount(control.ID()); got != 1 {
		t.Errorf("ConfigUpdateCount = %d after changed update, want 1", got)
	}
}

func TestControl_DisabledControlRefusesFocus(t *testing.T) {
	sim, _ := SetupSimulator(t.Cleanup)

	control := newTestControl(t, TextControlConfig{}, "")
	control.SetEnabled(false)

	state, _ := sim.State(control.ID())
	if state.Enabled {
		t.Error("native control still enabled")
	}

	// A disabled control refuses focus.
	sim.Tap(control.ID())
	if control.IsFocused() {
		t.Error("disabled control gained focus")
	}
}

func TestControl_NilDelegateAllowsDefaults(t *testing.T) {
	sim, _ := SetupSimulator(t.Cleanup)

	control := newTestControl(t, TextControlConfig{}, "")
	sim.Tap(control.ID())
	if err := sim.PressReturn(); err != nil {
		t.Fatalf("PressReturn: %v", err)
	}

	// With no delegate installed, the native default runs.
	if got := sim.DefaultReturnCount(control.ID()); got != 1 {
		t.Errorf("DefaultReturnCount = %d, want 1", got)
	}
	if control.IsFocused() {
		t.Error("control still focused after default return action")
	}
}

func TestControl_ReturnSuppressedByDelegate(t *testing.T) {
	sim, _ := SetupSimulator(t.Cleanup)

	control := newTestControl(t, TextControlConfig{}, "")
	control.SetDelegate(&recordingDelegate{performReturn: false})

	sim.Tap(control.ID())
	if err := sim.PressReturn(); err != nil {
		t.Fatalf("PressReturn: %v", err)
	}

	if got := sim.DefaultReturnCount(control.ID()); got != 0 {
		t.Errorf("DefaultReturnCount = %d, want 0", got)
	}
}

func TestControl_Dispose(t *testing.T) {
	sim, _ := SetupSimulator(t.Cleanup)

	control := newTestControl(t, TextControlConfig{}, "")
	sim.Tap(control.ID())
	control.Dispose()

	if sim.Exists(control.ID()) {
		t.Error("native control still exists after dispose")
	}
	if HasFocus() {
		t.Error("focus tracking still set after disposing the focused control")
	}
}

func TestControl_FocusMovesBetweenControls(t *testing.T) {
	sim, _ := SetupSimulator(t.Cleanup)

	first := newTestControl(t, TextControlConfig{}, "")
	second := newTestControl(t, TextControlConfig{}, "")

	firstDelegate := &recordingDelegate{}
	first.SetDelegate(firstDelegate)

	sim.Tap(first.ID())
	sim.Tap(second.ID())

	if first.IsFocused() {
		t.Error("first control still focused")
	}
	if !second.IsFocused() {
		t.Error("second control not focused")
	}
	if FocusedControlID() != second.ID() {
		t.Errorf("FocusedControlID() = %d, want %d", FocusedControlID(), second.ID())
	}

	// The old control sees editingEnded before the new one begins.
	want := []string{"began", "ended"}
	for i := range want {
		if i >= len(firstDelegate.events) || firstDelegate.events[i] != want[i] {
			t.Fatalf("first delegate events = %v, want %v", firstDelegate.events, want)
		}
	}
}

func TestControl_ClearsOnBeginEditing(t *testing.T) {
	sim, _ := SetupSimulator(t.Cleanup)

	control := newTestControl(t, TextControlConfig{ClearsOnBeginEditing: true}, "stale")
	delegate := &recordingDelegate{}
	control.SetDelegate(delegate)

	sim.Tap(control.ID())

	// The native control clears before editingBegan fires; the mirror takes
	// the text from the event payload.
	if got := control.Text(); got != "" {
		t.Errorf("mirror text = %q after begin, want empty", got)
	}
	state, _ := sim.State(control.ID())
	if state.Text != "" {
		t.Errorf("native text = %q after begin, want empty", state.Text)
	}
}

func TestControl_ClearsOnInsertion(t *testing.T) {
	sim, _ := SetupSimulator(t.Cleanup)

	control := newTestControl(t, TextControlConfig{ClearsOnInsertion: true}, "old")
	sim.Tap(control.ID())
	sim.Type("n")

	if got := control.Text(); got != "n" {
		t.Errorf("text = %q after first insertion, want %q", got, "n")
	}

	sim.Type("ew")
	if got := control.Text(); got != "new" {
		t.Errorf("text = %q after further typing, want %q", got, "new")
	}
}

func TestControl_PressClearDefault(t *testing.T) {
	sim, _ := SetupSimulator(t.Cleanup)

	control := newTestControl(t, TextControlConfig{ClearButtonMode: ClearButtonAlways}, "text")
	sim.Tap(control.ID())

	if err := sim.PressClear(); err != nil {
		t.Fatalf("PressClear: %v", err)
	}

	// No delegate: the control performs its own clear and reports the edit.
	if got := sim.DefaultClearCount(control.ID()); got != 1 {
		t.Errorf("DefaultClearCount = %d, want 1", got)
	}
	if got := control.Text(); got != "" {
		t.Errorf("mirror text = %q after default clear, want empty", got)
	}
}
