package field

import (
	"testing"

	"github.com/go-quill/quill/pkg/platform"
)

func mountField(t *testing.T, config Config, text string) (*platform.TextControl, *Delegate, *State) {
	t.Helper()
	state := NewState(text)
	control, delegate, err := Create(config, state, Environment{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return control, delegate, state
}

func TestCreate_AppliesInitialState(t *testing.T) {
	sim, _ := platform.SetupSimulator(t.Cleanup)

	config := Config{Placeholder: "Username"}
	control, _, _ := mountField(t, config, "alice")

	native, ok := sim.State(control.ID())
	if !ok {
		t.Fatal("native control not created")
	}
	if native.Text != "alice" {
		t.Errorf("native text = %q, want %q", native.Text, "alice")
	}
	if native.Focused {
		t.Error("control focused at create without an active flag")
	}
	if native.Secure {
		t.Error("control secure at create without the secure option")
	}
}

func TestCreate_ActiveFlagFocusesImmediately(t *testing.T) {
	sim, queue := platform.SetupSimulator(t.Cleanup)

	state := NewState("")
	state.Active.Set(true)
	control, _, err := Create(Config{}, state, Environment{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	queue.Flush()

	native, _ := sim.State(control.ID())
	if !native.Focused {
		t.Error("control not focused when created with an active flag")
	}
	if !state.Active.Get() {
		t.Error("active flag lost its value")
	}
}

func TestCreate_SecureWithInitialText(t *testing.T) {
	sim, _ := platform.SetupSimulator(t.Cleanup)

	control, _, _ := mountField(t, Config{Secure: true}, "hunter2")

	// Secure is applied after the initial text and before focus, so an
	// unfocused control never hits the discard quirk.
	native, _ := sim.State(control.ID())
	if !native.Secure {
		t.Error("control not secure")
	}
	if native.Text != "hunter2" {
		t.Errorf("native text = %q, want %q", native.Text, "hunter2")
	}
}

func TestUpdate_IdenticalConfigIsQuiet(t *testing.T) {
	sim, queue := platform.SetupSimulator(t.Cleanup)

	config := Config{Placeholder: "Email"}
	control, delegate, state := mountField(t, config, "a@b.c")

	sim.Tap(control.ID())
	sim.MoveCursor(3)
	queue.Flush()

	Update(control, delegate, config, state, Environment{})
	Update(control, delegate, config, state, Environment{})

	if got := sim.ConfigUpdateCount(control.ID()); got != 0 {
		t.Errorf("ConfigUpdateCount = %d after identical updates, want 0", got)
	}
	native, _ := sim.State(control.ID())
	if native.Text != "a@b.c" {
		t.Errorf("native text = %q, want unchanged", native.Text)
	}
	if native.SelBase != 3 || native.SelExt != 3 {
		t.Errorf("native selection = (%d, %d), want (3, 3)", native.SelBase, native.SelExt)
	}
	if !native.Focused {
		t.Error("control lost focus over a no-op update")
	}
}

func TestUpdate_PushesProgrammaticText(t *testing.T) {
	sim, _ := platform.SetupSimulator(t.Cleanup)

	config := Config{}
	control, delegate, state := mountField(t, config, "")

	state.Text.SetText("filled in")
	Update(control, delegate, config, state, Environment{})

	native, _ := sim.State(control.ID())
	if native.Text != "filled in" {
		t.Errorf("native text = %q, want %q", native.Text, "filled in")
	}
}

func TestUpdate_UserEditsRoundTrip(t *testing.T) {
	sim, queue := platform.SetupSimulator(t.Cleanup)

	config := Config{}
	control, delegate, state := mountField(t, config, "")

	sim.Tap(control.ID())
	sim.Type("typed")
	queue.Flush()

	if got := state.Text.Text(); got != "typed" {
		t.Fatalf("controller text = %q, want %q", got, "typed")
	}

	// The render pass after a user edit sees text already in sync and must
	// not push it back (that would reset the native cursor).
	sim.MoveCursor(2)
	Update(control, delegate, config, state, Environment{})

	native, _ := sim.State(control.ID())
	if native.SelBase != 2 || native.SelExt != 2 {
		t.Errorf("native selection = (%d, %d) after update, want (2, 2)", native.SelBase, native.SelExt)
	}
}

func TestUpdate_SecureEntryPreservesTextAndCursor(t *testing.T) {
	sim, queue := platform.SetupSimulator(t.Cleanup)

	config := Config{}
	control, delegate, state := mountField(t, config, "secret")

	sim.Tap(control.ID())
	sim.MoveCursor(3)
	queue.Flush()

	Update(control, delegate, config.WithSecure(true), state, Environment{})

	native, _ := sim.State(control.ID())
	if !native.Secure {
		t.Fatal("control not secure after update")
	}
	if native.Text != "secret" {
		t.Errorf("native text = %q after secure flip, want %q", native.Text, "secret")
	}
	if native.SelBase != 3 || native.SelExt != 3 {
		t.Errorf("native selection = (%d, %d), want (3, 3)", native.SelBase, native.SelExt)
	}
	if got := control.Text(); got != "secret" {
		t.Errorf("mirror text = %q, want %q", got, "secret")
	}
	if !native.Focused {
		t.Error("control lost focus across the secure flip")
	}
}

func TestUpdate_SecureEntryNoQuirkHost(t *testing.T) {
	t.Cleanup(platform.ResetForTest)

	sim := platform.NewSimulator()
	sim.SecureDiscardsText = false
	if _, err := platform.AttachHost(sim); err != nil {
		t.Fatalf("AttachHost: %v", err)
	}
	queue := &platform.TaskQueue{}
	platform.RegisterDispatch(queue.Enqueue)

	config := Config{}
	control, delegate, state := mountField(t, config, "secret")

	sim.Tap(control.ID())
	queue.Flush()

	Update(control, delegate, config.WithSecure(true), state, Environment{})

	// No discard on this host, so no clear/re-insert detour either.
	native, _ := sim.State(control.ID())
	if native.Text != "secret" {
		t.Errorf("native text = %q, want %q", native.Text, "secret")
	}
	if !native.Secure {
		t.Error("control not secure")
	}
}

func TestUpdate_SecureOffIsPlainToggle(t *testing.T) {
	sim, queue := platform.SetupSimulator(t.Cleanup)

	config := Config{Secure: true}
	control, delegate, state := mountField(t, config, "secret")

	sim.Tap(control.ID())
	queue.Flush()

	Update(control, delegate, config.WithSecure(false), state, Environment{})

	native, _ := sim.State(control.ID())
	if native.Secure {
		t.Error("control still secure")
	}
	if native.Text != "secret" {
		t.Errorf("native text = %q, want %q", native.Text, "secret")
	}
}

func TestUpdate_ActiveFlagDrivesFocus(t *testing.T) {
	sim, queue := platform.SetupSimulator(t.Cleanup)

	config := Config{}
	control, delegate, state := mountField(t, config, "")

	state.Active.Set(true)
	Update(control, delegate, config, state, Environment{})
	queue.Flush()

	native, _ := sim.State(control.ID())
	if !native.Focused {
		t.Fatal("control not focused after active flag set")
	}

	state.Active.Set(false)
	Update(control, delegate, config, state, Environment{})
	queue.Flush()

	native, _ = sim.State(control.ID())
	if native.Focused {
		t.Error("control still focused after active flag cleared")
	}
}

func TestUpdate_UserFocusDrivesActiveFlag(t *testing.T) {
	sim, queue := platform.SetupSimulator(t.Cleanup)

	control, _, state := mountField(t, Config{}, "")

	sim.Tap(control.ID())
	queue.Flush()
	if !state.Active.Get() {
		t.Fatal("active flag not set after user focus")
	}

	sim.TapOutside()
	queue.Flush()
	if state.Active.Get() {
		t.Error("active flag still set after user blur")
	}
}

func TestUpdate_FocusMovesBetweenFields(t *testing.T) {
	sim, queue := platform.SetupSimulator(t.Cleanup)

	configA := Config{}
	controlA, delegateA, stateA := mountField(t, configA, "")
	configB := Config{}
	controlB, delegateB, stateB := mountField(t, configB, "")

	sim.Tap(controlA.ID())
	queue.Flush()

	// The host moves focus by flipping the flags and re-rendering both.
	stateA.Active.Set(false)
	stateB.Active.Set(true)
	Update(controlA, delegateA, configA, stateA, Environment{})
	Update(controlB, delegateB, configB, stateB, Environment{})
	queue.Flush()

	nativeA, _ := sim.State(controlA.ID())
	nativeB, _ := sim.State(controlB.ID())
	if nativeA.Focused {
		t.Error("first field still focused")
	}
	if !nativeB.Focused {
		t.Error("second field not focused")
	}
	if stateA.Active.Get() || !stateB.Active.Get() {
		t.Errorf("flags = (%v, %v), want (false, true)", stateA.Active.Get(), stateB.Active.Get())
	}
}

func TestUpdate_DisabledField(t *testing.T) {
	sim, queue := platform.SetupSimulator(t.Cleanup)

	config := Config{}
	control, delegate, state := mountField(t, config, "")

	Update(control, delegate, config.WithDisabled(true), state, Environment{})

	native, _ := sim.State(control.ID())
	if native.Enabled {
		t.Fatal("control still enabled")
	}

	sim.Tap(control.ID())
	queue.Flush()
	if state.Active.Get() {
		t.Error("disabled field became active from a tap")
	}
}

func TestTextField_MountUpdateDispose(t *testing.T) {
	sim, queue := platform.SetupSimulator(t.Cleanup)

	text := platform.NewTextEditingController("")
	f := New("Username", text)

	mounted, err := f.Mount(Environment{})
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}

	sim.Tap(mounted.Control().ID())
	sim.Type("bob")
	queue.Flush()

	if got := text.Text(); got != "bob" {
		t.Errorf("controller text = %q, want %q", got, "bob")
	}

	mounted.Update(f.WithSecure(true))
	native, _ := sim.State(mounted.Control().ID())
	if !native.Secure {
		t.Error("control not secure after update")
	}
	if native.Text != "bob" {
		t.Errorf("native text = %q, want %q", native.Text, "bob")
	}

	mounted.Dispose()
	if sim.Exists(mounted.Control().ID()) {
		t.Error("native control still exists after dispose")
	}
}
