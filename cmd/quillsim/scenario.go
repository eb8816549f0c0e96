package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/go-quill/quill/pkg/field"
	"github.com/go-quill/quill/pkg/platform"
)

// Scenario is a scripted interaction with a single field, loaded from YAML.
// Steps run in order against the simulator; each step may carry expectations
// that are checked after the step (and its deferred work) settles.
type Scenario struct {
	Name  string    `yaml:"name"`
	Host  HostSpec  `yaml:"host,omitempty"`
	Field FieldSpec `yaml:"field"`
	Steps []Step    `yaml:"steps"`
}

// HostSpec overrides the simulated host's handshake.
type HostSpec struct {
	Version            string `yaml:"version,omitempty"`
	SecureDiscardsText *bool  `yaml:"secureDiscardsText,omitempty"`
}

// FieldSpec is the field's initial description.
type FieldSpec struct {
	Placeholder          string `yaml:"placeholder,omitempty"`
	Text                 string `yaml:"text,omitempty"`
	Secure               bool   `yaml:"secure,omitempty"`
	Disabled             bool   `yaml:"disabled,omitempty"`
	ClearsOnBeginEditing bool   `yaml:"clearsOnBeginEditing,omitempty"`
	ClearButton          bool   `yaml:"clearButton,omitempty"`
}

// Step is one scripted action. Exactly one action field should be set; a step
// with only Expect re-checks state without acting.
type Step struct {
	Tap         bool   `yaml:"tap,omitempty"`
	TapOutside  bool   `yaml:"tapOutside,omitempty"`
	Type        string `yaml:"type,omitempty"`
	Backspace   int    `yaml:"backspace,omitempty"`
	MoveCursor  *int   `yaml:"moveCursor,omitempty"`
	PressReturn bool   `yaml:"pressReturn,omitempty"`
	PressClear  bool   `yaml:"pressClear,omitempty"`

	// Host-side mutations applied through a render pass.
	SetText   *string `yaml:"setText,omitempty"`
	SetSecure *bool   `yaml:"setSecure,omitempty"`
	SetActive *bool   `yaml:"setActive,omitempty"`

	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect asserts on observable state after a step.
type Expect struct {
	Text    *string `yaml:"text,omitempty"`
	Cursor  *int    `yaml:"cursor,omitempty"`
	Focused *bool   `yaml:"focused,omitempty"`
	Secure  *bool   `yaml:"secure,omitempty"`
	Active  *bool   `yaml:"active,omitempty"`
}

// LoadScenario reads and parses a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if s.Name == "" {
		s.Name = path
	}
	return &s, nil
}

// Runner replays a scenario against the in-memory simulator.
type Runner struct {
	// Log receives one line per step transition; nil disables logging.
	Log func(format string, args ...any)
}

// Run executes the scenario and returns the first expectation failure.
func (r *Runner) Run(s *Scenario) error {
	defer platform.ResetForTest()

	sim := platform.NewSimulator()
	if s.Host.Version != "" {
		sim.Version = s.Host.Version
	}
	if s.Host.SecureDiscardsText != nil {
		sim.SecureDiscardsText = *s.Host.SecureDiscardsText
	}
	if _, err := platform.AttachHost(sim); err != nil {
		return fmt.Errorf("attach host: %w", err)
	}

	queue := &platform.TaskQueue{}
	platform.RegisterDispatch(queue.Enqueue)

	config := field.Config{
		Placeholder:          s.Field.Placeholder,
		Secure:               s.Field.Secure,
		Disabled:             s.Field.Disabled,
		ClearsOnBeginEditing: s.Field.ClearsOnBeginEditing,
	}
	if s.Field.ClearButton {
		config.ClearButtonMode = platform.ClearButtonAlways
	}

	state := field.NewState(s.Field.Text)
	control, delegate, err := field.Create(config, state, field.Environment{})
	if err != nil {
		return fmt.Errorf("create field: %w", err)
	}
	defer control.Dispose()
	queue.Flush()

	render := func() {
		field.Update(control, delegate, config, state, field.Environment{})
	}

	for i, step := range s.Steps {
		if err := r.runStep(sim, control, state, &config, render, step); err != nil {
			return fmt.Errorf("%s, step %d: %w", s.Name, i+1, err)
		}

		// Let deferred delegate work settle, then re-render the way a
		// declarative host would after a state change.
		queue.Flush()
		render()
		queue.Flush()

		native, _ := sim.State(control.ID())
		r.logf("step %-2d %-24s text=%q cursor=%d focused=%v secure=%v active=%v",
			i+1, describeStep(step), native.Text, native.SelExt,
			native.Focused, native.Secure, state.Active.Get())

		if step.Expect != nil {
			if err := checkExpect(step.Expect, native, state); err != nil {
				return fmt.Errorf("%s, step %d (%s): %w", s.Name, i+1, describeStep(step), err)
			}
		}
	}
	return nil
}

func (r *Runner) runStep(sim *platform.Simulator, control *platform.TextControl, state *field.State, config *field.Config, render func(), step Step) error {
	switch {
	case step.Tap:
		return sim.Tap(control.ID())
	case step.TapOutside:
		sim.TapOutside()
		return nil
	case step.Type != "":
		return sim.Type(step.Type)
	case step.Backspace > 0:
		for i := 0; i < step.Backspace; i++ {
			if err := sim.Backspace(); err != nil {
				return err
			}
		}
		return nil
	case step.MoveCursor != nil:
		return sim.MoveCursor(*step.MoveCursor)
	case step.PressReturn:
		return sim.PressReturn()
	case step.PressClear:
		return sim.PressClear()
	case step.SetText != nil:
		state.Text.SetText(*step.SetText)
		render()
		return nil
	case step.SetSecure != nil:
		// A config change reaches the control through the next render.
		*config = config.WithSecure(*step.SetSecure)
		render()
		return nil
	case step.SetActive != nil:
		state.Active.Set(*step.SetActive)
		render()
		return nil
	default:
		return nil
	}
}

func (r *Runner) logf(format string, args ...any) {
	if r.Log != nil {
		r.Log(format, args...)
	}
}

func checkExpect(e *Expect, native platform.ControlState, state *field.State) error {
	var problems []string
	if e.Text != nil && native.Text != *e.Text {
		problems = append(problems, fmt.Sprintf("text = %q, want %q", native.Text, *e.Text))
	}
	if e.Cursor != nil && native.SelExt != *e.Cursor {
		problems = append(problems, fmt.Sprintf("cursor = %d, want %d", native.SelExt, *e.Cursor))
	}
	if e.Focused != nil && native.Focused != *e.Focused {
		problems = append(problems, fmt.Sprintf("focused = %v, want %v", native.Focused, *e.Focused))
	}
	if e.Secure != nil && native.Secure != *e.Secure {
		problems = append(problems, fmt.Sprintf("secure = %v, want %v", native.Secure, *e.Secure))
	}
	if e.Active != nil && state.Active.Get() != *e.Active {
		problems = append(problems, fmt.Sprintf("active = %v, want %v", state.Active.Get(), *e.Active))
	}
	if len(problems) > 0 {
		return fmt.Errorf("expectation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

func describeStep(step Step) string {
	switch {
	case step.Tap:
		return "tap"
	case step.TapOutside:
		return "tapOutside"
	case step.Type != "":
		return fmt.Sprintf("type %q", step.Type)
	case step.Backspace > 0:
		return fmt.Sprintf("backspace x%d", step.Backspace)
	case step.MoveCursor != nil:
		return fmt.Sprintf("moveCursor %d", *step.MoveCursor)
	case step.PressReturn:
		return "pressReturn"
	case step.PressClear:
		return "pressClear"
	case step.SetText != nil:
		return fmt.Sprintf("setText %q", *step.SetText)
	case step.SetSecure != nil:
		return fmt.Sprintf("setSecure %v", *step.SetSecure)
	case step.SetActive != nil:
		return fmt.Sprintf("setActive %v", *step.SetActive)
	default:
		return "check"
	}
}
