package platform

import (
	"sync"
	"sync/atomic"

	quillerrors "github.com/go-quill/quill/pkg/errors"
)

// controlChannelName is the method channel shared by all text controls.
const controlChannelName = "quill/text_controls"

// textControlRegistry tracks live native controls and routes their events.
type textControlRegistry struct {
	controls map[int64]*TextControl
	nextID   atomic.Int64
	mu       sync.RWMutex
	channel  *MethodChannel
}

var (
	registryOnce     sync.Once
	registryInstance *textControlRegistry
)

func controlRegistry() *textControlRegistry {
	registryOnce.Do(func() {
		registryInstance = &textControlRegistry{
			controls: make(map[int64]*TextControl),
			channel:  NewMethodChannel(controlChannelName),
		}
		registryInstance.channel.SetHandler(registryInstance.handleMethodCall)
	})
	return registryInstance
}

// NewTextControl constructs a native text control with the given config and
// initial editing value, and returns its Go-side handle. The control starts
// unfocused and non-secure; the bridge applies those afterwards in its fixed
// order.
func NewTextControl(config TextControlConfig, initial TextEditingValue) (*TextControl, error) {
	r := controlRegistry()
	id := r.nextID.Add(1)

	control := &TextControl{
		id:      id,
		config:  config,
		text:    initial.Text,
		selBase: initial.Selection.BaseOffset,
		selExt:  initial.Selection.ExtentOffset,
		enabled: true,
	}

	r.mu.Lock()
	r.controls[id] = control
	r.mu.Unlock()

	params := configParams(config)
	params["controlId"] = id
	params["text"] = initial.Text
	params["selectionBase"] = initial.Selection.BaseOffset
	params["selectionExtent"] = initial.Selection.ExtentOffset

	if _, err := r.channel.Invoke("create", params); err != nil {
		r.mu.Lock()
		delete(r.controls, id)
		r.mu.Unlock()
		return nil, err
	}

	return control, nil
}

// get returns a control handle by ID.
func (r *textControlRegistry) get(id int64) *TextControl {
	r.mu.RLock()
	control := r.controls[id]
	r.mu.RUnlock()
	return control
}

// dispose destroys a control on the native side and drops the handle.
func (r *textControlRegistry) dispose(id int64) {
	r.mu.Lock()
	_, ok := r.controls[id]
	if ok {
		delete(r.controls, id)
	}
	r.mu.Unlock()

	if ok {
		clearFocusedControl(id)
		r.channel.Invoke("dispose", map[string]any{"controlId": id})
	}
}

// invokeControlMethod invokes a method on one native control.
func (r *textControlRegistry) invokeControlMethod(id int64, method string, args map[string]any) (any, error) {
	size := 2
	if args != nil {
		size += len(args)
	}
	invokeArgs := make(map[string]any, size)
	for k, v := range args {
		invokeArgs[k] = v
	}
	invokeArgs["controlId"] = id
	invokeArgs["method"] = method
	return r.channel.Invoke("invokeControlMethod", invokeArgs)
}

// handleMethodCall routes native control events to the owning handle.
func (r *textControlRegistry) handleMethodCall(method string, args any) (any, error) {
	params, _ := args.(map[string]any)
	id, ok := toInt64(params["controlId"])
	if !ok {
		return nil, ErrInvalidArguments
	}

	control := r.get(id)
	if control == nil {
		quillerrors.Report(&quillerrors.Error{
			Op:      "platform.controlEvent",
			Kind:    quillerrors.KindChannel,
			Channel: controlChannelName,
			Err:     ErrControlNotFound,
		})
		return nil, ErrControlNotFound
	}

	switch method {
	case "editingBegan":
		text, _ := params["text"].(string)
		base, _ := toInt(params["selectionBase"])
		extent, _ := toInt(params["selectionExtent"])
		control.handleEditingBegan(text, base, extent)
		return nil, nil

	case "textChanged":
		text, _ := params["text"].(string)
		base, _ := toInt(params["selectionBase"])
		extent, _ := toInt(params["selectionExtent"])
		control.handleTextChanged(text, base, extent)
		return nil, nil

	case "editingEnded":
		control.handleEditingEnded()
		return nil, nil

	case "returnPressed":
		return map[string]any{"performDefault": control.handleReturnPressed()}, nil

	case "clearPressed":
		return map[string]any{"performDefault": control.handleClearPressed()}, nil

	default:
		return nil, ErrMethodNotFound
	}
}

// configParams flattens a TextControlConfig into channel arguments.
func configParams(config TextControlConfig) map[string]any {
	return map[string]any{
		"placeholder":          config.Placeholder,
		"fontFamily":           config.FontFamily,
		"fontSize":             config.FontSize,
		"fontWeight":           config.FontWeight,
		"fontItalic":           config.FontItalic,
		"textColor":            config.TextColor,
		"accentColor":          config.AccentColor,
		"placeholderColor":     config.PlaceholderColor,
		"textAlignment":        config.TextAlignment,
		"contentType":          int(config.ContentType),
		"keyboardType":         int(config.KeyboardType),
		"returnKeyType":        int(config.ReturnKeyType),
		"capitalization":       int(config.Capitalization),
		"autocorrection":       int(config.Autocorrection),
		"spellChecking":        int(config.SpellChecking),
		"smartDashes":          int(config.SmartDashes),
		"smartQuotes":          int(config.SmartQuotes),
		"smartInsertDelete":    int(config.SmartInsertDelete),
		"clearButtonMode":      int(config.ClearButtonMode),
		"clearsOnBeginEditing": config.ClearsOnBeginEditing,
		"clearsOnInsertion":    config.ClearsOnInsertion,
		"passwordRules":        config.PasswordRules,
	}
}

var (
	focusedControlID  int64
	hasFocusedControl bool
	focusMu           sync.Mutex
)

// setFocusedControl records which control currently holds keyboard focus.
func setFocusedControl(id int64) {
	focusMu.Lock()
	focusedControlID = id
	hasFocusedControl = true
	focusMu.Unlock()
}

// clearFocusedControl drops focus tracking if the given control holds it.
func clearFocusedControl(id int64) {
	focusMu.Lock()
	if focusedControlID == id {
		focusedControlID = 0
		hasFocusedControl = false
	}
	focusMu.Unlock()
}

// HasFocus returns true if any text control currently holds keyboard focus.
func HasFocus() bool {
	focusMu.Lock()
	defer focusMu.Unlock()
	return hasFocusedControl
}

// FocusedControlID returns the focused control's ID, or 0 when none.
func FocusedControlID() int64 {
	focusMu.Lock()
	defer focusMu.Unlock()
	return focusedControlID
}

// UnfocusAll dismisses the keyboard and blurs the focused control, if any.
func UnfocusAll() {
	focusMu.Lock()
	id := focusedControlID
	focusMu.Unlock()

	if id != 0 {
		if control := controlRegistry().get(id); control != nil {
			control.Blur()
		}
	}
}

// toInt converts channel numeric payloads to int.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float32:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

// toInt64 converts channel numeric payloads to int64.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float32:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}
