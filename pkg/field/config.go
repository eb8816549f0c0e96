package field

import (
	"github.com/go-quill/quill/pkg/graphics"
	"github.com/go-quill/quill/pkg/platform"
)

// Environment carries the host-framework ambience some options resolve
// against (natural text alignment follows the layout direction, default
// colors follow the color scheme). It is passed explicitly so the field stays
// testable without a host framework.
type Environment struct {
	LayoutDirection graphics.LayoutDirection
	ColorScheme     graphics.ColorScheme
}

// Callbacks are the field's optional event hooks. A nil callback is a no-op.
type Callbacks struct {
	// OnBegin fires when the field becomes active.
	OnBegin func()
	// OnChange fires after every user edit.
	OnChange func()
	// OnEnd fires when the field stops being active.
	OnEnd func()
	// OnReturn fires when the return key is pressed.
	OnReturn func()
	// OnClear fires when the clear button is tapped.
	OnClear func()
}

// Config is the per-render snapshot of every configurable field option. It is
// a value: the With* builders return copies with one field changed, and a
// configuration is never mutated after construction. Builders taking a
// pointer treat nil as "keep the previous value", which lets callers thread
// conditional styling through without branching.
type Config struct {
	Placeholder string

	Font             *graphics.Font
	TextColor        *graphics.Color
	AccentColor      *graphics.Color
	PlaceholderColor *graphics.Color
	Alignment        graphics.TextAlignment

	ContentType        platform.ContentType
	Autocorrection     platform.Behavior
	Autocapitalization platform.TextCapitalization
	SpellChecking      platform.Behavior
	SmartDashes        platform.Behavior
	SmartQuotes        platform.Behavior
	SmartInsertDelete  platform.Behavior

	KeyboardType  platform.KeyboardType
	ReturnKeyType platform.ReturnKeyType

	Secure   bool
	Disabled bool

	ClearsOnBeginEditing bool
	ClearsOnInsertion    bool
	ClearButtonMode      platform.ClearButtonMode

	PasswordRules *platform.PasswordRules

	Callbacks Callbacks
}

// WithPlaceholder returns a copy with the placeholder text set.
func (c Config) WithPlaceholder(placeholder string) Config {
	c.Placeholder = placeholder
	return c
}

// WithFont returns a copy with the font set. Nil keeps the previous value.
func (c Config) WithFont(font *graphics.Font) Config {
	if font == nil {
		return c
	}
	c.Font = font
	return c
}

// WithTextColor returns a copy with the text color set. Nil keeps the
// previous value.
func (c Config) WithTextColor(color *graphics.Color) Config {
	if color == nil {
		return c
	}
	c.TextColor = color
	return c
}

// WithAccentColor returns a copy with the cursor/tint color set. Nil keeps
// the previous value.
func (c Config) WithAccentColor(color *graphics.Color) Config {
	if color == nil {
		return c
	}
	c.AccentColor = color
	return c
}

// WithPlaceholderColor returns a copy with the placeholder color set. Nil
// keeps the previous value.
func (c Config) WithPlaceholderColor(color *graphics.Color) Config {
	if color == nil {
		return c
	}
	c.PlaceholderColor = color
	return c
}

// WithAlignment returns a copy with the text alignment set.
func (c Config) WithAlignment(alignment graphics.TextAlignment) Config {
	c.Alignment = alignment
	return c
}

// WithContentType returns a copy with the autofill content hint set.
func (c Config) WithContentType(contentType platform.ContentType) Config {
	c.ContentType = contentType
	return c
}

// WithAutocorrection returns a copy with the autocorrection behavior set.
func (c Config) WithAutocorrection(behavior platform.Behavior) Config {
	c.Autocorrection = behavior
	return c
}

// WithAutocapitalization returns a copy with the capitalization mode set.
func (c Config) WithAutocapitalization(mode platform.TextCapitalization) Config {
	c.Autocapitalization = mode
	return c
}

// WithSpellChecking returns a copy with the spell-checking behavior set.
func (c Config) WithSpellChecking(behavior platform.Behavior) Config {
	c.SpellChecking = behavior
	return c
}

// WithSmartDashes returns a copy with the smart-dashes behavior set.
func (c Config) WithSmartDashes(behavior platform.Behavior) Config {
	c.SmartDashes = behavior
	return c
}

// WithSmartQuotes returns a copy with the smart-quotes behavior set.
func (c Config) WithSmartQuotes(behavior platform.Behavior) Config {
	c.SmartQuotes = behavior
	return c
}

// WithSmartInsertDelete returns a copy with the smart-insert-delete behavior set.
func (c Config) WithSmartInsertDelete(behavior platform.Behavior) Config {
	c.SmartInsertDelete = behavior
	return c
}

// WithKeyboardType returns a copy with the keyboard variant set.
func (c Config) WithKeyboardType(keyboard platform.KeyboardType) Config {
	c.KeyboardType = keyboard
	return c
}

// WithReturnKeyType returns a copy with the return-key variant set.
func (c Config) WithReturnKeyType(returnKey platform.ReturnKeyType) Config {
	c.ReturnKeyType = returnKey
	return c
}

// WithSecure returns a copy with masked entry switched on or off.
func (c Config) WithSecure(secure bool) Config {
	c.Secure = secure
	return c
}

// WithDisabled returns a copy with interaction disabled or enabled.
func (c Config) WithDisabled(disabled bool) Config {
	c.Disabled = disabled
	return c
}

// WithClearsOnBeginEditing returns a copy with the clear-on-begin flag set.
func (c Config) WithClearsOnBeginEditing(clears bool) Config {
	c.ClearsOnBeginEditing = clears
	return c
}

// WithClearsOnInsertion returns a copy with the clear-on-insertion flag set.
func (c Config) WithClearsOnInsertion(clears bool) Config {
	c.ClearsOnInsertion = clears
	return c
}

// WithClearButtonMode returns a copy with the clear-button policy set.
func (c Config) WithClearButtonMode(mode platform.ClearButtonMode) Config {
	c.ClearButtonMode = mode
	return c
}

// WithPasswordRules returns a copy with password composition rules set. Nil
// keeps the previous value. Setting rules also forces secure entry on, since
// rules only make sense for a credential field; this is the one builder with
// a second effect.
func (c Config) WithPasswordRules(rules *platform.PasswordRules) Config {
	if rules == nil {
		return c
	}
	c.PasswordRules = rules
	c.Secure = true
	return c
}

// WithCallbacks returns a copy with the full callback set replaced.
func (c Config) WithCallbacks(callbacks Callbacks) Config {
	c.Callbacks = callbacks
	return c
}

// resolve flattens the configuration into the wire snapshot handed to the
// native control, filling defaults from the environment. Secure entry and
// the disabled flag are applied separately by the bridge, in order.
func (c Config) resolve(env Environment) platform.TextControlConfig {
	wire := platform.TextControlConfig{
		Placeholder:          c.Placeholder,
		ContentType:          c.ContentType,
		KeyboardType:         c.KeyboardType,
		ReturnKeyType:        c.ReturnKeyType,
		Capitalization:       c.Autocapitalization,
		Autocorrection:       c.Autocorrection,
		SpellChecking:        c.SpellChecking,
		SmartDashes:          c.SmartDashes,
		SmartQuotes:          c.SmartQuotes,
		SmartInsertDelete:    c.SmartInsertDelete,
		ClearButtonMode:      c.ClearButtonMode,
		ClearsOnBeginEditing: c.ClearsOnBeginEditing,
		ClearsOnInsertion:    c.ClearsOnInsertion,
	}

	if c.Font != nil {
		wire.FontFamily = c.Font.Family
		wire.FontSize = c.Font.Size
		wire.FontWeight = int(c.Font.Weight)
		wire.FontItalic = c.Font.Italic
	}

	wire.TextColor = uint32(resolveColor(c.TextColor, env, graphics.ColorBlack, graphics.ColorWhite))
	wire.PlaceholderColor = uint32(resolveColor(c.PlaceholderColor, env, graphics.RGB(0x99, 0x99, 0x99), graphics.RGB(0x77, 0x77, 0x77)))
	if c.AccentColor != nil {
		wire.AccentColor = uint32(*c.AccentColor)
	}

	switch c.Alignment.Resolve(env.LayoutDirection) {
	case graphics.TextAlignmentCenter:
		wire.TextAlignment = 1
	case graphics.TextAlignmentTrailing:
		wire.TextAlignment = 2
	default:
		wire.TextAlignment = 0
	}

	if c.PasswordRules != nil {
		wire.PasswordRules = c.PasswordRules.Descriptor
	}

	return wire
}

// resolveColor picks the explicit color if present, otherwise the scheme's
// default.
func resolveColor(c *graphics.Color, env Environment, light, dark graphics.Color) graphics.Color {
	if c != nil {
		return *c
	}
	if env.ColorScheme == graphics.ColorSchemeDark {
		return dark
	}
	return light
}
