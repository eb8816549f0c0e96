package graphics

// FontWeight is the numeric weight of a font (400 = regular, 700 = bold).
type FontWeight int

const (
	FontWeightLight    FontWeight = 300
	FontWeightRegular  FontWeight = 400
	FontWeightMedium   FontWeight = 500
	FontWeightSemiBold FontWeight = 600
	FontWeightBold     FontWeight = 700
)

// Font describes the typeface the native control should render with.
// The zero value means "the platform's default text font".
type Font struct {
	// Family is the font family name. Empty means the platform default.
	Family string
	// Size in logical points. Zero means the platform default size.
	Size float64
	// Weight of the font. Zero is treated as FontWeightRegular.
	Weight FontWeight
	// Italic selects the italic variant.
	Italic bool
}

// IsZero reports whether the font is entirely unset.
func (f Font) IsZero() bool {
	return f == Font{}
}

// TextAlignment controls horizontal alignment of the displayed text.
type TextAlignment int

const (
	// TextAlignmentNatural follows the layout direction of the environment.
	TextAlignmentNatural TextAlignment = iota
	TextAlignmentLeading
	TextAlignmentCenter
	TextAlignmentTrailing
)

// LayoutDirection is the environment's reading direction.
type LayoutDirection int

const (
	LayoutDirectionLTR LayoutDirection = iota
	LayoutDirectionRTL
)

// ColorScheme is the environment's light/dark appearance.
type ColorScheme int

const (
	ColorSchemeLight ColorScheme = iota
	ColorSchemeDark
)

// Resolve maps a natural alignment onto a concrete one for the given layout
// direction. Concrete alignments pass through unchanged.
func (a TextAlignment) Resolve(dir LayoutDirection) TextAlignment {
	if a != TextAlignmentNatural {
		return a
	}
	if dir == LayoutDirectionRTL {
		return TextAlignmentTrailing
	}
	return TextAlignmentLeading
}
