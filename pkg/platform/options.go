package platform

// KeyboardType selects the keyboard variant the native control shows.
type KeyboardType int

const (
	KeyboardTypeDefault KeyboardType = iota
	KeyboardTypeASCII
	KeyboardTypeNumberPad
	KeyboardTypePhonePad
	KeyboardTypeNumbersAndPunctuation
	KeyboardTypeEmailAddress
	KeyboardTypeURL
	KeyboardTypeDecimalPad
	KeyboardTypeWebSearch
)

// ReturnKeyType selects the label/behavior of the keyboard's return key.
type ReturnKeyType int

const (
	ReturnKeyDefault ReturnKeyType = iota
	ReturnKeyGo
	ReturnKeyNext
	ReturnKeySearch
	ReturnKeySend
	ReturnKeyDone
	ReturnKeyContinue
)

// TextCapitalization specifies automatic capitalization behavior.
type TextCapitalization int

const (
	TextCapitalizationDefault TextCapitalization = iota
	TextCapitalizationNone
	TextCapitalizationCharacters
	TextCapitalizationWords
	TextCapitalizationSentences
)

// Behavior is a tri-state toggle for native text-processing features
// (autocorrection, spell checking, smart dashes/quotes/insert-delete).
// The zero value defers to the platform default.
type Behavior int

const (
	BehaviorDefault Behavior = iota
	BehaviorEnabled
	BehaviorDisabled
)

// ContentType hints what the field holds so the platform can offer
// autofill (usernames, passwords, one-time codes, ...).
type ContentType int

const (
	ContentTypeNone ContentType = iota
	ContentTypeUsername
	ContentTypePassword
	ContentTypeNewPassword
	ContentTypeOneTimeCode
	ContentTypeEmailAddress
	ContentTypeTelephoneNumber
	ContentTypeName
	ContentTypeStreetAddress
	ContentTypeURL
)

// ClearButtonMode controls when the native clear button is visible.
type ClearButtonMode int

const (
	ClearButtonNever ClearButtonMode = iota
	ClearButtonAlways
)

// PasswordRules describes the password composition requirements the platform
// password manager should honor when generating credentials for the field.
type PasswordRules struct {
	// Descriptor is the platform rule string, e.g.
	// "minlength: 8; required: lower; required: upper; required: digit".
	Descriptor string
}
