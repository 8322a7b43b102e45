package panel

import "golang.org/x/text/language"

// ClampMode selects how the performance fill fraction is bounded.
type ClampMode string

const (
	// ClampLiteral bounds the fill at 100 only. Response times above the
	// ceiling produce a negative fill, which is passed through.
	ClampLiteral ClampMode = "literal"
	// ClampSymmetric bounds the fill to [0, 100].
	ClampSymmetric ClampMode = "symmetric"
)

const (
	// DefaultWindowDays is the fixed window used for the resolved-per-day
	// statistic. There is no calendar arithmetic behind it.
	DefaultWindowDays = 30

	// DefaultLanguage is the display language of labels and tier names.
	DefaultLanguage = "ru"

	// DefaultNumberLocale controls thousands grouping of counts.
	DefaultNumberLocale = "en-US"
)

// Options tunes a panel build. The zero value is usable and behaves like
// DefaultOptions.
type Options struct {
	Language     string
	NumberLocale string
	Clamp        ClampMode
	WindowDays   int
}

// DefaultOptions returns the options that reproduce the stock dashboard.
func DefaultOptions() Options {
	return Options{
		Language:     DefaultLanguage,
		NumberLocale: DefaultNumberLocale,
		Clamp:        ClampLiteral,
		WindowDays:   DefaultWindowDays,
	}
}

// normalized fills unset or unknown fields with defaults.
func (o Options) normalized() Options {
	if _, ok := languages[o.Language]; !ok {
		o.Language = DefaultLanguage
	}
	if o.NumberLocale == "" {
		o.NumberLocale = DefaultNumberLocale
	}
	if o.Clamp != ClampSymmetric {
		o.Clamp = ClampLiteral
	}
	if o.WindowDays <= 0 {
		o.WindowDays = DefaultWindowDays
	}
	return o
}

// numberTag parses the configured number locale, falling back to en-US.
func (o Options) numberTag() language.Tag {
	tag, err := language.Parse(o.NumberLocale)
	if err != nil {
		return language.AmericanEnglish
	}
	return tag
}

// ParseClampMode maps a config string to a ClampMode. ok is false for
// anything but "literal" or "symmetric".
func ParseClampMode(s string) (ClampMode, bool) {
	switch ClampMode(s) {
	case ClampLiteral, ClampSymmetric:
		return ClampMode(s), true
	default:
		return ClampLiteral, false
	}
}

// Languages returns the supported display language codes.
func Languages() []string {
	return []string{"ru", "en"}
}
