package panel

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// formatter renders card values for one locale and label set.
type formatter struct {
	p    *message.Printer
	unit string
}

func newFormatter(tag language.Tag, labels Labels) formatter {
	return formatter{p: message.NewPrinter(tag), unit: labels.MinutesUnit}
}

// grouped formats a count with the locale's thousands separator.
func (f formatter) grouped(n int64) string {
	return f.p.Sprintf("%d", n)
}

// FormatCount groups n for the given number locale the same way the
// cards do. Unknown locales fall back to en-US.
func FormatCount(n int64, locale string) string {
	tag := Options{NumberLocale: locale}.numberTag()
	return message.NewPrinter(tag).Sprintf("%d", n)
}

func (f formatter) raw(n int64) string {
	return strconv.FormatInt(n, 10)
}

// minutes passes the value through unrounded and appends the unit.
func (f formatter) minutes(v float64) string {
	return shortFloat(v) + " " + f.unit
}

func (f formatter) percent(v float64) string {
	return shortFloat(v) + "%"
}

// shortFloat prints the shortest decimal that round-trips v, so 7 stays
// "7" and 7.25 stays "7.25".
func shortFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
