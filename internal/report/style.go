package report

import (
	"github.com/fatih/color"

	"github.com/kvesta/keplerscan/internal/vulnscan"
)

type Style int

const (
	StylePlain Style = iota
	StyleStrong
	StyleWarning
	StyleDim
	StyleBold
)

var styles = map[Style]*color.Color{
	StyleStrong:  color.New(color.FgRed, color.Bold),
	StyleWarning: color.New(color.FgYellow),
	StyleDim:     color.New(color.Faint),
	StyleBold:    color.New(color.Bold),
}

// SeverityStyle maps a severity to its display style. Unknown
// severities are rendered plain.
func SeverityStyle(severity string) Style {
	switch severity {
	case vulnscan.SeverityHigh:
		return StyleStrong
	case vulnscan.SeverityMedium:
		return StyleWarning
	case vulnscan.SeverityLow:
		return StyleDim
	default:
		return StylePlain
	}
}

// Painter turns styles into terminal escape sequences. With NoColor set
// it returns text untouched, otherwise fatih/color decides from the
// terminal.
type Painter struct {
	NoColor bool
}

func (p Painter) Paint(style Style, s string) string {
	c, ok := styles[style]
	if !ok || p.NoColor {
		return s
	}

	return c.Sprint(s)
}

func (p Painter) Severity(severity string) string {
	return p.Paint(SeverityStyle(severity), severity)
}
