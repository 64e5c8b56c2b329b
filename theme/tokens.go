package theme

import (
	"fmt"
	"strings"
)

type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// ParseMode accepts exactly "light" or "dark".
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case Light, Dark:
		return Mode(s), true
	default:
		return "", false
	}
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

func (m Mode) String() string {
	return string(m)
}

// TransitionSpeed is published alongside the colour tokens.
const TransitionSpeed = "0.3s"

// Tokens is the set of named style values for one mode.
type Tokens struct {
	Background      string
	Surface         string
	Border          string
	PrimaryText     string
	SecondaryText   string
	AccentPrimary   string
	AccentSecondary string
}

var palette = map[Mode]Tokens{
	Light: {
		Background:      "#F8F9FA",
		Surface:         "#FFFFFF",
		Border:          "#E2E8F0",
		PrimaryText:     "#000000",
		SecondaryText:   "#4A5568",
		AccentPrimary:   "#2563EB",
		AccentSecondary: "#3B82F6",
	},
	Dark: {
		Background:      "#121212",
		Surface:         "#1E1E1E",
		Border:          "#333333",
		PrimaryText:     "#FFFFFF",
		SecondaryText:   "#CCCCCC",
		AccentPrimary:   "#60A5FA",
		AccentSecondary: "#93C5FD",
	},
}

// TokensFor returns the static token set for mode. Unknown modes get the
// light set.
func TokensFor(mode Mode) Tokens {
	if t, ok := palette[mode]; ok {
		return t
	}
	return palette[Light]
}

// Variable is one CSS custom property.
type Variable struct {
	Name  string
	Value string
}

// Variables lists the tokens as CSS custom properties in a stable order.
func (t Tokens) Variables() []Variable {
	return []Variable{
		{Name: "--color-background", Value: t.Background},
		{Name: "--color-surface", Value: t.Surface},
		{Name: "--color-border", Value: t.Border},
		{Name: "--color-text-primary", Value: t.PrimaryText},
		{Name: "--color-text-secondary", Value: t.SecondaryText},
		{Name: "--color-primary", Value: t.AccentPrimary},
		{Name: "--color-accent", Value: t.AccentSecondary},
		{Name: "--transition-speed", Value: TransitionSpeed},
	}
}

// CSS renders the variables as declarations suitable for a style attribute.
func (t Tokens) CSS() string {
	var b strings.Builder
	for i, v := range t.Variables() {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s: %s;", v.Name, v.Value)
	}
	return b.String()
}
