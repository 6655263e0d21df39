// Package glyph maps timeline step statuses to the symbols used by the
// printers and the TUI.
package glyph

import "fmt"

type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
}

const (
	escape        = "\x1b"
	resetCode     = 0
	boldCode      = 1
	underlineCode = 4
	strikeCode    = 9
)

func Strike(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, strikeCode, in, escape, resetCode)
}

func Bold(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, boldCode, in, escape, resetCode)
}

func Underline(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, underlineCode, in, escape, resetCode)
}

// Status is the derived visual state of one timeline step.
type Status int

const (
	Pending Status = iota
	Active
	Done
)

func DefaultGlyphs() []Glyph {
	g := make([]Glyph, 0, 3)

	g = append(g, Glyph{
		Key:     ".",
		Symbol:  "○",
		Meaning: "step pending",
	}, Glyph{
		Key:     ">",
		Symbol:  "●",
		Meaning: "step active",
	}, Glyph{
		Key:     "x",
		Symbol:  "✔",
		Meaning: "step completed",
	})

	return g
}

func (g Glyph) String() string {
	return g.Symbol
}

func (s Status) Glyph() Glyph {
	return DefaultGlyphs()[s]
}

func (s Status) String() string {
	return s.Glyph().String()
}
