// Package printers renders timelines and the today summary for the
// terminal.
package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/wayfare/pkg/activity"
	"tableflip.dev/wayfare/pkg/datekey"
	"tableflip.dev/wayfare/pkg/glyph"
	"tableflip.dev/wayfare/pkg/today"
)

type PrettyPrint struct {
	ShowID bool
}

var (
	spacing = strings.Repeat(" ", len("171dff69f8b99dca  "))
)

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

// Title prints the day heading, for example "Wednesday, December 3, 2025".
func (pp *PrettyPrint) Title(day datekey.Key) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(day.Display())
}

// Timeline prints a day's rows with their status glyphs. Statuses and
// entries are parallel slices from the engine's view.
func (pp *PrettyPrint) Timeline(statuses []glyph.Status, entries []*activity.Activity) {
	if len(entries) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Print(spacing)
		}
		_, _ = f.Print(" no schedule\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "

	for i, e := range entries {
		row := rowFor(statuses[i], e)
		if pp.ShowID {
			tbl.AddRow(y.Sprint(shortID(e.ID)), row[0], row[1], row[2], row[3])
			continue
		}
		tbl.AddRow(row[0], row[1], row[2], row[3])
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

// Summary prints the today header block.
func (pp *PrettyPrint) Summary(s today.Summary) {
	t := color.New(color.Bold)
	f := color.New(color.Faint)

	if !s.HasSchedule {
		_, _ = f.Println("no schedule for today")
	} else {
		_, _ = t.Println(s.Title)
		if s.Location != "" {
			_, _ = f.Printf("  %s\n", s.Location)
		}
		if s.Time != "" && s.Time != activity.TimeSentinel {
			_, _ = f.Printf("  %s\n", s.Time)
		}
	}
	_, _ = f.Printf("Day %d · %d/%d completed\n", s.DayNumber, s.CompletedCount, s.TotalItems)
}

// shortID abbreviates ids for display. Hand-edited storage can hold ids of
// any length; the store tolerates them, so the printer must too.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func rowFor(st glyph.Status, e *activity.Activity) [4]string {
	title := e.Title
	loc := ""
	if e.Location != "" {
		loc = "@" + e.Location
	}
	switch st {
	case glyph.Done:
		return [4]string{st.String(), e.Time, glyph.Strike(title), loc}
	case glyph.Active:
		return [4]string{st.String(), e.Time, glyph.Bold(title), loc}
	default:
		return [4]string{st.String(), e.Time, title, loc}
	}
}
