// Package tui is the interactive timeline: browse days, click steps, edit
// activities, and watch the today header update live.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/wayfare/pkg/activity"
	"tableflip.dev/wayfare/pkg/app"
	"tableflip.dev/wayfare/pkg/datekey"
	"tableflip.dev/wayfare/pkg/glyph"
	"tableflip.dev/wayfare/pkg/reminder"
	"tableflip.dev/wayfare/pkg/store"
)

type mode int

const (
	modeTimeline mode = iota
	modeSearch
	modeForm
	modeGate
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Background(lipgloss.Color("61")).Padding(0, 1)
	dayStyle      = lipgloss.NewStyle().Bold(true).Underline(true)
	activeStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))
	doneStyle     = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	faintStyle    = lipgloss.NewStyle().Faint(true)
	statusStyle   = lipgloss.NewStyle().Faint(true).Italic(true)
	gateBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	formLabelStyle = lipgloss.NewStyle().Width(10).Faint(true)
)

// storeEventMsg arrives when the persistence watcher reports a change from
// another process.
type storeEventMsg store.Event

// Model is the bubbletea model for the timeline UI.
type Model struct {
	svc *app.Service

	day    datekey.Key
	cursor int
	mode   mode
	status string

	search textinput.Model

	form    form
	pending *app.PendingSave

	events <-chan store.Event

	width  int
	height int
}

// form edits one activity's four fields.
type form struct {
	inputs []textinput.Model
	focus  int
	id     string // empty means the form backs a brand-new record
	isNew  bool
}

const (
	fieldTime = iota
	fieldTitle
	fieldLocation
	fieldNotes
)

// New builds the model, selecting today.
func New(svc *app.Service, events <-chan store.Event) Model {
	day := datekey.Today(svc.Now())
	svc.Select(day)

	search := textinput.New()
	search.Placeholder = "search title, location, notes..."
	search.CharLimit = 100

	return Model{
		svc:    svc,
		day:    day,
		search: search,
		events: events,
	}
}

func (m Model) Init() tea.Cmd {
	return m.listen()
}

// listen waits for the next store change event.
func (m Model) listen() tea.Cmd {
	if m.events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return nil
		}
		return storeEventMsg(ev)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case storeEventMsg:
		// Another process touched the store; re-select to pick up changes.
		m.svc.Select(m.day)
		m.clampCursor()
		return m, m.listen()

	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeForm:
			return m.updateForm(msg)
		case modeGate:
			return m.updateGate(msg)
		default:
			return m.updateTimeline(msg)
		}
	}
	return m, nil
}

func (m Model) updateTimeline(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "left", "h":
		m.selectDay(datekey.For(m.day.Time().AddDate(0, 0, -1)))
	case "right", "l":
		m.selectDay(datekey.For(m.day.Time().AddDate(0, 0, 1)))
	case "t":
		m.day = datekey.Today(m.svc.Now())
		m.svc.Select(m.day)
		m.syncCursor()

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.svc.Engine.View())-1 {
			m.cursor++
		}

	case "enter", " ":
		if err := m.svc.StepClick(m.cursor); err != nil {
			m.status = err.Error()
		} else {
			m.status = ""
			m.syncCursor()
		}

	case "/":
		m.mode = modeSearch
		m.search.Focus()

	case "a":
		a := m.svc.AddActivity(m.day)
		m.form = newForm(a, true)
		m.mode = modeForm
	case "e":
		if a := m.rowAt(m.cursor); a != nil {
			m.form = newForm(a, false)
			m.mode = modeForm
		}
	case "x", "d":
		if a := m.rowAt(m.cursor); a != nil {
			if err := m.svc.DeleteActivity(m.day, a.ID); err != nil {
				m.status = err.Error()
			}
			m.clampCursor()
		}
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		if msg.String() == "esc" {
			m.search.SetValue("")
		}
		m.svc.SetQuery(m.search.Value())
		m.search.Blur()
		m.mode = modeTimeline
		m.clampCursor()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.svc.SetQuery(m.search.Value())
	m.clampCursor()
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Abandoning a brand-new draft removes it again.
		if m.form.isNew {
			_ = m.svc.DeleteActivity(m.day, m.form.id)
			m.clampCursor()
		}
		m.mode = modeTimeline
		return m, nil

	case "tab", "down":
		m.form.focusNext(1)
		return m, nil
	case "shift+tab", "up":
		m.form.focusNext(-1)
		return m, nil

	case "enter":
		patch := m.form.patch()
		saved, pending, err := m.svc.SaveActivity(m.day, m.form.id, patch)
		if err != nil {
			if pending != nil {
				m.pending = pending
				m.mode = modeGate
				return m, nil
			}
			m.status = err.Error()
			m.mode = modeTimeline
			return m, nil
		}
		m.status = ""
		m.mode = modeTimeline
		m.clampCursor()
		m.reportReminder(m.svc.ScheduleReminder(context.Background(), saved, m.day))
		return m, nil
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (m Model) updateGate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		// Mocked payment success: flip premium, land the pending save.
		if err := m.svc.GrantPremium(); err != nil {
			m.status = err.Error()
		} else if m.pending != nil {
			landed := m.svc.CompletePendingSave(m.pending)
			m.status = "saved"
			m.reportReminder(m.svc.ScheduleReminder(context.Background(), landed, m.pending.Day))
		}
		m.pending = nil
		m.mode = modeTimeline
		m.clampCursor()
	case "esc", "n", "q":
		m.pending = nil
		m.status = "discarded; subscription required to save new activities"
		m.mode = modeTimeline
		m.clampCursor()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.headerView())
	b.WriteString("\n\n")
	b.WriteString(dayStyle.Render(m.day.Display()))
	b.WriteString("\n")

	if m.mode == modeSearch || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch m.mode {
	case modeForm:
		b.WriteString(m.formView())
	case modeGate:
		b.WriteString(m.gateView())
	default:
		b.WriteString(m.timelineView())
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.helpView())
	return b.String()
}

func (m Model) headerView() string {
	s := m.svc.Summary()
	if !s.HasSchedule {
		return headerStyle.Render(fmt.Sprintf("no schedule for today · Day %d", s.DayNumber))
	}
	line := s.Title
	if s.Location != "" {
		line += " · " + s.Location
	}
	if s.Time != "" && s.Time != activity.TimeSentinel {
		line += " · " + s.Time
	}
	return headerStyle.Render(fmt.Sprintf("%s · Day %d · %d/%d", line, s.DayNumber, s.CompletedCount, s.TotalItems))
}

func (m Model) timelineView() string {
	view := m.svc.Engine.View()
	if len(view) == 0 {
		return faintStyle.Render("  no schedule")
	}

	statuses := m.svc.Engine.Statuses()
	var b strings.Builder
	for i, a := range view {
		caret := " "
		if i == m.cursor {
			caret = "→"
		}
		line := fmt.Sprintf("%s %s  %s  %s", caret, statuses[i], a.Time, a.Title)
		if a.Location != "" {
			line += faintStyle.Render("  @" + a.Location)
		}
		switch statuses[i] {
		case glyph.Done:
			line = doneStyle.Render(line)
		case glyph.Active:
			line = activeStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) formView() string {
	labels := []string{"time", "title", "location", "notes"}
	var b strings.Builder
	for i, in := range m.form.inputs {
		b.WriteString(formLabelStyle.Render(labels[i]))
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString(faintStyle.Render("\nenter save · esc cancel · tab next field"))
	return b.String()
}

func (m Model) gateView() string {
	return gateBoxStyle.Render(
		"Saving new activities requires a subscription.\n\n" +
			"y  subscribe (mock payment)\n" +
			"esc  discard this activity")
}

func (m Model) helpView() string {
	if m.mode != modeTimeline {
		return ""
	}
	return faintStyle.Render("←/→ day · ↑/↓ move · enter step · a add · e edit · x delete · / search · t today · q quit")
}

// selectDay moves to another day and places the cursor on its current row.
func (m *Model) selectDay(day datekey.Key) {
	m.day = day
	m.svc.Select(m.day)
	m.syncCursor()
}

// syncCursor follows the engine's current row after a transition.
func (m *Model) syncCursor() {
	m.cursor = m.svc.Engine.State().CurrentIndex
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.svc.Engine.View())
	if n == 0 {
		m.cursor = 0
		return
	}
	if m.cursor > n-1 {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// reportReminder surfaces the outcome of best-effort scheduling. The save
// already happened either way; only real failures are worth the status line.
func (m *Model) reportReminder(err error) {
	switch {
	case err == nil:
	case errors.Is(err, reminder.ErrNoTime), errors.Is(err, reminder.ErrTooSoon):
	default:
		m.status = "reminder not scheduled: " + err.Error()
	}
}

func (m Model) rowAt(i int) *activity.Activity {
	view := m.svc.Engine.View()
	if i < 0 || i >= len(view) {
		return nil
	}
	return view[i]
}

func newForm(a *activity.Activity, isNew bool) form {
	inputs := make([]textinput.Model, 4)

	inputs[fieldTime] = textinput.New()
	inputs[fieldTime].Placeholder = "09:30"
	inputs[fieldTime].CharLimit = 5

	inputs[fieldTitle] = textinput.New()
	inputs[fieldTitle].Placeholder = "what's happening?"
	inputs[fieldTitle].CharLimit = 120

	inputs[fieldLocation] = textinput.New()
	inputs[fieldLocation].Placeholder = "where? (optional)"
	inputs[fieldLocation].CharLimit = 120

	inputs[fieldNotes] = textinput.New()
	inputs[fieldNotes].Placeholder = "notes (optional)"
	inputs[fieldNotes].CharLimit = 500

	if a.Time != activity.TimeSentinel {
		inputs[fieldTime].SetValue(a.Time)
	}
	if a.Title != "" && a.Title != activity.UntitledPlaceholder {
		inputs[fieldTitle].SetValue(a.Title)
	}
	inputs[fieldLocation].SetValue(a.Location)
	inputs[fieldNotes].SetValue(a.Notes)

	inputs[fieldTime].Focus()

	return form{inputs: inputs, id: a.ID, isNew: isNew}
}

func (f *form) focusNext(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *form) patch() activity.Patch {
	return activity.Patch{
		Time:     activity.StrPtr(f.inputs[fieldTime].Value()),
		Title:    activity.StrPtr(f.inputs[fieldTitle].Value()),
		Location: activity.StrPtr(f.inputs[fieldLocation].Value()),
		Notes:    activity.StrPtr(f.inputs[fieldNotes].Value()),
	}
}
