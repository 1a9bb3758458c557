// Package tui hosts the booking form in a terminal. The form state lives in
// package flow; this package maps keys to flow events, runs the resulting
// commands through a flow.Controller and draws flow.Render's output.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/arunpandian9159/Booking-agent/internal/display"
	"github.com/arunpandian9159/Booking-agent/internal/flow"
)

// Focus identifies the field receiving keystrokes.
type Focus int

const (
	FocusDestination Focus = iota
	FocusPackage
	FocusName
	FocusDate
	FocusSubmit
)

// eventMsg carries the outcome of a flow command back into the program.
type eventMsg struct {
	event flow.Event
}

// Model is the bubbletea model of the booking form.
type Model struct {
	ctx      context.Context
	ctrl     *flow.Controller
	renderer *display.Renderer
	keys     KeyMap

	state   flow.State
	pending []flow.Command

	focus      Focus
	destCursor int
	pkgCursor  int

	name    textinput.Model
	date    textinput.Model
	spinner spinner.Model

	quitting bool
}

// New creates the form. Commands run through ctrl with ctx.
func New(ctx context.Context, ctrl *flow.Controller, renderer *display.Renderer) Model {
	s, cmds := flow.Init()

	name := textinput.New()
	name.Prompt = ""
	name.Placeholder = "Your name"
	name.CharLimit = 80

	date := textinput.New()
	date.Prompt = ""
	date.Placeholder = "YYYY-MM-DD"
	date.CharLimit = len("2006-01-02")

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = renderer.Progress

	return Model{
		ctx:      ctx,
		ctrl:     ctrl,
		renderer: renderer,
		keys:     DefaultKeyMap,
		state:    s,
		pending:  cmds,
		name:     name,
		date:     date,
		spinner:  sp,
	}
}

// State returns the current form state.
func (m Model) State() flow.State { return m.state }

// Focused returns the field receiving keystrokes.
func (m Model) Focused() Focus { return m.focus }

// Init loads the destinations.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	for _, c := range m.pending {
		cmds = append(cmds, m.execute(c))
	}
	return tea.Batch(cmds...)
}

func (m Model) execute(c flow.Command) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return eventMsg{event: ctrl.Execute(ctx, c)}
	}
}

// apply feeds ev to the flow and schedules the commands it returns.
func (m Model) apply(ev flow.Event) (Model, tea.Cmd) {
	var cmds []flow.Command
	m.state, cmds = flow.Update(m.state, ev)

	if m.name.Value() != m.state.Name {
		m.name.SetValue(m.state.Name)
	}
	if m.date.Value() != m.state.Date {
		m.date.SetValue(m.state.Date)
	}
	focusCmd := m.setFocus(m.clampFocus(m.focus))

	out := []tea.Cmd{focusCmd}
	for _, c := range cmds {
		out = append(out, m.execute(c))
	}
	return m, tea.Batch(out...)
}

// Update handles key presses, flow replies, resizes and spinner ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		if msg.event == nil {
			return m, nil
		}
		return m.apply(msg.event)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.renderer.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit), key.Matches(msg, m.keys.Cancel):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		cmd := m.setFocus(m.step(1))
		return m, cmd
	case key.Matches(msg, m.keys.Prev):
		cmd := m.setFocus(m.step(-1))
		return m, cmd
	}

	switch m.focus {
	case FocusName, FocusDate:
		return m.handleInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Select):
		return m.choose()
	}
	return m, nil
}

func (m Model) handleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Select) {
		cmd := m.setFocus(m.step(1))
		return m, cmd
	}

	var cmd tea.Cmd
	if m.focus == FocusName {
		m.name, cmd = m.name.Update(msg)
		if m.name.Value() == m.state.Name {
			return m, cmd
		}
		m, evCmd := m.apply(flow.NameChanged{Name: m.name.Value()})
		return m, tea.Batch(cmd, evCmd)
	}

	m.date, cmd = m.date.Update(msg)
	if m.date.Value() == m.state.Date {
		return m, cmd
	}
	m, evCmd := m.apply(flow.DateChanged{Date: m.date.Value()})
	return m, tea.Batch(cmd, evCmd)
}

// choose acts on the focused selector option or the submit button.
func (m Model) choose() (tea.Model, tea.Cmd) {
	v := flow.Render(m.state)
	switch m.focus {
	case FocusDestination:
		opt, ok := pick(v.Destination.Options, m.destCursor)
		if !ok {
			return m, nil
		}
		if opt.Value != m.state.Destination {
			m.pkgCursor = 0
		}
		return m.apply(flow.DestinationSelected{Destination: opt.Value})

	case FocusPackage:
		opt, ok := pick(v.Package.Options, m.pkgCursor)
		if !ok {
			return m, nil
		}
		m, cmd := m.apply(flow.PackageSelected{ID: opt.Value})
		if m.state.Package != "" {
			focusCmd := m.setFocus(FocusName)
			return m, tea.Batch(cmd, focusCmd)
		}
		return m, cmd

	case FocusSubmit:
		if !v.SubmitEnabled {
			return m, nil
		}
		return m.apply(flow.Submitted{})
	}
	return m, nil
}

func pick(opts []flow.Option, i int) (flow.Option, bool) {
	if i < 0 || i >= len(opts) || opts[i].Disabled {
		return flow.Option{}, false
	}
	return opts[i], true
}

func (m *Model) moveCursor(delta int) {
	v := flow.Render(m.state)
	switch m.focus {
	case FocusDestination:
		m.destCursor = clamp(m.destCursor+delta, len(v.Destination.Options))
	case FocusPackage:
		m.pkgCursor = clamp(m.pkgCursor+delta, len(v.Package.Options))
	}
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// visible reports whether f can take focus in the current state.
func (m Model) visible(f Focus) bool {
	v := flow.Render(m.state)
	switch f {
	case FocusDestination:
		return true
	case FocusPackage:
		return v.Package.Visible
	default:
		return v.DetailsVisible
	}
}

// step returns the next visible field in direction dir, wrapping around.
func (m Model) step(dir int) Focus {
	const n = int(FocusSubmit) + 1
	f := int(m.focus)
	for range n {
		f = (f + dir + n) % n
		if m.visible(Focus(f)) {
			return Focus(f)
		}
	}
	return m.focus
}

// clampFocus moves focus up to the nearest visible field.
func (m Model) clampFocus(f Focus) Focus {
	for f > FocusDestination && !m.visible(f) {
		f--
	}
	return f
}

func (m *Model) setFocus(f Focus) tea.Cmd {
	m.focus = f
	m.name.Blur()
	m.date.Blur()
	switch f {
	case FocusName:
		return m.name.Focus()
	case FocusDate:
		return m.date.Focus()
	}
	return nil
}

// View draws the form.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	r := m.renderer
	v := flow.Render(m.state)

	var b strings.Builder
	b.WriteString(r.Title.Render("Book a trip"))
	b.WriteString("\n\n")

	b.WriteString(m.label("Destination", FocusDestination))
	b.WriteString("\n")
	if v.Destination.Loading {
		b.WriteString("  " + m.spinner.View() + " " + r.ProgressText(flow.LoadingDestinationLabel) + "\n")
	} else {
		m.writeOptions(&b, v.Destination, m.destCursor, m.focus == FocusDestination)
	}

	if v.Package.Loading {
		b.WriteString("\n" + m.label("Package", FocusPackage) + "\n")
		b.WriteString("  " + m.spinner.View() + " " + r.ProgressText(flow.LoadingPackagesLabel) + "\n")
	} else if v.Package.Visible {
		b.WriteString("\n" + m.label("Package", FocusPackage) + "\n")
		m.writeOptions(&b, v.Package, m.pkgCursor, m.focus == FocusPackage)
	}
	if v.PackageInvalid {
		b.WriteString("  " + r.ErrorText("choose a package") + "\n")
	}

	if v.DetailsVisible {
		b.WriteString("\n" + m.label("Name", FocusName) + "\n")
		b.WriteString("  " + m.name.View() + "\n")
		if v.Name.Invalid {
			b.WriteString("  " + r.ErrorText("name is required") + "\n")
		}

		b.WriteString(m.label("Date", FocusDate) + r.Muted.Render(" (on or after "+v.MinDate+")") + "\n")
		b.WriteString("  " + m.date.View() + "\n")
		if v.Date.Invalid {
			b.WriteString("  " + r.ErrorText("enter a date on or after "+v.MinDate) + "\n")
		}

		button := "[ " + v.SubmitLabel + " ]"
		switch {
		case !v.SubmitEnabled:
			button = r.Muted.Render(button)
		case m.focus == FocusSubmit:
			button = r.Title.Render("> " + button)
		}
		b.WriteString("\n" + button + "\n")
	}

	switch v.Result.Status {
	case flow.ResultInProgress:
		b.WriteString("\n" + m.spinner.View() + " " + r.ProgressText(flow.BookingInProgressLabel) + "\n")
	case flow.ResultReady:
		b.WriteString("\n" + r.Tree(v.Result.Tree) + "\n")
	case flow.ResultFailed:
		b.WriteString("\n" + r.ErrorText(v.Result.Error) + "\n")
	}

	b.WriteString("\n" + r.Muted.Render(m.keys.helpLine()) + "\n")
	return b.String()
}

func (m Model) label(text string, f Focus) string {
	if m.focus == f {
		return m.renderer.Title.Render("> " + text)
	}
	return m.renderer.Key.Render("  " + text)
}

func (m Model) writeOptions(b *strings.Builder, sel flow.Selector, cursor int, focused bool) {
	r := m.renderer
	for i, opt := range sel.Options {
		marker := "  "
		if focused && i == cursor {
			marker = "> "
		}
		label := opt.Label
		if opt.Value != "" && opt.Value == sel.Selected {
			label += " *"
		}
		if opt.Disabled || opt.Value == "" {
			label = r.Muted.Render(label)
		}
		b.WriteString("  " + marker + label + "\n")
	}
}

// Run shows the form until the user quits.
func Run(ctx context.Context, ctrl *flow.Controller, renderer *display.Renderer, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(New(ctx, ctrl, renderer), opts...).Run()
	return err
}
