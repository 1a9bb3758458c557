package display

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/arunpandian9159/Booking-agent/internal/offer"
)

// Renderer draws display trees and status indicators for a terminal.
type Renderer struct {
	width  int
	styled bool

	Title    lipgloss.Style
	Key      lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Progress lipgloss.Style
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Border   lipgloss.Style
}

// NewRenderer creates a renderer for w. Styling is enabled only when w is a
// terminal and plain is false.
func NewRenderer(w io.Writer, plain bool) *Renderer {
	width, isTTY := terminalInfo(w)
	styled := isTTY && !plain

	lr := lipgloss.NewRenderer(w)
	if styled {
		lr.SetColorProfile(termenv.ANSI256)
	} else {
		lr.SetColorProfile(termenv.Ascii)
	}

	r := &Renderer{width: width, styled: styled}
	r.Title = lr.NewStyle()
	r.Key = lr.NewStyle()
	r.Muted = lr.NewStyle()
	r.Error = lr.NewStyle()
	r.Progress = lr.NewStyle()
	r.Header = lr.NewStyle().Padding(0, 1)
	r.Cell = lr.NewStyle().Padding(0, 1)
	r.Border = lr.NewStyle()

	if styled {
		r.Title = r.Title.Bold(true).Foreground(lipgloss.Color("39"))
		r.Key = r.Key.Foreground(lipgloss.Color("245"))
		r.Muted = r.Muted.Foreground(lipgloss.Color("241"))
		r.Error = r.Error.Bold(true).Foreground(lipgloss.Color("196"))
		r.Progress = r.Progress.Italic(true).Foreground(lipgloss.Color("214"))
		r.Header = r.Header.Bold(true)
		r.Border = r.Border.Foreground(lipgloss.Color("240"))
	}
	return r
}

// terminalInfo returns the terminal width and whether w is a TTY. The width is
// zero, meaning unlimited, when w is not a terminal.
func terminalInfo(w io.Writer) (width int, isTTY bool) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0, false
	}
	width = 80
	if cols, _, err := term.GetSize(fd); err == nil && cols >= 40 {
		width = cols
	}
	return width, true
}

// Width returns the column limit tables are fitted to. Zero means unlimited.
func (r *Renderer) Width() int {
	return r.width
}

// SetWidth changes the column limit, for example after the terminal is resized.
func (r *Renderer) SetWidth(width int) {
	r.width = max(width, 0)
}

// Styled reports whether ANSI styling is emitted.
func (r *Renderer) Styled() bool {
	return r.styled
}

// Tree renders every node of tree, separated by blank lines.
func (r *Renderer) Tree(tree offer.DisplayTree) string {
	parts := make([]string, 0, len(tree))
	for _, n := range tree {
		switch n.Kind {
		case offer.NodeTitledList:
			parts = append(parts, r.titledList(n))
		case offer.NodeTable:
			if n.Table != nil {
				parts = append(parts, r.table(*n.Table))
			}
		case offer.NodeText:
			parts = append(parts, n.Text)
		}
	}
	return strings.Join(parts, "\n\n")
}

func (r *Renderer) titledList(n offer.Node) string {
	var b strings.Builder
	b.WriteString(r.Title.Render(n.Title))
	for _, it := range n.Items {
		b.WriteString("\n  ")
		b.WriteString(r.Key.Render(it.Key + ":"))
		b.WriteString(" ")
		b.WriteString(it.Value)
	}
	return b.String()
}

func (r *Renderer) table(nt offer.NormalizedTable) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.Header
			}
			return r.Cell
		}).
		Headers(nt.Headers...)
	for _, row := range nt.Rows {
		t.Row(row...)
	}
	out := t.String()
	if r.width > 0 && lipgloss.Width(out) > r.width {
		out = t.Width(r.width).String()
	}
	return out
}

// ErrorText renders a backend or transport error message.
func (r *Renderer) ErrorText(msg string) string {
	return r.Error.Render("Error: " + msg)
}

// ProgressText renders the transient in-progress indicator.
func (r *Renderer) ProgressText(label string) string {
	return r.Progress.Render(label)
}
