// Package report renders histogram entries for a terminal.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/rail44/charfreq/internal/config"
	"github.com/rail44/charfreq/internal/histogram"
)

// Options controls rendering. A nil Renderer uses lipgloss' default.
type Options struct {
	Color    bool
	Renderer *lipgloss.Renderer
}

// Render formats entries like histogram.Format. With Color set the
// character is bold and the bar is coloured by its share.
func Render(entries []histogram.Entry, opts Options) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		if opts.Color {
			lines[i] = renderColored(e, opts.Renderer)
		} else {
			lines[i] = histogram.FormatEntry(e)
		}
	}
	return strings.Join(lines, "\n")
}

func renderColored(e histogram.Entry, r *lipgloss.Renderer) string {
	newStyle := lipgloss.NewStyle
	if r != nil {
		newStyle = r.NewStyle
	}

	charStyle := newStyle().Bold(true)
	barStyle := newStyle().Foreground(barColor(e.Percent))
	pctStyle := newStyle().Foreground(lipgloss.Color("241"))

	return fmt.Sprintf("%s: %s %s",
		charStyle.Render(string(e.Char)),
		barStyle.Render(histogram.Bar(e.Percent)),
		pctStyle.Render(histogram.FormatPercent(e.Percent)+"%"))
}

func barColor(percent float64) lipgloss.Color {
	switch {
	case percent >= 10:
		return lipgloss.Color("9")
	case percent >= 5:
		return lipgloss.Color("11")
	default:
		return lipgloss.Color("12")
	}
}

// ShouldColor resolves a colour mode against the writer the report goes
// to. In auto mode only a terminal *os.File qualifies; NO_COLOR disables it.
func ShouldColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	}
}

// NewRenderer returns a renderer for w. In always mode the colour
// profile is forced so pipes still receive escape codes.
func NewRenderer(w io.Writer, mode string) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if mode == config.ColorAlways {
		r.SetColorProfile(termenv.ANSI256)
	}
	return r
}
