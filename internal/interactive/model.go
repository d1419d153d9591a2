package interactive

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rail44/charfreq/internal/app"
	"github.com/rail44/charfreq/internal/log"
	"github.com/rail44/charfreq/internal/report"
)

type status int

const (
	statusWatching status = iota
	statusCounting
	statusReady
	statusError
)

// logLines is how many recent log lines the view keeps
const logLines = 3

type model struct {
	ctx       context.Context
	filePath  string
	chunkSize int
	status    status
	snapshot  *app.Snapshot
	updated   time.Time
	err       error
	logs      []string

	// plain receives each new report when the TUI renderer is off
	plain io.Writer

	width  int
	height int
}

type fileChangedMsg struct{}

type countCompleteMsg struct {
	snapshot *app.Snapshot
	err      error
}

type logMsg struct {
	line string
}

// FileChanged is sent whenever the watched file should be counted again
func FileChanged() tea.Msg {
	return fileChangedMsg{}
}

func newModel(ctx context.Context, filePath string, chunkSize int, plain io.Writer) model {
	return model{
		ctx:       ctx,
		filePath:  filePath,
		chunkSize: chunkSize,
		status:    statusWatching,
		plain:     plain,
	}
}

func (m model) Init() tea.Cmd {
	return FileChanged
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case fileChangedMsg:
		m.status = statusCounting
		return m, m.recount()

	case countCompleteMsg:
		if msg.err != nil {
			m.status = statusError
			m.err = msg.err
			log.Error("count failed", log.ErrorAttr(msg.err))
			return m, nil
		}

		m.err = nil
		unchanged := m.snapshot != nil && m.snapshot.Checksum == msg.snapshot.Checksum
		m.status = statusReady
		if unchanged {
			log.Debug("content unchanged, keeping report")
			return m, nil
		}
		m.snapshot = msg.snapshot
		m.updated = time.Now()
		return m, m.printPlain()

	case logMsg:
		m.logs = append(m.logs, msg.line)
		if len(m.logs) > logLines {
			m.logs = m.logs[len(m.logs)-logLines:]
		}
	}

	return m, nil
}

func (m model) View() string {
	var s strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		MarginBottom(1)
	s.WriteString(headerStyle.Render("charfreq"))
	s.WriteString("\n\n")

	fileStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	s.WriteString(fileStyle.Render(fmt.Sprintf("Watching: %s", m.filePath)))
	s.WriteString("\n")
	if m.snapshot != nil {
		s.WriteString(fileStyle.Render(fmt.Sprintf("Characters: %d (%d distinct, %d bytes)",
			m.snapshot.Histogram.Total(), m.snapshot.Histogram.Len(), m.snapshot.Bytes)))
		s.WriteString("\n")
	}
	s.WriteString("\n")

	statusStyle := lipgloss.NewStyle().Bold(true)
	switch m.status {
	case statusWatching:
		s.WriteString(statusStyle.Foreground(lipgloss.Color("10")).Render("Watching for changes..."))
	case statusCounting:
		s.WriteString(statusStyle.Foreground(lipgloss.Color("11")).Render("Counting..."))
	case statusReady:
		s.WriteString(statusStyle.Foreground(lipgloss.Color("10")).Render("Up to date"))
		if !m.updated.IsZero() {
			s.WriteString(fmt.Sprintf(" (updated %s)", m.updated.Format("15:04:05")))
		}
	case statusError:
		s.WriteString(statusStyle.Foreground(lipgloss.Color("9")).Render("Error: "))
		if m.err != nil {
			s.WriteString(m.err.Error())
		}
	}
	s.WriteString("\n\n")

	if m.snapshot != nil {
		out := report.Render(m.snapshot.Histogram.Entries(), report.Options{Color: true})
		if out == "" {
			out = fileStyle.Render("(no characters)")
		}
		s.WriteString(m.truncate(out))
		s.WriteString("\n\n")
	}

	if len(m.logs) > 0 {
		s.WriteString(fileStyle.Render(strings.Join(m.logs, "\n")))
		s.WriteString("\n\n")
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	s.WriteString(helpStyle.Render("Press 'q' to quit"))

	return s.String()
}

// truncate keeps the report within the terminal height, leaving room for
// the header and footer.
func (m model) truncate(out string) string {
	if m.height <= 0 {
		return out
	}
	room := m.height - 12 - logLines
	lines := strings.Split(out, "\n")
	if room < 1 || len(lines) <= room {
		return out
	}
	return strings.Join(lines[:room], "\n") + fmt.Sprintf("\n... %d more", len(lines)-room)
}

func (m model) recount() tea.Cmd {
	return func() tea.Msg {
		snap, err := app.CountFile(m.ctx, m.filePath, m.chunkSize)
		return countCompleteMsg{snapshot: snap, err: err}
	}
}

func (m model) printPlain() tea.Cmd {
	if m.plain == nil {
		return nil
	}
	out := m.snapshot.Histogram.Format()
	w := m.plain
	return func() tea.Msg {
		fmt.Fprintf(w, "==> %s <==\n", m.filePath)
		if out != "" {
			fmt.Fprintln(w, out)
		}
		return nil
	}
}
