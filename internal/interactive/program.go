package interactive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/rail44/charfreq/internal/log"
)

// ProgramOptions contains options for Run
type ProgramOptions struct {
	Plain     bool // Print each new report instead of drawing the TUI
	ChunkSize int
	Debounce  time.Duration
}

// Run watches filePath and shows its histogram until the user quits or
// ctx is cancelled. Without a terminal on stdout it falls back to
// plain output.
func Run(ctx context.Context, filePath string, opts ProgramOptions) error {
	isTerminal := term.IsTerminal(int(os.Stdout.Fd()))
	plain := opts.Plain || !isTerminal

	var (
		m        model
		teaOpts  = []tea.ProgramOption{tea.WithContext(ctx)}
		previous = log.Logger()
	)
	if plain {
		m = newModel(ctx, filePath, opts.ChunkSize, os.Stdout)
		teaOpts = append(teaOpts, tea.WithInput(nil), tea.WithoutRenderer())
	} else {
		m = newModel(ctx, filePath, opts.ChunkSize, nil)
		teaOpts = append(teaOpts, tea.WithAltScreen())
	}

	p := tea.NewProgram(m, teaOpts...)

	// The TUI owns the terminal, so log records go into the view instead.
	if !plain {
		log.SetLogger(log.NewCallbackLogger(func(r slog.Record) {
			go p.Send(logMsg{line: log.FormatRecord(r)})
		}, log.GetCurrentLevel()))
		defer log.SetLogger(previous)
	}

	watcher, err := NewFileWatcher(filePath, opts.Debounce, func() {
		p.Send(FileChanged())
	})
	if err != nil {
		return err
	}
	defer watcher.Close()

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go watcher.Start(watchCtx)

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to run UI: %w", err)
	}
	return nil
}
