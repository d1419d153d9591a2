package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/schollz/progressbar/v3"

	"github.com/rail44/charfreq/internal/checksum"
	"github.com/rail44/charfreq/internal/histogram"
	"github.com/rail44/charfreq/internal/log"
	"github.com/rail44/charfreq/internal/report"
	"github.com/rail44/charfreq/internal/stream"
)

// StdinName is the input name that selects standard input
const StdinName = "-"

// CountOptions configures CountApp
type CountOptions struct {
	ChunkSize int

	// Color enables styled output through Renderer
	Color    bool
	Renderer *lipgloss.Renderer

	// Progress receives a byte progress bar for file inputs; nil disables it
	Progress io.Writer
}

// CountApp handles the count command logic
type CountApp struct {
	logger *slog.Logger
	opts   CountOptions
}

// NewCountApp creates a new count app
func NewCountApp(opts CountOptions) *CountApp {
	return &CountApp{
		logger: log.Logger(),
		opts:   opts,
	}
}

// Run streams every input, in order, into one histogram and writes the
// report to stdout. No inputs means stdin.
func (a *CountApp) Run(ctx context.Context, inputs []string, stdin io.Reader, stdout io.Writer) error {
	if len(inputs) == 0 {
		inputs = []string{StdinName}
	}

	h := histogram.New()
	for _, input := range inputs {
		if err := a.feedInput(ctx, h, input, stdin); err != nil {
			return err
		}
	}

	a.logger.Debug("counting complete",
		slog.Int("inputs", len(inputs)),
		slog.Int("total", h.Total()),
		slog.Int("distinct", h.Len()))

	out := report.Render(h.Entries(), report.Options{
		Color:    a.opts.Color,
		Renderer: a.opts.Renderer,
	})
	if out == "" {
		a.logger.Debug("nothing to report")
		return nil
	}

	if _, err := fmt.Fprintln(stdout, out); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func (a *CountApp) feedInput(ctx context.Context, h *histogram.Histogram, input string, stdin io.Reader) error {
	if input == StdinName {
		n, err := stream.Feed(ctx, stdin, h, stream.Options{ChunkSize: a.opts.ChunkSize})
		if err != nil {
			return fmt.Errorf("failed to count stdin: %w", err)
		}
		a.logger.Debug("read input", slog.String("input", "stdin"), slog.Int64("bytes", n))
		return nil
	}

	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", input, err)
	}
	defer f.Close()

	var r io.Reader = f
	if a.opts.Progress != nil {
		bar := newProgressBar(f, input, a.opts.Progress)
		defer bar.Close()
		r = io.TeeReader(f, bar)
	}

	n, err := stream.Feed(ctx, r, h, stream.Options{ChunkSize: a.opts.ChunkSize})
	if err != nil {
		return fmt.Errorf("failed to count %s: %w", input, err)
	}
	a.logger.Debug("read input", slog.String("input", input), slog.Int64("bytes", n))
	return nil
}

func newProgressBar(f *os.File, description string, w io.Writer) *progressbar.ProgressBar {
	size := int64(-1)
	if info, err := f.Stat(); err == nil && info.Mode().IsRegular() {
		size = info.Size()
	}
	return progressbar.NewOptions64(size,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
	)
}

// Snapshot is a histogram of one file together with the checksum of
// the bytes it was built from.
type Snapshot struct {
	Histogram *histogram.Histogram
	Checksum  string
	Bytes     int64
}

// CountFile builds a fresh histogram for path and fingerprints its
// content in the same pass.
func CountFile(ctx context.Context, path string, chunkSize int) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	h := histogram.New()
	sum := checksum.NewReader(f)
	n, err := stream.Feed(ctx, sum, h, stream.Options{ChunkSize: chunkSize})
	if err != nil {
		return nil, fmt.Errorf("failed to count %s: %w", path, err)
	}

	return &Snapshot{
		Histogram: h,
		Checksum:  sum.Sum(),
		Bytes:     n,
	}, nil
}
