package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/rail44/charfreq/internal/app"
	"github.com/rail44/charfreq/internal/config"
	"github.com/rail44/charfreq/internal/log"
	"github.com/rail44/charfreq/internal/report"
)

var (
	cfgFile  string
	logLevel string
	color    string
	progress bool

	// cfg is resolved in PersistentPreRunE before any command runs
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "charfreq [file...]",
	Short: "Print a histogram of character frequencies",
	Long: `charfreq reads text from the given files, or standard input when none
are given, and prints how often each character occurs as a bar chart.

Whitespace is ignored and letters are counted in upper case. Characters
making up less than 1% of the input are left out.`,
	Example: `  charfreq < corpus.txt
  charfreq chapter1.txt chapter2.txt
  cat notes.md | charfreq --color always | less -R`,
	Args:              cobra.ArbitraryArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		opts := app.CountOptions{
			ChunkSize: cfg.ChunkSize,
			Color:     report.ShouldColor(cfg.Color, out),
			Renderer:  report.NewRenderer(out, cfg.Color),
		}
		if progress {
			opts.Progress = cmd.ErrOrStderr()
		}

		return app.NewCountApp(opts).Run(cmd.Context(), args, cmd.InOrStdin(), out)
	},
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error("charfreq failed", log.ErrorAttr(err))
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is the nearest "+config.FileName+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: error, warn, info or debug")
	rootCmd.PersistentFlags().StringVar(&color, "color", "", "colour output: auto, always or never")
	rootCmd.Flags().BoolVar(&progress, "progress", false, "show a progress bar on stderr while reading files")
}

// loadConfig resolves the config file and applies flag overrides
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFile(cfgFile)
	} else {
		cfg, err = config.Load(".")
	}
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if cmd.Flags().Changed("color") {
		cfg.Color = color
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	return setupLogging(cfg)
}

func setupLogging(cfg *config.Config) error {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if err := log.SetLevel(level); err != nil {
		return fmt.Errorf("failed to set log level: %w", err)
	}
	if cfg.Path != "" {
		log.Debug("using config file", slog.String("path", cfg.Path))
	}
	return nil
}
