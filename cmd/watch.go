package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rail44/charfreq/internal/interactive"
)

var plain bool

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Watch a file and keep its histogram up to date",
	Long: `Watch shows the character histogram of a file and recounts it every
time the file is saved. Without a terminal, or with --plain, each new
report is printed to standard output instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filePath := args[0]

		if _, err := os.Stat(filePath); err != nil {
			return fmt.Errorf("cannot watch %s: %w", filePath, err)
		}

		absPath, err := filepath.Abs(filePath)
		if err != nil {
			return fmt.Errorf("failed to resolve path: %w", err)
		}

		return interactive.Run(cmd.Context(), absPath, interactive.ProgramOptions{
			Plain:     plain,
			ChunkSize: cfg.ChunkSize,
			Debounce:  cfg.Debounce(),
		})
	},
}

func init() {
	watchCmd.Flags().BoolVar(&plain, "plain", false, "print reports instead of drawing the interactive view")
	rootCmd.AddCommand(watchCmd)
}
