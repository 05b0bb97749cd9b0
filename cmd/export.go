package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"stockmentions/internal"
)

var exportOutputDir string

var exportCmd = &cobra.Command{
	Use:   "export <session>",
	Short: "Download one session's files to a local directory",
	Long: `Download every file stored under a session (result record, tabular dump,
crawl log) into a local directory, e.g. for spreadsheet work against an S3
backend.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, err := normalizeSessionArg(args[0])
		if err != nil {
			return err
		}

		cfg, err := internal.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		store, err := newStore(cfg)
		if err != nil {
			return err
		}

		exported, err := store.ExportSession(sessionID, exportOutputDir)
		if err != nil {
			return fmt.Errorf("failed to export session %s: %w", sessionID, err)
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("Exported %d file(s) to %s", exported, exportOutputDir)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutputDir, "out", "o", "./exports", "Output directory")
}
