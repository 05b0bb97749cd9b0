package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"stockmentions/internal"
)

var showLimit int

var showCmd = &cobra.Command{
	Use:   "show <session>",
	Short: "Show one session's mention counts",
	Long:  `Load one stored session by id (e.g. 2025-07-07/210032/) and display its symbol counts.`,
	Args:  cobra.ExactArgs(1),
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

		result, err := store.LoadResult(sessionID)
		if err != nil {
			return fmt.Errorf("failed to load session %s: %w", sessionID, err)
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("Session %s — r/%s", result.SessionID, result.Feed)))
		fmt.Println(dateStyle.Render(result.CreatedAt.Format("2006-01-02 15:04:05 UTC")))
		fmt.Println()

		counts := result.Counts
		if showLimit > 0 && len(counts) > showLimit {
			counts = counts[:showLimit]
		}

		w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', tabwriter.AlignRight)
		_, _ = fmt.Fprintln(w, titleStyle.Render("Symbol")+"\t"+titleStyle.Render("Mentions")+"\t")
		for _, c := range counts {
			_, _ = fmt.Fprintf(w, "%s\t%s\t\n", c.Symbol, countStyle.Render(strconv.Itoa(c.Mentions)))
		}
		_ = w.Flush()

		fmt.Println()
		fmt.Printf("%s unique symbols, %s total mentions\n",
			countStyle.Render(strconv.Itoa(result.UniqueSymbols())),
			countStyle.Render(strconv.Itoa(result.TotalMentions())))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVar(&showLimit, "limit", 20, "Maximum symbols to display (0 for all)")
}
