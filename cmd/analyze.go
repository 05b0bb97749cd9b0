package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"stockmentions/internal"
)

var (
	analyzeSymbol string
	analyzeDays   int
	analyzeSave   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Combine all sessions into trend reports",
	Long: `Load every stored session, flatten it into per-symbol records, and
report overall leaders and recently trending symbols. With --save the
analysis artifacts (combined table, rankings, summary report) are written
under a fresh analysis session id.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := internal.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		store, err := newStore(cfg)
		if err != nil {
			return err
		}

		sessions, err := store.LoadAllResults()
		if err != nil {
			return fmt.Errorf("failed to load sessions: %w", err)
		}

		now := time.Now().UTC()
		records := internal.Combine(sessions)

		if analyzeSymbol != "" {
			displayTimeline(analyzeSymbol, internal.Timeline(records, analyzeSymbol))
			return nil
		}

		top := internal.TopOverall(records, 10)
		trending := internal.Trending(records, now, analyzeDays, 5)
		report := internal.Summarize(sessions, records, now)

		displayReport(report, top, trending, analyzeDays)

		if analyzeSave {
			// Standalone analysis runs get their own creation-time id
			sessionID := internal.NewSessionID(now)
			allTop := internal.TopOverall(records, 50)
			allTrending := internal.Trending(records, now, analyzeDays, 20)
			if err := store.SaveAnalysis(sessionID, records, allTop, allTrending, report); err != nil {
				return fmt.Errorf("failed to save analysis artifacts: %w", err)
			}
			fmt.Println()
			fmt.Println(idStyle.Render("Artifacts saved under analysis/" + sessionID))
		}
		return nil
	},
}

func displayReport(report *internal.SummaryReport, top, trending []internal.SymbolTotal, windowDays int) {
	fmt.Println(headerStyle.Render(fmt.Sprintf("%d session(s), %d unique symbols, %d mentions",
		report.TotalSessions, report.UniqueSymbols, report.TotalMentions)))
	if report.DateRange != "" {
		fmt.Println(dateStyle.Render(report.DateRange))
	}
	fmt.Println()

	displayRanking("Top symbols overall", top)
	displayRanking(fmt.Sprintf("Trending (last %d days)", windowDays), trending)
}

func displayRanking(title string, totals []internal.SymbolTotal) {
	fmt.Println(titleStyle.Render(title))
	if len(totals) == 0 {
		fmt.Println(dateStyle.Render("  (no data)"))
		fmt.Println()
		return
	}
	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', tabwriter.AlignRight)
	for i, t := range totals {
		_, _ = fmt.Fprintf(w, "  %d.\t%s\t%s\t\n", i+1, t.Symbol, countStyle.Render(strconv.Itoa(t.Mentions)))
	}
	_ = w.Flush()
	fmt.Println()
}

func displayTimeline(symbol string, timeline []internal.CombinedRecord) {
	fmt.Println(headerStyle.Render(fmt.Sprintf("Timeline for %s (%d session(s))", symbol, len(timeline))))
	if len(timeline) == 0 {
		fmt.Println(dateStyle.Render("  (no data)"))
		return
	}
	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, titleStyle.Render("Date")+"\t"+titleStyle.Render("Mentions")+"\t")
	for _, rec := range timeline {
		_, _ = fmt.Fprintf(w, "%s\t%s\t\n",
			dateStyle.Render(rec.DateTime.Format("2006-01-02 15:04")),
			countStyle.Render(strconv.Itoa(rec.Mentions)))
	}
	_ = w.Flush()
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeSymbol, "symbol", "", "Show the timeline for one symbol instead of the full report")
	analyzeCmd.Flags().IntVar(&analyzeDays, "days", 7, "Trending window in calendar days")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Write analysis artifacts to storage")
}
