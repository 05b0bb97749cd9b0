package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"stockmentions/internal"
)

var crawlLogDir string

// newCrawlFeed builds the feed the crawl reads; swapped in tests
var newCrawlFeed = func() internal.Feed { return internal.NewRedditClient() }

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Run one crawl and store it as a session",
	Long: `Crawl the configured subreddit's hot posts, count ticker mentions in
every title, body, and comment, and store the finished run as a new
session. Press Ctrl-C to stop between posts; what was counted so far is
still persisted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := internal.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		catalog, err := internal.LoadCatalog(cfg.Crawler.SymbolsFile,
			cfg.Crawler.ExcludedWords, cfg.Crawler.MinSymbolLen, cfg.Crawler.MaxSymbolLen)
		if err != nil {
			// Catalog load failure at startup is the one unrecoverable error
			return fmt.Errorf("failed to load symbol catalog: %w", err)
		}

		store, err := newStore(cfg)
		if err != nil {
			return err
		}

		sessionLog, err := internal.StartSessionLog(crawlLogDir,
			internal.CompactTimestamp(time.Now().UTC()))
		if err != nil {
			return fmt.Errorf("failed to open session log: %w", err)
		}

		// If the crawl dies before producing a result, the log cannot be
		// persisted under a session; detach the sink and keep the file.
		logSaved := false
		defer func() {
			if logSaved {
				return
			}
			_ = sessionLog.Close()
			internal.LogWarn("Session log kept at %s", sessionLog.Path())
		}()

		crawler := internal.NewCrawler(cfg.Crawler, catalog, newCrawlFeed(), store)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		// The crawl runs on its own goroutine and owns the run state
		// exclusively; only immutable progress snapshots cross over.
		updates := make(chan internal.Progress, 16)
		type outcome struct {
			result *internal.SessionResult
			err    error
		}
		done := make(chan outcome, 1)
		go func() {
			result, err := crawler.Run(ctx, func(p internal.Progress) {
				select {
				case updates <- p:
				default: // drop rather than block the crawl
				}
			})
			close(updates)
			done <- outcome{result: result, err: err}
		}()

		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()
		var latest internal.Progress
		for updates != nil {
			select {
			case p, ok := <-updates:
				if !ok {
					updates = nil
					continue
				}
				latest = p
			case <-ticker.C:
				if latest.Message != "" {
					fmt.Fprintf(os.Stderr, "\r%s (%.0f%%)", latest.Message, latest.Percent)
				}
			}
		}
		fmt.Fprintln(os.Stderr)

		out := <-done
		if out.result != nil {
			if logErr := crawler.PersistLog(out.result.SessionID, sessionLog); logErr != nil {
				internal.LogWarn("Failed to persist session log: %v", logErr)
			} else {
				logSaved = true
			}
			printResult(out.result)
		}
		if out.err != nil && ctx.Err() == nil {
			return fmt.Errorf("crawl failed: %w", out.err)
		}
		return nil
	},
}

func printResult(result *internal.SessionResult) {
	fmt.Println(headerStyle.Render(fmt.Sprintf("Session %s: %d symbols, %d mentions",
		result.SessionID, result.UniqueSymbols(), result.TotalMentions())))
	limit := 10
	if len(result.Counts) < limit {
		limit = len(result.Counts)
	}
	for _, c := range result.Counts[:limit] {
		fmt.Printf("  %s %s\n", titleStyle.Render(c.Symbol), countStyle.Render(fmt.Sprintf("%d", c.Mentions)))
	}
}

func init() {
	rootCmd.AddCommand(crawlCmd)
	crawlCmd.Flags().StringVar(&crawlLogDir, "log-dir", "logs", "Directory for the local session log file")
}
