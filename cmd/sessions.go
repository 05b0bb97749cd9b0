package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"stockmentions/internal"
)

var sessionsNoCache bool

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List stored crawl sessions",
	Long:  `List every session stored under the results area, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := internal.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		store, err := newStore(cfg)
		if err != nil {
			return err
		}

		var sessions []string
		if !sessionsNoCache {
			if cached, ok := store.CachedSessions(); ok {
				internal.LogInfo("Loaded %d session(s) from cache", len(cached))
				sessions = cached
			}
		}
		if sessions == nil {
			sessions, err = store.ListSessions(internal.AreaResults)
			if err != nil {
				return fmt.Errorf("failed to list sessions: %w", err)
			}
		}

		displaySessions(sessions)
		return nil
	},
}

func displaySessions(sessions []string) {
	if len(sessions) == 0 {
		fmt.Println(headerStyle.Render("No sessions found"))
		return
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Found %d session(s)", len(sessions))))
	fmt.Println()

	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, titleStyle.Render("Session")+"\t"+titleStyle.Render("Crawled")+"\t")
	for _, id := range sessions {
		crawled := "—"
		if t, err := internal.ParseSessionID(id); err == nil {
			crawled = t.Format("2006-01-02 15:04:05 UTC")
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t\n", idStyle.Render(id), dateStyle.Render(crawled))
	}
	_ = w.Flush()
	fmt.Println()
	fmt.Println(idStyle.Render("Tip: inspect one with `stockmentions show <session>`"))
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.Flags().BoolVar(&sessionsNoCache, "no-cache", false, "Rescan the backend instead of using the local index cache")
}
