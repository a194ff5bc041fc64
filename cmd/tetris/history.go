package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagHistoryVariant string
	flagHistoryLimit   int
	flagHistoryStats   bool
	flagHistoryClear   bool
	flagHistoryID      string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent sessions",
	Long: `Display recently finished sessions, newest first.

Examples:
  tetris history
  tetris history --variant tetris_classic --limit 5
  tetris history --stats
  tetris history --id 1b4e28ba-2fa1-11d2-883f-0016d3cca427
  tetris history --clear --variant tetris`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagHistoryVariant, "variant", "", "Only show this variant")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Maximum sessions to show")
	historyCmd.Flags().BoolVar(&flagHistoryStats, "stats", false, "Show per-variant totals instead of sessions")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete stored sessions (all, or --variant only)")
	historyCmd.Flags().StringVar(&flagHistoryID, "id", "", "Show one session in detail")
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

func runHistory(_ *cobra.Command, _ []string) {
	if flagHistoryVariant != "" && !registry.Exists(flagHistoryVariant) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", flagHistoryVariant)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening sessions database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagHistoryID != "":
		err = printSession(store, flagHistoryID)
	case flagHistoryClear:
		err = store.ClearSessions(flagHistoryVariant)
		if err == nil {
			fmt.Println("Sessions cleared.")
		}
	case flagHistoryStats:
		err = printStats(store)
	default:
		err = printSessions(store)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printSessions(store *storage.Store) error {
	sessions, err := store.RecentSessions(flagHistoryVariant, flagHistoryLimit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tetris play' to start the history!")
		return nil
	}

	t := newTable("Date", "Locked", "End", "Time", "Pieces", "Variant", "ID")
	for i, row := range tui.SessionRows(sessions) {
		t.Row(append(row, sessions[i].Variant, sessions[i].ID)...)
	}
	fmt.Println(t.String())
	return nil
}

func printSession(store *storage.Store, id string) error {
	sess, err := store.SessionByID(id)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no session with id %q", id)
	}
	if err != nil {
		return err
	}
	fmt.Print(sessionDetail(*sess))
	return nil
}

// sessionDetail formats every stored field of one session.
func sessionDetail(s storage.Session) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ID:       %s\n", s.ID)
	fmt.Fprintf(&b, "Variant:  %s\n", s.Variant)
	fmt.Fprintf(&b, "Played:   %s\n", s.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Seed:     %d\n", s.Seed)
	fmt.Fprintf(&b, "Locked:   %d\n", s.Locked)
	fmt.Fprintf(&b, "Duration: %s\n", s.Duration.Round(time.Second))
	fmt.Fprintf(&b, "Ended by: %s\n", s.EndReason)
	fmt.Fprintf(&b, "Pieces:   %s\n", storage.FormatCounts(s.Counts))
	return b.String()
}

func printStats(store *storage.Store) error {
	stats, err := store.AllVariantStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No sessions recorded yet.")
		return nil
	}

	variants := make([]string, 0, len(stats))
	for v := range stats {
		if flagHistoryVariant == "" || v == flagHistoryVariant {
			variants = append(variants, v)
		}
	}
	sort.Strings(variants)

	t := newTable("Variant", "Sessions", "Best", "Average", "Total", "Last played", "Pieces")
	for _, v := range variants {
		vs := stats[v]
		totals, err := store.KindTotals(v)
		if err != nil {
			return err
		}
		t.Row(
			v,
			strconv.Itoa(vs.Sessions),
			strconv.Itoa(vs.BestLocked),
			fmt.Sprintf("%.1f", vs.AvgLocked),
			strconv.Itoa(vs.TotalLocked),
			vs.LastPlayed.Local().Format("2006-01-02 15:04"),
			storage.FormatCounts(totals),
		)
	}
	fmt.Println(t.String())
	return nil
}
