package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gridstate/internal/platform/tui"
	"github.com/vovakirdan/gridstate/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryTUI   bool
)

var historyCmd = &cobra.Command{
	Use:   "history [session-id]",
	Short: "Show journaled sessions and transitions",
	Long: `List recent sessions from the journal, or the transitions of one session.
Session IDs may be abbreviated to their first 8 characters as shown in the list.

Examples:
  gridstate history
  gridstate history --limit 5
  gridstate history 3f2a9c1e
  gridstate history --tui`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of sessions to list")
	historyCmd.Flags().BoolVar(&flagHistoryTUI, "tui", false, "Browse the journal interactively")
}

func runHistory(_ *cobra.Command, args []string) {
	cfg := mustLoadConfig()

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening journal database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagHistoryTUI {
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		if _, err := tui.RunHistory(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if len(args) == 1 {
		if err := printTransitions(store, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	sessions, err := store.RecentSessions(flagHistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Recent sessions")
	fmt.Println()
	if len(sessions) == 0 {
		fmt.Println("No sessions journaled yet.")
		fmt.Println()
		fmt.Println("Play 'gridstate play classic' to record one.")
		return
	}

	fmt.Printf("  %-8s  %-10s  %-8s  %-10s  %-5s  %-7s  %s\n", "ID", "Mode", "Level", "Final", "Lives", "Ticks", "Started")
	fmt.Printf("  %-8s  %-10s  %-8s  %-10s  %-5s  %-7s  %s\n", "--", "----", "-----", "-----", "-----", "-----", "-------")
	for _, s := range sessions {
		final := s.FinalState
		if final == "" {
			final = "-"
		}
		fmt.Printf("  %-8s  %-10s  %-8s  %-10s  %-5s  %-7d  %s\n",
			shortID(s.ID), s.Mode, s.Level, final,
			fmt.Sprintf("%d/%d", s.LivesLeft, s.StartLives), s.Ticks,
			s.StartedAt.Local().Format("2006-01-02 15:04"))
	}
}

// printTransitions prints the journal of the session whose ID is or starts
// with id.
func printTransitions(store *storage.Store, id string) error {
	rec, err := store.Session(id)
	if errors.Is(err, storage.ErrSessionNotFound) {
		rec, err = findByPrefix(store, id)
	}
	if err != nil {
		return err
	}

	transitions, err := store.Transitions(rec.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Session %s  mode=%s variant=%s level=%s\n", rec.ID, rec.Mode, rec.Variant, rec.Level)
	fmt.Println()
	if len(transitions) == 0 {
		fmt.Println("  No transitions recorded.")
		return nil
	}
	fmt.Printf("  %-4s  %-7s  %-13s  %-13s  %s\n", "#", "Tick", "From", "To", "Lives")
	for _, t := range transitions {
		fmt.Printf("  %-4d  %-7d  %-13s  %-13s  %d\n", t.Seq, t.Tick, t.FromState, t.ToState, t.Lives)
	}
	return nil
}

// historyScan bounds the prefix search over recent sessions.
const historyScan = 500

func findByPrefix(store *storage.Store, prefix string) (storage.SessionRecord, error) {
	sessions, err := store.RecentSessions(historyScan)
	if err != nil {
		return storage.SessionRecord{}, err
	}
	var match *storage.SessionRecord
	for i := range sessions {
		if strings.HasPrefix(sessions[i].ID, prefix) {
			if match != nil {
				return storage.SessionRecord{}, fmt.Errorf("session prefix %q is ambiguous", prefix)
			}
			match = &sessions[i]
		}
	}
	if match == nil {
		return storage.SessionRecord{}, fmt.Errorf("%w: %s", storage.ErrSessionNotFound, prefix)
	}
	return *match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
