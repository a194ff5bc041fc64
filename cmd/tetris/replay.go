package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/replay"
)

var flagReplayVerbose bool

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Re-run a recorded session",
	Long: `Replay a recording made with 'tetris play --record' without a terminal UI.
The recorded seed and messages reproduce the session exactly; the final
board and a summary are printed.

Examples:
  tetris replay run.tetris
  tetris replay run.tetris --verbose`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVarP(&flagReplayVerbose, "verbose", "v", false, "Print every step")
}

func runReplay(_ *cobra.Command, args []string) {
	rec, err := replay.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var observe tetris.Observer
	if flagReplayVerbose {
		step := 0
		observe = func(msg tetris.Msg, res core.StepResult, snap tetris.Snapshot) {
			step++
			fmt.Printf("%5d  %-16s  %-10s  locked=%d  %s %s@%d,%d\n",
				step, describe(msg), snap.State, snap.Locked, snap.Kind, snap.Shape, snap.X, snap.Y)
		}
	}

	g, err := replay.Play(rec, observe)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	snap := g.Snapshot()
	fmt.Println(strings.Join(snap.Board, "\n"))
	fmt.Println()
	fmt.Printf("Variant:  %s\n", rec.Variant)
	fmt.Printf("Recorded: %s\n", rec.RecordedAt.Local().Format("2006-01-02 15:04"))
	fmt.Printf("Seed:     %d\n", rec.Seed)
	fmt.Printf("Board:    %dx%d (%s floor, kicks %t)\n", rec.Width, rec.Height, rec.Floor, rec.Kicks)
	fmt.Printf("Steps:    %d\n", len(rec.Entries))
	fmt.Printf("Locked:   %d\n", snap.Locked)
	fmt.Printf("State:    %s\n", snap.State)
}

func describe(msg tetris.Msg) string {
	if cmd, ok := msg.(tetris.CommandMsg); ok {
		return cmd.Action.String()
	}
	return "tick"
}
