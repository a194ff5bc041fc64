package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/term"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/replay"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Frontends accepted by --backend.
const (
	backendTUI   = "tui"
	backendTcell = "tcell"
)

var (
	flagBackend string
	flagRecord  string
	flagSound   bool
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant (default: tetris).

Controls:
  Left/Right, h/l   - Move
  Down, j           - Soft drop
  Up, k, x          - Rotate
  P                 - Pause
  R                 - Restart (after game over)
  Ctrl+S            - Screenshot (tui backend)
  Q/Esc/Ctrl+C      - Quit

Examples:
  tetris play
  tetris play tetris_classic
  tetris play --seed 42 --record run.tetris
  tetris play --backend tcell --sound`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagBackend, "backend", backendTUI, "Frontend: tui or tcell")
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Write a replay of the session to this file")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound cues")
}

func runPlay(_ *cobra.Command, args []string) {
	if code := playGame(args); code != 0 {
		os.Exit(code)
	}
}

// playGame runs one game and returns the process exit code. Exiting is left
// to the caller so deferred cleanup always runs.
func playGame(args []string) int {
	variant := tetris.VariantStandard
	if len(args) > 0 {
		variant = args[0]
	}

	if !registry.Exists(variant) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", variant)
		fmt.Fprintln(os.Stderr, "Run 'tetris list' to see available variants.")
		return 1
	}
	if flagBackend != backendTUI && flagBackend != backendTcell {
		fmt.Fprintf(os.Stderr, "Error: unknown backend %q (want %s or %s)\n", flagBackend, backendTUI, backendTcell)
		return 1
	}

	gameCfg, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logFile := openLogFile()
	defer logFile.Close()
	logger := newLogger(logFile, "tetris")

	game, err := registry.Create(variant)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		return 1
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open sessions database: %v\n", err)
		store = nil
	}

	sound := startSound(flagSound, gameCfg, logger)
	if sound != nil {
		defer sound.Cleanup()
	}

	var rec *replay.Recorder
	if flagRecord != "" {
		rec = replay.NewRecorder()
	}

	cfg := runtimeConfig(gameCfg)
	logger.Info("starting game", "variant", variant, "backend", flagBackend, "interval", cfg.TickInterval)

	var runErr error
	switch flagBackend {
	case backendTcell:
		if cfg.Seed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		game.Reset(cfg)
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		runErr = term.Run(ctx, game.(*tetris.Game), cfg.TickInterval, term.Options{
			Store:    store,
			Sound:    sound,
			Recorder: rec,
			Logger:   logger,
		})
		stop()
	default:
		_, runErr = tui.Run(game, cfg, tui.Options{
			Store:    store,
			Sound:    sound,
			Recorder: rec,
			Logger:   logger,
		})
	}

	if store != nil {
		store.Close()
	}

	if rec != nil {
		if err := replay.Save(flagRecord, rec.Recording()); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving replay: %v\n", err)
		} else {
			fmt.Printf("Replay saved to %s\n", flagRecord)
		}
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		return 1
	}
	return 0
}
