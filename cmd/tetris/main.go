// tetris is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	tetris list              - List available variants
//	tetris play [variant]    - Play a variant (default: tetris)
//	tetris menu              - Pick variants interactively
//	tetris serve             - Start SSH server for remote play
//	tetris history           - Show recent sessions
//	tetris replay <file>     - Re-run a recorded game headlessly
//
// Global flags:
//
//	--tick <ms>         - Gravity interval override in milliseconds
//	--seed <value>      - RNG seed for reproducible gameplay
//	--db <path>         - Sessions database (default: ~/.tetris/tetris.db)
//	--config <path>     - Game config YAML
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/audio"
	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

var (
	// Global flags
	flagTickMS   int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris - a falling-block game in your terminal",
	Long: `Tetris drops one piece at a time onto a fixed grid. Steer it with the
arrow keys, rotate it, and watch it settle; a new piece spawns at the top
until there is no room left.

Available commands:
  list     - Show all variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  serve    - Start SSH server for remote play
  history  - Show recent sessions
  replay   - Re-run a recording

Examples:
  tetris play
  tetris play tetris_classic --tick 500
  tetris play --backend tcell --record run.tetris
  tetris replay run.tetris
  tetris serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagTickMS, "tick", 0, "Gravity interval in milliseconds (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tetris/tetris.db", "Path to sessions database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(replayCmd)
}

// loadGameConfig loads the YAML config, applies flag overrides and installs
// it for games created through the registry.
func loadGameConfig() (config.TetrisConfig, error) {
	cfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagTickMS > 0 {
		cfg.Gravity.IntervalMS = flagTickMS
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	tetris.SetConfig(cfg)
	return cfg, nil
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig(cfg config.TetrisConfig) core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:      width,
		ScreenH:      height,
		TickInterval: cfg.Gravity.Interval(),
		Seed:         flagSeed,
	}
}

// newLogger creates a logger at the --log-level. Interactive commands pass a
// file so log lines do not tear the screen.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
	}
	logger.SetLevel(level)
	return logger
}

// openLogFile opens ~/.tetris/tetris.log for appending, falling back to
// discarding output.
func openLogFile() io.WriteCloser {
	home, err := os.UserHomeDir()
	if err != nil {
		return nopCloser{io.Discard}
	}
	dir := filepath.Join(home, ".tetris")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nopCloser{io.Discard}
	}
	f, err := os.OpenFile(filepath.Join(dir, "tetris.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nopCloser{io.Discard}
	}
	return f
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// startSound initializes audio when enabled by flag or config.
// It returns nil when audio is off or unavailable.
func startSound(enabled bool, cfg config.TetrisConfig, logger *log.Logger) *audio.SoundManager {
	if !enabled && !cfg.Audio.Enabled {
		return nil
	}
	sm := audio.NewSoundManager(cfg.Audio.Volume)
	if err := sm.Initialize(); err != nil {
		logger.Warn("audio unavailable", "error", err)
		return nil
	}
	return sm
}
