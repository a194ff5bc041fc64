// Package tetris implements the falling-block engine: the shape catalog,
// the settled-cell grid, the active piece, collision, rotation and the
// transition controller that applies gravity ticks and player commands.
package tetris

import (
	"math/rand"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// Variant identifiers registered with the platform.
const (
	VariantStandard = "tetris"
	VariantClassic  = "tetris_classic"
)

// Options are the rules a Game is built with.
type Options struct {
	Width  int
	Height int
	Floor  FloorRule
	Kicks  bool
}

// OptionsFromConfig converts the loaded configuration into engine options.
func OptionsFromConfig(cfg config.TetrisConfig) (Options, error) {
	if err := cfg.Validate(); err != nil {
		return Options{}, err
	}
	floor, err := ParseFloorRule(cfg.Rules.Floor)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Width:  cfg.Board.Width,
		Height: cfg.Board.Height,
		Floor:  floor,
		Kicks:  cfg.Rules.RotationKicks,
	}, nil
}

// Package-level configuration applied to games created through the registry.
var boardConfig = config.DefaultTetrisConfig()

// SetConfig sets the configuration used by New and NewClassic.
// Call it once at startup, before any game is created.
func SetConfig(cfg config.TetrisConfig) {
	boardConfig = cfg
}

// Game is the transition controller for one run.
// It is not safe for concurrent use; frontends serialize access through a
// Bubble Tea model or a Loop.
type Game struct {
	variant string
	opts    Options

	cfg  core.RuntimeConfig
	seed int64
	rng  *rand.Rand

	grid   *Grid
	piece  Piece
	tick   uint64
	locked int
	stats  *Stats

	gameOver bool
	paused   bool
}

// configuredOptions returns the rules from the configuration installed with
// SetConfig, or the defaults when that configuration is invalid.
func configuredOptions() Options {
	opts, err := OptionsFromConfig(boardConfig)
	if err != nil {
		opts, _ = OptionsFromConfig(config.DefaultTetrisConfig())
	}
	return opts
}

// New creates a standard game using the configured rules.
func New() *Game {
	return NewWithOptions(VariantStandard, configuredOptions())
}

// NewClassic creates a game with the legacy floor rule and no rotation kicks.
func NewClassic() *Game {
	opts := configuredOptions()
	opts.Floor = FloorLegacy
	opts.Kicks = false
	return NewWithOptions(VariantClassic, opts)
}

// NewWithOptions creates a game for the given variant with explicit rules.
// The game is reset with core.DefaultConfig so it is usable immediately.
func NewWithOptions(variant string, opts Options) *Game {
	g := &Game{variant: variant, opts: opts}
	g.Reset(core.DefaultConfig())
	return g
}

func init() {
	registry.Register(VariantStandard, func() registry.Game {
		return New()
	})
	registry.Register(VariantClassic, func() registry.Game {
		return NewClassic()
	})
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.variant
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.variant == VariantClassic {
		return "Tetris (Classic)"
	}
	return "Tetris"
}

// Options returns the rules this game was built with.
func (g *Game) Options() Options {
	return g.opts
}

// Seed returns the seed of the current run.
func (g *Game) Seed() int64 {
	return g.seed
}

// Reset starts a new run on an empty grid.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.seed = cfg.Seed
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	if g.grid == nil {
		g.grid = NewGrid(g.opts.Width, g.opts.Height)
	} else {
		g.grid.Reset()
	}
	g.tick = 0
	g.locked = 0
	g.stats = newStats()
	g.gameOver = false
	g.paused = false
	g.spawn()
}

// restart begins a new run seeded from the current generator, so a replayed
// command sequence restarts identically.
func (g *Game) restart() {
	cfg := g.cfg
	cfg.Seed = g.rng.Int63()
	g.Reset(cfg)
}

// Tick applies one gravity step: descend if possible, otherwise merge the
// piece and spawn the next one.
func (g *Game) Tick() core.StepResult {
	if g.gameOver || g.paused {
		return g.result(nil)
	}
	g.tick++
	return g.result(g.fall())
}

// Handle applies a player command immediately.
func (g *Game) Handle(a core.Action) core.StepResult {
	switch a {
	case core.ActionPause:
		if !g.gameOver {
			g.paused = !g.paused
		}
		return g.result(nil)
	case core.ActionRestart:
		if g.gameOver {
			g.restart()
			return g.result([]core.Event{core.EventRestarted})
		}
		return g.result(nil)
	}

	if g.gameOver || g.paused {
		return g.result(nil)
	}

	var events []core.Event
	switch a {
	case core.ActionMoveLeft:
		events = g.shift(-1)
	case core.ActionMoveRight:
		events = g.shift(1)
	case core.ActionSoftDrop:
		events = g.fall()
	case core.ActionRotate:
		if p, ok := Rotate(g.grid, g.piece, g.opts.Kicks); ok {
			g.piece = p
			events = []core.Event{core.EventRotated}
		}
	}
	return g.result(events)
}

func (g *Game) shift(dx int) []core.Event {
	p, ok := Shift(g.grid, g.piece, dx)
	if !ok {
		return nil
	}
	g.piece = p
	return []core.Event{core.EventMoved}
}

func (g *Game) fall() []core.Event {
	if CanDescend(g.grid, g.piece, g.opts.Floor) {
		g.piece.Y++
		return []core.Event{core.EventMoved}
	}

	Merge(g.grid, g.piece)
	g.locked++
	events := []core.Event{core.EventLocked}
	if g.spawn() {
		return append(events, core.EventSpawned)
	}
	return append(events, core.EventGameOver)
}

// spawn places a random piece at the top. It reports false and ends the run
// when the starting cells are occupied.
func (g *Game) spawn() bool {
	k := Kinds()[g.rng.Intn(len(Kinds()))]
	p := Spawn(k, g.grid.Width())
	if !CanPlace(g.grid, p.Shape, p.X, p.Y) {
		g.gameOver = true
		return false
	}
	g.piece = p
	g.stats.record(k)
	return true
}

func (g *Game) result(events []core.Event) core.StepResult {
	return core.StepResult{State: g.State(), Events: events}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Locked:   g.locked,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// GridSnapshot returns a copy of the settled cells.
func (g *Game) GridSnapshot() [][]Cell {
	return g.grid.Snapshot()
}

// ActivePiece returns a copy of the falling piece. It reports false once the
// game is over.
func (g *Game) ActivePiece() (Piece, bool) {
	if g.gameOver {
		return Piece{}, false
	}
	return g.piece.Clone(), true
}

// Stats returns the spawn counters of the current run.
func (g *Game) Stats() *Stats {
	return g.stats
}

// SpawnCounts returns the number of spawned pieces per kind name.
func (g *Game) SpawnCounts() map[string]int {
	return g.stats.ByName()
}
