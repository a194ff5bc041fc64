package tui

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// seeded is implemented by games that expose the seed of their current run.
type seeded interface {
	Seed() int64
}

// gameRun guards one game and remembers whether its current run has been
// persisted. Model copies share a single *gameRun, and the SSH server
// finishes it from another goroutine when a client disconnects.
type gameRun struct {
	mu      sync.Mutex
	game    registry.Game
	store   *storage.Store
	logger  *log.Logger
	started time.Time
	saved   bool
}

func newGameRun(game registry.Game, store *storage.Store, logger *log.Logger) *gameRun {
	return &gameRun{
		game:    game,
		store:   store,
		logger:  logger,
		started: time.Now(),
	}
}

func (r *gameRun) reset(cfg core.RuntimeConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.game.Reset(cfg)
	r.started = time.Now()
	r.saved = false
}

func (r *gameRun) tick() core.StepResult {
	r.mu.Lock()
	res := r.game.Tick()
	r.mu.Unlock()
	r.after(res)
	return res
}

func (r *gameRun) handle(a core.Action) core.StepResult {
	r.mu.Lock()
	res := r.game.Handle(a)
	r.mu.Unlock()
	r.after(res)
	return res
}

// after saves a run that just ended and rearms persistence after a restart.
func (r *gameRun) after(res core.StepResult) {
	switch {
	case res.Has(core.EventRestarted):
		r.mu.Lock()
		r.started = time.Now()
		r.saved = false
		r.mu.Unlock()
	case res.Has(core.EventGameOver):
		r.finish(storage.EndGameOver)
	}
}

func (r *gameRun) render(dst *core.Screen) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.game.Render(dst)
}

func (r *gameRun) state() core.GameState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.game.State()
}

// finish persists the current run once. Later calls are no-ops until the
// game restarts.
func (r *gameRun) finish(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.saved {
		return
	}
	r.saved = true
	if r.store == nil {
		return
	}

	sess := storage.Session{
		Variant:   r.game.ID(),
		Locked:    r.game.State().Locked,
		EndReason: reason,
		Duration:  time.Since(r.started),
	}
	if s, ok := r.game.(seeded); ok {
		sess.Seed = s.Seed()
	}
	if sp, ok := r.game.(registry.StatsProvider); ok {
		sess.Counts = sp.SpawnCounts()
	}

	id, err := r.store.SaveSession(sess)
	if err != nil {
		r.logger.Warn("cannot save session", "variant", sess.Variant, "error", err)
		return
	}
	r.logger.Debug("session saved", "id", id, "variant", sess.Variant, "locked", sess.Locked, "reason", reason)
}
