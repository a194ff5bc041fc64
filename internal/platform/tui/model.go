package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/audio"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/replay"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Options carries the optional collaborators of a game model.
// Nil fields disable the corresponding feature.
type Options struct {
	Store     *storage.Store
	Sound     *audio.SoundManager
	Recorder  *replay.Recorder
	Logger    *log.Logger
	AllowBack bool   // Esc returns to the menu instead of quitting
	ShotDir   string // Screenshot directory; empty means ~/.tetris/screenshots
}

var modelIDs atomic.Int64

// Model is the Bubble Tea model for playing one variant.
type Model struct {
	id       int
	run      *gameRun
	screen   *core.Screen
	config   core.RuntimeConfig
	opts     Options
	keys     *KeyMapper
	help     help.Model
	quitting bool
	back     bool
}

// NewModel creates a model for game and starts a run.
// A zero seed is replaced by the current time.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = core.DefaultConfig().TickInterval
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	run := newGameRun(game, opts.Store, opts.Logger)
	run.reset(cfg)

	if opts.Recorder != nil {
		if tg, ok := game.(*tetris.Game); ok {
			opts.Recorder.Start(tg)
		}
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		id:     int(modelIDs.Add(1)),
		run:    run,
		screen: core.NewScreen(cfg.ScreenW, boardRows(cfg.ScreenH)),
		config: cfg,
		opts:   opts,
		keys:   NewKeyMapper(),
		help:   h,
	}
}

// boardRows leaves the last terminal row for the help line.
func boardRows(h int) int {
	return max(h-1, 0)
}

// Init starts the gravity ticker.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.id, m.config.TickInterval)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey applies a key press to the game immediately.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Keys.Screenshot) {
		if err := m.saveScreenshot(); err != nil {
			m.opts.Logger.Warn("cannot save screenshot", "error", err)
		}
		return m, nil
	}

	action := m.keys.MapKey(msg)
	switch action {
	case core.ActionNone:
		return m, nil

	case core.ActionQuit:
		m.run.finish(storage.EndQuit)
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		m.run.finish(storage.EndQuit)
		if !m.opts.AllowBack {
			m.quitting = true
			return m, tea.Quit
		}
		m.back = true
		return m, tea.Quit
	}

	res := m.run.handle(action)
	if m.opts.Recorder != nil {
		m.opts.Recorder.Command(action)
	}
	m.feedback(res)
	return m, nil
}

// handleResize resizes the screen buffer. The run is kept.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, boardRows(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick applies one gravity step and schedules the next.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.ID != m.id || m.quitting || m.back {
		return m, nil
	}

	res := m.run.tick()
	if m.opts.Recorder != nil {
		m.opts.Recorder.Tick()
	}
	m.feedback(res)
	return m, tickCmd(m.id, m.config.TickInterval)
}

func (m Model) feedback(res core.StepResult) {
	if m.opts.Sound != nil {
		m.opts.Sound.PlayEvents(res)
	}
	if res.Has(core.EventGameOver) {
		m.opts.Logger.Debug("game over", "variant", m.run.game.ID(), "locked", res.State.Locked)
	}
}

// saveScreenshot writes the current frame as plain text.
func (m Model) saveScreenshot() error {
	m.run.render(m.screen)

	dir := m.opts.ShotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot get home directory: %w", err)
		}
		dir = filepath.Join(home, ".tetris", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create screenshot directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.run.game.ID(), timestamp))
	return os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the board and the help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.run.render(m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys.Keys)))
	return b.String()
}

// State returns the game state of the current run.
func (m Model) State() core.GameState {
	return m.run.state()
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user requested the menu.
func (m Model) BackToMenu() bool {
	return m.back
}

// Run plays game until the user quits or, with opts.AllowBack, asks for the
// menu. It reports whether the menu was requested.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (bool, error) {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
