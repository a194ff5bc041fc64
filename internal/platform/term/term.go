// Package term is an alternate frontend that drives a game through
// tetris.Loop with tcell for input and drawing.
package term

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/tui-tetris/internal/audio"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/replay"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Options carries the optional collaborators of a run.
type Options struct {
	Store    *storage.Store
	Sound    *audio.SoundManager
	Recorder *replay.Recorder
	Logger   *log.Logger
}

var styles = map[core.Color]tcell.Style{
	core.ColorDefault:     tcell.StyleDefault,
	core.ColorRed:         tcell.StyleDefault.Foreground(tcell.ColorMaroon),
	core.ColorGreen:       tcell.StyleDefault.Foreground(tcell.ColorGreen),
	core.ColorYellow:      tcell.StyleDefault.Foreground(tcell.ColorOlive),
	core.ColorBlue:        tcell.StyleDefault.Foreground(tcell.ColorNavy),
	core.ColorMagenta:     tcell.StyleDefault.Foreground(tcell.ColorPurple),
	core.ColorCyan:        tcell.StyleDefault.Foreground(tcell.ColorTeal),
	core.ColorWhite:       tcell.StyleDefault.Foreground(tcell.ColorSilver),
	core.ColorBrightWhite: tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true),
	core.ColorGray:        tcell.StyleDefault.Foreground(tcell.ColorGray),
}

// Run plays g in the terminal until the user quits or ctx is cancelled.
// g must already be reset.
func Run(ctx context.Context, g *tetris.Game, interval time.Duration, opts Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("term: cannot create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("term: cannot init screen: %w", err)
	}
	defer screen.Fini()

	return run(ctx, screen, g, interval, opts)
}

// run drives g on an initialized screen.
func run(ctx context.Context, screen tcell.Screen, g *tetris.Game, interval time.Duration, opts Options) error {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Recorder != nil {
		opts.Recorder.Start(g)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	buf := core.NewScreen(screen.Size())
	started := time.Now()
	saved := false
	finish := func(reason string) {
		if saved || opts.Store == nil {
			saved = true
			return
		}
		saved = true
		sess := storage.Session{
			Variant:   g.ID(),
			Seed:      g.Seed(),
			Locked:    g.State().Locked,
			Counts:    g.SpawnCounts(),
			EndReason: reason,
			Duration:  time.Since(started),
		}
		if _, err := opts.Store.SaveSession(sess); err != nil {
			opts.Logger.Warn("cannot save session", "variant", sess.Variant, "error", err)
		}
	}

	observe := func(msg tetris.Msg, res core.StepResult, snap tetris.Snapshot) {
		if opts.Recorder != nil {
			opts.Recorder.Observe(msg, res, snap)
		}
		if opts.Sound != nil {
			opts.Sound.PlayEvents(res)
		}
		switch {
		case res.Has(core.EventRestarted):
			started = time.Now()
			saved = false
		case res.Has(core.EventGameOver):
			finish(storage.EndGameOver)
		}
		draw(screen, buf, g)
	}

	loop := tetris.NewLoop(g, interval, observe)
	draw(screen, buf, g)

	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			var msg tetris.Msg
			switch ev := ev.(type) {
			case *tcell.EventKey:
				a := keyAction(ev.Key(), ev.Rune())
				if a == core.ActionNone {
					continue
				}
				if a == core.ActionBack {
					a = core.ActionQuit
				}
				msg = tetris.CommandMsg{Action: a}
			case *tcell.EventResize:
				screen.Sync()
				msg = tetris.CommandMsg{Action: core.ActionNone}
			default:
				continue
			}
			if !loop.Send(ctx, msg) {
				return
			}
		}
	}()

	err := loop.Run(ctx)
	finish(storage.EndQuit)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// keyAction maps a tcell key to a game action, mirroring the Bubble Tea
// bindings.
func keyAction(k tcell.Key, r rune) core.Action {
	switch k {
	case tcell.KeyLeft:
		return core.ActionMoveLeft
	case tcell.KeyRight:
		return core.ActionMoveRight
	case tcell.KeyDown:
		return core.ActionSoftDrop
	case tcell.KeyUp:
		return core.ActionRotate
	case tcell.KeyEscape:
		return core.ActionBack
	case tcell.KeyCtrlC:
		return core.ActionQuit
	case tcell.KeyRune:
		switch r {
		case 'h':
			return core.ActionMoveLeft
		case 'l':
			return core.ActionMoveRight
		case 'j':
			return core.ActionSoftDrop
		case 'k', 'x':
			return core.ActionRotate
		case 'p':
			return core.ActionPause
		case 'r':
			return core.ActionRestart
		case 'b':
			return core.ActionBack
		case 'q':
			return core.ActionQuit
		}
	}
	return core.ActionNone
}

// draw renders g into buf and copies it to the screen.
func draw(screen tcell.Screen, buf *core.Screen, g *tetris.Game) {
	w, h := screen.Size()
	if w != buf.Width() || h != buf.Height() {
		buf.Resize(w, h)
	}
	g.Render(buf)

	for y := 0; y < buf.Height(); y++ {
		for x := 0; x < buf.Width(); x++ {
			c := buf.GetCell(x, y)
			style, ok := styles[c.Color]
			if !ok {
				style = tcell.StyleDefault
			}
			screen.SetContent(x, y, c.Rune, nil, style)
		}
	}
	screen.Show()
}
