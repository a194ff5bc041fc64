package tetris

import (
	"context"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Msg is an inbound message consumed by a Loop.
type Msg interface {
	isMsg()
}

// TickMsg requests one gravity step.
type TickMsg struct{}

// CommandMsg carries one player command.
type CommandMsg struct {
	Action core.Action
}

func (TickMsg) isMsg()    {}
func (CommandMsg) isMsg() {}

// Observer receives every applied message, its result and the resulting snapshot.
// It runs on the loop goroutine.
type Observer func(msg Msg, res core.StepResult, snap Snapshot)

// Loop owns a Game and applies messages one at a time, so a gravity tick
// never interleaves with a command.
type Loop struct {
	game     *Game
	interval time.Duration
	msgs     chan Msg
	observe  Observer
}

// NewLoop creates a loop. A zero interval disables the internal ticker;
// ticks must then be sent as TickMsg.
func NewLoop(g *Game, interval time.Duration, observe Observer) *Loop {
	return &Loop{
		game:     g,
		interval: interval,
		msgs:     make(chan Msg, 64),
		observe:  observe,
	}
}

// Send queues a message. It blocks while the queue is full and returns
// false once ctx is done.
func (l *Loop) Send(ctx context.Context, msg Msg) bool {
	if ctx.Err() != nil {
		return false
	}
	select {
	case l.msgs <- msg:
		return true
	case <-ctx.Done():
		return false
	}
}

// Apply processes one message synchronously and notifies the observer.
// Run calls it for every message; replays call it directly.
func (l *Loop) Apply(msg Msg) core.StepResult {
	var res core.StepResult
	switch m := msg.(type) {
	case TickMsg:
		res = l.game.Tick()
	case CommandMsg:
		res = l.game.Handle(m.Action)
	}
	if l.observe != nil {
		l.observe(msg, res, l.game.Snapshot())
	}
	return res
}

// Run applies ticks and queued messages until a Quit command arrives or ctx
// is cancelled. It returns nil on Quit.
func (l *Loop) Run(ctx context.Context) error {
	var tickC <-chan time.Time
	if l.interval > 0 {
		ticker := time.NewTicker(l.interval)
		defer ticker.Stop()
		tickC = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tickC:
			l.Apply(TickMsg{})
		case msg := <-l.msgs:
			if cmd, ok := msg.(CommandMsg); ok && cmd.Action == core.ActionQuit {
				l.Apply(msg)
				return nil
			}
			l.Apply(msg)
		}
	}
}
