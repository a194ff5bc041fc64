package tetris

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func TestLoopAppliesMessagesInOrder(t *testing.T) {
	g := newTestGame(t, FloorExact, true, 1)
	g.piece = Spawn(T, 10)

	var got []Msg
	var last Snapshot
	loop := NewLoop(g, 0, func(msg Msg, _ core.StepResult, snap Snapshot) {
		got = append(got, msg)
		last = snap
	})

	ctx := context.Background()
	msgs := []Msg{
		CommandMsg{Action: core.ActionMoveLeft},
		TickMsg{},
		CommandMsg{Action: core.ActionMoveLeft},
		CommandMsg{Action: core.ActionQuit},
	}
	for _, m := range msgs {
		require.True(t, loop.Send(ctx, m))
	}

	require.NoError(t, loop.Run(ctx))
	assert.Equal(t, msgs, got)
	assert.Equal(t, 2, last.X)
	assert.Equal(t, 1, last.Y)
	assert.Equal(t, uint64(1), last.Tick)
}

func TestLoopTicker(t *testing.T) {
	g := newTestGame(t, FloorExact, true, 1)

	var mu sync.Mutex
	ticks := 0
	loop := NewLoop(g, 5*time.Millisecond, func(msg Msg, _ core.StepResult, _ Snapshot) {
		if _, ok := msg.(TickMsg); ok {
			mu.Lock()
			ticks++
			mu.Unlock()
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := loop.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	mu.Lock()
	defer mu.Unlock()
	assert.Greater(t, ticks, 0)
}

func TestLoopSendAfterCancel(t *testing.T) {
	g := newTestGame(t, FloorExact, true, 1)
	loop := NewLoop(g, 0, nil)

	ctx, cancel := context.WithCancel(context.Background())
	assert.True(t, loop.Send(ctx, TickMsg{}))
	cancel()
	assert.False(t, loop.Send(ctx, TickMsg{}))
}

func TestLoopApplyWithoutObserver(t *testing.T) {
	g := newTestGame(t, FloorExact, true, 1)
	loop := NewLoop(g, 0, nil)

	res := loop.Apply(TickMsg{})
	assert.True(t, res.Has(core.EventMoved))
}
