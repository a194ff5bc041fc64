package tetris

// GameStateType names the run state in a Snapshot.
type GameStateType string

const (
	StatePlaying  GameStateType = "playing"
	StatePaused   GameStateType = "paused"
	StateGameOver GameStateType = "game_over"
)

// Snapshot is an immutable view of a game after one step, for observers,
// replays and tests. Uses primitive types only for stable serialization.
type Snapshot struct {
	Variant string
	Seed    int64
	Tick    uint64
	Locked  int
	State   GameStateType

	// Active piece; Kind is empty once the game is over.
	Kind  string
	Shape string
	X, Y  int

	// Board rows top to bottom; '.' is empty, otherwise the kind letter.
	Board []string
}

// Snapshot captures the current game.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Variant: g.variant,
		Seed:    g.seed,
		Tick:    g.tick,
		Locked:  g.locked,
		State:   StatePlaying,
		Board:   g.boardRows(),
	}

	switch {
	case g.gameOver:
		snap.State = StateGameOver
	case g.paused:
		snap.State = StatePaused
	}

	if p, ok := g.ActivePiece(); ok {
		snap.Kind = p.Kind.String()
		snap.Shape = p.Shape.String()
		snap.X, snap.Y = p.X, p.Y
	}
	return snap
}

func (g *Game) boardRows() []string {
	rows := make([]string, g.grid.Height())
	line := make([]byte, g.grid.Width())
	for y := range rows {
		for x := range line {
			cell := g.grid.At(x, y)
			line[x] = '.'
			if cell.Filled {
				k, _ := KindByColor(cell.Color)
				line[x] = k.Letter()
			}
		}
		rows[y] = string(line)
	}
	return rows
}
