// Package replay records the inbound message stream of a run and plays it
// back headlessly. Recordings are msgpack files.
package replay

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

// FormatVersion is written into every recording.
const FormatVersion = 1

// ErrVersion is returned when loading a recording with another format version.
var ErrVersion = errors.New("replay: unsupported format version")

// Entry is one inbound message: a gravity tick or a player command.
type Entry struct {
	Tick   bool        `msgpack:"t,omitempty"`
	Action core.Action `msgpack:"a,omitempty"`
}

// Recording is everything needed to reproduce a run.
type Recording struct {
	Version    int       `msgpack:"version"`
	ID         string    `msgpack:"id"`
	Variant    string    `msgpack:"variant"`
	Seed       int64     `msgpack:"seed"`
	Width      int       `msgpack:"width"`
	Height     int       `msgpack:"height"`
	Floor      string    `msgpack:"floor"`
	Kicks      bool      `msgpack:"kicks"`
	RecordedAt time.Time `msgpack:"recorded_at"`
	Entries    []Entry   `msgpack:"entries"`
}

// Options returns the engine rules stored in the recording.
// The board size is checked so a damaged file cannot allocate an absurd grid.
func (r Recording) Options() (tetris.Options, error) {
	if err := config.ValidateBoard(r.Width, r.Height); err != nil {
		return tetris.Options{}, err
	}
	floor, err := tetris.ParseFloorRule(r.Floor)
	if err != nil {
		return tetris.Options{}, err
	}
	return tetris.Options{Width: r.Width, Height: r.Height, Floor: floor, Kicks: r.Kicks}, nil
}

// Messages converts the entries into loop messages.
func (r Recording) Messages() []tetris.Msg {
	msgs := make([]tetris.Msg, 0, len(r.Entries))
	for _, e := range r.Entries {
		if e.Tick {
			msgs = append(msgs, tetris.TickMsg{})
		} else {
			msgs = append(msgs, tetris.CommandMsg{Action: e.Action})
		}
	}
	return msgs
}

// Recorder collects entries while a frontend drives a game.
type Recorder struct {
	mu  sync.Mutex
	rec Recording
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Start begins a recording for g, which must already be reset.
// Any previously collected entries are discarded.
func (r *Recorder) Start(g *tetris.Game) {
	opts := g.Options()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.rec = Recording{
		Version:    FormatVersion,
		ID:         uuid.NewString(),
		Variant:    g.ID(),
		Seed:       g.Seed(),
		Width:      opts.Width,
		Height:     opts.Height,
		Floor:      opts.Floor.String(),
		Kicks:      opts.Kicks,
		RecordedAt: time.Now().UTC(),
	}
}

// Tick records a gravity step.
func (r *Recorder) Tick() {
	r.mu.Lock()
	r.rec.Entries = append(r.rec.Entries, Entry{Tick: true})
	r.mu.Unlock()
}

// Command records a player command.
func (r *Recorder) Command(a core.Action) {
	r.mu.Lock()
	r.rec.Entries = append(r.rec.Entries, Entry{Action: a})
	r.mu.Unlock()
}

// Observe records msg; it has the shape of a loop observer.
func (r *Recorder) Observe(msg tetris.Msg, _ core.StepResult, _ tetris.Snapshot) {
	switch m := msg.(type) {
	case tetris.TickMsg:
		r.Tick()
	case tetris.CommandMsg:
		if m.Action != core.ActionQuit {
			r.Command(m.Action)
		}
	}
}

// Recording returns a copy of what has been recorded so far.
func (r *Recorder) Recording() Recording {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.rec
	out.Entries = append([]Entry(nil), r.rec.Entries...)
	return out
}

// Marshal encodes a recording.
func Marshal(rec Recording) ([]byte, error) {
	data, err := msgpack.Marshal(&rec)
	if err != nil {
		return nil, fmt.Errorf("replay: encode: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a recording and checks its format version.
func Unmarshal(data []byte) (Recording, error) {
	var rec Recording
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return Recording{}, fmt.Errorf("replay: decode: %w", err)
	}
	if rec.Version != FormatVersion {
		return Recording{}, fmt.Errorf("%w: %d", ErrVersion, rec.Version)
	}
	if _, err := rec.Options(); err != nil {
		return Recording{}, fmt.Errorf("replay: %w", err)
	}
	return rec, nil
}

// Save writes a recording to path.
func Save(path string, rec Recording) error {
	data, err := Marshal(rec)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("replay: write %s: %w", path, err)
	}
	return nil
}

// Load reads a recording from path.
func Load(path string) (Recording, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Recording{}, fmt.Errorf("replay: read %s: %w", path, err)
	}
	return Unmarshal(data)
}

// Play reruns a recording headlessly and returns the final game.
// observe may be nil.
func Play(rec Recording, observe tetris.Observer) (*tetris.Game, error) {
	opts, err := rec.Options()
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}

	g := tetris.NewWithOptions(rec.Variant, opts)
	cfg := core.DefaultConfig()
	cfg.Seed = rec.Seed
	g.Reset(cfg)

	loop := tetris.NewLoop(g, 0, observe)
	for _, msg := range rec.Messages() {
		loop.Apply(msg)
	}
	return g, nil
}
