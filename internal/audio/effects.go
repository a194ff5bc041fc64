package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
)

// oscillator generates a fixed-length tone.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a tone streamer that ends after duration.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1.0
			if o.phase >= 0.5 {
				val = -1.0
			}
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a stream in over attack and out over release.
type envelope struct {
	streamer      beep.Streamer
	position      int
	attackSamples int
	releaseStart  int
	totalSamples  int
}

// NewEnvelope wraps s with a linear attack and release.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	return &envelope{
		streamer:      s,
		attackSamples: rate.N(attack),
		releaseStart:  max(total-rate.N(release), 0),
		totalSamples:  total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= e.releaseStart && e.totalSamples > e.releaseStart {
			vol = float64(e.totalSamples-e.position) / float64(e.totalSamples-e.releaseStart)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly; zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Cue is a sound played in response to a game event.
type Cue int

const (
	CueRotate Cue = iota
	CueLock
	CueGameOver
)

// note is one segment of a cue.
type note struct {
	freq     float64
	duration time.Duration
	wave     WaveType
}

var cueNotes = map[Cue][]note{
	CueRotate: {
		{freq: 660, duration: 40 * time.Millisecond, wave: WaveSine},
	},
	CueLock: {
		{freq: 220, duration: 60 * time.Millisecond, wave: WaveSquare},
	},
	CueGameOver: {
		{freq: 440, duration: 150 * time.Millisecond, wave: WaveSquare},
		{freq: 330, duration: 150 * time.Millisecond, wave: WaveSquare},
		{freq: 220, duration: 300 * time.Millisecond, wave: WaveSquare},
	},
}

// CueDuration returns the total length of a cue.
func CueDuration(c Cue) time.Duration {
	var d time.Duration
	for _, n := range cueNotes[c] {
		d += n.duration
	}
	return d
}

// NewCue builds the streamer for a cue at the given volume.
// It returns nil for an unknown cue.
func NewCue(c Cue, volume float64, rate beep.SampleRate) beep.Streamer {
	notes, ok := cueNotes[c]
	if !ok {
		return nil
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		osc := NewOscillator(n.freq, n.duration, n.wave, rate)
		parts = append(parts, NewEnvelope(osc, n.duration, 5*time.Millisecond, n.duration/3, rate))
	}
	return newVolume(beep.Seq(parts...), volume)
}
