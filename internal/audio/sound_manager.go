// Package audio plays short synthesized cues for game events through the
// system speaker.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

const sampleRate = beep.SampleRate(48000)

// SoundManager mixes cues into a single speaker stream.
// All methods are no-ops until Initialize succeeds.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewSoundManager creates a sound manager with the given volume (0.0 - 1.0).
func NewSoundManager(volume float64) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Initialize opens the speaker.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and closes the speaker.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

// Play queues a cue.
func (sm *SoundManager) Play(c Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	s := NewCue(c, sm.volume, sampleRate)
	if s == nil {
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// PlayEvents plays the cue for the most significant event of a step.
func (sm *SoundManager) PlayEvents(res core.StepResult) {
	if c, ok := CueFor(res); ok {
		sm.Play(c)
	}
}

// CueFor picks the cue for a step result, if any.
// Game over outranks lock, which outranks rotate.
func CueFor(res core.StepResult) (Cue, bool) {
	switch {
	case res.Has(core.EventGameOver):
		return CueGameOver, true
	case res.Has(core.EventLocked):
		return CueLock, true
	case res.Has(core.EventRotated):
		return CueRotate, true
	}
	return 0, false
}
