// Package transport holds the playback flags shared between the control
// loop, the decode goroutine and the audio device callback. Each field is
// synchronized on its own; there are no multi-field transactions, so two
// updates issued together may be observed in either order.
package transport

import (
	"math"
	"sync"
	"sync/atomic"
)

const (
	MinVolume = 0.0
	MaxVolume = 2.0
)

// State is safe for concurrent use. Scalars use atomics so the device
// callback can read them without taking a lock; the pending seek and the
// elapsed counter sit behind small dedicated mutexes.
type State struct {
	paused  atomic.Bool
	stopped atomic.Bool
	volume  atomic.Uint32 // float32 bits

	seekMu      sync.Mutex
	pendingSeek float64
	seekSet     bool

	elapsedMu sync.Mutex
	elapsed   float64
}

func New() *State {
	s := &State{}
	s.SetVolume(1.0)
	return s
}

func (s *State) SetPaused(p bool) { s.paused.Store(p) }
func (s *State) Paused() bool     { return s.paused.Load() }

// TogglePause flips the paused flag and returns the new value.
func (s *State) TogglePause() bool {
	p := !s.paused.Load()
	s.paused.Store(p)
	return p
}

func (s *State) RequestStop()        { s.stopped.Store(true) }
func (s *State) StopRequested() bool { return s.stopped.Load() }

// RequestSeek records a seek target in seconds, clamped to zero. A later
// request overwrites an undelivered earlier one.
func (s *State) RequestSeek(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	s.seekMu.Lock()
	s.pendingSeek = seconds
	s.seekSet = true
	s.seekMu.Unlock()
}

// TakeSeek returns the pending seek target and clears it, so every request
// is delivered at most once.
func (s *State) TakeSeek() (float64, bool) {
	s.seekMu.Lock()
	defer s.seekMu.Unlock()
	if !s.seekSet {
		return 0, false
	}
	s.seekSet = false
	return s.pendingSeek, true
}

func (s *State) SeekPending() bool {
	s.seekMu.Lock()
	defer s.seekMu.Unlock()
	return s.seekSet
}

func (s *State) SetVolume(v float32) {
	s.volume.Store(math.Float32bits(clampVolume(v)))
}

func (s *State) Volume() float32 {
	return math.Float32frombits(s.volume.Load())
}

// AdjustVolume applies a delta and returns the clamped result.
func (s *State) AdjustVolume(delta float32) float32 {
	v := clampVolume(s.Volume() + delta)
	s.volume.Store(math.Float32bits(v))
	return v
}

func (s *State) SetElapsed(seconds float64) {
	s.elapsedMu.Lock()
	s.elapsed = seconds
	s.elapsedMu.Unlock()
}

func (s *State) AddElapsed(delta float64) {
	s.elapsedMu.Lock()
	s.elapsed += delta
	s.elapsedMu.Unlock()
}

func (s *State) Elapsed() float64 {
	s.elapsedMu.Lock()
	defer s.elapsedMu.Unlock()
	return s.elapsed
}

func clampVolume(v float32) float32 {
	if v < MinVolume {
		return MinVolume
	}
	if v > MaxVolume {
		return MaxVolume
	}
	return v
}
