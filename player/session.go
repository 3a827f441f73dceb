// Package player runs the producer/consumer pipeline of a single playback
// session: a decode goroutine that paces interleaved samples into a bounded
// ring, and a realtime callback that drains it into the device buffer.
package player

import (
	"fmt"
	"io"
	"log"
	"time"

	"strum/pcm"
	"strum/source"
	"strum/transport"
)

const (
	// How long the producer sleeps between checks while paused or waiting
	// for ring headroom. Both bound how late a stop or seek can be noticed.
	PAUSE_POLL_INTERVAL    = 10 * time.Millisecond
	HEADROOM_POLL_INTERVAL = 20 * time.Millisecond
	DRAIN_POLL_INTERVAL    = 10 * time.Millisecond

	// Ring high-water mark in seconds of device-rate audio. The ring itself
	// is twice this, so a whole decoded chunk always fits once the producer
	// has seen headroom.
	BUFFER_SECONDS = 2

	// Consecutive decode failures tolerated before the stream is declared
	// unrecoverable. A single bad unit is skipped.
	MAX_DECODE_FAILURES = 5
)

// OutputFormat is the device-side stream format, discovered from the
// output device and fixed for the session.
type OutputFormat struct {
	SampleRate int
	Channels   int
}

// Session owns the state of one playback run: one file, one device stream.
type Session struct {
	src       source.Decoder
	out       OutputFormat
	state     *transport.State
	ring      *pcm.Ring
	conv      *converter // nil when source and device rates match
	highWater int

	events chan Event
	done   chan struct{}
	err    error // fatal in-stream error, valid once done is closed
}

func NewSession(src source.Decoder, out OutputFormat, state *transport.State) (*Session, error) {
	highWater := out.SampleRate * out.Channels * BUFFER_SECONDS
	s := &Session{
		src:       src,
		out:       out,
		state:     state,
		ring:      pcm.NewRing(highWater * 2),
		highWater: highWater,
		events:    make(chan Event, 16),
		done:      make(chan struct{}),
	}
	if src.SampleRate() != out.SampleRate {
		conv, err := newConverter(src.SampleRate(), out.SampleRate, src.Channels())
		if err != nil {
			return nil, fmt.Errorf("failed to set up resampler: %w", err)
		}
		s.conv = conv
	}
	return s, nil
}

// Done is closed when the decode goroutine terminates, whether by end of
// stream, stop request or fatal error.
func (s *Session) Done() <-chan struct{} { return s.done }

// Err reports the fatal in-stream error, if any. Only valid after Done.
func (s *Session) Err() error { return s.err }

// Events delivers recoverable in-stream error reports.
func (s *Session) Events() <-chan Event { return s.events }

// Callback fills the device's output buffer. It runs on a device-managed
// thread at a cadence the program does not control, so it must not block
// on the producer and must not allocate: silence while paused, otherwise a
// bulk ring drain scaled by the current volume.
func (s *Session) Callback(out []float32) {
	if s.state.Paused() {
		for i := range out {
			out[i] = 0
		}
		return
	}
	s.ring.ReadOrSilence(out)
	if vol := s.state.Volume(); vol != 1 {
		for i := range out {
			out[i] *= vol
		}
	}
}

// Run is the decode-produce loop. It should be started on its own
// goroutine and exits on stop request, end of stream or a fatal error.
func (s *Session) Run() {
	defer close(s.done)

	failures := 0
	for {
		if s.state.StopRequested() {
			return
		}
		if s.state.Paused() {
			time.Sleep(PAUSE_POLL_INTERVAL)
			continue
		}
		if target, ok := s.state.TakeSeek(); ok {
			s.seek(target)
			continue
		}

		chunk, err := s.src.ReadChunk()
		if err == io.EOF {
			s.finish()
			return
		}
		if err != nil {
			failures++
			if failures >= MAX_DECODE_FAILURES {
				s.err = fmt.Errorf("stream unreadable after %d consecutive failures: %w", failures, err)
				log.Println(s.err)
				return
			}
			s.report(fmt.Errorf("skipping undecodable unit: %w", err))
			continue
		}
		failures = 0
		if len(chunk) == 0 {
			continue
		}

		srcSamples := len(chunk)
		samples := chunk
		if s.conv != nil {
			samples, err = s.conv.process(samples)
			if err != nil {
				s.report(fmt.Errorf("resample failed, unit dropped: %w", err))
				continue
			}
		}
		samples = pcm.Remap(samples, s.src.Channels(), s.out.Channels)

		if !s.waitForHeadroom() {
			continue // stop or seek is handled at the loop head; chunk is stale
		}
		s.ring.Write(samples)
		s.state.AddElapsed(float64(srcSamples) / float64(s.src.SampleRate()*s.src.Channels()))
	}
}

// waitForHeadroom parks the producer while the ring sits above its
// high-water mark. Stop and seek requests interrupt the wait so neither is
// starved by a full buffer; in both cases the pending chunk is discarded.
func (s *Session) waitForHeadroom() bool {
	for s.ring.Len() > s.highWater {
		if s.state.StopRequested() || s.state.SeekPending() {
			return false
		}
		time.Sleep(HEADROOM_POLL_INTERVAL)
	}
	return true
}

func (s *Session) seek(target float64) {
	// Decoders disagree on seeks past the end, so the target is clamped to
	// the track length up front: a far-past-end seek lands on the end and
	// the next read reports a clean end of stream.
	if d := s.src.Duration(); d > 0 && target > d {
		target = d
	}
	if err := s.src.Seek(target); err != nil {
		s.report(fmt.Errorf("seek to %.1fs failed: %w", target, err))
		return // keep playing from the prior position
	}
	if s.conv != nil {
		if err := s.conv.reset(); err != nil {
			s.report(fmt.Errorf("resampler reset failed: %w", err))
		}
	}
	s.ring.Clear()
	s.state.SetElapsed(target)
}

// finish flushes the resampler tail and lets the ring drain so the last
// queued audio actually reaches the device before the goroutine exits.
func (s *Session) finish() {
	if s.conv != nil {
		tail, err := s.conv.flush()
		if err == nil && len(tail) > 0 {
			s.ring.Write(pcm.Remap(tail, s.src.Channels(), s.out.Channels))
		}
	}
	for s.ring.Len() > 0 {
		if s.state.StopRequested() {
			return
		}
		time.Sleep(DRAIN_POLL_INTERVAL)
	}
}

func (s *Session) report(err error) {
	log.Println(err)
	select {
	case s.events <- ErrorEvent{Err: err}:
	default:
	}
}
