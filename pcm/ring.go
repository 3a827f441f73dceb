// Package pcm provides the sample plumbing between the decode goroutine and
// the audio device callback: a bounded ring of interleaved float32 samples
// and a channel-layout remapper.
package pcm

import "sync"

// Ring is a bounded FIFO of interleaved samples written by a single
// producer and drained by a single consumer. The consumer side never
// blocks; when the ring runs dry it hands out silence. Backpressure is the
// producer's job: it checks Len against its high-water mark before writing.
type Ring struct {
	mu   sync.Mutex
	buf  []float32
	head int // index of the oldest sample
	size int // samples currently buffered
}

func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{buf: make([]float32, capacity)}
}

// Write appends samples, up to the remaining capacity, and reports how many
// were accepted. It never grows the buffer.
func (r *Ring) Write(samples []float32) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	free := len(r.buf) - r.size
	n := len(samples)
	if n > free {
		n = free
	}
	tail := (r.head + r.size) % len(r.buf)
	first := copy(r.buf[tail:], samples[:n])
	if first < n {
		copy(r.buf, samples[first:n])
	}
	r.size += n
	return n
}

// ReadOrSilence fills dst with buffered samples and zero-fills whatever is
// left once the ring is empty. It never blocks, so it is safe to call from
// the realtime device callback.
func (r *Ring) ReadOrSilence(dst []float32) {
	r.mu.Lock()
	n := len(dst)
	if n > r.size {
		n = r.size
	}
	first := copy(dst[:n], r.buf[r.head:])
	if first < n {
		copy(dst[first:n], r.buf)
	}
	r.head = (r.head + n) % len(r.buf)
	r.size -= n
	r.mu.Unlock()

	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
}

func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

func (r *Ring) Cap() int { return len(r.buf) }

// Clear discards all buffered samples. Used on seek so stale pre-seek audio
// is never played after the jump.
func (r *Ring) Clear() {
	r.mu.Lock()
	r.head = 0
	r.size = 0
	r.mu.Unlock()
}
