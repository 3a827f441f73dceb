package pcm

import (
	"testing"
	"time"
)

func TestRingWriteRead(t *testing.T) {
	r := NewRing(8)

	n := r.Write([]float32{1, 2, 3, 4, 5, 6})
	if n != 6 {
		t.Fatalf("Write accepted %d samples, want 6", n)
	}
	if r.Len() != 6 {
		t.Fatalf("Len = %d, want 6", r.Len())
	}

	dst := make([]float32, 4)
	r.ReadOrSilence(dst)
	for i, want := range []float32{1, 2, 3, 4} {
		if dst[i] != want {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want)
		}
	}

	// 2 samples resident, head has advanced: this write wraps around.
	if n := r.Write([]float32{7, 8, 9, 10, 11, 12}); n != 6 {
		t.Fatalf("wrapped Write accepted %d samples, want 6", n)
	}

	dst = make([]float32, 8)
	r.ReadOrSilence(dst)
	for i, want := range []float32{5, 6, 7, 8, 9, 10, 11, 12} {
		if dst[i] != want {
			t.Errorf("after wrap, dst[%d] = %v, want %v", i, dst[i], want)
		}
	}
}

func TestRingWriteBounded(t *testing.T) {
	r := NewRing(4)

	if n := r.Write([]float32{1, 2, 3, 4, 5, 6}); n != 4 {
		t.Fatalf("Write accepted %d samples, want 4 (capacity)", n)
	}
	if n := r.Write([]float32{7}); n != 0 {
		t.Fatalf("Write into a full ring accepted %d samples, want 0", n)
	}
}

func TestReadOrSilenceOnEmpty(t *testing.T) {
	r := NewRing(16)

	dst := []float32{9, 9, 9, 9}
	done := make(chan struct{})
	go func() {
		r.ReadOrSilence(dst)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ReadOrSilence blocked on an empty ring")
	}
	for i, v := range dst {
		if v != 0 {
			t.Errorf("dst[%d] = %v, want silence", i, v)
		}
	}
}

func TestReadOrSilencePartial(t *testing.T) {
	r := NewRing(16)
	r.Write([]float32{1, 2, 3})

	dst := []float32{9, 9, 9, 9, 9, 9}
	r.ReadOrSilence(dst)
	for i, want := range []float32{1, 2, 3, 0, 0, 0} {
		if dst[i] != want {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want)
		}
	}
	if r.Len() != 0 {
		t.Errorf("Len = %d after full drain, want 0", r.Len())
	}
}

func TestRingClear(t *testing.T) {
	r := NewRing(8)
	r.Write([]float32{1, 2, 3, 4})
	r.Clear()

	if r.Len() != 0 {
		t.Fatalf("Len = %d after Clear, want 0", r.Len())
	}
	dst := make([]float32, 2)
	r.ReadOrSilence(dst)
	if dst[0] != 0 || dst[1] != 0 {
		t.Errorf("got %v after Clear, want silence", dst)
	}
}

// TestRingSPSC drains a paced producer from a separate goroutine and checks
// that samples come out complete and in order, with silence (zeros) freely
// interleaved when the consumer outruns the producer.
func TestRingSPSC(t *testing.T) {
	const total = 2000
	r := NewRing(64)

	go func() {
		next := float32(1)
		for next <= total {
			chunk := make([]float32, 0, 16)
			for len(chunk) < 16 && next <= total {
				chunk = append(chunk, next)
				next++
			}
			for len(chunk) > 0 {
				n := r.Write(chunk)
				chunk = chunk[n:]
				if n == 0 {
					time.Sleep(time.Millisecond)
				}
			}
		}
	}()

	var got []float32
	dst := make([]float32, 24)
	deadline := time.Now().Add(5 * time.Second)
	for len(got) < total {
		if time.Now().After(deadline) {
			t.Fatalf("timed out after %d of %d samples", len(got), total)
		}
		r.ReadOrSilence(dst)
		for _, v := range dst {
			if v != 0 {
				got = append(got, v)
			}
		}
	}

	for i, v := range got {
		if v != float32(i+1) {
			t.Fatalf("sample %d = %v, want %v (out of order or lost)", i, v, i+1)
		}
	}
}
