package transport

import (
	"sync"
	"testing"
)

func TestVolumeClamp(t *testing.T) {
	s := New()
	if v := s.Volume(); v != 1.0 {
		t.Fatalf("initial volume = %v, want 1.0", v)
	}

	for i := 0; i < 20; i++ {
		s.AdjustVolume(0.1)
	}
	if v := s.Volume(); v != MaxVolume {
		t.Errorf("after twenty ups, volume = %v, want %v", v, MaxVolume)
	}

	for i := 0; i < 40; i++ {
		s.AdjustVolume(-0.1)
	}
	if v := s.Volume(); v != MinVolume {
		t.Errorf("after forty downs, volume = %v, want %v", v, MinVolume)
	}

	s.SetVolume(5)
	if v := s.Volume(); v != MaxVolume {
		t.Errorf("SetVolume(5) stored %v, want %v", v, MaxVolume)
	}
}

func TestSeekClampAndTakeOnce(t *testing.T) {
	s := New()

	if _, ok := s.TakeSeek(); ok {
		t.Fatal("TakeSeek reported a seek before any request")
	}

	// A back-seek from early in the track must never go negative.
	s.RequestSeek(2.5 - 5.0)
	target, ok := s.TakeSeek()
	if !ok {
		t.Fatal("TakeSeek missed the request")
	}
	if target != 0 {
		t.Errorf("target = %v, want 0 (clamped)", target)
	}

	if _, ok := s.TakeSeek(); ok {
		t.Error("TakeSeek delivered the same request twice")
	}
}

func TestSeekOverwrite(t *testing.T) {
	s := New()
	s.RequestSeek(10)
	s.RequestSeek(20)

	if !s.SeekPending() {
		t.Fatal("SeekPending = false with a request outstanding")
	}
	target, ok := s.TakeSeek()
	if !ok || target != 20 {
		t.Errorf("TakeSeek = (%v, %v), want (20, true)", target, ok)
	}
	if s.SeekPending() {
		t.Error("SeekPending = true after TakeSeek")
	}
}

func TestPauseAndStop(t *testing.T) {
	s := New()

	if s.TogglePause() != true || !s.Paused() {
		t.Error("first toggle should pause")
	}
	if s.TogglePause() != false || s.Paused() {
		t.Error("second toggle should resume")
	}

	if s.StopRequested() {
		t.Fatal("stop requested before RequestStop")
	}
	s.RequestStop()
	if !s.StopRequested() {
		t.Error("stop not observed after RequestStop")
	}
}

func TestElapsed(t *testing.T) {
	s := New()
	s.AddElapsed(0.25)
	s.AddElapsed(0.25)
	if e := s.Elapsed(); e != 0.5 {
		t.Errorf("Elapsed = %v, want 0.5", e)
	}
	s.SetElapsed(42)
	if e := s.Elapsed(); e != 42 {
		t.Errorf("Elapsed = %v after SetElapsed, want 42", e)
	}
}

// TestConcurrentAccess exercises every field from multiple goroutines under
// the race detector.
func TestConcurrentAccess(t *testing.T) {
	s := New()
	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			s.TogglePause()
			s.AdjustVolume(0.01)
			s.RequestSeek(float64(i))
		}
		s.RequestStop()
	}()
	go func() {
		defer wg.Done()
		for !s.StopRequested() {
			s.Paused()
			s.Volume()
			s.TakeSeek()
			s.AddElapsed(0.001)
		}
	}()
	go func() {
		defer wg.Done()
		for !s.StopRequested() {
			s.Elapsed()
			s.SeekPending()
		}
	}()
	wg.Wait()

	if v := s.Volume(); v < MinVolume || v > MaxVolume {
		t.Errorf("volume %v escaped its bounds", v)
	}
}
