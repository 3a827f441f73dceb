package source

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const wavChunkFrames = 4096

type wavDecoder struct {
	f        *os.File
	d        *wav.Decoder
	buf      *audio.IntBuffer
	out      []float32
	pos      int64 // frames consumed since the start of the PCM data
	rate     int
	channels int
	scale    float32
	duration float64
}

func newWAVDecoder(f *os.File) (Decoder, error) {
	d := wav.NewDecoder(f)
	d.ReadInfo()
	if !d.IsValidFile() {
		f.Close()
		return nil, fmt.Errorf("not a playable wav file")
	}

	rate := int(d.SampleRate)
	channels := int(d.NumChans)
	dur, err := d.Duration()
	if err != nil {
		dur = 0
	}
	if err := d.FwdToPCM(); err != nil {
		f.Close()
		return nil, err
	}

	return &wavDecoder{
		f:        f,
		d:        d,
		rate:     rate,
		channels: channels,
		scale:    float32(int64(1) << (d.BitDepth - 1)),
		duration: dur.Seconds(),
		buf: &audio.IntBuffer{
			Format: &audio.Format{NumChannels: channels, SampleRate: rate},
			Data:   make([]int, wavChunkFrames*channels),
		},
		out: make([]float32, wavChunkFrames*channels),
	}, nil
}

func (w *wavDecoder) ReadChunk() ([]float32, error) {
	n, err := w.d.PCMBuffer(w.buf)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, io.EOF
	}
	for i := 0; i < n; i++ {
		w.out[i] = float32(w.buf.Data[i]) / w.scale
	}
	w.pos += int64(n / w.channels)
	return w.out[:n], nil
}

// Seek repositions the stream by frame count. The wav decoder has no
// sample-level seek, but PCM frames are fixed-size, so a backward jump
// rewinds the file and re-enters the data chunk, and the remaining distance
// is skipped by reading.
func (w *wavDecoder) Seek(seconds float64) error {
	target := int64(seconds * float64(w.rate))
	if target < w.pos {
		if _, err := w.f.Seek(0, io.SeekStart); err != nil {
			return err
		}
		d := wav.NewDecoder(w.f)
		d.ReadInfo()
		if err := d.FwdToPCM(); err != nil {
			return err
		}
		w.d = d
		w.pos = 0
	}

	for w.pos < target {
		want := (target - w.pos) * int64(w.channels)
		if max := int64(len(w.buf.Data)); want > max {
			want = max
		}
		scratch := &audio.IntBuffer{Format: w.buf.Format, Data: w.buf.Data[:want]}
		n, err := w.d.PCMBuffer(scratch)
		if err != nil {
			return err
		}
		if n == 0 {
			break // past the end; the next ReadChunk reports EOF
		}
		w.pos += int64(n / w.channels)
	}
	return nil
}

func (w *wavDecoder) SampleRate() int   { return w.rate }
func (w *wavDecoder) Channels() int     { return w.channels }
func (w *wavDecoder) Duration() float64 { return w.duration }
func (w *wavDecoder) Close() error      { return w.f.Close() }
