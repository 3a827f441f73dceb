package source

import (
	"encoding/binary"
	"io"
	"os"

	mp3 "github.com/hajimehoshi/go-mp3"
)

// go-mp3 emits 16-bit little-endian samples, always two channels, four
// bytes per frame.
const (
	mp3Channels      = 2
	mp3BytesPerFrame = 4
	mp3ChunkBytes    = 4096 * mp3BytesPerFrame
)

type mp3Decoder struct {
	f      *os.File
	d      *mp3.Decoder
	raw    []byte
	out    []float32
	length int64 // total decoded bytes, <= 0 when unknown
}

func newMP3Decoder(f *os.File) (Decoder, error) {
	d, err := mp3.NewDecoder(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &mp3Decoder{
		f:      f,
		d:      d,
		raw:    make([]byte, mp3ChunkBytes),
		out:    make([]float32, mp3ChunkBytes/2),
		length: d.Length(),
	}, nil
}

func (m *mp3Decoder) ReadChunk() ([]float32, error) {
	n, err := io.ReadFull(m.d, m.raw)
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, err // io.EOF at the clean end
	}
	n -= n % mp3BytesPerFrame // a truncated trailing frame is dropped
	if n == 0 {
		return nil, io.EOF
	}
	for i := 0; i < n/2; i++ {
		s := int16(binary.LittleEndian.Uint16(m.raw[i*2:]))
		m.out[i] = float32(s) / 32768
	}
	return m.out[:n/2], nil
}

func (m *mp3Decoder) Seek(seconds float64) error {
	offset := int64(seconds*float64(m.d.SampleRate())) * mp3BytesPerFrame
	_, err := m.d.Seek(offset, io.SeekStart)
	return err
}

func (m *mp3Decoder) SampleRate() int { return m.d.SampleRate() }
func (m *mp3Decoder) Channels() int   { return mp3Channels }

func (m *mp3Decoder) Duration() float64 {
	if m.length <= 0 {
		return 0
	}
	frames := m.length / mp3BytesPerFrame
	return float64(frames) / float64(m.d.SampleRate())
}

func (m *mp3Decoder) Close() error { return m.f.Close() }
