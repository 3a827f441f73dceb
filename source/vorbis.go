package source

import (
	"io"
	"os"

	"github.com/jfreymuth/oggvorbis"
)

const vorbisChunkSamples = 8192

type vorbisDecoder struct {
	f   *os.File
	r   *oggvorbis.Reader
	out []float32
}

func newVorbisDecoder(f *os.File) (Decoder, error) {
	r, err := oggvorbis.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &vorbisDecoder{
		f:   f,
		r:   r,
		out: make([]float32, vorbisChunkSamples),
	}, nil
}

func (v *vorbisDecoder) ReadChunk() ([]float32, error) {
	n, err := v.r.Read(v.out)
	if n > 0 {
		return v.out[:n], nil
	}
	if err == nil {
		err = io.EOF
	}
	return nil, err
}

func (v *vorbisDecoder) Seek(seconds float64) error {
	return v.r.SetPosition(int64(seconds * float64(v.r.SampleRate())))
}

func (v *vorbisDecoder) SampleRate() int { return v.r.SampleRate() }
func (v *vorbisDecoder) Channels() int   { return v.r.Channels() }

func (v *vorbisDecoder) Duration() float64 {
	if v.r.Length() <= 0 {
		return 0
	}
	return float64(v.r.Length()) / float64(v.r.SampleRate())
}

func (v *vorbisDecoder) Close() error { return v.f.Close() }
