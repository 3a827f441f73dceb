package source

import (
	"os"

	"github.com/mewkiz/flac"
)

type flacDecoder struct {
	f      *os.File
	stream *flac.Stream
	out    []float32
	scale  float32
}

func newFLACDecoder(f *os.File) (Decoder, error) {
	stream, err := flac.NewSeek(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &flacDecoder{
		f:      f,
		stream: stream,
		scale:  float32(int64(1) << (stream.Info.BitsPerSample - 1)),
	}, nil
}

// ReadChunk decodes one FLAC frame and interleaves its per-channel
// subframes.
func (d *flacDecoder) ReadChunk() ([]float32, error) {
	frame, err := d.stream.ParseNext()
	if err != nil {
		return nil, err // io.EOF at the clean end
	}

	nch := len(frame.Subframes)
	if nch == 0 {
		return nil, nil
	}
	nsamples := len(frame.Subframes[0].Samples)

	if need := nch * nsamples; cap(d.out) < need {
		d.out = make([]float32, need)
	}
	out := d.out[:nch*nsamples]
	for ch := 0; ch < nch; ch++ {
		samples := frame.Subframes[ch].Samples
		for i, s := range samples {
			out[i*nch+ch] = float32(s) / d.scale
		}
	}
	return out, nil
}

func (d *flacDecoder) Seek(seconds float64) error {
	target := uint64(seconds * float64(d.stream.Info.SampleRate))
	_, err := d.stream.Seek(target)
	return err
}

func (d *flacDecoder) SampleRate() int { return int(d.stream.Info.SampleRate) }
func (d *flacDecoder) Channels() int   { return int(d.stream.Info.NChannels) }

func (d *flacDecoder) Duration() float64 {
	if d.stream.Info.NSamples == 0 {
		return 0
	}
	return float64(d.stream.Info.NSamples) / float64(d.stream.Info.SampleRate)
}

func (d *flacDecoder) Close() error { return d.f.Close() }
