package player

import (
	resampler "github.com/tphakala/go-audio-resampler"
)

// engine is the per-channel streaming surface of the resampler library.
type engine interface {
	Process([]float32) ([]float32, error)
	Flush() ([]float32, error)
}

// converter adapts interleaved source-rate chunks to the device rate. The
// library resamples one channel at a time with independent filter state, so
// chunks are deinterleaved, processed per channel and reassembled.
type converter struct {
	inRate   int
	outRate  int
	channels int
	engines  []engine
	planar   [][]float32
}

func newConverter(inRate, outRate, channels int) (*converter, error) {
	c := &converter{
		inRate:   inRate,
		outRate:  outRate,
		channels: channels,
		planar:   make([][]float32, channels),
	}
	if err := c.reset(); err != nil {
		return nil, err
	}
	return c, nil
}

// reset rebuilds the per-channel engines, discarding filter state. Called
// after a seek so the tail of pre-seek audio cannot bleed into the jump.
func (c *converter) reset() error {
	c.engines = make([]engine, c.channels)
	for ch := range c.engines {
		e, err := resampler.NewEngineFloat32(float64(c.inRate), float64(c.outRate), resampler.QualityMedium)
		if err != nil {
			return err
		}
		c.engines[ch] = e
	}
	return nil
}

func (c *converter) process(in []float32) ([]float32, error) {
	frames := len(in) / c.channels
	for ch := 0; ch < c.channels; ch++ {
		if cap(c.planar[ch]) < frames {
			c.planar[ch] = make([]float32, frames)
		}
		plane := c.planar[ch][:frames]
		for i := 0; i < frames; i++ {
			plane[i] = in[i*c.channels+ch]
		}
		c.planar[ch] = plane
	}

	outs := make([][]float32, c.channels)
	for ch := 0; ch < c.channels; ch++ {
		out, err := c.engines[ch].Process(c.planar[ch][:frames])
		if err != nil {
			return nil, err
		}
		outs[ch] = out
	}
	return interleave(outs), nil
}

// flush drains whatever the filters still hold, once, at end of stream.
func (c *converter) flush() ([]float32, error) {
	outs := make([][]float32, c.channels)
	for ch := 0; ch < c.channels; ch++ {
		out, err := c.engines[ch].Flush()
		if err != nil {
			return nil, err
		}
		outs[ch] = out
	}
	return interleave(outs), nil
}

func interleave(planes [][]float32) []float32 {
	channels := len(planes)
	frames := len(planes[0])
	for _, p := range planes[1:] {
		if len(p) < frames {
			frames = len(p)
		}
	}
	out := make([]float32, frames*channels)
	for ch, p := range planes {
		for i := 0; i < frames; i++ {
			out[i*channels+ch] = p[i]
		}
	}
	return out
}
