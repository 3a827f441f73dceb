// Package device wraps PortAudio output: discovery of the default output
// device's stream format and a callback-driven output stream bound to it.
package device

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// Format is the output device's stream format.
type Format struct {
	SampleRate int
	Channels   int
}

// Init must be called once before any other function in this package, and
// paired with Terminate.
func Init() error {
	return portaudio.Initialize()
}

func Terminate() {
	portaudio.Terminate()
}

// DefaultFormat reports the default output device's native sample rate and
// channel count. Channels are capped at stereo; surround devices otherwise
// report their full layout and the player only produces meaningful content
// for the first channels anyway.
func DefaultFormat() (Format, error) {
	dev, err := portaudio.DefaultOutputDevice()
	if err != nil {
		return Format{}, fmt.Errorf("no output device: %w", err)
	}
	channels := dev.MaxOutputChannels
	if channels > 2 {
		channels = 2
	}
	if channels < 1 {
		return Format{}, fmt.Errorf("default device has no output channels")
	}
	return Format{
		SampleRate: int(dev.DefaultSampleRate),
		Channels:   channels,
	}, nil
}

// Output is an exclusively-owned, continuously running output stream. The
// callback is invoked on a device-managed thread with an interleaved
// buffer to fill; its length is up to the device.
type Output struct {
	stream *portaudio.Stream
}

// Open builds the output stream. The callback must be realtime-safe.
func Open(f Format, callback func(out []float32)) (*Output, error) {
	dev, err := portaudio.DefaultOutputDevice()
	if err != nil {
		return nil, fmt.Errorf("no output device: %w", err)
	}

	params := portaudio.LowLatencyParameters(nil, dev)
	params.Output.Channels = f.Channels
	params.SampleRate = float64(f.SampleRate)

	stream, err := portaudio.OpenStream(params, callback)
	if err != nil {
		return nil, fmt.Errorf("failed to open output stream: %w", err)
	}
	return &Output{stream: stream}, nil
}

func (o *Output) Start() error {
	return o.stream.Start()
}

func (o *Output) Close() error {
	o.stream.Stop()
	return o.stream.Close()
}
