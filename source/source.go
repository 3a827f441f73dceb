// Package source turns an audio file into a stream of interleaved float32
// sample chunks at the file's native sample rate and channel count. The
// container/codec handling is delegated entirely to format libraries; the
// rest of the program only sees the Decoder contract.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Decoder yields successive chunks of interleaved samples. ReadChunk
// returns io.EOF at the clean end of the stream; any other error is a read
// failure. Returned slices are only valid until the next call.
type Decoder interface {
	ReadChunk() ([]float32, error)
	// Seek jumps to the given position in seconds. The stream continues
	// from there on the next ReadChunk.
	Seek(seconds float64) error
	SampleRate() int
	Channels() int
	// Duration reports the track length in seconds, or 0 when unknown.
	Duration() float64
	Close() error
}

var ErrUnknownFormat = errors.New("unrecognized audio format")

type fileFormat int

const (
	formatUnknown fileFormat = iota
	formatMP3
	formatVorbis
	formatFLAC
	formatWAV
)

// Open detects the file's format from its extension, falling back to
// content sniffing, and returns a decoder for it.
func Open(path string) (Decoder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	header := make([]byte, 12)
	n, _ := io.ReadFull(f, header)
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, err
	}

	switch detectFormat(filepath.Ext(path), header[:n]) {
	case formatMP3:
		return newMP3Decoder(f)
	case formatVorbis:
		return newVorbisDecoder(f)
	case formatFLAC:
		return newFLACDecoder(f)
	case formatWAV:
		return newWAVDecoder(f)
	default:
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
}

func detectFormat(ext string, header []byte) fileFormat {
	switch strings.ToLower(ext) {
	case ".mp3":
		return formatMP3
	case ".ogg", ".oga":
		return formatVorbis
	case ".flac":
		return formatFLAC
	case ".wav", ".wave":
		return formatWAV
	}
	return sniffFormat(header)
}

func sniffFormat(header []byte) fileFormat {
	switch {
	case bytes.HasPrefix(header, []byte("ID3")):
		return formatMP3
	case len(header) >= 2 && header[0] == 0xFF && header[1]&0xE0 == 0xE0:
		// Bare MPEG audio frame sync, no ID3 header.
		return formatMP3
	case bytes.HasPrefix(header, []byte("OggS")):
		return formatVorbis
	case bytes.HasPrefix(header, []byte("fLaC")):
		return formatFLAC
	case bytes.HasPrefix(header, []byte("RIFF")) && len(header) >= 12 &&
		bytes.Equal(header[8:12], []byte("WAVE")):
		return formatWAV
	}
	return formatUnknown
}
