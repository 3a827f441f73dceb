package source

import "testing"

func TestDetectFormatByExtension(t *testing.T) {
	tests := []struct {
		ext  string
		want fileFormat
	}{
		{".mp3", formatMP3},
		{".MP3", formatMP3},
		{".ogg", formatVorbis},
		{".oga", formatVorbis},
		{".flac", formatFLAC},
		{".wav", formatWAV},
		{".wave", formatWAV},
	}
	for _, tt := range tests {
		if got := detectFormat(tt.ext, nil); got != tt.want {
			t.Errorf("detectFormat(%q) = %v, want %v", tt.ext, got, tt.want)
		}
	}
}

func TestSniffFallback(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
		want   fileFormat
	}{
		{"id3 tagged mp3", []byte("ID3\x04\x00\x00\x00\x00\x00\x00\x00\x00"), formatMP3},
		{"bare mpeg frame", []byte{0xFF, 0xFB, 0x90, 0x00, 0, 0, 0, 0, 0, 0, 0, 0}, formatMP3},
		{"ogg", []byte("OggS\x00\x02\x00\x00\x00\x00\x00\x00"), formatVorbis},
		{"flac", []byte("fLaC\x00\x00\x00\x22\x10\x00\x10\x00"), formatFLAC},
		{"wav", []byte("RIFF\x24\x08\x00\x00WAVE"), formatWAV},
		{"riff but not wave", []byte("RIFF\x24\x08\x00\x00AVI "), formatUnknown},
		{"garbage", []byte("hello, world"), formatUnknown},
		{"empty", nil, formatUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// An unknown extension forces the content sniff.
			if got := detectFormat(".dat", tt.header); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtensionHintWinsOverContent(t *testing.T) {
	// The extension is a hint taken at face value; sniffing is only a
	// fallback for unrecognized extensions.
	header := []byte("OggS\x00\x02\x00\x00\x00\x00\x00\x00")
	if got := detectFormat(".mp3", header); got != formatMP3 {
		t.Errorf("got %v, want %v", got, formatMP3)
	}
}
