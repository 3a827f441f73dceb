package source

import (
	"os"

	"github.com/dhowden/tag"
)

// Tags is the subset of track metadata shown by the player.
type Tags struct {
	Artist string
	Title  string
	Album  string
}

// ReadTags extracts metadata from the file. A file without tags is not an
// error; the zero value is returned for whatever is missing.
func ReadTags(path string) (Tags, error) {
	f, err := os.Open(path)
	if err != nil {
		return Tags{}, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return Tags{}, err
	}
	return Tags{
		Artist: m.Artist(),
		Title:  m.Title(),
		Album:  m.Album(),
	}, nil
}
