// Package meta reads the title tag out of audio files. MP3 and FLAC go
// straight through dhowden/tag (ID3v1/v2 and Vorbis comments); WAV files
// keep their ID3 tag inside a RIFF chunk, which wav.go digs out first.
package meta

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// Reader resolves the desired filename for an audio file from its
// metadata. Files whose tags parse but carry no title fall back to the
// current filename stem; files that cannot be parsed at all return an
// error so the caller can skip them.
type Reader struct{}

func (Reader) Title(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3", ".flac":
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		m, err := tag.ReadFrom(f)
		if err != nil {
			return "", fmt.Errorf("read tags from %s: %w", path, err)
		}
		if title := strings.TrimSpace(m.Title()); title != "" {
			return title, nil
		}
		return Stem(path), nil
	case ".wav":
		return wavTitle(path)
	default:
		return "", fmt.Errorf("unsupported extension on %s", path)
	}
}

// Stem returns the filename without directory or extension, the fallback
// title for untitled files.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
