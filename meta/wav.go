package meta

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dhowden/tag"
)

// wavTitle walks the RIFF chunks of a WAV file looking for the embedded
// ID3 tag chunk and reads the title (TIT2) frame out of it. A WAV without
// an ID3 chunk simply falls back to the filename stem.
func wavTitle(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var hdr [12]byte
	if _, err := io.ReadFull(f, hdr[:]); err != nil {
		return "", fmt.Errorf("read RIFF header of %s: %w", path, err)
	}
	if string(hdr[0:4]) != "RIFF" || string(hdr[8:12]) != "WAVE" {
		return "", fmt.Errorf("%s is not a RIFF WAVE file", path)
	}

	for {
		var chunk [8]byte
		if _, err := io.ReadFull(f, chunk[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return "", fmt.Errorf("read chunk header of %s: %w", path, err)
		}
		id := string(chunk[0:4])
		size := int64(binary.LittleEndian.Uint32(chunk[4:]))

		if strings.EqualFold(strings.TrimSpace(id), "id3") {
			data := make([]byte, size)
			if _, err := io.ReadFull(f, data); err != nil {
				return "", fmt.Errorf("read id3 chunk of %s: %w", path, err)
			}
			m, err := tag.ReadFrom(bytes.NewReader(data))
			if err != nil {
				return "", fmt.Errorf("read tags from %s: %w", path, err)
			}
			if title := strings.TrimSpace(m.Title()); title != "" {
				return title, nil
			}
			return Stem(path), nil
		}

		// chunks are word-aligned, skip the pad byte on odd sizes
		if _, err := f.Seek(size+size%2, io.SeekCurrent); err != nil {
			return "", fmt.Errorf("seek past %q chunk of %s: %w", id, path, err)
		}
	}

	return Stem(path), nil
}
