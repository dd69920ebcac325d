// Package feed reads, parses, and writes the pipe-delimited sales feed.
package feed

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/joshsymonds/sift/internal/common"
)

// ReadFeed reads a sales feed file and returns its data lines.
// The first line is a header and is discarded, as are blank lines.
// Files that are not valid UTF-8 fall back to Windows-1252 and then
// Latin-1 decoding, which covers the legacy exports we see in practice.
func ReadFeed(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", common.ErrFeedNotFound, path)
		}
		return nil, fmt.Errorf("failed to read feed file: %w", err)
	}

	content, err := decodeFeed(raw)
	if err != nil {
		return nil, err
	}

	lines := splitDataLines(content)
	slog.Debug("Read sales feed", "path", path, "data_lines", len(lines))
	return lines, nil
}

// decodeFeed decodes raw feed bytes, trying UTF-8 first.
func decodeFeed(raw []byte) (string, error) {
	if utf8.Valid(raw) {
		return string(raw), nil
	}

	for _, cm := range []*charmap.Charmap{charmap.Windows1252, charmap.ISO8859_1} {
		decoded, err := cm.NewDecoder().Bytes(raw)
		if err != nil {
			continue
		}
		s := string(decoded)
		// Undefined code points decode to U+FFFD; treat that as a miss.
		if !strings.ContainsRune(s, utf8.RuneError) {
			return s, nil
		}
	}

	return "", common.ErrFeedUndecoded
}

// splitDataLines drops the header line and all blank lines.
func splitDataLines(content string) []string {
	rawLines := strings.Split(content, "\n")

	var lines []string
	for i, line := range rawLines {
		if i == 0 {
			continue // header
		}
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
