package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// decodeText reads data as UTF-8 and falls back to Windows-1254 (Turkish)
// when it is not valid UTF-8. Line endings are normalised to "\n".
func decodeText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return normalizeNewlines(string(data)), nil
	}
	reader := transform.NewReader(bytes.NewReader(data), charmap.Windows1254.NewDecoder())
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("transcode from windows-1254: %w", err)
	}
	return normalizeNewlines(string(decoded)), nil
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
