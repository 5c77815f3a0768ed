package encoding

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// ToUTF8 converts a WIN1252 byte slice (the charset of the legacy order DB)
// to a trimmed UTF-8 string. On a decode failure the raw bytes are returned
// as-is rather than failing the whole record.
func ToUTF8(b []byte) string {
	if len(b) == 0 {
		return ""
	}

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return strings.TrimSpace(string(b))
	}

	return strings.TrimSpace(string(decoded))
}
