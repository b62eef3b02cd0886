package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// WriteDishes writes names as a JSON array on a single line, e.g. ["dosa", "idli"].
func WriteDishes(w io.Writer, names []string) error {
	items := make([]string, len(names))
	for i, name := range names {
		enc, err := encodeString(name)
		if err != nil {
			return err
		}
		items[i] = enc
	}
	_, err := fmt.Fprintln(w, "["+strings.Join(items, ", ")+"]")
	return err
}

// WriteError writes {"error": "<message>"} on a single line.
func WriteError(w io.Writer, message string) error {
	return writeObject(w, [][2]string{{"error", message}})
}

// writeObject writes a flat object of string values, keeping the key order given.
func writeObject(w io.Writer, fields [][2]string) error {
	parts := make([]string, len(fields))
	for i, kv := range fields {
		key, err := encodeString(kv[0])
		if err != nil {
			return err
		}
		value, err := encodeString(kv[1])
		if err != nil {
			return err
		}
		parts[i] = key + ": " + value
	}
	_, err := fmt.Fprintln(w, "{"+strings.Join(parts, ", ")+"}")
	return err
}

// encodeString quotes s as an ASCII-only JSON string. HTML characters are left as is and
// everything outside ASCII is written as \u escapes.
func encodeString(s string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", fmt.Errorf("failed to encode string: %w", err)
	}
	return escapeNonASCII(strings.TrimSuffix(buf.String(), "\n")), nil
}

func escapeNonASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r < utf8.RuneSelf:
			b.WriteRune(r)
		case r > 0xFFFF:
			r1, r2 := utf16.EncodeRune(r)
			fmt.Fprintf(&b, `\u%04x\u%04x`, r1, r2)
		default:
			fmt.Fprintf(&b, `\u%04x`, r)
		}
	}
	return b.String()
}
