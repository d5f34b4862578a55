// ABOUTME: Parses and encodes the \n-separated key=value metadata blob
// ABOUTME: Keys are case-insensitive per spec.md §3; values are case-sensitive
package sea

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// ParseMetadata splits a metadata blob into a key→value map. Keys are
// lowercased on the way in, matching the case-insensitive key invariant.
func ParseMetadata(blob string) (map[string]string, error) {
	if !utf8.ValidString(blob) {
		return nil, ErrBadMetadata
	}
	out := make(map[string]string)
	if blob == "" {
		return out, nil
	}
	lines := strings.Split(blob, "\n")
	for _, line := range lines {
		if line == "" {
			continue
		}
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			return nil, ErrBadMetadata
		}
		key := strings.ToLower(line[:eq])
		value := line[eq+1:]
		if strings.Contains(key, "=") || strings.ContainsAny(value, "\n") {
			return nil, ErrBadMetadata
		}
		out[key] = value
	}
	return out, nil
}

// EncodeMetadata serializes a key→value map into the `\n`-separated
// key=value blob format, with keys sorted for deterministic output.
func EncodeMetadata(fields map[string]string) (string, error) {
	keys := make([]string, 0, len(fields))
	values := make(map[string]string, len(fields))
	for k, v := range fields {
		lower := strings.ToLower(k)
		if strings.Contains(lower, "=") || strings.ContainsAny(lower, "\n") {
			return "", ErrBadMetadata
		}
		if strings.Contains(v, "\n") {
			return "", ErrBadMetadata
		}
		keys = append(keys, lower)
		values[lower] = v
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(values[k])
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// DefaultMetadata returns a baseline metadata map whose only entry is
// encoder=encoderID. Two encodes given the same encoderID get the same
// metadata.
func DefaultMetadata(encoderID string) map[string]string {
	return map[string]string{"encoder": encoderID}
}
