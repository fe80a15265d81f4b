package valueobjects

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// ImageKey derives the content-addressed feature key for image bytes:
// prefix + hex(sha1(data)) + ext. The extension keeps its leading dot.
func ImageKey(prefix string, data []byte, ext string) string {
	sum := sha1.Sum(data)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return prefix + hex.EncodeToString(sum[:]) + ext
}

// IsImageKey reports whether key names a stored image under prefix
func IsImageKey(prefix, key string) bool {
	return prefix != "" && strings.HasPrefix(key, prefix) && len(key) > len(prefix)
}

// IsContentKey reports whether key has the shape ImageKey produces: prefix,
// 40 lowercase hex digits, then an optional extension. Keys carried over from
// legacy archives keep their entry names and do not match.
func IsContentKey(prefix, key string) bool {
	if !IsImageKey(prefix, key) {
		return false
	}
	rest := key[len(prefix):]
	if len(rest) < sha1.Size*2 {
		return false
	}
	for _, r := range rest[:sha1.Size*2] {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	ext := rest[sha1.Size*2:]
	return ext == "" || (strings.HasPrefix(ext, ".") && !strings.ContainsAny(ext[1:], "./"))
}
