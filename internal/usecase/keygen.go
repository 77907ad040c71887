package usecase

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// NewStorageKey derives a storage key from a client-supplied filename:
// the sanitized base name, a fresh random token, and the extension.
// The token gives 128-bit collision resistance, so repeated uploads of
// identically named files always map to distinct objects. When
// forcedExt is non-empty it replaces whatever extension the client
// supplied.
func NewStorageKey(originalName, forcedExt string) string {
	name := filepath.Base(originalName)
	ext := strings.ToLower(filepath.Ext(name))
	if forcedExt != "" {
		ext = forcedExt
	}

	base := sanitizeBaseName(strings.TrimSuffix(name, filepath.Ext(name)))
	return base + "_" + uuid.New().String() + ext
}

// sanitizeBaseName replaces every character outside the allow-set
// (ASCII letters, digits, underscore, hyphen) with an underscore. The
// result is safe as an object path segment: no separators, no
// traversal sequences, nothing needing URL escaping.
func sanitizeBaseName(base string) string {
	out := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '_' || r == '-':
			return r
		default:
			return '_'
		}
	}, base)

	if out == "" {
		return "video"
	}
	return out
}
