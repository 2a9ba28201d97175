// Package filekey derives storage keys for uploaded files and answers
// questions about them. Every application-managed object lives under a single
// namespace prefix inside the bucket; the key itself carries the upload
// timestamp and (optionally) the owner's id, so no database is needed to
// reconstruct either.
package filekey

import (
	"strconv"
	"strings"
)

// Prefix is the namespace under which all uploads are stored.
const Prefix = "uploads/"

// maxNameLen bounds the sanitized filename segment of a key. Object keys have
// provider-side limits (1024 bytes on S3-compatible stores); truncating the
// name keeps the timestamp and owner segments intact. The tail of the name is
// kept so the extension survives.
const maxNameLen = 200

// Sanitize replaces every character outside [A-Za-z0-9.] with an underscore.
func Sanitize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '.':
			b.WriteByte(c)
		default:
			b.WriteByte('_')
		}
	}
	s := b.String()
	if len(s) > maxNameLen {
		s = s[len(s)-maxNameLen:]
	}
	return s
}

// Encode builds the storage key for an upload:
//
//	uploads/<nowMillis>_[<ownerID>_]<sanitized name>
//
// The millisecond timestamp makes concurrent uploads of identically named
// files collide only within the same millisecond, an accepted narrow race.
// Encode is a pure function; callers supply the clock reading.
func Encode(originalName, ownerID string, nowMillis int64) string {
	var b strings.Builder
	b.WriteString(Prefix)
	b.WriteString(strconv.FormatInt(nowMillis, 10))
	b.WriteByte('_')
	if ownerID != "" {
		b.WriteString(ownerID)
		b.WriteByte('_')
	}
	b.WriteString(Sanitize(originalName))
	return b.String()
}

// DisplayName strips the namespace prefix from a key. Keys outside the
// namespace are returned unchanged.
func DisplayName(key string) string {
	return strings.TrimPrefix(key, Prefix)
}

// BelongsTo reports whether a display name is believed to belong to ownerID.
// The match is a substring heuristic: the name contains the owner id, or the
// name contains "student" in any case. It produces false positives (any file
// whose name happens to contain the id, or any file named with "student") and
// false negatives (ids rewritten by sanitization); it is kept as-is for
// compatibility with the pages that rely on it.
func BelongsTo(displayName, ownerID string) bool {
	if ownerID != "" && strings.Contains(displayName, ownerID) {
		return true
	}
	return strings.Contains(strings.ToLower(displayName), "student")
}
