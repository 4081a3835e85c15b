package emit

import "strings"

const (
	beginPrefix = "// BEGIN USER "
	endPrefix   = "// END USER "
)

// OrphanedKey names the region collecting user code whose key vanished.
const OrphanedKey = "orphaned"

// BeginMarker opens the user region key.
func BeginMarker(key string) string { return beginPrefix + key }

// EndMarker closes the user region key.
func EndMarker(key string) string { return endPrefix + key }

// ClassKey is the region key of the class-level user region.
func ClassKey(class string) string { return class }

// MethodKey is the region key of a method body.
func MethodKey(class, method string) string { return class + "." + method }

// Marker kinds returned by ParseMarker.
const (
	MarkerNone = iota
	MarkerBegin
	MarkerEnd
)

// ParseMarker recognises a region marker, ignoring surrounding whitespace.
func ParseMarker(line string) (kind int, key string) {
	s := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(s, beginPrefix):
		return MarkerBegin, strings.TrimSpace(s[len(beginPrefix):])
	case strings.HasPrefix(s, endPrefix):
		return MarkerEnd, strings.TrimSpace(s[len(endPrefix):])
	}
	return MarkerNone, ""
}
