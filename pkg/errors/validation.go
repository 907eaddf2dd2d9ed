package errors

import (
	"strings"
	"unicode"
)

// ValidateGraphName validates a stored graph name for safety and correctness.
// Graph names are used in cache keys, file paths, and database document ids,
// so the rules are intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateGraphName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidGraph, "graph name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidGraph, "graph name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidGraph, "graph name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidGraph, "graph name cannot contain path separators")
	}
	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidGraph, "graph name cannot contain path traversal sequences")
	}

	return nil
}

// ValidateVertexName validates a vertex name given as user input (CLI
// arguments, query expressions, API requests). Internally vertex names are
// arbitrary bytes, but names arriving as text must be printable.
func ValidateVertexName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "vertex name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidName, "vertex name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "vertex name contains invalid control characters")
		}
	}

	return nil
}

// ValidateQueryLength bounds the size of a set expression before parsing.
// Parsing is cheap, but unbounded expressions make poor API payloads.
func ValidateQueryLength(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return New(ErrCodeInvalidQuery, "query expression cannot be empty")
	}

	const maxQueryLength = 4096
	if len(expr) > maxQueryLength {
		return New(ErrCodeInvalidQuery, "query expression too long (max %d characters)", maxQueryLength)
	}

	return nil
}
