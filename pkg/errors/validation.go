package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxNodeIDLength bounds identifiers so a single id cannot blow up the
// rendered underline.
const maxNodeIDLength = 256

// ValidateNodeID validates a user supplied node identifier.
//
// The rules are:
//   - No empty ids
//   - No control characters (ids are rendered verbatim as SVG text)
//   - No leading or trailing whitespace
//   - Maximum length of 256 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidDocument, "node id cannot be empty")
	}

	if utf8.RuneCountInString(id) > maxNodeIDLength {
		return New(ErrCodeInvalidDocument, "node id too long (max %d characters)", maxNodeIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDocument, "node id %q contains control characters", id)
		}
	}

	if strings.TrimSpace(id) != id {
		return New(ErrCodeInvalidDocument, "node id %q has surrounding whitespace", id)
	}

	return nil
}

// ValidateOutputPath validates an output path given on the command line.
// An empty path and "-" both mean standard output and are accepted.
func ValidateOutputPath(path string) error {
	if path == "" || path == "-" {
		return nil
	}
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "output path contains invalid characters")
		}
	}
	if strings.HasSuffix(path, "/") {
		return New(ErrCodeInvalidInput, "output path %q is a directory", path)
	}
	return nil
}
