package errors

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultMaxSourceBytes bounds diagram source accepted by [ValidateSource]
// when no explicit limit is given.
const DefaultMaxSourceBytes = 1 << 20

// Formats lists the output formats the renderer supports.
var Formats = []string{"svg", "json", "png", "pdf"}

// ValidateSource checks diagram text before it reaches the parser.
//
// The validation rules are intentionally conservative:
//   - No empty or whitespace-only source
//   - At most maxBytes bytes (DefaultMaxSourceBytes when maxBytes <= 0)
//   - Valid UTF-8
//   - No null bytes
func ValidateSource(src string, maxBytes int) error {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxSourceBytes
	}
	if strings.TrimSpace(src) == "" {
		return New(ErrCodeInvalidInput, "diagram source cannot be empty")
	}
	if len(src) > maxBytes {
		return New(ErrCodeTooLarge, "diagram source too large (%d bytes, max %d)", len(src), maxBytes)
	}
	if !utf8.ValidString(src) {
		return New(ErrCodeInvalidInput, "diagram source is not valid UTF-8")
	}
	if strings.ContainsRune(src, 0) {
		return New(ErrCodeInvalidInput, "diagram source contains null bytes")
	}
	return nil
}

// ValidateFormat checks that f names a supported output format.
func ValidateFormat(f string) error {
	for _, ok := range Formats {
		if f == ok {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (must be one of: %s)", f, strings.Join(Formats, ", "))
}

// idPrefixRegex matches names usable as an XML id and CSS selector.
var idPrefixRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// ValidateIDPrefix checks an element id prefix for SVG output. Empty means
// the default prefix.
func ValidateIDPrefix(p string) error {
	if p == "" {
		return nil
	}
	if len(p) > 64 {
		return New(ErrCodeInvalidIDPrefix, "id prefix too long (max 64 characters)")
	}
	if !idPrefixRegex.MatchString(p) {
		return New(ErrCodeInvalidIDPrefix, "invalid id prefix %q (letters, digits, '-' and '_', starting with a letter)", p)
	}
	return nil
}
