package errors

import (
	"strings"
	"unicode"
)

// MaxTokenLength bounds the size of a pattern token accepted from the outside.
// The largest valid descriptor (11 circles, 3 lines, one spare row) encodes to
// well under 1KB, so anything beyond this is not a token.
const MaxTokenLength = 4096

// ValidateToken performs cheap structural checks on a pattern token before it
// is handed to the codec. It does not decode the token.
//
// Validation rules:
//   - Token cannot be empty
//   - Maximum length of MaxTokenLength characters
//   - No whitespace or control characters
func ValidateToken(token string) error {
	if token == "" {
		return New(ErrCodeInvalidToken, "token cannot be empty")
	}

	if len(token) > MaxTokenLength {
		return New(ErrCodeInvalidToken, "token too long (max %d characters)", MaxTokenLength)
	}

	for _, r := range token {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidToken, "token contains invalid characters")
		}
	}

	return nil
}

// ValidateOutputPath validates an output file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	for _, part := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
