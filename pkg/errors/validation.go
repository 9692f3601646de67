package errors

import (
	"strconv"
	"strings"
	"unicode"
)

// ValidateAssetID validates a logical asset identifier for safety and
// correctness. Asset ids are resource-style paths ("icons/save") used as
// catalog keys and to derive variant filenames.
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - No control characters or null bytes
//   - No path traversal sequences (.., //)
//   - No absolute paths or backslashes
//   - No "@" (reserved for the variant suffix in filenames)
//   - Maximum length of 256 characters
func ValidateAssetID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidAssetID, "asset id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidAssetID, "asset id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidAssetID, "asset id contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
		"@",    // Variant suffix marker
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidAssetID, "asset id contains invalid characters: %q", pattern)
		}
	}

	if strings.HasPrefix(id, "/") {
		return New(ErrCodeInvalidAssetID, "asset id must be relative (cannot start with /)")
	}

	return nil
}

// ValidateVariantPath validates a variant file path from a manifest.
// It prevents path traversal and ensures reasonable path length; the path
// is interpreted relative to the manifest's directory.
func ValidateVariantPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "variant path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "variant path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "variant path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "variant path cannot contain path traversal sequences (..)")
	}

	return nil
}

// ParseFactor parses a scale factor string such as "1.5" or "200%".
// The percent form is divided by 100, so "150%" and "1.5" are equivalent.
// The result is validated to be a positive finite number; range clamping
// is the scale state's job, not the parser's.
func ParseFactor(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, New(ErrCodeInvalidFactor, "factor cannot be empty")
	}

	percent := strings.HasSuffix(s, "%")
	if percent {
		s = strings.TrimSuffix(s, "%")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, Wrap(ErrCodeInvalidFactor, err, "invalid factor %q", s)
	}
	if percent {
		f /= 100
	}

	if f <= 0 {
		return 0, New(ErrCodeInvalidFactor, "factor must be positive, got %g", f)
	}

	return f, nil
}
