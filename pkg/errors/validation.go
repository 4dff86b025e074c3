package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds output base names.
const maxNameLength = 255

// ValidateOutputName validates the base name of a rendered file.
// The name becomes "<name>.<ext>" inside the output directory, so it must
// be a plain file name:
//   - Not empty
//   - No path separators or traversal sequences
//   - No control characters
//   - Not a hidden file
func ValidateOutputName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "output name cannot be empty")
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidPath, "output name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "output name cannot contain path separators")
	}

	if name == "." || name == ".." || strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidPath, "output name cannot be a hidden file")
	}

	return nil
}
