package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// repositorySlugRegex matches "owner/name" GitHub repository slugs.
var repositorySlugRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9-]*/[A-Za-z0-9._-]+$`)

// ValidateRepository validates a GitHub repository slug such as
// "typst-community/dev-builds".
func ValidateRepository(slug string) error {
	if slug == "" {
		return New(ErrCodeInvalidConfig, "repository cannot be empty")
	}
	if !repositorySlugRegex.MatchString(slug) {
		return New(ErrCodeInvalidConfig, "invalid repository %q (want owner/name)", slug)
	}
	return nil
}

// ValidatePath validates a user supplied file system path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
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
