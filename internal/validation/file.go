package validation

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const (
	MaxFileSize       = 50 * 1024 * 1024
	MaxFilenameLength = 255
)

var (
	ErrBlockedExtension   = errors.New("file extension blocked for security reasons")
	ErrFileTooLarge       = errors.New("file exceeds maximum size")
	ErrFileTypeNotAllowed = errors.New("file type not allowed")
	ErrFilenameTooLong    = errors.New("filename too long")
)

// blockedExtensions are executable-style extensions rejected outright,
// regardless of declared media type.
var blockedExtensions = map[string]bool{
	".exe": true,
	".bat": true,
	".cmd": true,
	".scr": true,
	".pif": true,
	".vbs": true,
	".js":  true,
}

var allowedContentTypes = map[string]bool{
	"application/pdf": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       true,
	"text/csv":   true,
	"text/plain": true,
}

// File describes an upload to validate.
type File struct {
	Filename    string
	Size        int64
	ContentType string
}

// ValidateFile enforces upload constraints. Blocked extensions are checked
// first and reported as ErrBlockedExtension so callers can log security
// rejections distinctly from ordinary validation failures.
func ValidateFile(f File) error {
	ext := strings.ToLower(filepath.Ext(f.Filename))
	if blockedExtensions[ext] {
		return fmt.Errorf("%w: %s", ErrBlockedExtension, ext)
	}

	if n := utf8.RuneCountInString(f.Filename); n > MaxFilenameLength {
		return fmt.Errorf("%w: %d characters exceeds limit of %d",
			ErrFilenameTooLong, n, MaxFilenameLength)
	}

	if f.Size > MaxFileSize {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d bytes",
			ErrFileTooLarge, f.Size, MaxFileSize)
	}

	mediaType, _, _ := strings.Cut(f.ContentType, ";")
	if !allowedContentTypes[strings.TrimSpace(mediaType)] {
		return fmt.Errorf("%w: %s (allowed: PDF, DOCX, XLSX, CSV, TXT)",
			ErrFileTypeNotAllowed, f.ContentType)
	}

	return nil
}

// IsSecurityRejection reports whether the validation failure was a blocked
// extension rather than an ordinary constraint violation.
func IsSecurityRejection(err error) bool {
	return errors.Is(err, ErrBlockedExtension)
}
