package validation_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/synapses/navigator/internal/validation"
)

func TestValidateFile(t *testing.T) {
	tests := []struct {
		name    string
		file    validation.File
		wantErr error
	}{
		{
			name: "valid pdf",
			file: validation.File{
				Filename:    "annual_report.pdf",
				Size:        1024,
				ContentType: "application/pdf",
			},
		},
		{
			name: "valid csv with charset parameter",
			file: validation.File{
				Filename:    "holdings.csv",
				Size:        2048,
				ContentType: "text/csv; charset=utf-8",
			},
		},
		{
			name: "executable extension",
			file: validation.File{
				Filename:    "malware.exe",
				Size:        512,
				ContentType: "application/pdf",
			},
			wantErr: validation.ErrBlockedExtension,
		},
		{
			name: "uppercase executable extension",
			file: validation.File{
				Filename:    "SCRIPT.VBS",
				Size:        512,
				ContentType: "text/plain",
			},
			wantErr: validation.ErrBlockedExtension,
		},
		{
			name: "oversized file",
			file: validation.File{
				Filename:    "archive.pdf",
				Size:        validation.MaxFileSize + 1,
				ContentType: "application/pdf",
			},
			wantErr: validation.ErrFileTooLarge,
		},
		{
			name: "file at size limit",
			file: validation.File{
				Filename:    "archive.pdf",
				Size:        validation.MaxFileSize,
				ContentType: "application/pdf",
			},
		},
		{
			name: "disallowed content type",
			file: validation.File{
				Filename:    "image.png",
				Size:        1024,
				ContentType: "image/png",
			},
			wantErr: validation.ErrFileTypeNotAllowed,
		},
		{
			name: "filename too long",
			file: validation.File{
				Filename:    strings.Repeat("a", 256) + ".pdf",
				Size:        1024,
				ContentType: "application/pdf",
			},
			wantErr: validation.ErrFilenameTooLong,
		},
		{
			name: "multibyte filename at character limit",
			file: validation.File{
				Filename:    strings.Repeat("ü", 251) + ".pdf",
				Size:        1024,
				ContentType: "application/pdf",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.ValidateFile(tt.file)

			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSecurityRejectionDistinctFromValidation(t *testing.T) {
	secErr := validation.ValidateFile(validation.File{
		Filename:    "payload.exe",
		Size:        validation.MaxFileSize + 1,
		ContentType: "image/png",
	})
	if !validation.IsSecurityRejection(secErr) {
		t.Fatalf("expected security rejection, got %v", secErr)
	}

	sizeErr := validation.ValidateFile(validation.File{
		Filename:    "report.pdf",
		Size:        validation.MaxFileSize + 1,
		ContentType: "application/pdf",
	})
	if validation.IsSecurityRejection(sizeErr) {
		t.Fatalf("size failure misreported as security rejection: %v", sizeErr)
	}
	if !errors.Is(sizeErr, validation.ErrFileTooLarge) {
		t.Fatalf("got %v, want ErrFileTooLarge", sizeErr)
	}
}
