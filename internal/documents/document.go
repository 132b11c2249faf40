// Package documents implements compliance document upload, storage, and
// retrieval. Uploaded files are screened, stored as blobs scoped to the
// owning user, and registered with metadata describing the disclosure
// content detected in them.
package documents

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultType is assigned when an upload does not declare a document type.
const DefaultType = "other"

// StatusProcessed marks a document whose content screening has completed.
const StatusProcessed = "processed"

// Document represents a registered compliance document with its metadata
// and blob storage reference.
type Document struct {
	ID              uuid.UUID       `json:"id"`
	UserID          string          `json:"user_id"`
	Filename        string          `json:"filename"`
	ContentType     string          `json:"content_type"`
	SizeBytes       int64           `json:"size_bytes"`
	PageCount       *int            `json:"page_count"`
	StorageKey      string          `json:"storage_key"`
	DocumentType    string          `json:"document_type"`
	DetectedContent json.RawMessage `json:"detected_content"`
	Status          string          `json:"status"`
	UploadedAt      time.Time       `json:"uploaded_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ContentFlags records which disclosure topics a document appears to cover.
type ContentFlags struct {
	HasPAIData        bool `json:"hasPAIData"`
	HasTaxonomyInfo   bool `json:"hasTaxonomyInfo"`
	HasDisclosureData bool `json:"hasDisclosureData"`
}

// DetectContent screens a filename for disclosure topic markers.
func DetectContent(filename string) ContentFlags {
	name := strings.ToLower(filename)
	return ContentFlags{
		HasPAIData:        strings.Contains(name, "pai"),
		HasTaxonomyInfo:   strings.Contains(name, "taxonomy"),
		HasDisclosureData: strings.Contains(name, "disclosure"),
	}
}

// CreateCommand carries the data needed to upload and register a new document.
// Data holds the raw file bytes. PageCount is optional and may be extracted
// by the caller via pdfcpu; nil values are stored as NULL.
type CreateCommand struct {
	Data         []byte
	Filename     string
	ContentType  string
	DocumentType string
	PageCount    *int
}

// BatchResult reports the outcome of a single file within a batch upload.
// On success, Document is populated and Error is empty.
// On failure, Error describes the problem and Document is nil.
type BatchResult struct {
	Document *Document `json:"document,omitempty"`
	Filename string    `json:"filename"`
	Error    string    `json:"error,omitempty"`
}
