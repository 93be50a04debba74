package domain

import "time"

// FileState mirrors the processing state reported by the file store.
type FileState string

const (
	FileStateUnspecified FileState = "STATE_UNSPECIFIED"
	FileStateProcessing  FileState = "PROCESSING"
	FileStateActive      FileState = "ACTIVE"
	FileStateFailed      FileState = "FAILED"
)

// PDFMimeType is the MIME type sent for every uploaded document.
const PDFMimeType = "application/pdf"

// FileReference is a document uploaded to the remote file store.
type FileReference struct {
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name,omitempty"`
	URI         string    `json:"uri"`
	MIMEType    string    `json:"mime_type"`
	State       FileState `json:"state"`
	SizeBytes   int64     `json:"size_bytes,omitempty"`
	ExpiresAt   time.Time `json:"expires_at,omitempty"`
}

// Usable reports whether the reference can be sent to the model at now.
// A zero ExpiresAt means the store did not report one.
func (r *FileReference) Usable(now time.Time, margin time.Duration) bool {
	if r == nil || r.URI == "" || r.State != FileStateActive {
		return false
	}
	if r.ExpiresAt.IsZero() {
		return true
	}
	return now.Add(margin).Before(r.ExpiresAt)
}

// Names returns the file names of refs in order.
func Names(refs []FileReference) []string {
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		names = append(names, ref.Name)
	}
	return names
}

// DocumentInfo describes a local PDF before upload.
type DocumentInfo struct {
	Path      string `json:"path"`
	Size      int64  `json:"size"`
	PageCount int    `json:"page_count"`
	Title     string `json:"title,omitempty"`
}

// UploadOptions tune a single upload run.
type UploadOptions struct {
	// ForceDownload re-fetches the PDF even if a local copy exists.
	ForceDownload bool
	DisplayName   string
}
