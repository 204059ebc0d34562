// internal/draft/documents.go
package draft

import (
	"errors"

	"github.com/cevta/vat-license-backend/internal/models"
)

const (
	// MaxDocumentSize is the upload ceiling per file.
	MaxDocumentSize = 1 << 20 // 1 MB

	// MaxPassportPhotos bounds the one multi-file slot.
	MaxPassportPhotos = 3
)

var (
	ErrFileTooLarge        = errors.New("file exceeds the 1 MB limit")
	ErrUnsupportedMimeType = errors.New("file type must be PDF, JPEG, or PNG")
	ErrUnknownSlot         = errors.New("unknown document slot")
	ErrTooManyPhotos       = errors.New("at most three passport photos are allowed")
)

// AllowedMimeTypes lists the accepted upload content types.
var AllowedMimeTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
}

// FileRef points at an uploaded file in object storage. The draft layer
// never touches the bytes, only the reference and its vetted metadata.
type FileRef struct {
	FileName string `json:"file_name"`
	FileKey  string `json:"file_key"`
	FileURL  string `json:"file_url"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

func (f FileRef) IsZero() bool {
	return f.FileKey == "" && f.FileURL == ""
}

// checkFile rejects a reference before it can enter a slot. A rejected
// file leaves the set untouched.
func checkFile(ref FileRef) error {
	if ref.Size > MaxDocumentSize {
		return ErrFileTooLarge
	}
	if !AllowedMimeTypes[ref.MimeType] {
		return ErrUnsupportedMimeType
	}
	return nil
}

// DocumentSet tracks the five required attachment slots. Four slots hold
// exactly one file; the passport photo slot holds one to three.
type DocumentSet struct {
	slots  map[models.DocumentType]FileRef
	photos []FileRef
}

func NewDocumentSet() DocumentSet {
	return DocumentSet{slots: make(map[models.DocumentType]FileRef)}
}

func isSingleSlot(t models.DocumentType) bool {
	switch t {
	case models.DocumentTypeSecondaryCertificate,
		models.DocumentTypeHighestCertificate,
		models.DocumentTypeNIDCopy,
		models.DocumentTypePayOrder:
		return true
	}
	return false
}

// SetSlot places a file into a single-file slot, replacing any previous
// occupant only after the new file passes the size and type checks.
func (s *DocumentSet) SetSlot(t models.DocumentType, ref FileRef) error {
	if !isSingleSlot(t) {
		return ErrUnknownSlot
	}
	if err := checkFile(ref); err != nil {
		return err
	}
	if s.slots == nil {
		s.slots = make(map[models.DocumentType]FileRef)
	}
	s.slots[t] = ref
	return nil
}

// ClearSlot empties a single-file slot.
func (s *DocumentSet) ClearSlot(t models.DocumentType) error {
	if !isSingleSlot(t) {
		return ErrUnknownSlot
	}
	delete(s.slots, t)
	return nil
}

// Slot returns the file in a single-file slot, if any.
func (s *DocumentSet) Slot(t models.DocumentType) (FileRef, bool) {
	ref, ok := s.slots[t]
	return ref, ok
}

// SetPassportPhotos replaces the photo slot contents. Every file must
// pass the checks or the slot keeps its previous contents.
func (s *DocumentSet) SetPassportPhotos(refs []FileRef) error {
	if len(refs) > MaxPassportPhotos {
		return ErrTooManyPhotos
	}
	for _, ref := range refs {
		if err := checkFile(ref); err != nil {
			return err
		}
	}
	s.photos = append([]FileRef(nil), refs...)
	return nil
}

// PassportPhotos returns a copy of the photo slot.
func (s *DocumentSet) PassportPhotos() []FileRef {
	return append([]FileRef(nil), s.photos...)
}

// MissingSlots lists the required slots that are still empty. The photo
// slot counts as missing until it holds at least one image.
func (s *DocumentSet) MissingSlots() []models.DocumentType {
	var missing []models.DocumentType
	for _, t := range models.RequiredDocumentTypes {
		if t == models.DocumentTypePassportPhoto {
			if len(s.photos) == 0 {
				missing = append(missing, t)
			}
			continue
		}
		if ref, ok := s.slots[t]; !ok || ref.IsZero() {
			missing = append(missing, t)
		}
	}
	return missing
}

// IsComplete reports whether every required slot is filled.
func (s *DocumentSet) IsComplete() bool {
	return len(s.MissingSlots()) == 0
}
