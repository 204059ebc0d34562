// internal/draft/submission.go
package draft

import (
	"fmt"

	"github.com/cevta/vat-license-backend/internal/models"
)

// SubmittedDocument is one attachment in a frozen submission. Passport
// photos are flattened to passport_photo_1..n so the persisted rows need
// no knowledge of the multi-file slot.
type SubmittedDocument struct {
	Type string  `json:"type"`
	File FileRef `json:"file"`
}

// Submission is the immutable result of snapshotting a valid draft.
// It is a value copy: edits to the draft after the snapshot cannot
// change what was submitted.
type Submission struct {
	General     GeneralInfo         `json:"general"`
	Education   []EducationEntry    `json:"education"`
	Documents   []SubmittedDocument `json:"documents"`
	PayOrder    PayOrderDetails     `json:"pay_order"`
	Declaration Declaration         `json:"declaration"`
}

// Snapshot validates the draft and, when it is clean, freezes it into a
// Submission. On any validation failure it returns the full error list
// and no submission.
func (d *Draft) Snapshot() (*Submission, []FieldError) {
	if errs := d.Validate(); len(errs) > 0 {
		return nil, errs
	}

	docs := make([]SubmittedDocument, 0, len(models.RequiredDocumentTypes)+MaxPassportPhotos)
	for _, t := range models.RequiredDocumentTypes {
		if t == models.DocumentTypePassportPhoto {
			for i, photo := range d.Documents.PassportPhotos() {
				docs = append(docs, SubmittedDocument{
					Type: fmt.Sprintf("%s_%d", models.DocumentTypePassportPhoto, i+1),
					File: photo,
				})
			}
			continue
		}
		ref, _ := d.Documents.Slot(t)
		docs = append(docs, SubmittedDocument{Type: string(t), File: ref})
	}

	return &Submission{
		General:     d.General,
		Education:   append([]EducationEntry(nil), d.Education...),
		Documents:   docs,
		PayOrder:    d.PayOrder,
		Declaration: d.Declaration,
	}, nil
}
