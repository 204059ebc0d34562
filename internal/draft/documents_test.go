// internal/draft/documents_test.go
package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cevta/vat-license-backend/internal/models"
)

func TestSetSlotRejectsOversizedFile(t *testing.T) {
	s := NewDocumentSet()
	ref := validFileRef("application/pdf")
	ref.Size = MaxDocumentSize + 1

	err := s.SetSlot(models.DocumentTypeNIDCopy, ref)
	assert.ErrorIs(t, err, ErrFileTooLarge)

	_, ok := s.Slot(models.DocumentTypeNIDCopy)
	assert.False(t, ok, "rejected file must not occupy the slot")
}

func TestSetSlotRejectsUnsupportedType(t *testing.T) {
	s := NewDocumentSet()
	ref := validFileRef("application/zip")

	err := s.SetSlot(models.DocumentTypePayOrder, ref)
	assert.ErrorIs(t, err, ErrUnsupportedMimeType)
}

func TestSetSlotAcceptsExactLimit(t *testing.T) {
	s := NewDocumentSet()
	ref := validFileRef("image/png")
	ref.Size = MaxDocumentSize

	require.NoError(t, s.SetSlot(models.DocumentTypeNIDCopy, ref))
	stored, ok := s.Slot(models.DocumentTypeNIDCopy)
	assert.True(t, ok)
	assert.Equal(t, ref, stored)
}

func TestSetSlotReplacesPreviousFile(t *testing.T) {
	s := NewDocumentSet()
	first := validFileRef("application/pdf")
	second := validFileRef("image/jpeg")
	second.FileKey = "documents/replacement.jpg"

	require.NoError(t, s.SetSlot(models.DocumentTypePayOrder, first))
	require.NoError(t, s.SetSlot(models.DocumentTypePayOrder, second))

	stored, _ := s.Slot(models.DocumentTypePayOrder)
	assert.Equal(t, "documents/replacement.jpg", stored.FileKey)
}

func TestRejectedReplacementKeepsPreviousFile(t *testing.T) {
	s := NewDocumentSet()
	good := validFileRef("application/pdf")
	require.NoError(t, s.SetSlot(models.DocumentTypePayOrder, good))

	bad := validFileRef("application/pdf")
	bad.Size = MaxDocumentSize * 2
	assert.Error(t, s.SetSlot(models.DocumentTypePayOrder, bad))

	stored, ok := s.Slot(models.DocumentTypePayOrder)
	assert.True(t, ok)
	assert.Equal(t, good, stored)
}

func TestPassportPhotoSlotIsNotASingleSlot(t *testing.T) {
	s := NewDocumentSet()
	err := s.SetSlot(models.DocumentTypePassportPhoto, validFileRef("image/jpeg"))
	assert.ErrorIs(t, err, ErrUnknownSlot)
}

func TestSetPassportPhotosLimit(t *testing.T) {
	s := NewDocumentSet()
	photos := []FileRef{
		validFileRef("image/jpeg"),
		validFileRef("image/jpeg"),
		validFileRef("image/png"),
		validFileRef("image/png"),
	}
	assert.ErrorIs(t, s.SetPassportPhotos(photos), ErrTooManyPhotos)
	assert.Empty(t, s.PassportPhotos())

	require.NoError(t, s.SetPassportPhotos(photos[:3]))
	assert.Len(t, s.PassportPhotos(), 3)
}

func TestSetPassportPhotosAllOrNothing(t *testing.T) {
	s := NewDocumentSet()
	bad := validFileRef("application/zip")
	err := s.SetPassportPhotos([]FileRef{validFileRef("image/jpeg"), bad})
	assert.ErrorIs(t, err, ErrUnsupportedMimeType)
	assert.Empty(t, s.PassportPhotos())
}

func TestClearSlot(t *testing.T) {
	s := NewDocumentSet()
	require.NoError(t, s.SetSlot(models.DocumentTypeNIDCopy, validFileRef("application/pdf")))
	require.NoError(t, s.ClearSlot(models.DocumentTypeNIDCopy))

	_, ok := s.Slot(models.DocumentTypeNIDCopy)
	assert.False(t, ok)
}

func TestMissingSlots(t *testing.T) {
	s := NewDocumentSet()
	assert.Len(t, s.MissingSlots(), 5)
	assert.False(t, s.IsComplete())

	require.NoError(t, s.SetSlot(models.DocumentTypeSecondaryCertificate, validFileRef("application/pdf")))
	require.NoError(t, s.SetSlot(models.DocumentTypeHighestCertificate, validFileRef("application/pdf")))
	require.NoError(t, s.SetSlot(models.DocumentTypeNIDCopy, validFileRef("application/pdf")))
	require.NoError(t, s.SetSlot(models.DocumentTypePayOrder, validFileRef("application/pdf")))
	assert.Equal(t, []models.DocumentType{models.DocumentTypePassportPhoto}, s.MissingSlots())

	require.NoError(t, s.SetPassportPhotos([]FileRef{validFileRef("image/jpeg")}))
	assert.True(t, s.IsComplete())
}
