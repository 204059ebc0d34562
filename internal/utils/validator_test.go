// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type tagProbe struct {
	NID    string `validate:"omitempty,nid"`
	BIN    string `validate:"omitempty,bin"`
	TIN    string `validate:"omitempty,tin"`
	Mobile string `validate:"omitempty,bd_mobile"`
	Year   int    `validate:"omitempty,achievement_year"`
}

func TestNIDTag(t *testing.T) {
	assert.NoError(t, ValidateStruct(tagProbe{NID: "1234567890"}))
	assert.NoError(t, ValidateStruct(tagProbe{NID: "1234567890123"}))
	assert.NoError(t, ValidateStruct(tagProbe{NID: "12345678901234567"}))
	assert.Error(t, ValidateStruct(tagProbe{NID: "123456789"}))
	assert.Error(t, ValidateStruct(tagProbe{NID: "123456789a"}))
}

func TestBINTag(t *testing.T) {
	assert.NoError(t, ValidateStruct(tagProbe{BIN: "1234567890123"}))
	assert.Error(t, ValidateStruct(tagProbe{BIN: "123456789012"}))
	assert.Error(t, ValidateStruct(tagProbe{BIN: "12345678901234"}))
}

func TestTINTag(t *testing.T) {
	assert.NoError(t, ValidateStruct(tagProbe{TIN: "123456789012"}))
	assert.Error(t, ValidateStruct(tagProbe{TIN: "1234567890"}))
	assert.Error(t, ValidateStruct(tagProbe{TIN: "12345678901a"}))
}

func TestBDMobileTag(t *testing.T) {
	assert.NoError(t, ValidateStruct(tagProbe{Mobile: "01712345678"}))
	assert.Error(t, ValidateStruct(tagProbe{Mobile: "0171234567"}))
	assert.Error(t, ValidateStruct(tagProbe{Mobile: "8801712345678"}))
}

func TestAchievementYearTag(t *testing.T) {
	assert.NoError(t, ValidateStruct(tagProbe{Year: 1900}))
	assert.NoError(t, ValidateStruct(tagProbe{Year: 2020}))
	assert.Error(t, ValidateStruct(tagProbe{Year: 1899}))
	assert.Error(t, ValidateStruct(tagProbe{Year: 9999}))
}

func TestGetValidationErrorsMessages(t *testing.T) {
	err := ValidateStruct(tagProbe{BIN: "abc"})
	assert.Error(t, err)

	errs := GetValidationErrors(err)
	assert.Len(t, errs, 1)
	assert.Equal(t, "bin", errs[0].Field)
	assert.Equal(t, "bin", errs[0].Tag)
	assert.Equal(t, "BIN must be exactly 13 digits", errs[0].Message)
}
