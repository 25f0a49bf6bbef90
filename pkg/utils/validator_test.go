package utils_test

import (
	"testing"

	"tour-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Field string `json:"field" validate:"required,oneof=date name"`
	Count int    `json:"count" validate:"min=1,max=5"`
	Month string `json:"month" validate:"omitempty,datetime=2006-01"`
	Note  string `validate:"required"`
}

func TestValidateStruct(t *testing.T) {
	assert.Nil(t, utils.ValidateStruct(sample{Field: "date", Count: 2, Note: "x"}))

	errs := utils.ValidateStruct(sample{Field: "age", Count: 9, Month: "2026-13"})
	assert.Equal(t, map[string]string{
		"field": "Must be one of: date, name",
		"count": "Maximum value is 5",
		"month": "Must be a date in 2006-01 format",
		"Note":  "This field is required",
	}, errs)

	errs = utils.ValidateStruct(sample{Field: "name", Count: 0, Note: "x"})
	assert.Equal(t, "Minimum value is 1", errs["count"])
}

func TestFormatValidationErrors(t *testing.T) {
	got := utils.FormatValidationErrors(map[string]string{
		"name":  "This field is required",
		"email": "This field is required",
	})
	assert.Equal(t, "email: This field is required; name: This field is required", got)
}
