package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createInput struct {
	Name string  `json:"name" validate:"required,min=1,max=255"`
	Tag  *string `json:"tag,omitempty" validate:"omitempty,max=255"`
}

func TestValidateAccepts(t *testing.T) {
	tag := "production"
	assert.NoError(t, Validate(createInput{Name: "svc-a", Tag: &tag}))
	assert.NoError(t, Validate(createInput{Name: "svc-a"}))
}

func TestValidateMissingRequired(t *testing.T) {
	err := Validate(createInput{})
	require.Error(t, err)
	require.True(t, IsValidationError(err))

	errs := err.(ValidationErrors)
	require.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Field)
	assert.Equal(t, "is required", errs[0].Message)
}

func TestValidateMaxLength(t *testing.T) {
	err := Validate(createInput{Name: strings.Repeat("x", 300)})
	require.Error(t, err)

	errs := err.(ValidationErrors)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "at most 255 characters")
}

func TestIsValidationError(t *testing.T) {
	assert.False(t, IsValidationError(assert.AnError))
	assert.True(t, IsValidationError(ValidationErrors{}))
}
