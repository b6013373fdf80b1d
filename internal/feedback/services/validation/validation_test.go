package validation

import (
	"strings"
	"testing"

	"github.com/Leopold1975/feedback_board/internal/feedback/domain/apperr"
	"github.com/stretchr/testify/require"
)

type form struct {
	Name  string `form:"name"  validate:"required,max=5"`
	Email string `form:"email" validate:"required,email"`
	Note  string `validate:"max=3"`
	Key   string `form:"key"   validate:"maxbytes=4"`
}

func TestStructValid(t *testing.T) {
	require.NoError(t, New().Struct(form{Name: "bob", Email: "b@x.com"}))
}

func TestStructFieldErrors(t *testing.T) {
	err := New().Struct(form{Name: strings.Repeat("a", 6), Email: "nope", Note: "long"})
	require.ErrorIs(t, err, apperr.ErrValidation)

	fields := apperr.FieldErrors(err)
	require.Equal(t, "must be at most 5 characters", fields["name"])
	require.Equal(t, "must be a valid email address", fields["email"])
	require.Equal(t, "must be at most 3 characters", fields["Note"])
}

func TestStructRequired(t *testing.T) {
	fields := apperr.FieldErrors(New().Struct(form{}))

	require.Equal(t, "is required", fields["name"])
	require.Equal(t, "is required", fields["email"])
	require.NotContains(t, fields, "Note")
}

func TestMaxCountsCharacters(t *testing.T) {
	require.NoError(t, New().Struct(form{Name: "ééééé", Email: "e@x.com"}))
}

func TestMaxBytesCountsBytes(t *testing.T) {
	v := New()

	require.NoError(t, v.Struct(form{Name: "bob", Email: "b@x.com", Key: "éé"}))
	require.NoError(t, v.Struct(form{Name: "bob", Email: "b@x.com", Key: "abcd"}))

	// three characters, six bytes
	err := v.Struct(form{Name: "bob", Email: "b@x.com", Key: "ééé"})
	require.ErrorIs(t, err, apperr.ErrValidation)
	require.Equal(t, "must be at most 4 bytes", apperr.FieldErrors(err)["key"])
}
