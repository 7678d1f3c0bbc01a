package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStudentInput(t *testing.T) {
	err := Validate(StudentInput{StudentCode: "S-1", FirstName: "Ada", Email: "not-an-email"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "must contain only letters and digits", ve.Fields["studentCode"])
	assert.Equal(t, "is required", ve.Fields["lastName"])
	assert.Equal(t, "must be a valid email address", ve.Fields["email"])
	assert.NotContains(t, ve.Fields, "firstName")
}

func TestValidateSubjectRanges(t *testing.T) {
	err := Validate(SubjectInput{Code: "MAT1", Name: "Algebra", Credits: 0})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "must be greater than or equal to 1", ve.Fields["credits"])
}

func TestValidatePasses(t *testing.T) {
	assert.NoError(t, Validate(GroupInput{Name: "1A", Year: 1, Capacity: 30}))
	assert.NoError(t, Validate(TeacherInput{FirstName: "Alan", LastName: "Turing", Email: "alan@example.edu"}))
}
