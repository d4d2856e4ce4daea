package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/projectmatch-backend/internal/pkg/apperror"
)

func TestValidateProject(t *testing.T) {
	url := "https://github.com/user/repo"
	assert.NoError(t, ValidateProject("Todo app", "A small app", "Go", &url, []string{"web", "cli"}))

	bad := "ftp://example.com/repo"
	cases := map[string]error{
		"empty title":     ValidateProject(" ", "d", "", nil, nil),
		"long title":      ValidateProject(strings.Repeat("x", MaxProjectTitleLength+1), "d", "", nil, nil),
		"bad url":         ValidateProject("t", "d", "", &bad, nil),
		"too many topics": ValidateProject("t", "d", "", nil, strings.Split("a,b,c,d,e,f,g,h,i,j,k", ",")),
		"dup topics":      ValidateProject("t", "d", "", nil, []string{"ML", "ml"}),
	}
	for name, err := range cases {
		assert.True(t, apperror.IsValidation(err), name)
	}
}

func TestValidateProfile(t *testing.T) {
	assert.NoError(t, ValidateProfile("", "", nil))
	assert.NoError(t, ValidateProfile("I like Go", "octo-cat", []string{"web"}))

	assert.True(t, apperror.IsValidation(ValidateProfile("", "-octo", nil)))
	assert.True(t, apperror.IsValidation(ValidateProfile("", "octo--cat", nil)))
	assert.True(t, apperror.IsValidation(ValidateProfile(strings.Repeat("б", MaxBioLength+1), "", nil)))
	assert.True(t, apperror.IsValidation(ValidateProfile("", "", []string{""})))
}
