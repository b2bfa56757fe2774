package req_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/weblog"
	"github.com/xy-planning-network/weblog/http/req"
)

func TestValidationErrorsError(t *testing.T) {
	// Arrange
	var v req.ValidationErrors

	// Act + Assert
	require.Zero(t, v.Error())

	// Arrange
	v = req.ValidationErrors{
		{Field: "title", Rule: "required; *string"},
		{Field: "text", Got: "<strong>", Rule: "max=3; string"},
	}

	expected := strings.Join([]string{
		`field="title" rule="required; *string" got="<nil>"`,
		`field="text" rule="max=3; string" got="<strong>"`,
	}, "\n")

	// Act + Assert
	require.Equal(t, expected, v.Error())
}

func TestValidationErrorsFields(t *testing.T) {
	require.Empty(t, req.ValidationErrors{}.Fields())

	v := req.ValidationErrors{
		{Field: "username", Rule: "required; *string"},
		{Field: "password", Rule: "required; *string"},
		{Field: "username", Rule: "max=64; *string"},
	}
	require.Equal(t, []string{"username", "password"}, v.Fields())
}

func TestValidationErrorsUnwrap(t *testing.T) {
	require.ErrorIs(t, req.ValidationErrors{}, weblog.ErrNotValid)
}
