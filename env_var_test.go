package weblog_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/weblog"
)

const testEnvVar = "WEBLOG_TEST_ENV_VAR"

func TestLookupEnvVar(t *testing.T) {
	// Arrange
	t.Setenv(testEnvVar, "")

	// Act
	val, ok, err := weblog.LookupEnvVar(testEnvVar, time.ParseDuration)

	// Assert
	require.Nil(t, err)
	require.False(t, ok)
	require.Zero(t, val)

	// Arrange
	t.Setenv(testEnvVar, "90s")

	// Act
	val, ok, err = weblog.LookupEnvVar(testEnvVar, time.ParseDuration)

	// Assert
	require.Nil(t, err)
	require.True(t, ok)
	require.Equal(t, 90*time.Second, val)

	// Arrange
	t.Setenv(testEnvVar, "soon")

	// Act
	val, ok, err = weblog.LookupEnvVar(testEnvVar, time.ParseDuration)

	// Assert
	require.ErrorIs(t, err, weblog.ErrBadFormat)
	require.Contains(t, err.Error(), testEnvVar)
	require.True(t, ok)
	require.Zero(t, val)
}

func TestParseBool(t *testing.T) {
	for _, tc := range []struct {
		val      string
		expected bool
		ok       bool
	}{
		{"true", true, true},
		{"TRUE", true, true},
		{"False", false, true},
		{"yes", false, false},
		{"", false, false},
	} {
		t.Run(tc.val, func(t *testing.T) {
			// Act
			actual, err := weblog.ParseBool(tc.val)

			// Assert
			require.Equal(t, tc.expected, actual)
			if tc.ok {
				require.Nil(t, err)
			} else {
				require.ErrorIs(t, err, weblog.ErrNotValid)
			}
		})
	}
}

func TestParseEnvironment(t *testing.T) {
	env, err := weblog.ParseEnvironment("production")
	require.Nil(t, err)
	require.Equal(t, weblog.Production, env)

	env, err = weblog.ParseEnvironment("PRODUCTOIN")
	require.ErrorIs(t, err, weblog.ErrNotValid)
	require.Zero(t, env)
}

func TestEnvVarOrString(t *testing.T) {
	t.Setenv(testEnvVar, "")
	require.Equal(t, "def", weblog.EnvVarOrString(testEnvVar, "def"))

	t.Setenv(testEnvVar, "set")
	require.Equal(t, "set", weblog.EnvVarOrString(testEnvVar, "def"))
}

func TestEnvironment(t *testing.T) {
	for _, env := range []weblog.Environment{weblog.Development, weblog.Production, weblog.Staging, weblog.Testing} {
		require.Nil(t, env.Valid())
	}

	require.ErrorIs(t, weblog.Environment("development").Valid(), weblog.ErrNotValid)

	require.False(t, weblog.Development.SecureCookies())
	require.False(t, weblog.Testing.SecureCookies())
	require.True(t, weblog.Staging.SecureCookies())
	require.True(t, weblog.Production.SecureCookies())
}
