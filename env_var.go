package weblog

import (
	"fmt"
	"os"
	"strings"
)

// LookupEnvVar parses the environment variable key with parse.
//
// ok is false when key is unset or empty.
// A value parse rejects fails with ErrBadFormat naming key,
// so a typo never passes for the default.
func LookupEnvVar[T any](key string, parse func(string) (T, error)) (val T, ok bool, err error) {
	raw, set := os.LookupEnv(key)
	if !set || raw == "" {
		return val, false, nil
	}

	val, err = parse(raw)
	if err != nil {
		var zero T
		return zero, true, fmt.Errorf("%w: %s=%q: %s", ErrBadFormat, key, raw, err)
	}

	return val, true, nil
}

// EnvVarOrString reads key or returns def when key is unset or empty.
func EnvVarOrString(key, def string) string {
	val, _, _ := LookupEnvVar(key, func(s string) (string, error) { return s, nil })
	if val == "" {
		return def
	}

	return val
}

// ParseBool reads "true" or "false", in any case.
func ParseBool(val string) (bool, error) {
	switch strings.ToLower(val) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q is not true or false", ErrNotValid, val)
	}
}

// ParseEnvironment reads a known Environment, in any case.
func ParseEnvironment(val string) (Environment, error) {
	env := Environment(strings.ToUpper(val))
	if err := env.Valid(); err != nil {
		return "", err
	}

	return env, nil
}
