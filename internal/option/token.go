package option

import (
	"strings"

	cerrors "shireesh.com/cutter/internal/errors"
)

// Canonical flag tokens, as written by the renderer.
const (
	Yes = "yes"
	No  = "no"
)

var flagTokens = map[string]bool{
	"yes":   true,
	"y":     true,
	"true":  true,
	"on":    true,
	"1":     true,
	"no":    false,
	"n":     false,
	"false": false,
	"off":   false,
	"0":     false,
}

// ParseFlag interprets a yes/no token. Matching is case-insensitive and ignores
// surrounding whitespace.
func ParseFlag(name, token string) (bool, error) {
	if err := CheckRendered(name, token); err != nil {
		return false, err
	}

	v, ok := flagTokens[strings.ToLower(strings.TrimSpace(token))]
	if !ok {
		return false, cerrors.NewTokenError(name, token, "use yes or no")
	}
	return v, nil
}

// FormatFlag returns the canonical token for a flag value.
func FormatFlag(v bool) string {
	if v {
		return Yes
	}
	return No
}

// CheckRendered rejects tokens the renderer left unsubstituted.
func CheckRendered(name, token string) error {
	if strings.Contains(token, "{{") && strings.Contains(token, "}}") {
		return cerrors.NewTokenError(name, token, "the template renderer did not substitute this value")
	}
	return nil
}
