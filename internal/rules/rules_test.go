package rules

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "shireesh.com/cutter/internal/errors"
	"shireesh.com/cutter/internal/option"
)

func TestValidate_AllCombinations(t *testing.T) {
	tests := []struct {
		gateway string
		grpc    string
		wantErr bool
	}{
		{"yes", "no", true},
		{"yes", "yes", false},
		{"no", "yes", false},
		{"no", "no", false},
	}

	for _, tt := range tests {
		t.Run("gateway="+tt.gateway+",grpc="+tt.grpc, func(t *testing.T) {
			err := Validate(map[string]string{
				option.GRPCGatewayEnabled: tt.gateway,
				option.GRPCEnabled:        tt.grpc,
			})
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, cerrors.ErrInvalidCombination)
			assert.Contains(t, err.Error(), "grpc_enabled needs to be set to 'yes'")

			var v *Violation
			require.True(t, errors.As(err, &v))
			assert.Equal(t, option.GRPCGatewayEnabled, v.Rule.Option)
		})
	}
}

func TestValidate_UnsetFlagsAreDisabled(t *testing.T) {
	assert.NoError(t, Validate(map[string]string{}))

	err := Validate(map[string]string{option.GRPCGatewayEnabled: "yes"})
	assert.ErrorIs(t, err, cerrors.ErrInvalidCombination)
}

func TestValidate_MalformedToken(t *testing.T) {
	err := Validate(map[string]string{
		option.GRPCGatewayEnabled: "{{ cookiecutter.grpc_gateway_enabled }}",
		option.GRPCEnabled:        "no",
	})

	assert.ErrorIs(t, err, cerrors.ErrInvalidToken)
	assert.NotErrorIs(t, err, cerrors.ErrInvalidCombination)
}

func TestValidateWith_ReportsEveryViolation(t *testing.T) {
	table := []Rule{
		{Option: "a", Requires: "b", Message: "a needs b"},
		{Option: "c", Requires: "b", Message: "c needs b"},
		{Option: "d", Requires: "b", Message: "d needs b"},
	}

	err := ValidateWith(table, map[string]string{"a": "yes", "b": "no", "c": "yes", "d": "no"})
	require.Error(t, err)

	var vs Violations
	require.True(t, errors.As(err, &vs))
	assert.Len(t, vs, 2)
	assert.Equal(t, "a needs b; c needs b", err.Error())
}
