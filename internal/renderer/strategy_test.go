package renderer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStrategy(t *testing.T) {
	testCases := []struct {
		input string
		want  Strategy
	}{
		{"0", StrategyDefault},
		{"1", StrategyExperimental},
		{"2", StrategyLoudness},
		{"default", StrategyDefault},
		{"Experimental", StrategyExperimental},
		{" loudness ", StrategyLoudness},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseStrategy(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseStrategyInvalid(t *testing.T) {
	for _, input := range []string{"3", "-1", "spectral", ""} {
		_, err := ParseStrategy(input)
		assert.True(t, errors.Is(err, ErrInvalidStrategy), "input %q: %v", input, err)
	}
}

func TestStrategyValidateNamesRange(t *testing.T) {
	err := Strategy(7).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "got 7, should be 0-2")

	assert.NoError(t, StrategyLoudness.Validate())
}

func TestStrategyString(t *testing.T) {
	assert.Equal(t, "default", StrategyDefault.String())
	assert.Equal(t, "experimental", StrategyExperimental.String())
	assert.Equal(t, "loudness", StrategyLoudness.String())
	assert.Equal(t, "strategy(9)", Strategy(9).String())
}
