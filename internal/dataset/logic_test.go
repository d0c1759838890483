package dataset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/feedforward/internal/nnerr"
)

func TestGateSamples(t *testing.T) {
	tests := []struct {
		gate Gate
		want []float64
	}{
		{OR, []float64{0, 1, 1, 1}},
		{AND, []float64{0, 0, 0, 1}},
		{XOR, []float64{0, 1, 1, 0}},
		{NOR, []float64{1, 0, 0, 0}},
		{XNOR, []float64{1, 0, 0, 1}},
		{NAND, []float64{1, 1, 1, 0}},
	}

	inputs := [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	for _, tt := range tests {
		t.Run(tt.gate.String(), func(t *testing.T) {
			samples := tt.gate.Samples()
			require.Len(t, samples, 4)
			for i, s := range samples {
				assert.Equal(t, inputs[i], s.Input)
				assert.Equal(t, []float64{tt.want[i]}, s.Output)
			}
		})
	}
}

func TestParseGate(t *testing.T) {
	for _, g := range Gates() {
		got, err := ParseGate(g.String())
		require.NoError(t, err)
		assert.Equal(t, g, got)
	}

	got, err := ParseGate("xnor")
	require.NoError(t, err)
	assert.Equal(t, XNOR, got)

	_, err = ParseGate("implies")
	require.Error(t, err)
	assert.True(t, errors.Is(err, nnerr.ErrConfiguration))
}

func TestGateString_Unknown(t *testing.T) {
	assert.Equal(t, "Gate(9)", Gate(9).String())
}
