package conv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/skipconv/internal/tensor"
)

func TestForwardDynamic_MatchesStaticExact(t *testing.T) {
	weights := testWeights(2 * 1 * 9)
	bias := []float32{0.5, -0.5}

	static := buildOp(t, opConfig{
		numOutput: 2, kernelW: 3, kernelH: 3,
		weights:    weights,
		bias:       bias,
		activation: ActivationReLU,
		mode:       ModeExact,
	})

	dynamic := New()
	dynamic.DynamicWeight = true
	dynamic.BiasTerm = true
	dynamic.ActivationType = ActivationReLU

	in, _ := tensor.Zeros3D(1, 5, 5)
	for i, v := range testWeights(25) {
		in.AsFloat32()[i] = v
	}

	weightT, err := tensor.FromFloats(tensor.Shape{2, 1, 3, 3}, weights)
	require.NoError(t, err)
	biasT, err := tensor.FromFloats(tensor.Shape{2}, bias)
	require.NoError(t, err)

	got, err := dynamic.ForwardDynamic(in, weightT, biasT, Options{})
	require.NoError(t, err)

	want := forward(t, static, in, Options{})
	assert.Equal(t, want.AsFloat32(), got.AsFloat32())
}

func TestForward_DynamicOperatorRejectsStaticEntry(t *testing.T) {
	c := New()
	c.DynamicWeight = true

	in, _ := tensor.Zeros3D(1, 4, 4)
	_, err := c.Forward(in, Options{})
	require.Error(t, err)
	assert.Equal(t, StatusConfig, Status(err))
}
