package conv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/skipconv/conv"
	"github.com/born-ml/skipconv/params"
	"github.com/born-ml/skipconv/tensor"
)

// End-to-end through the public API: configure from a dict, load weights from
// a model bin, stream two frames in bound mode.
func TestPublicAPI_RoundTrip(t *testing.T) {
	pd := params.NewDict()
	pd.SetInt(0, 1) // num_output
	pd.SetInt(1, 3) // kernel_w
	pd.SetInt(5, 1) // bias_term
	pd.SetInt(6, 9) // weight_data_size
	pd.SetInt(9, int(conv.ActivationReLU))

	weights := make([]float32, 9)
	for i := range weights {
		weights[i] = 0.1
	}

	op := conv.New()
	require.NoError(t, op.LoadParam(pd))
	require.NoError(t, op.LoadModel(params.FromSlices(weights, []float32{-1})))
	op.Mode = conv.ModeTemporalSpatial

	frame, err := tensor.Zeros3D(1, 6, 6)
	require.NoError(t, err)

	opt := conv.Options{UseBoundMode: true}

	out1, err := op.Forward(frame, opt)
	require.NoError(t, err)
	require.True(t, out1.Shape().Equal(tensor.Shape{1, 4, 4}))

	out2, err := op.Forward(frame, opt)
	require.NoError(t, err)

	for _, v := range out2.AsFloat32() {
		assert.Zero(t, v)
	}
	assert.Greater(t, op.LastSparsity(), float32(0))
	assert.Equal(t, conv.StatusOK, conv.Status(nil))
}
