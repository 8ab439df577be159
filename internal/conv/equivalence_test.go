package conv

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/skipconv/internal/tensor"
)

func randomOpConfig(rng *rand.Rand, mode Mode) opConfig {
	const numOutput, inch, kw, kh = 4, 3, 3, 3

	weights := make([]float32, numOutput*inch*kw*kh)
	for i := range weights {
		weights[i] = (rng.Float32()*2 - 1) * 0.3
	}
	bias := make([]float32, numOutput)
	for i := range bias {
		bias[i] = -0.6 + rng.Float32()*0.2
	}

	return opConfig{
		numOutput: numOutput, kernelW: kw, kernelH: kh, padLeft: 1,
		weights:    weights,
		bias:       bias,
		activation: ActivationReLU,
		mode:       mode,
	}
}

func randomFrames(rng *rand.Rand, n, ch, h, w int) []*tensor.RawTensor {
	// smooth spatial base so the row/column deltas stay small, the way
	// neighboring patches of a natural frame do
	base := make([]float32, ch*h*w)
	phase := rng.Float64() * 3
	for c := 0; c < ch; c++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				v := 0.5 + 0.3*math.Sin(phase+float64(c)+0.25*float64(y))*math.Cos(0.25*float64(x))
				base[c*h*w+y*w+x] = float32(v)
			}
		}
	}

	frames := make([]*tensor.RawTensor, n)
	for f := range frames {
		frame, err := tensor.Zeros3D(ch, h, w)
		if err != nil {
			panic(err)
		}
		data := frame.AsFloat32()
		for i := range data {
			data[i] = base[i] + (rng.Float32()*2-1)*0.02
		}
		frames[f] = frame
	}
	return frames
}

// The first bound-mode call must be bitwise identical to the dense kernel.
func TestFirstCallMatchesExact(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	cfg := randomOpConfig(rng, ModeTemporalSpatial)

	boundOp := buildOp(t, cfg)
	exactOp := buildOp(t, cfg)

	frame := randomFrames(rng, 1, 3, 8, 8)[0]

	got := forward(t, boundOp, frame, boundOpts())
	want := forward(t, exactOp, frame, Options{})
	assert.Equal(t, want.AsFloat32(), got.AsFloat32())
	assert.True(t, boundOp.Initialized())
}

// Over a sequence of coherent frames every bound mode must reproduce the
// dense kernel bitwise: a skipped position is provably zero, a computed one
// shares the exact accumulation order.
func TestBoundModesMatchExactOverSequence(t *testing.T) {
	modes := []Mode{
		ModeTemporal,
		ModeSpatial,
		ModeSpatialFirstOne,
		ModeTemporalSpatial,
		ModeTemporalSpatialLower,
	}

	for _, mode := range modes {
		t.Run(mode.String(), func(t *testing.T) {
			rng := rand.New(rand.NewSource(23))
			cfg := randomOpConfig(rng, mode)

			boundOp := buildOp(t, cfg)
			exactOp := buildOp(t, cfg)

			sawSkips := false
			for _, frame := range randomFrames(rng, 4, 3, 10, 10) {
				got := forward(t, boundOp, frame, boundOpts())
				want := forward(t, exactOp, frame, Options{})
				require.Equal(t, want.AsFloat32(), got.AsFloat32())

				if boundOp.LastSparsity() > 0 {
					sawSkips = true
				}
			}
			assert.True(t, sawSkips, "sequence must exercise the skip branch")
		})
	}
}

// The select-norm refinement with a comfortable margin below zero: every
// skip stays sound and the whole output is provably zero.
func TestTopEModeMatchesExactWithMargin(t *testing.T) {
	weights := make([]float32, 2*9)
	for i := range weights {
		weights[i] = 0.1
	}
	cfg := opConfig{
		numOutput: 2, kernelW: 3, kernelH: 3,
		weights:    weights,
		bias:       []float32{-1, -2},
		activation: ActivationReLU,
		mode:       ModeTemporalTopE,
	}
	boundOp := buildOp(t, cfg)
	exactOp := buildOp(t, cfg)

	rng := rand.New(rand.NewSource(31))
	frames := make([]*tensor.RawTensor, 3)
	for f := range frames {
		frame, _ := tensor.Zeros3D(1, 6, 6)
		data := frame.AsFloat32()
		for i := range data {
			data[i] = rng.Float32() * 0.05
		}
		frames[f] = frame
	}

	for i, frame := range frames {
		got := forward(t, boundOp, frame, boundOpts())
		want := forward(t, exactOp, frame, Options{})
		require.Equal(t, want.AsFloat32(), got.AsFloat32())
		if i > 0 {
			assert.Equal(t, float32(1), boundOp.LastSparsity())
		}
	}
}

// Forcing re-initialization and replaying the first input must rebuild the
// caches exactly.
func TestReinitializationReproducesCaches(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	cfg := randomOpConfig(rng, ModeTemporalTopE)
	op := buildOp(t, cfg)

	frame := randomFrames(rng, 1, 3, 7, 7)[0]
	forward(t, op, frame, boundOpts())

	wNorm := append([]float32(nil), op.state.wNorm...)
	selectNorms := append([]float32(nil), op.state.selectNorms...)
	bar := append([]float32(nil), op.state.lastYBar.AsFloat32()...)
	lastX := append([]float32(nil), op.state.lastX.AsFloat32()...)

	op.Reset()
	require.False(t, op.Initialized())
	forward(t, op, frame, boundOpts())

	assert.Equal(t, wNorm, op.state.wNorm)
	assert.Equal(t, selectNorms, op.state.selectNorms)
	assert.Equal(t, bar, append([]float32(nil), op.state.lastYBar.AsFloat32()...))
	assert.Equal(t, lastX, append([]float32(nil), op.state.lastX.AsFloat32()...))
}

// With bound mode disabled in the options the configured strategy is ignored
// and nothing is cached.
func TestBoundModeDisabledRunsDense(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	cfg := randomOpConfig(rng, ModeTemporalSpatial)

	op := buildOp(t, cfg)
	exactOp := buildOp(t, cfg)

	for _, frame := range randomFrames(rng, 2, 3, 6, 6) {
		got := forward(t, op, frame, Options{})
		want := forward(t, exactOp, frame, Options{})
		require.Equal(t, want.AsFloat32(), got.AsFloat32())
	}
	assert.False(t, op.Initialized())
}
