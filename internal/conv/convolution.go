// Package conv implements an output-sparsity-aware 2D convolution operator.
//
// The operator exploits temporal coherence between successive calls on
// similar inputs and spatial coherence between neighboring output positions:
// Cauchy-Schwarz bounds over cached state prove that many pre-activations
// cannot exceed zero, so under a ReLU-like activation their exact dot
// products are skipped. When a bound is inconclusive the operator falls back
// to the exact computation for that position, so bound-mode output is
// bitwise identical to the dense kernel's for every mode except
// ModeTemporalTopE. That mode's select norm leaves out the top-E weights
// whose product with the input difference is positive, and nothing in the
// bound covers their positive contribution, so it can zero a position whose
// exact pre-activation is positive.
package conv

import (
	"github.com/born-ml/skipconv/internal/params"
	"github.com/born-ml/skipconv/internal/tensor"
)

// Parameter-table ids understood by LoadParam.
const (
	paramNumOutput       = 0
	paramKernelW         = 1
	paramDilationW       = 2
	paramStrideW         = 3
	paramPadLeft         = 4
	paramBiasTerm        = 5
	paramWeightDataSize  = 6
	paramInt8ScaleTerm   = 8
	paramActivationType  = 9
	paramActivationParam = 10
	paramKernelH         = 11
	paramDilationH       = 12
	paramStrideH         = 13
	paramPadTop          = 14
	paramPadRight        = 15
	paramPadBottom       = 16
	paramPadValue        = 18
	paramDynamicWeight   = 19
)

// Options bundles per-call settings for Forward.
type Options struct {
	// BlobAllocator allocates output tensors; nil means the heap.
	BlobAllocator tensor.Allocator
	// WorkspaceAllocator allocates the padding border tensors; nil means the
	// heap. The cross-call cached state is always allocated on the heap.
	WorkspaceAllocator tensor.Allocator
	// UseBoundMode enables the operator's configured bound strategy. When
	// false every call runs the dense kernel and no state is cached.
	UseBoundMode bool
}

// Convolution is the sparsity-aware 2D convolution operator.
//
// Configure with LoadParam and LoadModel (or by filling the exported fields
// directly), pick a bound strategy via Mode, then call Forward once per
// input. A single instance must not be used from concurrent goroutines: the
// cached state is per instance and calls mutate it.
type Convolution struct {
	NumOutput int
	KernelW   int
	KernelH   int
	DilationW int
	DilationH int
	StrideW   int
	StrideH   int
	PadLeft   int
	PadRight  int
	PadTop    int
	PadBottom int
	PadValue  float32
	BiasTerm  bool

	WeightDataSize int

	ActivationType   ActivationType
	ActivationParams []float32

	DynamicWeight bool

	// Mode is the bound strategy used when Options.UseBoundMode is set.
	Mode Mode

	WeightData []float32
	BiasData   []float32

	state coreState
}

// New creates an operator with a 1x1 kernel, unit stride and dilation, no
// padding and the temporal bound strategy. The 1x1 kernel differs from
// LoadParam, whose kernel_w default is 0.
func New() *Convolution {
	return &Convolution{
		KernelW:   1,
		KernelH:   1,
		DilationW: 1,
		DilationH: 1,
		StrideW:   1,
		StrideH:   1,
		Mode:      ModeTemporal,
	}
}

// LoadParam reads the operator configuration from a parameter dictionary.
func (c *Convolution) LoadParam(pd *params.Dict) error {
	c.NumOutput = pd.GetInt(paramNumOutput, 0)
	c.KernelW = pd.GetInt(paramKernelW, 0)
	c.KernelH = pd.GetInt(paramKernelH, c.KernelW)
	c.DilationW = pd.GetInt(paramDilationW, 1)
	c.DilationH = pd.GetInt(paramDilationH, c.DilationW)
	c.StrideW = pd.GetInt(paramStrideW, 1)
	c.StrideH = pd.GetInt(paramStrideH, c.StrideW)
	c.PadLeft = pd.GetInt(paramPadLeft, 0)
	c.PadRight = pd.GetInt(paramPadRight, c.PadLeft)
	c.PadTop = pd.GetInt(paramPadTop, c.PadLeft)
	c.PadBottom = pd.GetInt(paramPadBottom, c.PadTop)
	c.PadValue = pd.GetFloat(paramPadValue, 0)
	c.BiasTerm = pd.GetInt(paramBiasTerm, 0) != 0
	c.WeightDataSize = pd.GetInt(paramWeightDataSize, 0)
	c.ActivationType = ActivationType(pd.GetInt(paramActivationType, 0))
	c.ActivationParams = pd.GetFloats(paramActivationParam)
	c.DynamicWeight = pd.GetInt(paramDynamicWeight, 0) != 0

	c.state.reset()

	if pd.GetInt(paramInt8ScaleTerm, 0) != 0 {
		return errConfig("int8 inference is not built into this operator")
	}

	return nil
}

// LoadModel reads weight_data and, when bias_term is set, bias_data.
// Skipped entirely for dynamic-weight operators.
func (c *Convolution) LoadModel(mb *params.ModelBin) error {
	if c.DynamicWeight {
		return nil
	}

	weights, err := mb.Load(c.WeightDataSize)
	if err != nil {
		return errAlloc(err)
	}
	c.WeightData = weights

	if c.BiasTerm {
		bias, err := mb.Load(c.NumOutput)
		if err != nil {
			return errAlloc(err)
		}
		c.BiasData = bias
	}

	c.state.reset()
	return nil
}

// Reset clears all cached cross-call state. The next bound-mode forward call
// runs the exact kernel and repopulates the caches.
func (c *Convolution) Reset() {
	c.state.reset()
}

// Initialized reports whether the cross-call caches are populated.
func (c *Convolution) Initialized() bool {
	return c.state.initialized
}
