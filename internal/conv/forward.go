package conv

import (
	"github.com/born-ml/skipconv/internal/tensor"
)

// Forward runs the operator on a 3D (C, H, W) float32 input and returns the
// output tensor.
//
// A 1D input with a 1x1 kernel whose width matches the filter length is
// dispatched to the InnerProduct operator, mirroring the behavior of the
// enclosing framework for flattened blobs.
//
// When the computed output shape is empty Forward returns (nil, nil) and
// leaves every cache untouched. Failures never leave the caches torn: all
// cache allocation happens before the first output value is written, and the
// cached input is only replaced once the kernel has completed.
func (c *Convolution) Forward(bottom *tensor.RawTensor, opt Options) (*tensor.RawTensor, error) {
	if c.DynamicWeight {
		return nil, errConfig("dynamic-weight operator: use ForwardDynamic")
	}

	if len(bottom.Shape()) == 1 && c.KernelW == 1 && c.KernelH == 1 {
		if c.NumOutput <= 0 {
			return nil, errConfig("num_output not set")
		}
		numInput := c.WeightDataSize / c.NumOutput
		if bottom.Shape()[0] == numInput {
			return c.forwardAsInnerProduct(bottom, opt)
		}
	}

	if len(bottom.Shape()) != 3 {
		return nil, errConfig("input must be 3D (C,H,W), got %dD", len(bottom.Shape()))
	}
	if bottom.DType() != tensor.Float32 {
		return nil, errConfig("input dtype must be float32, got %s", bottom.DType())
	}
	if c.NumOutput <= 0 || c.KernelW <= 0 || c.KernelH <= 0 {
		return nil, errConfig("operator not configured: num_output=%d kernel=%dx%d",
			c.NumOutput, c.KernelW, c.KernelH)
	}
	if !c.Mode.valid() {
		return nil, errConfig("unknown mode %d", int(c.Mode))
	}

	inch := bottom.Shape()[0]
	maxk := c.KernelW * c.KernelH
	if c.WeightDataSize != c.NumOutput*inch*maxk {
		return nil, errConfig("weight_data_size %d does not match %d outputs x %d channels x %d taps",
			c.WeightDataSize, c.NumOutput, inch, maxk)
	}
	if len(c.WeightData) != c.WeightDataSize {
		return nil, errConfig("weights not loaded: have %d values, want %d", len(c.WeightData), c.WeightDataSize)
	}
	if c.BiasTerm && len(c.BiasData) != c.NumOutput {
		return nil, errConfig("bias not loaded: have %d values, want %d", len(c.BiasData), c.NumOutput)
	}

	bordered, err := c.makePadding(bottom, c.KernelW, c.KernelH, opt)
	if err != nil {
		return nil, err
	}

	w := bordered.Shape()[2]
	h := bordered.Shape()[1]
	kernelExtentW := c.DilationW*(c.KernelW-1) + 1
	kernelExtentH := c.DilationH*(c.KernelH-1) + 1
	outw := (w-kernelExtentW)/c.StrideW + 1
	outh := (h-kernelExtentH)/c.StrideH + 1

	if outw <= 0 || outh <= 0 {
		return nil, nil
	}

	top, err := tensor.AllocWith(opt.BlobAllocator, tensor.Shape{c.NumOutput, outh, outw}, tensor.Float32)
	if err != nil {
		return nil, errAlloc(err)
	}

	mode := c.Mode
	if !opt.UseBoundMode {
		mode = ModeExact
	}
	if mode != ModeExact && !reluLike(c.ActivationType, c.ActivationParams) {
		// the skip branch would clamp positions the activation does not
		mode = ModeExact
	}

	if mode == ModeExact {
		rawConvolution(bordered, top, c.WeightData, c.biasOrNil(),
			c.KernelW, c.KernelH, c.StrideW, c.StrideH, c.DilationW, c.DilationH,
			c.ActivationType, c.ActivationParams)
		return top, nil
	}

	if err := c.ensureState(bordered, c.NumOutput, outh, outw, inch, maxk); err != nil {
		return nil, err
	}

	if !c.state.initialized {
		c.exactForward(bordered, top)
	} else {
		c.boundForward(bordered, top)
	}

	c.commitLastX(bordered)
	c.state.initialized = true

	return top, nil
}

func (c *Convolution) biasOrNil() []float32 {
	if c.BiasTerm {
		return c.BiasData
	}
	return nil
}
