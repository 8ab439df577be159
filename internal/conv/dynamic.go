package conv

import (
	"github.com/born-ml/skipconv/internal/tensor"
)

// ForwardDynamic convolves with caller-supplied weights instead of the loaded
// model. Weight shape is (num_output, in_channels, kernel_h, kernel_w); bias
// is a 1D tensor of length num_output or nil.
//
// Dynamic weights always run the dense kernel: the cached filter norms and
// top-E tables would describe stale weights.
func (c *Convolution) ForwardDynamic(bottom, weight, bias *tensor.RawTensor, opt Options) (*tensor.RawTensor, error) {
	if len(bottom.Shape()) != 3 {
		return nil, errConfig("input must be 3D (C,H,W), got %dD", len(bottom.Shape()))
	}
	if len(weight.Shape()) != 4 {
		return nil, errConfig("dynamic weight must be 4D (K,C,Kh,Kw), got %dD", len(weight.Shape()))
	}

	numOutput := weight.Shape()[0]
	inch := weight.Shape()[1]
	kernelH := weight.Shape()[2]
	kernelW := weight.Shape()[3]

	if bottom.Shape()[0] != inch {
		return nil, errConfig("input has %d channels, weight expects %d", bottom.Shape()[0], inch)
	}

	var biasData []float32
	if c.BiasTerm {
		if bias == nil || len(bias.Shape()) != 1 || bias.Shape()[0] != numOutput {
			return nil, errConfig("bias must be 1D of length %d", numOutput)
		}
		biasData = bias.AsFloat32()
	}

	bordered, err := c.makePadding(bottom, kernelW, kernelH, opt)
	if err != nil {
		return nil, err
	}

	w := bordered.Shape()[2]
	h := bordered.Shape()[1]
	kernelExtentW := c.DilationW*(kernelW-1) + 1
	kernelExtentH := c.DilationH*(kernelH-1) + 1
	outw := (w-kernelExtentW)/c.StrideW + 1
	outh := (h-kernelExtentH)/c.StrideH + 1

	if outw <= 0 || outh <= 0 {
		return nil, nil
	}

	top, err := tensor.AllocWith(opt.BlobAllocator, tensor.Shape{numOutput, outh, outw}, tensor.Float32)
	if err != nil {
		return nil, errAlloc(err)
	}

	rawConvolution(bordered, top, weight.AsFloat32(), biasData,
		kernelW, kernelH, c.StrideW, c.StrideH, c.DilationW, c.DilationH,
		c.ActivationType, c.ActivationParams)

	return top, nil
}
