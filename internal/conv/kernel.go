package conv

import (
	"github.com/born-ml/skipconv/internal/tensor"
)

// dotAt computes the full dot product at output position (i, j) for channel k,
// bias included. Accumulation order is input channel outer, kernel tap inner.
func dotAt(x *tensor.RawTensor, weights, bias []float32, k, i, j, inch, maxk, strideW, strideH int, spaceOfs []int) float32 {
	var y float32
	if bias != nil {
		y = bias[k]
	}

	kbase := maxk * inch * k
	for q := 0; q < inch; q++ {
		sptr := x.Channel(q).RowFrom(i * strideH)[j*strideW:]
		kptr := weights[kbase+q*maxk:]
		for t := 0; t < maxk; t++ {
			y += sptr[spaceOfs[t]] * kptr[t]
		}
	}
	return y
}

// rawConvolution is the dense reference kernel: every output position is an
// exact dot product followed by the fused activation. It touches no caches.
func rawConvolution(x, top *tensor.RawTensor, weights, bias []float32,
	kernelW, kernelH, strideW, strideH, dilationW, dilationH int,
	activation ActivationType, activationParams []float32) {

	inch := x.Shape()[0]
	outch := top.Shape()[0]
	outh := top.Shape()[1]
	outw := top.Shape()[2]
	maxk := kernelW * kernelH

	spaceOfs := spaceOffsets(x.Shape()[2], kernelW, kernelH, dilationW, dilationH)
	outData := top.AsFloat32()

	for i := 0; i < outh; i++ {
		for j := 0; j < outw; j++ {
			for k := 0; k < outch; k++ {
				y := dotAt(x, weights, bias, k, i, j, inch, maxk, strideW, strideH, spaceOfs)
				outData[k*outh*outw+i*outw+j] = applyActivation(y, activation, activationParams)
			}
		}
	}
}

// exactForward runs the dense kernel and seeds the cross-call caches:
// lastYBar receives the pre-activation minus bias at every position.
func (c *Convolution) exactForward(x, top *tensor.RawTensor) {
	inch := x.Shape()[0]
	outch := top.Shape()[0]
	outh := top.Shape()[1]
	outw := top.Shape()[2]
	maxk := c.KernelW * c.KernelH

	spaceOfs := spaceOffsets(x.Shape()[2], c.KernelW, c.KernelH, c.DilationW, c.DilationH)

	var bias []float32
	if c.BiasTerm {
		bias = c.BiasData
	}

	outData := top.AsFloat32()
	barData := c.state.lastYBar.AsFloat32()

	for i := 0; i < outh; i++ {
		for j := 0; j < outw; j++ {
			for k := 0; k < outch; k++ {
				y := dotAt(x, c.WeightData, bias, k, i, j, inch, maxk, c.StrideW, c.StrideH, spaceOfs)

				at := k*outh*outw + i*outw + j
				if bias != nil {
					barData[at] = y - bias[k]
				} else {
					barData[at] = y
				}
				outData[at] = applyActivation(y, c.ActivationType, c.ActivationParams)
			}
		}
	}
}
