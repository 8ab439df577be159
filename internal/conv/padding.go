package conv

import (
	"github.com/born-ml/skipconv/internal/tensor"
)

// Special pad encodings carried in the pad_left..pad_bottom parameters.
const (
	// PadSameUpper computes tensorflow SAME / onnx SAME_UPPER padding from
	// the stride and input size.
	PadSameUpper = -233
	// PadSameLower computes onnx SAME_LOWER padding.
	PadSameLower = -234
)

// makePadding applies the operator's padding policy to the input and returns
// the bordered tensor. When no padding is needed the input is returned as is.
// Border tensors are allocated through the workspace allocator.
func (c *Convolution) makePadding(bottom *tensor.RawTensor, kernelW, kernelH int, opt Options) (*tensor.RawTensor, error) {
	w := bottom.Shape()[2]
	h := bottom.Shape()[1]

	kernelExtentW := c.DilationW*(kernelW-1) + 1
	kernelExtentH := c.DilationH*(kernelH-1) + 1

	switch {
	case c.PadLeft > 0 || c.PadRight > 0 || c.PadTop > 0 || c.PadBottom > 0:
		return copyMakeBorder(bottom, c.PadTop, c.PadBottom, c.PadLeft, c.PadRight, c.PadValue, opt.WorkspaceAllocator)

	case c.PadLeft == PadSameUpper && c.PadRight == PadSameUpper && c.PadTop == PadSameUpper && c.PadBottom == PadSameUpper:
		wpad := kernelExtentW + (w-1)/c.StrideW*c.StrideW - w
		hpad := kernelExtentH + (h-1)/c.StrideH*c.StrideH - h
		if wpad > 0 || hpad > 0 {
			return copyMakeBorder(bottom, hpad/2, hpad-hpad/2, wpad/2, wpad-wpad/2, c.PadValue, opt.WorkspaceAllocator)
		}

	case c.PadLeft == PadSameLower && c.PadRight == PadSameLower && c.PadTop == PadSameLower && c.PadBottom == PadSameLower:
		wpad := kernelExtentW + (w-1)/c.StrideW*c.StrideW - w
		hpad := kernelExtentH + (h-1)/c.StrideH*c.StrideH - h
		if wpad > 0 || hpad > 0 {
			return copyMakeBorder(bottom, hpad-hpad/2, hpad/2, wpad-wpad/2, wpad/2, c.PadValue, opt.WorkspaceAllocator)
		}
	}

	return bottom, nil
}

// copyMakeBorder surrounds a 3D (C, H, W) float32 tensor with a constant border.
func copyMakeBorder(src *tensor.RawTensor, top, bottom, left, right int, value float32, alloc tensor.Allocator) (*tensor.RawTensor, error) {
	ch := src.Shape()[0]
	h := src.Shape()[1]
	w := src.Shape()[2]

	outH := h + top + bottom
	outW := w + left + right

	dst, err := tensor.AllocWith(alloc, tensor.Shape{ch, outH, outW}, tensor.Float32)
	if err != nil {
		return nil, errAlloc(err)
	}

	for q := 0; q < ch; q++ {
		in := src.Channel(q)
		out := dst.Channel(q)

		for y := 0; y < outH; y++ {
			row := out.Row(y)
			sy := y - top
			if sy < 0 || sy >= h {
				for x := range row {
					row[x] = value
				}
				continue
			}
			srow := in.Row(sy)
			for x := 0; x < left; x++ {
				row[x] = value
			}
			copy(row[left:left+w], srow)
			for x := left + w; x < outW; x++ {
				row[x] = value
			}
		}
	}

	return dst, nil
}
