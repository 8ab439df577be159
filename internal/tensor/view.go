package tensor

import "fmt"

// ChannelView is a 2D window over one channel of a 3D (C, H, W) float32
// tensor. Rows are contiguous; the view aliases the tensor's buffer, so
// writes through Row are visible to other holders of the tensor.
type ChannelView struct {
	data []float32
	h, w int
}

// Channel returns a view of channel q of a 3D float32 tensor.
// Panics if the tensor is not 3D or q is out of range.
func (r *RawTensor) Channel(q int) ChannelView {
	if len(r.shape) != 3 {
		panic(fmt.Sprintf("Channel: tensor must be 3D (C,H,W), got %dD", len(r.shape)))
	}
	c, h, w := r.shape[0], r.shape[1], r.shape[2]
	if q < 0 || q >= c {
		panic(fmt.Sprintf("Channel: index %d out of range [0,%d)", q, c))
	}
	all := r.AsFloat32()
	return ChannelView{
		data: all[q*h*w : (q+1)*h*w],
		h:    h,
		w:    w,
	}
}

// Row returns the y-th row of the channel as a slice of length W.
func (v ChannelView) Row(y int) []float32 {
	return v.data[y*v.w : (y+1)*v.w]
}

// RowFrom returns the channel's flat storage starting at row y. Unlike Row
// the result extends to the end of the channel, so kernel-tap offsets that
// reach into later rows stay in bounds.
func (v ChannelView) RowFrom(y int) []float32 {
	return v.data[y*v.w:]
}

// Floats returns the channel's flat H*W storage.
func (v ChannelView) Floats() []float32 {
	return v.data
}

// Width returns W for the viewed channel.
func (v ChannelView) Width() int {
	return v.w
}

// Height returns H for the viewed channel.
func (v ChannelView) Height() int {
	return v.h
}
