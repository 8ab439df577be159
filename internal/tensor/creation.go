package tensor

import "fmt"

// Zeros3D creates a zero-filled float32 tensor shaped (channels, height, width).
func Zeros3D(channels, height, width int) (*RawTensor, error) {
	return NewRaw(Shape{channels, height, width}, Float32)
}

// FromFloats creates a float32 tensor of the given shape initialized from data.
// The data length must match the shape's element count.
func FromFloats(shape Shape, data []float32) (*RawTensor, error) {
	t, err := NewRaw(shape, Float32)
	if err != nil {
		return nil, err
	}
	if len(data) != t.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, t.NumElements())
	}
	copy(t.AsFloat32(), data)
	return t, nil
}
