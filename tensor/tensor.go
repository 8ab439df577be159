// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the dense tensors consumed and
// produced by the convolution operator.
//
// The convolution core works on 3D float32 tensors laid out channel-major
// (channels, height, width):
//
//	x, _ := tensor.Zeros3D(3, 224, 224)
//	row := x.Channel(0).Row(5) // sixth row (index 5) of the first channel
package tensor

import (
	"github.com/born-ml/skipconv/internal/tensor"
)

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Uint8   DataType = tensor.Uint8
)

// Shape represents tensor dimensions.
type Shape = tensor.Shape

// RawTensor is the dense tensor representation.
type RawTensor = tensor.RawTensor

// ChannelView is a 2D window over one channel of a 3D tensor.
type ChannelView = tensor.ChannelView

// Allocator produces tensors; plug one into conv.Options to control where
// outputs and workspace tensors live.
type Allocator = tensor.Allocator

// HeapAllocator is the default allocator.
type HeapAllocator = tensor.HeapAllocator

// NewRaw creates a zeroed tensor with the given shape and type.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype)
}

// Zeros3D creates a zero-filled float32 tensor shaped (channels, height, width).
func Zeros3D(channels, height, width int) (*RawTensor, error) {
	return tensor.Zeros3D(channels, height, width)
}

// FromFloats creates a float32 tensor of the given shape initialized from data.
func FromFloats(shape Shape, data []float32) (*RawTensor, error) {
	return tensor.FromFloats(shape, data)
}
