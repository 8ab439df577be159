package tensor

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"
)

// tensorBuffer is a reference-counted shared buffer. Shallow clones share it;
// deep clones and CopyFrom duplicate the bytes.
type tensorBuffer struct {
	data     []byte
	refCount atomic.Int32
	mu       sync.Mutex // For safe deallocation
}

// newTensorBuffer creates a new reference-counted buffer with refCount = 1.
func newTensorBuffer(size int) *tensorBuffer {
	buf := &tensorBuffer{
		data: make([]byte, size),
	}
	buf.refCount.Store(1)
	return buf
}

func (tb *tensorBuffer) addRef() {
	tb.refCount.Add(1)
}

func (tb *tensorBuffer) release() {
	if tb.refCount.Add(-1) == 0 {
		tb.mu.Lock()
		defer tb.mu.Unlock()
		tb.data = nil
	}
}

// RawTensor is the low-level tensor representation: a dense row-major buffer
// with shape and runtime type information.
type RawTensor struct {
	buffer *tensorBuffer // Shared reference-counted buffer
	shape  Shape         // Tensor dimensions
	stride []int         // Memory strides (row-major)
	dtype  DataType      // Runtime type information
	offset int           // Offset for views
}

// NewRaw creates a new RawTensor with the given shape and type.
// Memory is allocated and zeroed.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	numElements := shape.NumElements()
	byteSize := numElements * dtype.Size()

	return &RawTensor{
		buffer: newTensorBuffer(byteSize),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		offset: 0,
	}, nil
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the tensor's memory strides.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the total memory size in bytes.
func (r *RawTensor) ByteSize() int {
	return r.NumElements() * r.dtype.Size()
}

// IsEmpty reports whether the tensor is nil, has no buffer, or has a
// zero-rank shape. A zero-rank tensor counts as empty here even though
// NumElements reports 1 for it.
func (r *RawTensor) IsEmpty() bool {
	return r == nil || r.buffer == nil || len(r.shape) == 0
}

// Data returns the raw byte slice.
// WARNING: Direct access to underlying memory. Use with caution.
func (r *RawTensor) Data() []byte {
	return r.buffer.data[r.offset:]
}

// AsFloat32 interprets the data as []float32.
// Panics if the tensor's dtype is not Float32.
func (r *RawTensor) AsFloat32() []float32 {
	if r.dtype != Float32 {
		panic(fmt.Sprintf("tensor dtype is %s, not float32", r.dtype))
	}
	data := r.buffer.data[r.offset:]
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*float32)(unsafe.Pointer(&data[0])), r.NumElements())
}

// AsFloat64 interprets the data as []float64.
// Panics if the tensor's dtype is not Float64.
func (r *RawTensor) AsFloat64() []float64 {
	if r.dtype != Float64 {
		panic(fmt.Sprintf("tensor dtype is %s, not float64", r.dtype))
	}
	data := r.buffer.data[r.offset:]
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*float64)(unsafe.Pointer(&data[0])), r.NumElements())
}

// AsInt32 interprets the data as []int32.
// Panics if the tensor's dtype is not Int32.
func (r *RawTensor) AsInt32() []int32 {
	if r.dtype != Int32 {
		panic(fmt.Sprintf("tensor dtype is %s, not int32", r.dtype))
	}
	data := r.buffer.data[r.offset:]
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*int32)(unsafe.Pointer(&data[0])), r.NumElements())
}

// Clone creates a shallow copy of the RawTensor (shares the buffer with
// reference counting). Use CloneDeep when the copy must not alias.
func (r *RawTensor) Clone() *RawTensor {
	r.buffer.addRef()
	return &RawTensor{
		buffer: r.buffer,
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...),
		dtype:  r.dtype,
		offset: r.offset,
	}
}

// CloneDeep creates a copy with its own buffer.
func (r *RawTensor) CloneDeep() (*RawTensor, error) {
	out, err := NewRaw(r.shape, r.dtype)
	if err != nil {
		return nil, err
	}
	copy(out.buffer.data, r.buffer.data[r.offset:])
	return out, nil
}

// CopyFrom copies src's contents into this tensor's buffer.
// Shapes and dtypes must match exactly.
func (r *RawTensor) CopyFrom(src *RawTensor) error {
	if r.dtype != src.dtype {
		return fmt.Errorf("dtype mismatch: %s vs %s", r.dtype, src.dtype)
	}
	if !r.shape.Equal(src.shape) {
		return fmt.Errorf("shape mismatch: %v vs %v", r.shape, src.shape)
	}
	copy(r.buffer.data[r.offset:], src.buffer.data[src.offset:])
	return nil
}

// Release decrements the reference count and deallocates if it reaches 0.
func (r *RawTensor) Release() {
	r.buffer.release()
}
