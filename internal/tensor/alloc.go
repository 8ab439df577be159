package tensor

// Allocator produces tensors. The convolution operator allocates its output
// through a blob allocator and its scratch/border tensors through a workspace
// allocator, both supplied by the caller; HeapAllocator is the default for
// either role.
type Allocator interface {
	Alloc(shape Shape, dtype DataType) (*RawTensor, error)
}

// HeapAllocator allocates tensors directly on the Go heap.
type HeapAllocator struct{}

// Alloc implements Allocator.
func (HeapAllocator) Alloc(shape Shape, dtype DataType) (*RawTensor, error) {
	return NewRaw(shape, dtype)
}

// AllocWith allocates through alloc, falling back to the heap when alloc is nil.
func AllocWith(alloc Allocator, shape Shape, dtype DataType) (*RawTensor, error) {
	if alloc == nil {
		return NewRaw(shape, dtype)
	}
	return alloc.Alloc(shape, dtype)
}
