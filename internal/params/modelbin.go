package params

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// ModelBin is a sequential source of float32 weight arrays. Arrays are
// consumed in the order the operator's LoadModel requests them.
type ModelBin struct {
	r      io.Reader
	slices [][]float32
	next   int
}

// FromReader wraps a binary stream of little-endian float32 values.
func FromReader(r io.Reader) *ModelBin {
	return &ModelBin{r: r}
}

// FromSlices wraps in-memory arrays; each Load call returns the next slice
// and checks its length.
func FromSlices(slices ...[]float32) *ModelBin {
	return &ModelBin{slices: slices}
}

// Load returns the next array of exactly n float32 values.
func (mb *ModelBin) Load(n int) ([]float32, error) {
	if n < 0 {
		return nil, fmt.Errorf("modelbin: negative length %d", n)
	}

	if mb.slices != nil {
		if mb.next >= len(mb.slices) {
			return nil, fmt.Errorf("modelbin: no array left for request of %d values", n)
		}
		s := mb.slices[mb.next]
		mb.next++
		if len(s) != n {
			return nil, fmt.Errorf("modelbin: array %d has %d values, want %d", mb.next-1, len(s), n)
		}
		return append([]float32(nil), s...), nil
	}

	buf := make([]byte, 4*n)
	if _, err := io.ReadFull(mb.r, buf); err != nil {
		return nil, fmt.Errorf("modelbin: short read for %d values: %w", n, err)
	}
	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	return out, nil
}
