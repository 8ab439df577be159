package conv

import (
	"github.com/born-ml/skipconv/internal/tensor"
)

// coreState is the cross-call cache owned by one operator instance.
//
// wNorm, wNormLower and the top-E tables depend only on the weights and are
// built once. lastX/lastYBar carry the previous call's padded input and
// pre-activation (excluding bias) output. lastYRow/lastYCol are within-call
// propagation buffers: lastYRow[j*K+k] holds the value written at (i-1, j, k)
// earlier in the same call, lastYCol[k] the value written at (i, j-1, k).
type coreState struct {
	wNorm      []float32
	wNormLower []float32

	topEIdx     []int32
	topEVal     []float32
	selectNorms []float32
	xDiff       []float32 // temporal patch difference, reused per position

	lastX    *tensor.RawTensor
	lastYBar *tensor.RawTensor
	lastYRow []float32
	lastYCol []float32

	lastSkipped int
	lastTotal   int

	initialized bool
}

func (s *coreState) reset() {
	s.wNorm = nil
	s.wNormLower = nil
	s.topEIdx = nil
	s.topEVal = nil
	s.selectNorms = nil
	s.xDiff = nil
	s.lastX = nil
	s.lastYBar = nil
	s.lastYRow = nil
	s.lastYCol = nil
	s.lastSkipped = 0
	s.lastTotal = 0
	s.initialized = false
}

// LastSparsity returns the fraction of output positions the most recent run
// of the bound kernel proved zero without computing, or -1 when no bound
// kernel has run since the caches were last cleared. Calls that run the
// exact kernel, including the bound-mode call that seeds the caches, leave
// it unchanged.
func (c *Convolution) LastSparsity() float32 {
	if c.state.lastTotal == 0 {
		return -1
	}
	return float32(c.state.lastSkipped) / float32(c.state.lastTotal)
}

// ensureState sizes every cache the configured mode needs for the given bordered
// input and output geometry. All allocations happen here, before any output
// is written, so a failure leaves the previous state fully intact. When the
// geometry changed since the last call the temporal caches are rebuilt and
// the state drops back to uninitialized.
func (c *Convolution) ensureState(bordered *tensor.RawTensor, outch, outh, outw, inch, maxk int) error {
	st := &c.state

	if st.wNorm == nil {
		c.computeNorms(inch, maxk)
	}
	if c.Mode.usesTopE() && st.topEIdx == nil {
		c.computeTopE(inch, maxk)
	}
	if c.Mode.usesTopE() && st.xDiff == nil {
		st.xDiff = make([]float32, inch*maxk)
	}

	if st.lastYRow == nil || len(st.lastYRow) != outw*outch {
		st.lastYRow = make([]float32, outw*outch)
	}
	if st.lastYCol == nil || len(st.lastYCol) != outch {
		st.lastYCol = make([]float32, outch)
	}

	outShape := tensor.Shape{outch, outh, outw}
	if st.lastYBar.IsEmpty() || !st.lastYBar.Shape().Equal(outShape) {
		bar, err := tensor.NewRaw(outShape, tensor.Float32)
		if err != nil {
			return errAlloc(err)
		}
		st.lastYBar = bar
		st.initialized = false
	}

	if st.lastX.IsEmpty() || !st.lastX.Shape().Equal(bordered.Shape()) {
		last, err := tensor.NewRaw(bordered.Shape(), tensor.Float32)
		if err != nil {
			return errAlloc(err)
		}
		st.lastX = last
		st.initialized = false
	}

	return nil
}

// commitLastX deep-copies the bordered input into the cache. ensureState has
// already sized the buffer, so this cannot fail mid-call.
func (c *Convolution) commitLastX(bordered *tensor.RawTensor) {
	if err := c.state.lastX.CopyFrom(bordered); err != nil {
		// shape was checked by ensureState
		panic(err)
	}
}
