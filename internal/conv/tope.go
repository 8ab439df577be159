package conv

import "sort"

// TopE is the number of largest-magnitude weight entries tracked per output
// channel by the select-norm refinement.
const TopE = 6

// selectCount is the size of each channel's select-norm table, one entry per
// sign pattern of the top-E weights.
const selectCount = 1 << TopE

// computeTopE fills, for each output channel k:
//
//   - topEIdx[k*TopE+p]: flat filter index of the p-th largest |weight|
//     (ties broken toward the lower index),
//   - topEVal[k*TopE+p]: the signed weight at that index,
//   - selectNorms[k*selectCount+m]: the filter norm with the weights selected
//     by mask m removed, where bit (TopE-1-p) of m selects entry p.
//
// Filters shorter than TopE are padded with zero entries at index 0; a zero
// weight never sets a mask bit and removes nothing from the norm.
func (c *Convolution) computeTopE(inch, maxk int) {
	st := &c.state
	st.topEIdx = make([]int32, c.NumOutput*TopE)
	st.topEVal = make([]float32, c.NumOutput*TopE)
	st.selectNorms = make([]float32, c.NumOutput*selectCount)

	flatLen := inch * maxk

	type ranked struct {
		abs float32
		idx int
	}
	order := make([]ranked, flatLen)

	for k := 0; k < c.NumOutput; k++ {
		base := k * inch * maxk
		for i := 0; i < flatLen; i++ {
			w := c.WeightData[base+i]
			if w < 0 {
				w = -w
			}
			order[i] = ranked{abs: w, idx: i}
		}
		sort.SliceStable(order, func(a, b int) bool {
			return order[a].abs > order[b].abs
		})

		selected := make([]float32, TopE)
		for p := 0; p < TopE; p++ {
			if p < flatLen {
				st.topEIdx[k*TopE+p] = int32(order[p].idx)
				selected[p] = order[p].abs
				st.topEVal[k*TopE+p] = c.WeightData[base+order[p].idx]
			}
		}

		sumSq := c.filterSumSq(k, inch, maxk)
		for m := 0; m < selectCount; m++ {
			var sub float32
			for bit := TopE - 1; bit >= 0; bit-- {
				if (m>>bit)&1 == 1 {
					v := selected[TopE-1-bit]
					sub += v * v
				}
			}
			rem := sumSq - sub
			if rem < 0 {
				rem = 0
			}
			st.selectNorms[k*selectCount+m] = sqrt32(rem)
		}
	}
}

// topEMask classifies the sign of the patch difference against each top-E
// weight of channel k. Bit (TopE-1-p) is set iff diff[idx_p] * w_p > 0; a
// zero product sets no bit.
func (c *Convolution) topEMask(k int, xDiff []float32) int {
	st := &c.state
	mask := 0
	for p := 0; p < TopE; p++ {
		prod := xDiff[st.topEIdx[k*TopE+p]] * st.topEVal[k*TopE+p]
		mask <<= 1
		if prod > 0 {
			mask |= 1
		}
	}
	return mask
}
