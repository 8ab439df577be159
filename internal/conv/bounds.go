package conv

import (
	"github.com/born-ml/skipconv/internal/tensor"
)

// boundForward visits output positions in (i, j, k) order, proves positions
// non-positive with the mode's enabled bounds and falls back to the exact
// dot product when the proof fails.
//
// The traversal order is load-bearing: lastYRow[j*K+k] must carry the value
// written at (i-1, j, k) of this call and lastYCol[k] the value at
// (i, j-1, k), so the i and j loops cannot be reordered or parallelized.
func (c *Convolution) boundForward(x, top *tensor.RawTensor) {
	st := &c.state

	inch := x.Shape()[0]
	outch := top.Shape()[0]
	outh := top.Shape()[1]
	outw := top.Shape()[2]
	maxk := c.KernelW * c.KernelH

	spaceOfs := spaceOffsets(x.Shape()[2], c.KernelW, c.KernelH, c.DilationW, c.DilationH)

	useTemporal := c.Mode.usesTemporal()
	useSpatial := c.Mode.usesSpatial()
	useTopE := c.Mode.usesTopE()
	useLower := c.Mode.usesLowerNorm()

	var bias []float32
	if c.BiasTerm {
		bias = c.BiasData
	}

	outData := top.AsFloat32()
	barData := st.lastYBar.AsFloat32()
	plane := outh * outw

	skipped := 0
	total := 0

	for i := 0; i < outh; i++ {
		for j := 0; j < outw; j++ {
			// One fused pass over the patch yields every enabled delta:
			// temporal against lastX, row against (i-1, j), column against
			// (i, j-1). The first-element row delta feeds the tightened row
			// bound; the per-entry temporal differences feed the top-E mask.
			var dxT2, dxR2, dxC2 float32
			var delta0Row float32

			haveRow := useSpatial && i != 0
			haveCol := useSpatial && j != 0

			for q := 0; q < inch; q++ {
				cur := x.Channel(q)
				sptr := cur.RowFrom(i * c.StrideH)[j*c.StrideW:]

				var lastPtr []float32
				if useTemporal {
					lastPtr = st.lastX.Channel(q).RowFrom(i * c.StrideH)[j*c.StrideW:]
				}
				var prevRowPtr, prevColPtr []float32
				if haveRow {
					prevRowPtr = cur.RowFrom((i - 1) * c.StrideH)[j*c.StrideW:]
				}
				if haveCol {
					prevColPtr = cur.RowFrom(i * c.StrideH)[(j-1)*c.StrideW:]
				}

				for t := 0; t < maxk; t++ {
					ofs := spaceOfs[t]
					base := sptr[ofs]

					if useTemporal {
						d := base - lastPtr[ofs]
						if useTopE {
							st.xDiff[q*maxk+t] = d
						}
						dxT2 += d * d
					}
					if haveRow {
						d := base - prevRowPtr[ofs]
						if q == 0 && t == 0 {
							delta0Row = d
						}
						dxR2 += d * d
					}
					if haveCol {
						d := base - prevColPtr[ofs]
						dxC2 += d * d
					}
				}
			}

			var dxT, dxR, dxC float32
			if useTemporal {
				dxT = sqrt32(dxT2)
			}
			if haveRow {
				dxR = sqrt32(dxR2)
			}
			if haveCol {
				dxC = sqrt32(dxC2)
			}

			rowAt := j * outch

			for k := 0; k < outch; k++ {
				var yBias float32
				if bias != nil {
					yBias = bias[k]
				}

				barAt := k*plane + i*outw + j

				bound := float32(0)
				haveBound := false

				if useTemporal {
					norm := st.wNorm[k]
					if useTopE {
						norm = st.selectNorms[k*selectCount+c.topEMask(k, st.xDiff)]
					}
					bound = barData[barAt] + norm*dxT
					haveBound = true
				}

				if haveCol {
					bc := st.lastYCol[k] + dxC*st.wNorm[k]
					if !haveBound || bc < bound {
						bound = bc
					}
					haveBound = true
				}

				if haveRow {
					var br float32
					w0 := c.WeightData[k*inch*maxk]
					if useLower && delta0Row*w0 <= 0 {
						br = st.lastYRow[rowAt+k] + dxR*st.wNormLower[k] + delta0Row*w0
					} else {
						br = st.lastYRow[rowAt+k] + dxR*st.wNorm[k]
					}
					if !haveBound || br < bound {
						bound = br
					}
					haveBound = true
				}

				total++
				if haveBound && bound+yBias <= 0 {
					outData[barAt] = 0
					barData[barAt] = bound
					st.lastYRow[rowAt+k] = bound
					st.lastYCol[k] = bound
					skipped++
					continue
				}

				y := dotAt(x, c.WeightData, bias, k, i, j, inch, maxk, c.StrideW, c.StrideH, spaceOfs)
				pre := y - yBias
				outData[barAt] = applyActivation(y, c.ActivationType, c.ActivationParams)
				barData[barAt] = pre
				st.lastYRow[rowAt+k] = pre
				st.lastYCol[k] = pre
			}
		}
	}

	st.lastSkipped = skipped
	st.lastTotal = total
}
