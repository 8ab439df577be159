package conv

// spaceOffsets precomputes, for each kernel tap, the flat within-channel
// offset from the patch origin, given the bordered input row stride and the
// dilation factors. Taps are ordered row-major over the kernel.
func spaceOffsets(inputW, kernelW, kernelH, dilationW, dilationH int) []int {
	ofs := make([]int, kernelW*kernelH)
	p1 := 0
	p2 := 0
	gap := inputW*dilationH - kernelW*dilationW
	for i := 0; i < kernelH; i++ {
		for j := 0; j < kernelW; j++ {
			ofs[p1] = p2
			p1++
			p2 += dilationW
		}
		p2 += gap
	}
	return ofs
}
