package conv

// Mode selects the bound strategy used by Forward when bound mode is enabled
// in the call options. It is fixed per operator instance; changing it after
// the first forward call requires a Reset.
type Mode int

// Bound strategies.
const (
	// ModeExact always runs the dense kernel.
	ModeExact Mode = iota
	// ModeTemporal uses the cross-call bound against the previous input.
	ModeTemporal
	// ModeTemporalTopE is ModeTemporal with the select-norm refinement over
	// the E largest-magnitude weights of each filter.
	ModeTemporalTopE
	// ModeSpatial uses the within-call row and column neighbor bounds.
	ModeSpatial
	// ModeSpatialFirstOne is ModeSpatial with the row bound tightened by the
	// first weight element when the first-element delta disagrees in sign.
	ModeSpatialFirstOne
	// ModeTemporalSpatial combines the temporal bound with both spatial bounds.
	ModeTemporalSpatial
	// ModeTemporalSpatialLower is ModeTemporalSpatial with the tightened row bound.
	ModeTemporalSpatialLower
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeExact:
		return "exact"
	case ModeTemporal:
		return "temporal"
	case ModeTemporalTopE:
		return "temporal+topE"
	case ModeSpatial:
		return "spatial"
	case ModeSpatialFirstOne:
		return "spatial+first-one"
	case ModeTemporalSpatial:
		return "temporal+spatial"
	case ModeTemporalSpatialLower:
		return "temporal+spatial+lower"
	default:
		return "unknown"
	}
}

func (m Mode) valid() bool {
	return m >= ModeExact && m <= ModeTemporalSpatialLower
}

// usesTemporal reports whether the mode compares against the previous call's input.
func (m Mode) usesTemporal() bool {
	switch m {
	case ModeTemporal, ModeTemporalTopE, ModeTemporalSpatial, ModeTemporalSpatialLower:
		return true
	}
	return false
}

// usesSpatial reports whether the mode propagates row/column neighbor bounds.
func (m Mode) usesSpatial() bool {
	switch m {
	case ModeSpatial, ModeSpatialFirstOne, ModeTemporalSpatial, ModeTemporalSpatialLower:
		return true
	}
	return false
}

// usesTopE reports whether the mode needs the top-E index/value/select-norm caches.
func (m Mode) usesTopE() bool {
	return m == ModeTemporalTopE
}

// usesLowerNorm reports whether the mode needs the leave-first-out filter norms.
func (m Mode) usesLowerNorm() bool {
	return m == ModeSpatialFirstOne || m == ModeTemporalSpatialLower
}
