package conv

import "math"

// ActivationType selects the activation fused into the operator output.
type ActivationType int

// Fused activation kinds. The integer values are the parameter-table encoding.
const (
	ActivationNone ActivationType = iota
	ActivationReLU
	ActivationLeakyReLU
	ActivationClip
	ActivationSigmoid
)

// String returns a human-readable activation name.
func (t ActivationType) String() string {
	switch t {
	case ActivationNone:
		return "none"
	case ActivationReLU:
		return "relu"
	case ActivationLeakyReLU:
		return "leakyrelu"
	case ActivationClip:
		return "clip"
	case ActivationSigmoid:
		return "sigmoid"
	default:
		return "unknown"
	}
}

// applyActivation applies the fused activation to a single pre-activation value.
func applyActivation(v float32, ty ActivationType, params []float32) float32 {
	switch ty {
	case ActivationReLU:
		if v < 0 {
			return 0
		}
	case ActivationLeakyReLU:
		if v < 0 {
			var slope float32
			if len(params) > 0 {
				slope = params[0]
			}
			return v * slope
		}
	case ActivationClip:
		var lo, hi float32
		if len(params) > 0 {
			lo = params[0]
		}
		if len(params) > 1 {
			hi = params[1]
		}
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
	case ActivationSigmoid:
		return float32(1.0 / (1.0 + math.Exp(-float64(v))))
	}
	return v
}

// reluLike reports whether the activation maps every input <= 0 to exactly 0.
// Only then is the zero-skip branch of the bound kernels sound.
func reluLike(ty ActivationType, params []float32) bool {
	switch ty {
	case ActivationReLU:
		return true
	case ActivationLeakyReLU:
		// slope 0 degenerates to relu
		return len(params) > 0 && params[0] == 0
	case ActivationClip:
		// clip sends v <= 0 to its lower edge, which must itself be 0
		return len(params) > 0 && params[0] == 0
	default:
		return false
	}
}
