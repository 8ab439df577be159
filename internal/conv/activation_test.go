package conv

import (
	"math"
	"testing"
)

func TestApplyActivation(t *testing.T) {
	tests := []struct {
		name   string
		ty     ActivationType
		params []float32
		in     float32
		want   float32
	}{
		{"none passes negatives", ActivationNone, nil, -2, -2},
		{"relu clamps", ActivationReLU, nil, -2, 0},
		{"relu passes positives", ActivationReLU, nil, 3, 3},
		{"leaky scales negatives", ActivationLeakyReLU, []float32{0.1}, -2, -0.2},
		{"leaky passes positives", ActivationLeakyReLU, []float32{0.1}, 2, 2},
		{"clip lower", ActivationClip, []float32{0, 6}, -1, 0},
		{"clip upper", ActivationClip, []float32{0, 6}, 8, 6},
		{"clip inside", ActivationClip, []float32{0, 6}, 3, 3},
	}

	for _, tt := range tests {
		if got := applyActivation(tt.in, tt.ty, tt.params); got != tt.want {
			t.Errorf("%s: applyActivation(%v) = %v, want %v", tt.name, tt.in, got, tt.want)
		}
	}

	sig := applyActivation(0, ActivationSigmoid, nil)
	if math.Abs(float64(sig)-0.5) > 1e-6 {
		t.Errorf("sigmoid(0) = %v, want 0.5", sig)
	}
}

func TestReluLike(t *testing.T) {
	tests := []struct {
		name   string
		ty     ActivationType
		params []float32
		want   bool
	}{
		{"relu", ActivationReLU, nil, true},
		{"none", ActivationNone, nil, false},
		{"sigmoid", ActivationSigmoid, nil, false},
		{"leaky with slope", ActivationLeakyReLU, []float32{0.1}, false},
		{"leaky zero slope", ActivationLeakyReLU, []float32{0}, true},
		{"clip at zero", ActivationClip, []float32{0, 6}, true},
		{"clip above zero", ActivationClip, []float32{1, 6}, false},
		{"clip below zero", ActivationClip, []float32{-1, 1}, false},
	}

	for _, tt := range tests {
		if got := reluLike(tt.ty, tt.params); got != tt.want {
			t.Errorf("%s: reluLike = %v, want %v", tt.name, got, tt.want)
		}
	}
}
