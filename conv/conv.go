// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package conv provides the public API for the output-sparsity-aware 2D
// convolution operator.
//
// The operator proves, from cached state and per-filter norms, that many
// pre-activations cannot exceed zero under a ReLU-like activation and skips
// their dot products; inconclusive positions are computed exactly, so the
// output matches the dense kernel bit for bit in every mode except
// ModeTemporalTopE, whose select-norm bound does not cover the positive
// contribution of the top-E weights it leaves out and can zero a position
// whose exact pre-activation is positive.
//
//	op := conv.New()
//	op.NumOutput = 16
//	op.KernelW, op.KernelH = 3, 3
//	op.Mode = conv.ModeTemporalSpatial
//	// ... load weights, then per frame:
//	out, err := op.Forward(frame, conv.Options{UseBoundMode: true})
package conv

import (
	"github.com/born-ml/skipconv/internal/conv"
)

// Convolution is the sparsity-aware 2D convolution operator.
type Convolution = conv.Convolution

// InnerProduct is the fully-connected operator used for flattened 1D blobs.
type InnerProduct = conv.InnerProduct

// Options bundles per-call settings for Forward.
type Options = conv.Options

// Mode selects the bound strategy of an operator instance.
type Mode = conv.Mode

// Bound strategies.
const (
	ModeExact                Mode = conv.ModeExact
	ModeTemporal             Mode = conv.ModeTemporal
	ModeTemporalTopE         Mode = conv.ModeTemporalTopE
	ModeSpatial              Mode = conv.ModeSpatial
	ModeSpatialFirstOne      Mode = conv.ModeSpatialFirstOne
	ModeTemporalSpatial      Mode = conv.ModeTemporalSpatial
	ModeTemporalSpatialLower Mode = conv.ModeTemporalSpatialLower
)

// ActivationType selects the fused activation.
type ActivationType = conv.ActivationType

// Fused activation kinds.
const (
	ActivationNone      ActivationType = conv.ActivationNone
	ActivationReLU      ActivationType = conv.ActivationReLU
	ActivationLeakyReLU ActivationType = conv.ActivationLeakyReLU
	ActivationClip      ActivationType = conv.ActivationClip
	ActivationSigmoid   ActivationType = conv.ActivationSigmoid
)

// Special pad encodings.
const (
	PadSameUpper = conv.PadSameUpper
	PadSameLower = conv.PadSameLower
)

// TopE is the number of largest-magnitude weights tracked per output channel
// by the select-norm refinement.
const TopE = conv.TopE

// Error is a failure with an attached status code.
type Error = conv.Error

// Status codes.
const (
	StatusOK     = conv.StatusOK
	StatusConfig = conv.StatusConfig
	StatusAlloc  = conv.StatusAlloc
)

// New creates an operator with default parameters and the temporal bound
// strategy.
func New() *Convolution {
	return conv.New()
}

// Status maps an error returned by the operator to its integer status code.
func Status(err error) int {
	return conv.Status(err)
}
