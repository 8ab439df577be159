// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package params provides the public API for operator configuration and
// weight sources.
package params

import (
	"io"

	"github.com/born-ml/skipconv/internal/params"
)

// Dict is an integer-keyed parameter dictionary.
type Dict = params.Dict

// ModelBin is a sequential source of float32 weight arrays.
type ModelBin = params.ModelBin

// NewDict creates an empty parameter dictionary.
func NewDict() *Dict {
	return params.NewDict()
}

// LoadYAML parses a YAML mapping of parameter ids to values into a Dict.
func LoadYAML(r io.Reader) (*Dict, error) {
	return params.LoadYAML(r)
}

// FromReader wraps a binary stream of little-endian float32 values.
func FromReader(r io.Reader) *ModelBin {
	return params.FromReader(r)
}

// FromSlices wraps in-memory weight arrays, one per LoadModel request.
func FromSlices(slices ...[]float32) *ModelBin {
	return params.FromSlices(slices...)
}
