// Copyright (c) 2020 vechain.org.
// Licensed under the MIT license.

package ecvrf

import (
	"hash"
)

// Config is the parameter set of a cipher suite. It must not be modified
// once passed to New.
type Config struct {
	// Name is the suite identifier, e.g. "P256_SHA256_TAI".
	Name string
	// SuiteString is the single byte domain separator prefixed to every hash input.
	SuiteString byte
	// Cofactor is #E / n.
	Cofactor byte
	Hasher   func() hash.Hash
	Curve    Curve
}
