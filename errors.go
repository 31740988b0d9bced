// Copyright (c) 2020 vechain.org.
// Licensed under the MIT license.

package ecvrf

import (
	"github.com/pkg/errors"
)

// Errors returned by the VRF operations. They are wrapped with context, so
// test them with errors.Is.
var (
	ErrInvalidSecretKey     = errors.New("ecvrf: invalid secret key")
	ErrInvalidPublicKey     = errors.New("ecvrf: invalid public key")
	ErrInvalidProofLength   = errors.New("ecvrf: invalid proof length")
	ErrInvalidProofEncoding = errors.New("ecvrf: invalid proof encoding")
	ErrVerificationFailed   = errors.New("ecvrf: verification failed")
	ErrHashToCurveExhausted = errors.New("ecvrf: no valid point found for hash to curve")
)
