// Copyright (c) 2020 vechain.org.
// Licensed under the MIT license.

package ecvrf

import (
	"crypto/elliptic"
	"crypto/sha256"
	"strings"

	"github.com/btcsuite/btcd/btcec"
	"github.com/pkg/errors"

	"github.com/vechain/go-ecvrf/v2/internal/sect163k1"
)

var (
	// Secp256k1Sha256Tai is ECVRF-SECP256K1-SHA256-TAI.
	Secp256k1Sha256Tai = New(&Config{
		Name:        "SECP256K1_SHA256_TAI",
		SuiteString: 0xfe,
		Cofactor:    1,
		Hasher:      sha256.New,
		Curve:       NewWeierstrass("secp256k1", btcec.S256(), Y2A0, DefaultSqrt),
	})

	// P256Sha256Tai is ECVRF-P256-SHA256-TAI.
	P256Sha256Tai = New(&Config{
		Name:        "P256_SHA256_TAI",
		SuiteString: 0x01,
		Cofactor:    1,
		Hasher:      sha256.New,
		Curve:       NewWeierstrass("P-256", elliptic.P256(), Y2A3, DefaultSqrt),
	})

	// K163Sha256Tai is ECVRF over the NIST K-163 Koblitz curve with SHA-256
	// and try-and-increment. Challenges are 11 bytes.
	K163Sha256Tai = New(&Config{
		Name:        "K163_SHA256_TAI",
		SuiteString: 0xff,
		Cofactor:    sect163k1.Cofactor,
		Hasher:      sha256.New,
		Curve:       sect163k1.K163(),
	})

	suites = []*Suite{Secp256k1Sha256Tai, P256Sha256Tai, K163Sha256Tai}

	aliases = map[string]*Suite{
		"secp256k1": Secp256k1Sha256Tai,
		"p256":      P256Sha256Tai,
		"k163":      K163Sha256Tai,
	}
)

// ErrUnknownSuite is returned by SuiteByName.
var ErrUnknownSuite = errors.New("ecvrf: unknown cipher suite")

// Suites returns the built-in suites.
func Suites() []*Suite {
	return append([]*Suite(nil), suites...)
}

// SuiteByName looks up a built-in suite by its name, case insensitively,
// or by the short curve alias secp256k1, p256 or k163.
func SuiteByName(name string) (*Suite, error) {
	for _, s := range suites {
		if strings.EqualFold(s.Name(), name) {
			return s, nil
		}
	}
	if s, ok := aliases[strings.ToLower(name)]; ok {
		return s, nil
	}
	return nil, errors.Wrap(ErrUnknownSuite, name)
}
