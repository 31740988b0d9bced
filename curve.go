// Copyright (c) 2020 vechain.org.
// Licensed under the MIT license.

package ecvrf

import (
	"crypto/elliptic"
	"math/big"

	"github.com/pkg/errors"
)

// Curve is the elliptic curve arithmetic a cipher suite runs on.
//
// Points are affine (x, y) pairs and the point at infinity is (0, 0), as in
// crypto/elliptic. Compress and Decompress implement the compressed form of
// section 4.3.6 of ANSI X9.62: a 0x02/0x03 sign byte followed by x.
type Curve interface {
	Name() string
	// Order is the prime order of the generator.
	Order() *big.Int
	// BitSize is the size of the underlying field in bits.
	BitSize() int
	Generator() (x, y *big.Int)
	IsOnCurve(x, y *big.Int) bool
	Add(x1, y1, x2, y2 *big.Int) (x, y *big.Int)
	Neg(x, y *big.Int) (nx, ny *big.Int)
	ScalarMult(x, y *big.Int, k []byte) (kx, ky *big.Int)
	ScalarBaseMult(k []byte) (x, y *big.Int)
	Compress(x, y *big.Int) []byte
	Decompress(data []byte) (x, y *big.Int, err error)
}

var (
	errPointEncoding   = errors.New("unrecognized point encoding")
	errPointLength     = errors.New("invalid point data length")
	errPointX          = errors.New("invalid point: x is not a field element")
	errPointNotOnCurve = errors.New("invalid point: y^2 is not a square")
)

type weierstrass struct {
	elliptic.Curve
	name string
	y2   func(c elliptic.Curve, x *big.Int) *big.Int
	sqrt func(c elliptic.Curve, s *big.Int) *big.Int
}

// NewWeierstrass adapts a short Weierstrass curve y^2 = x^3 + ax + b over a
// prime field. y2 evaluates the right hand side of the equation for a given
// x, and sqrt returns a square root modulo P or nil.
func NewWeierstrass(name string, curve elliptic.Curve, y2, sqrt func(c elliptic.Curve, x *big.Int) *big.Int) Curve {
	return &weierstrass{curve, name, y2, sqrt}
}

func (w *weierstrass) Name() string {
	return w.name
}

func (w *weierstrass) Order() *big.Int {
	return new(big.Int).Set(w.Params().N)
}

func (w *weierstrass) BitSize() int {
	return w.Params().BitSize
}

func (w *weierstrass) Generator() (x, y *big.Int) {
	params := w.Params()
	return new(big.Int).Set(params.Gx), new(big.Int).Set(params.Gy)
}

// Neg returns (x, P - y). The point at infinity is its own negation.
func (w *weierstrass) Neg(x, y *big.Int) (nx, ny *big.Int) {
	if x.Sign() == 0 && y.Sign() == 0 {
		return new(big.Int), new(big.Int)
	}
	p := w.Params().P
	return new(big.Int).Set(x), new(big.Int).Mod(new(big.Int).Sub(p, y), p)
}

// Compress is the alias of `point_to_string` specified in VRF-draft-05.
func (w *weierstrass) Compress(x, y *big.Int) []byte {
	byteLen := (w.Params().BitSize + 7) / 8
	out := make([]byte, byteLen+1)

	// compress format, 3 for odd y
	out[0] = 2 + byte(y.Bit(0))
	x.FillBytes(out[1:])
	return out
}

// Decompress is the alias of `string_to_point` specified in VRF-draft-05.
// This is borrowed from the project https://github.com/google/keytransparency.
func (w *weierstrass) Decompress(in []byte) (x, y *big.Int, err error) {
	byteLen := (w.Params().BitSize + 7) / 8
	if len(in) != 1+byteLen {
		return nil, nil, errors.Wrapf(errPointLength, "%d bytes", len(in))
	}
	if (in[0] &^ 1) != 2 {
		return nil, nil, errPointEncoding
	}
	// Based on Routine 2.2.4 in NIST Mathematical routines paper
	p := w.Params().P
	x = new(big.Int).SetBytes(in[1:])
	if x.Cmp(p) >= 0 {
		return nil, nil, errPointX
	}
	y2 := w.y2(w.Curve, x)

	y = w.sqrt(w.Curve, y2)
	if y == nil {
		return nil, nil, errPointNotOnCurve
	}

	var y2c big.Int
	y2c.Mul(y, y).Mod(&y2c, p)
	if y2c.Cmp(y2) != 0 {
		return nil, nil, errors.New("invalid point: sqrt(y2)^2 != y2")
	}

	if y.Bit(0) != uint(in[0]&1) {
		y.Sub(p, y)
	}
	return x, y, nil
}

// DefaultSqrt returns a square root of s modulo P, or nil if s is not a
// quadratic residue.
func DefaultSqrt(c elliptic.Curve, s *big.Int) *big.Int {
	var r big.Int
	if nil == r.ModSqrt(s, c.Params().P) {
		return nil // x is not a square
	}
	return &r
}

// Y2A0 computes x^3 + b mod P, for curves with a = 0 such as secp256k1.
func Y2A0(c elliptic.Curve, x *big.Int) *big.Int {
	params := c.Params()
	x3 := new(big.Int).Mul(x, x)
	x3.Mul(x3, x)

	x3.Add(x3, params.B)
	return x3.Mod(x3, params.P)
}

// Y2A3 computes x^3 - 3x + b mod P, for curves with a = -3 such as the
// NIST prime curves.
func Y2A3(c elliptic.Curve, x *big.Int) *big.Int {
	params := c.Params()
	x3 := new(big.Int).Mul(x, x)
	x3.Mul(x3, x)

	threeX := new(big.Int).Lsh(x, 1)
	threeX.Add(threeX, x)

	x3.Sub(x3, threeX)
	x3.Add(x3, params.B)
	return x3.Mod(x3, params.P)
}
