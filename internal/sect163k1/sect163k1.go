// Copyright (c) 2020 vechain.org.
// Licensed under the MIT license.

// Package sect163k1 implements the group operations of the NIST K-163 Koblitz
// curve y^2 + xy = x^3 + x^2 + 1 over GF(2^163) (SEC 2 sect163k1).
//
// The API mirrors crypto/elliptic: affine coordinates are exchanged as
// big.Int bit patterns of field elements, and the point at infinity is
// (0, 0), which does not satisfy the curve equation. Scalar multiplication
// runs in López-Dahab projective coordinates and is not constant time.
package sect163k1

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/go-ecvrf/v2/internal/gf2m"
)

// Cofactor is #E / n.
const Cofactor = 2

var (
	// ErrInvalidEncoding is returned for compressed points with a bad
	// prefix, length or x-coordinate.
	ErrInvalidEncoding = errors.New("sect163k1: invalid point encoding")
	// ErrNotOnCurve is returned when no y satisfies the curve equation.
	ErrNotOnCurve = errors.New("sect163k1: x is not on the curve")
)

var (
	a = gf2m.One
	b = gf2m.One

	gx, _ = gf2m.FromBytes([]byte{
		0x02, 0xfe, 0x13, 0xc0, 0x53, 0x7b, 0xbc, 0x11, 0xac, 0xaa, 0x07,
		0xd7, 0x93, 0xde, 0x4e, 0x6d, 0x5e, 0x5c, 0x94, 0xee, 0xe8,
	})
	gy, _ = gf2m.FromBytes([]byte{
		0x02, 0x89, 0x07, 0x0f, 0xb0, 0x5d, 0x38, 0xff, 0x58, 0x32, 0x1f,
		0x2e, 0x80, 0x05, 0x36, 0xd5, 0x38, 0xcc, 0xda, 0xa3, 0xd9,
	})
	order, _ = new(big.Int).SetString("4000000000000000000020108a2e0cc0d99f8a5ef", 16)

	k163 = &Curve{}
)

// K163 returns the curve. The value is stateless and safe for concurrent use.
func K163() *Curve {
	return k163
}

// Curve is the K-163 group.
type Curve struct{}

func (*Curve) Name() string { return "K-163" }

// Order returns n, the prime order of the base point.
func (*Curve) Order() *big.Int { return new(big.Int).Set(order) }

// BitSize returns m, the size of the underlying field in bits.
func (*Curve) BitSize() int { return gf2m.Degree }

// Generator returns the base point G.
func (*Curve) Generator() (x, y *big.Int) { return gx.Big(), gy.Big() }

// IsOnCurve reports whether (x, y) satisfies y^2 + xy = x^3 + ax^2 + b.
func (*Curve) IsOnCurve(x, y *big.Int) bool {
	p, ok := fromAffine(x, y)
	if !ok || p.inf {
		return false
	}
	return onCurve(p.x, p.y)
}

// Add returns (x1, y1) + (x2, y2).
func (*Curve) Add(x1, y1, x2, y2 *big.Int) (x, y *big.Int) {
	p, ok1 := fromAffine(x1, y1)
	q, ok2 := fromAffine(x2, y2)
	if !ok1 || !ok2 {
		return new(big.Int), new(big.Int)
	}
	return add(p, q).big()
}

// Neg returns -(x, y) = (x, x + y).
func (*Curve) Neg(x, y *big.Int) (nx, ny *big.Int) {
	p, ok := fromAffine(x, y)
	if !ok || p.inf {
		return new(big.Int), new(big.Int)
	}
	p.y = p.x.Add(p.y)
	return p.big()
}

// ScalarMult returns k*(x, y) where k is a big-endian integer.
func (*Curve) ScalarMult(x, y *big.Int, k []byte) (*big.Int, *big.Int) {
	p, ok := fromAffine(x, y)
	if !ok {
		return new(big.Int), new(big.Int)
	}
	return scalarMult(p, k).big()
}

// ScalarBaseMult returns k*G.
func (*Curve) ScalarBaseMult(k []byte) (*big.Int, *big.Int) {
	return scalarMult(affine{x: gx, y: gy}, k).big()
}

// Compress encodes a point as in SEC 1 section 2.3.3: 0x02 or 0x03 followed
// by x, where the low bit of the prefix is the low bit of y/x (0 when x = 0).
func (*Curve) Compress(x, y *big.Int) []byte {
	out := make([]byte, 1+gf2m.Size)
	out[0] = 2
	p, ok := fromAffine(x, y)
	if !ok || p.inf {
		return out
	}
	if !p.x.IsZero() {
		out[0] += byte(p.y.Mul(p.x.Inv()).Bit0())
	}
	copy(out[1:], p.x.Bytes())
	return out
}

// Decompress decodes a point produced by Compress, as in SEC 1 section 2.3.4.
func (*Curve) Decompress(data []byte) (x, y *big.Int, err error) {
	if len(data) != 1+gf2m.Size {
		return nil, nil, errors.Wrapf(ErrInvalidEncoding, "length %d", len(data))
	}
	if data[0]&^1 != 2 {
		return nil, nil, errors.Wrapf(ErrInvalidEncoding, "prefix %#x", data[0])
	}
	px, err := gf2m.FromBytes(data[1:])
	if err != nil {
		return nil, nil, errors.Wrap(ErrInvalidEncoding, err.Error())
	}
	if px.IsZero() {
		x, y = affine{x: px, y: b.Sqrt()}.big()
		return x, y, nil
	}

	// y = x*z where z^2 + z = x + a + b/x^2
	beta := px.Add(a).Add(b.Mul(px.Square().Inv()))
	z := beta.HalfTrace()
	if !z.Square().Add(z).Equal(beta) {
		return nil, nil, ErrNotOnCurve
	}
	if z.Bit0() != uint(data[0]&1) {
		z = z.Add(gf2m.One)
	}
	x, y = affine{x: px, y: px.Mul(z)}.big()
	return x, y, nil
}
