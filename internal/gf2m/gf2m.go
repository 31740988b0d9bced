// Copyright (c) 2020 vechain.org.
// Licensed under the MIT license.

// Package gf2m implements arithmetic in the binary field GF(2^163) with the
// reduction pentanomial f(z) = z^163 + z^7 + z^6 + z^3 + 1 used by the NIST
// K-163 and B-163 curves.
//
// Elements are polynomials over GF(2) in polynomial basis, stored as three
// little-endian 64-bit limbs. None of the operations are constant time.
package gf2m

import (
	"math/big"

	"github.com/pkg/errors"
)

const (
	// Degree is m, the extension degree of the field.
	Degree = 163
	// Size is the length in bytes of an encoded element.
	Size = (Degree + 7) / 8

	topBits = Degree - 128
	topMask = uint64(1)<<topBits - 1
)

// ErrOutOfRange is returned when a value does not fit into Degree bits.
var ErrOutOfRange = errors.New("gf2m: value out of range")

// Element is a field element.
type Element [3]uint64

var (
	// Zero is the additive identity.
	Zero = Element{}
	// One is the multiplicative identity.
	One = Element{1, 0, 0}
)

// FromBytes decodes a big-endian encoding of at most Size bytes.
func FromBytes(b []byte) (Element, error) {
	var e Element
	if len(b) > Size {
		return e, errors.Wrapf(ErrOutOfRange, "%d bytes", len(b))
	}
	for i, v := range b {
		shift := uint(8 * (len(b) - 1 - i))
		e[shift/64] |= uint64(v) << (shift % 64)
	}
	if e[2]>>topBits != 0 {
		return Element{}, ErrOutOfRange
	}
	return e, nil
}

// FromBig converts a non-negative integer to the element with the same bit
// pattern.
func FromBig(x *big.Int) (Element, error) {
	if x.Sign() < 0 || x.BitLen() > Degree {
		return Element{}, ErrOutOfRange
	}
	return FromBytes(x.FillBytes(make([]byte, Size)))
}

// Bytes returns the Size-byte big-endian encoding of e.
func (e Element) Bytes() []byte {
	out := make([]byte, Size)
	for i := range out {
		shift := uint(8 * (Size - 1 - i))
		out[i] = byte(e[shift/64] >> (shift % 64))
	}
	return out
}

// Big returns e as an integer.
func (e Element) Big() *big.Int {
	return new(big.Int).SetBytes(e.Bytes())
}

func (e Element) IsZero() bool {
	return e[0]|e[1]|e[2] == 0
}

func (e Element) Equal(f Element) bool {
	return e == f
}

// Bit0 returns the coefficient of z^0.
func (e Element) Bit0() uint {
	return uint(e[0] & 1)
}

// Add returns e + f, which is also e - f.
func (e Element) Add(f Element) Element {
	return Element{e[0] ^ f[0], e[1] ^ f[1], e[2] ^ f[2]}
}

// Mul returns e * f mod f(z).
func (e Element) Mul(f Element) Element {
	var r [6]uint64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			hi, lo := clmul(e[i], f[j])
			r[i+j] ^= lo
			r[i+j+1] ^= hi
		}
	}
	return reduce(&r)
}

// Square returns e^2.
func (e Element) Square() Element {
	return e.Mul(e)
}

// Inv returns e^-1 computed as e^(2^m - 2). Inv of zero is zero.
func (e Element) Inv() Element {
	// r = e^(2^(m-1) - 1) after m-2 rounds of square-and-multiply
	r := e
	for i := 0; i < Degree-2; i++ {
		r = r.Square().Mul(e)
	}
	return r.Square()
}

// Sqrt returns the unique square root e^(2^(m-1)).
func (e Element) Sqrt() Element {
	r := e
	for i := 0; i < Degree-1; i++ {
		r = r.Square()
	}
	return r
}

// Trace returns Tr(e) = sum of e^(2^i) for i in [0, m), which is 0 or 1.
func (e Element) Trace() uint {
	t, s := e, e
	for i := 1; i < Degree; i++ {
		t = t.Square()
		s = s.Add(t)
	}
	return s.Bit0()
}

// HalfTrace returns sum of e^(2^(2i)) for i in [0, (m-1)/2]. Since m is odd,
// z = HalfTrace(b) solves z^2 + z = b whenever Tr(b) = 0.
func (e Element) HalfTrace() Element {
	t, s := e, e
	for i := 0; i < (Degree-1)/2; i++ {
		t = t.Square().Square()
		s = s.Add(t)
	}
	return s
}

// clmul is the carry-less product of two 64-bit words.
func clmul(a, b uint64) (hi, lo uint64) {
	for i := uint(0); i < 64; i++ {
		if b>>i&1 == 1 {
			lo ^= a << i
			hi ^= a >> (64 - i)
		}
	}
	return
}

func xorAt(r *[6]uint64, v uint64, off uint) {
	w, s := off/64, off%64
	r[w] ^= v << s
	if s != 0 {
		r[w+1] ^= v >> (64 - s)
	}
}

// reduce folds a product of degree < 2m back below z^m using
// z^163 = z^7 + z^6 + z^3 + 1.
func reduce(r *[6]uint64) Element {
	for i := 5; i >= 3; i-- {
		v := r[i]
		r[i] = 0
		off := uint(64*i - Degree)
		xorAt(r, v, off)
		xorAt(r, v, off+3)
		xorAt(r, v, off+6)
		xorAt(r, v, off+7)
	}
	v := r[2] >> topBits
	r[2] &= topMask
	// v has at most 29 bits, so the fold stays inside the low limb
	r[0] ^= v ^ v<<3 ^ v<<6 ^ v<<7
	return Element{r[0], r[1], r[2]}
}
