// Copyright (c) 2020 vechain.org.
// Licensed under the MIT license.

package ecvrf

import (
	"bytes"
	"crypto/hmac"
	"math/big"

	"github.com/pkg/errors"
)

type point struct {
	X, Y *big.Int
}

type proof struct {
	Gamma *point
	C, S  *big.Int
}

type core struct {
	*Config
	q *big.Int
}

func newCore(cfg *Config) *core {
	return &core{cfg, cfg.Curve.Order()}
}

// Q returns the prime order of the generator.
func (c *core) Q() *big.Int {
	return c.q
}

// N returns the challenge length in bytes, half the bit length of Q rounded up.
func (c *core) N() int {
	return ((c.q.BitLen()+1)/2 + 7) / 8
}

// QLen returns the width of scalars in bytes.
func (c *core) QLen() int {
	return (c.q.BitLen() + 7) / 8
}

// FieldLen returns the width of a coordinate in bytes.
func (c *core) FieldLen() int {
	return (c.Curve.BitSize() + 7) / 8
}

// PtLen returns the width of a compressed point in bytes.
func (c *core) PtLen() int {
	return c.FieldLen() + 1
}

// ProofLen returns the width of an encoded proof in bytes.
func (c *core) ProofLen() int {
	return c.PtLen() + c.N() + c.QLen()
}

// Marshal marshals a point into compressed form specified in section 4.3.6 of ANSI X9.62.
// It's the alias of `point_to_string` specified in VRF-draft-06 (https://tools.ietf.org/id/draft-irtf-cfrg-vrf-06.html#rfc.section.5.5).
func (c *core) Marshal(pt *point) []byte {
	return c.Curve.Compress(pt.X, pt.Y)
}

// Unmarshal is the alias of `string_to_point`. The result is on the curve but
// may still be outside the prime order subgroup, see Validate.
func (c *core) Unmarshal(in []byte) (*point, error) {
	x, y, err := c.Curve.Decompress(in)
	if err != nil {
		return nil, err
	}
	return &point{x, y}, nil
}

func (c *core) IsIdentity(pt *point) bool {
	return pt.X.Sign() == 0 && pt.Y.Sign() == 0
}

// Validate checks that pt is a non-identity point of the prime order subgroup.
func (c *core) Validate(pt *point) error {
	if c.IsIdentity(pt) {
		return errors.New("point at infinity")
	}
	if !c.Curve.IsOnCurve(pt.X, pt.Y) {
		return errors.New("point not on curve")
	}
	if c.Cofactor != 1 && !c.IsIdentity(c.ScalarMult(pt, c.q.Bytes())) {
		return errors.New("point not in the prime order subgroup")
	}
	return nil
}

func (c *core) ScalarMult(pt *point, k []byte) *point {
	var out point
	out.X, out.Y = c.Curve.ScalarMult(pt.X, pt.Y, k)
	return &out
}

func (c *core) ScalarBaseMult(k []byte) *point {
	var out point
	out.X, out.Y = c.Curve.ScalarBaseMult(k)
	return &out
}

func (c *core) Add(pt1, pt2 *point) *point {
	var out point
	out.X, out.Y = c.Curve.Add(pt1.X, pt1.Y, pt2.X, pt2.Y)
	return &out
}

func (c *core) Sub(pt1, pt2 *point) *point {
	var out point
	nx, ny := c.Curve.Neg(pt2.X, pt2.Y)
	out.X, out.Y = c.Curve.Add(pt1.X, pt1.Y, nx, ny)
	return &out
}

func (c *core) Hash(data ...[]byte) []byte {
	h := c.Hasher()
	for _, e := range data {
		h.Write(e)
	}
	return h.Sum(nil)
}

func (c *core) Mac(k []byte, m ...[]byte) []byte {
	h := hmac.New(c.Hasher, k)
	for _, e := range m {
		h.Write(e)
	}
	return h.Sum(nil)
}

// HashToCurveTryAndIncrement https://tools.ietf.org/id/draft-irtf-cfrg-vrf-06.html#rfc.section.5.4.1.1
//
// The candidate x-coordinate is the leftmost BitSize bits of each digest, so
// the method also serves curves whose field is narrower than the hash.
func (c *core) HashToCurveTryAndIncrement(pk *point, alpha []byte) (*point, error) {
	var (
		pkBytes   = c.Marshal(pk)
		fieldLen  = c.FieldLen()
		fieldBits = c.Curve.BitSize()
		candidate = make([]byte, 1+fieldLen)
	)
	candidate[0] = 2
	for ctr := 0; ctr < 256; ctr++ {
		hash := c.Hash(
			[]byte{c.SuiteString, 0x01},
			pkBytes,
			alpha,
			[]byte{byte(ctr)},
		)
		bits2int(hash, fieldBits).FillBytes(candidate[1:])

		pt, err := c.Unmarshal(candidate)
		if err != nil {
			continue
		}
		if c.Cofactor != 1 {
			pt = c.ScalarMult(pt, []byte{c.Cofactor})
		}
		if !c.IsIdentity(pt) {
			return pt, nil
		}
	}
	return nil, ErrHashToCurveExhausted
}

// GenerateNonce https://tools.ietf.org/html/rfc6979#section-3.2
func (c *core) GenerateNonce(sk *big.Int, hash []byte) *big.Int {
	var (
		q     = c.q
		qlen  = q.BitLen()
		rolen = (qlen + 7) / 8
		holen = len(hash)
		bh    = bits2octets(hash, q, rolen)
		bx    = int2octets(sk, rolen)
	)

	// Step B
	v := bytes.Repeat([]byte{1}, holen)

	// Step C
	k := make([]byte, holen)

	// Step D ~ G
	for i := 0; i < 2; i++ {
		k = c.Mac(
			k,
			v,
			[]byte{byte(i)},
			bx,
			bh,
		)
		v = c.Mac(k, v)
	}

	// Step H
	for {
		// Step H1
		var t []byte

		// Step H2
		for len(t)*8 < qlen {
			v = c.Mac(k, v)
			t = append(t, v...)
		}

		// Step H3
		secret := bits2int(t, qlen)
		if secret.Sign() > 0 && secret.Cmp(q) < 0 {
			return secret
		}
		k = c.Mac(k, v, []byte{0x00})
		v = c.Mac(k, v)
	}
}

// HashPoints https://tools.ietf.org/id/draft-irtf-cfrg-vrf-06.html#rfc.section.5.4.3
func (c *core) HashPoints(points ...*point) *big.Int {
	h := c.Hasher()
	h.Write([]byte{c.SuiteString, 0x02})
	for _, pt := range points {
		h.Write(c.Marshal(pt))
	}
	return new(big.Int).SetBytes(h.Sum(nil)[:c.N()])
}

func (c *core) GammaToHash(gamma *point) []byte {
	gammaCof := c.ScalarMult(gamma, []byte{c.Cofactor})
	return c.Hash(
		[]byte{c.SuiteString, 0x03},
		c.Marshal(gammaCof),
	)
}

func (c *core) EncodeProof(p *proof) []byte {
	out := make([]byte, 0, c.ProofLen())
	out = append(out, c.Marshal(p.Gamma)...)
	out = append(out, int2octets(p.C, c.N())...)
	return append(out, int2octets(p.S, c.QLen())...)
}

// DecodeProof splits pi into (Gamma, c, s) and range checks every part.
// Length errors are reported before any curve operation.
func (c *core) DecodeProof(data []byte) (*proof, error) {
	var (
		ptlen = c.PtLen()
		clen  = c.N()
	)
	if len(data) != c.ProofLen() {
		return nil, errors.Wrapf(ErrInvalidProofLength, "got %d bytes, want %d", len(data), c.ProofLen())
	}

	gamma, err := c.Unmarshal(data[:ptlen])
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidProofEncoding, "gamma: %v", err)
	}
	if err := c.Validate(gamma); err != nil {
		return nil, errors.Wrapf(ErrInvalidProofEncoding, "gamma: %v", err)
	}

	var ret proof
	ret.Gamma = gamma
	ret.C = new(big.Int).SetBytes(data[ptlen : ptlen+clen])
	ret.S = new(big.Int).SetBytes(data[ptlen+clen:])

	if ret.C.Sign() == 0 {
		return nil, errors.Wrap(ErrInvalidProofEncoding, "value c is zero")
	}
	if ret.S.Sign() == 0 {
		return nil, errors.Wrap(ErrInvalidProofEncoding, "value s is zero")
	}
	if ret.S.Cmp(c.q) >= 0 {
		return nil, errors.Wrap(ErrInvalidProofEncoding, "s value out of range (>= curve order)")
	}
	return &ret, nil
}

// https://tools.ietf.org/html/rfc6979#section-2.3.2
func bits2int(in []byte, qlen int) *big.Int {
	out := new(big.Int).SetBytes(in)
	if ilen := len(in) * 8; ilen > qlen {
		return out.Rsh(out, uint(ilen-qlen))
	}
	return out
}

// https://tools.ietf.org/html/rfc6979#section-2.3.3
func int2octets(v *big.Int, rolen int) []byte {
	var (
		out    = v.Bytes()
		outlen = len(out)
	)

	// left pad with zeros if it's too short
	if rolen > outlen {
		out2 := make([]byte, rolen)
		copy(out2[rolen-outlen:], out)
		return out2
	}

	// drop most significant bytes if it's too long
	return out[outlen-rolen:]
}

// https://tools.ietf.org/html/rfc6979#section-2.3.4
func bits2octets(in []byte, q *big.Int, rolen int) []byte {
	z1 := bits2int(in, q.BitLen())
	z2 := new(big.Int).Sub(z1, q)
	if z2.Sign() < 0 {
		return int2octets(z1, rolen)
	}
	return int2octets(z2, rolen)
}
