// Copyright (c) 2020 vechain.org.
// Licensed under the MIT license.

// Package ecvrf implements the elliptic curve verifiable random function
// ECVRF-*-SHA256-TAI of draft-irtf-cfrg-vrf-06 over secp256k1, NIST P-256
// and NIST K-163.
//
// Keys, proofs and outputs are exchanged as byte strings whose widths are
// fixed per suite. All suites are immutable and safe for concurrent use.
package ecvrf

import (
	"crypto/subtle"
	"io"
	"math/big"

	"github.com/pkg/errors"
)

// VRF defines the operations of a verifiable random function.
type VRF interface {
	// Prove constructs a VRF proof `pi` for the given input `alpha`,
	// using the private key `sk`. The hash output is uniquely determined
	// by pi, see Verify.
	Prove(sk, alpha []byte) (pi []byte, err error)

	// Verify checks the proof `pi` of the message `alpha` against the
	// public key `pk`, and returns the VRF output `beta` on success.
	Verify(pk, pi, alpha []byte) (beta []byte, err error)

	// Precompute decodes `pi` and performs the scalar multiplications of
	// Verify, returning the affine coordinates of U = s*G - c*Y, s*H and
	// c*Gamma. It does not judge the proof: a verifier holding them only
	// needs a point subtraction and a hash to finish.
	Precompute(pk, pi, alpha []byte) (witness [6][]byte, err error)

	// Expand decodes `pi` into the affine coordinates of Gamma, c and s.
	Expand(pi []byte) (expanded [4][]byte, err error)
}

var _ VRF = (*Suite)(nil)

// Suite is a VRF engine bound to one cipher suite.
type Suite struct {
	core *core
}

// New creates a suite from cfg. cfg is retained and must not be modified.
func New(cfg *Config) *Suite {
	return &Suite{newCore(cfg)}
}

// Name returns the suite identifier.
func (v *Suite) Name() string { return v.core.Name }

// SecretKeySize returns the width of secret keys in bytes.
func (v *Suite) SecretKeySize() int { return v.core.QLen() }

// PublicKeySize returns the width of compressed public keys in bytes.
func (v *Suite) PublicKeySize() int { return v.core.PtLen() }

// ProofSize returns the width of proofs in bytes.
func (v *Suite) ProofSize() int { return v.core.ProofLen() }

// OutputSize returns the width of the VRF output beta in bytes.
func (v *Suite) OutputSize() int { return v.core.Hasher().Size() }

// PublicKey derives the compressed public key Y = x*G.
func (v *Suite) PublicKey(sk []byte) ([]byte, error) {
	if _, err := v.secretKey(sk); err != nil {
		return nil, err
	}
	return v.core.Marshal(v.core.ScalarBaseMult(sk)), nil
}

// GenerateKey draws a secret key from rand and returns it with its public key.
func (v *Suite) GenerateKey(rand io.Reader) (sk, pk []byte, err error) {
	var (
		q    = v.core.Q()
		qlen = v.core.QLen()
		// top byte mask dropping the bits above the order
		mask = byte(0xff >> uint(qlen*8-q.BitLen()))
	)
	sk = make([]byte, qlen)
	for {
		if _, err := io.ReadFull(rand, sk); err != nil {
			return nil, nil, errors.Wrap(err, "read random")
		}
		sk[0] &= mask
		if x := new(big.Int).SetBytes(sk); x.Sign() > 0 && x.Cmp(q) < 0 {
			break
		}
	}
	return sk, v.core.Marshal(v.core.ScalarBaseMult(sk)), nil
}

// Prove https://tools.ietf.org/id/draft-irtf-cfrg-vrf-06.html#rfc.section.5.1
func (v *Suite) Prove(sk, alpha []byte) (pi []byte, err error) {
	var (
		core = v.core
		q    = core.Q()
	)
	x, err := v.secretKey(sk)
	if err != nil {
		return nil, err
	}

	// step 1: Y = x*G
	pk := core.ScalarBaseMult(sk)

	// step 2: hash to curve
	H, err := core.HashToCurveTryAndIncrement(pk, alpha)
	if err != nil {
		return nil, err
	}

	// step 3: point to string
	hbytes := core.Marshal(H)

	// step 4: Gamma = x * H
	gamma := core.ScalarMult(H, sk)

	// step 5: nonce
	k := core.GenerateNonce(x, core.Hash(hbytes))
	kbytes := k.Bytes()

	// step 6: c = hash points
	U := core.ScalarBaseMult(kbytes)
	V := core.ScalarMult(H, kbytes)
	c := core.HashPoints(H, gamma, U, V)

	// step 7: s = (k + c*x) mod q
	s := new(big.Int).Mul(c, x)
	s.Add(s, k)
	s.Mod(s, q)

	// step 8: encode (gamma, c, s)
	return core.EncodeProof(&proof{gamma, c, s}), nil
}

// Verify https://tools.ietf.org/id/draft-irtf-cfrg-vrf-06.html#rfc.section.5.3
func (v *Suite) Verify(pk, pi, alpha []byte) (beta []byte, err error) {
	w, err := v.recompute(pk, pi, alpha)
	if err != nil {
		return nil, err
	}
	core := v.core

	// step 7: c' = hash points(H, Gamma, U, V)
	V := core.Sub(w.sH, w.cGamma)
	c := core.HashPoints(w.H, w.proof.Gamma, w.U, V)

	clen := core.N()
	if subtle.ConstantTimeCompare(int2octets(c, clen), int2octets(w.proof.C, clen)) != 1 {
		return nil, ErrVerificationFailed
	}
	return core.GammaToHash(w.proof.Gamma), nil
}

// Precompute returns U.x, U.y, (s*H).x, (s*H).y, (c*Gamma).x, (c*Gamma).y,
// each left padded to the field width.
func (v *Suite) Precompute(pk, pi, alpha []byte) (witness [6][]byte, err error) {
	w, err := v.recompute(pk, pi, alpha)
	if err != nil {
		return witness, err
	}
	for i, pt := range []*point{w.U, w.sH, w.cGamma} {
		witness[2*i], witness[2*i+1] = v.coordinates(pt)
	}
	return witness, nil
}

// Expand returns Gamma.x, Gamma.y, c and s. Coordinates are left padded to
// the field width, c and s to their widths in the proof. pi is decoded as
// strictly as in Verify, so a zero c or s is rejected as well.
func (v *Suite) Expand(pi []byte) (expanded [4][]byte, err error) {
	p, err := v.core.DecodeProof(pi)
	if err != nil {
		return expanded, err
	}
	expanded[0], expanded[1] = v.coordinates(p.Gamma)
	expanded[2] = int2octets(p.C, v.core.N())
	expanded[3] = int2octets(p.S, v.core.QLen())
	return expanded, nil
}

// ProofToHash returns the VRF output of pi without verifying it.
// https://tools.ietf.org/id/draft-irtf-cfrg-vrf-06.html#rfc.section.5.2
func (v *Suite) ProofToHash(pi []byte) (beta []byte, err error) {
	p, err := v.core.DecodeProof(pi)
	if err != nil {
		return nil, err
	}
	return v.core.GammaToHash(p.Gamma), nil
}

func (v *Suite) secretKey(sk []byte) (*big.Int, error) {
	if len(sk) != v.core.QLen() {
		return nil, errors.Wrapf(ErrInvalidSecretKey, "got %d bytes, want %d", len(sk), v.core.QLen())
	}
	x := new(big.Int).SetBytes(sk)
	if x.Sign() == 0 || x.Cmp(v.core.Q()) >= 0 {
		return nil, errors.Wrap(ErrInvalidSecretKey, "scalar out of range")
	}
	return x, nil
}

func (v *Suite) publicKey(pk []byte) (*point, error) {
	Y, err := v.core.Unmarshal(pk)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidPublicKey, "%v", err)
	}
	if err := v.core.Validate(Y); err != nil {
		return nil, errors.Wrapf(ErrInvalidPublicKey, "%v", err)
	}
	return Y, nil
}

type transcript struct {
	proof      *proof
	H, U       *point
	sH, cGamma *point
}

// recompute runs steps 1 to 6 of verification: everything but the challenge
// comparison.
func (v *Suite) recompute(pk, pi, alpha []byte) (*transcript, error) {
	core := v.core

	// step 1: decode public key
	Y, err := v.publicKey(pk)
	if err != nil {
		return nil, err
	}

	// step 2: decode proof
	p, err := core.DecodeProof(pi)
	if err != nil {
		return nil, err
	}

	// step 3: hash to curve
	H, err := core.HashToCurveTryAndIncrement(Y, alpha)
	if err != nil {
		return nil, err
	}

	var (
		sbytes = p.S.Bytes()
		cbytes = p.C.Bytes()
	)
	// step 4: U = s*G - c*Y
	U := core.Sub(core.ScalarBaseMult(sbytes), core.ScalarMult(Y, cbytes))

	// step 5, 6: s*H and c*Gamma, V is their difference
	return &transcript{
		proof:  p,
		H:      H,
		U:      U,
		sH:     core.ScalarMult(H, sbytes),
		cGamma: core.ScalarMult(p.Gamma, cbytes),
	}, nil
}

func (v *Suite) coordinates(pt *point) (x, y []byte) {
	n := v.core.FieldLen()
	return pt.X.FillBytes(make([]byte, n)), pt.Y.FillBytes(make([]byte, n))
}
