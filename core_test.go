// Copyright (c) 2020 vechain.org.
// Licensed under the MIT license.

package ecvrf

import (
	"crypto/sha256"
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDecodeProofValidation tests the validation logic in DecodeProof function
func TestDecodeProofValidation(t *testing.T) {
	core := Secp256k1Sha256Tai.core

	// Use the generator point of secp256k1 curve
	gx, gy := core.Curve.Generator()
	validPoint := &point{X: gx, Y: gy}

	var (
		q     = core.Q()
		ptlen = core.PtLen()
		clen  = core.N()
		slen  = core.QLen()
	)

	build := func(c, s *big.Int) []byte {
		pi := make([]byte, ptlen+clen+slen)
		copy(pi[:ptlen], core.Marshal(validPoint))
		copy(pi[ptlen:ptlen+clen], int2octets(c, clen))
		copy(pi[ptlen+clen:], int2octets(s, slen))
		return pi
	}

	tests := []struct {
		name    string
		c, s    *big.Int
		wantErr string
	}{
		{"C value is zero", big.NewInt(0), big.NewInt(12345), "value c is zero"},
		{"S value is zero", big.NewInt(12345), big.NewInt(0), "value s is zero"},
		{"S value is out of range", big.NewInt(12345), q, "s value out of range (>= curve order)"},
		{"S value equals curve order minus 1", big.NewInt(12345), new(big.Int).Sub(q, big.NewInt(1)), ""},
		{"S value equals 1", big.NewInt(12345), big.NewInt(1), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := core.DecodeProof(build(tt.c, tt.s))
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Zero(t, tt.c.Cmp(p.C))
				assert.Zero(t, tt.s.Cmp(p.S))
				return
			}
			assert.ErrorIs(t, err, ErrInvalidProofEncoding)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("length is checked first", func(t *testing.T) {
		_, err := core.DecodeProof([]byte{0x00})
		assert.ErrorIs(t, err, ErrInvalidProofLength)
	})

	t.Run("gamma at infinity", func(t *testing.T) {
		pi := build(big.NewInt(1), big.NewInt(1))
		copy(pi[:ptlen], core.Marshal(&point{new(big.Int), new(big.Int)}))
		_, err := core.DecodeProof(pi)
		assert.ErrorIs(t, err, ErrInvalidProofEncoding)
	})
}

func TestEncodeProofPadding(t *testing.T) {
	for _, vrf := range Suites() {
		core := vrf.core
		gx, gy := core.Curve.Generator()
		pi := core.EncodeProof(&proof{&point{gx, gy}, big.NewInt(1), big.NewInt(2)})
		require.Len(t, pi, core.ProofLen())
		assert.Equal(t, byte(1), pi[core.PtLen()+core.N()-1])
		assert.Equal(t, byte(2), pi[len(pi)-1])

		p, err := core.DecodeProof(pi)
		require.NoError(t, err)
		assert.Zero(t, gx.Cmp(p.Gamma.X))
		assert.Zero(t, gy.Cmp(p.Gamma.Y))
	}
}

// RFC 6979 A.2.5, ECDSA with P-256 and SHA-256.
func TestGenerateNonce(t *testing.T) {
	core := P256Sha256Tai.core
	x, _ := new(big.Int).SetString("c9afa9d845ba75166b5c215767b1d6934e50c3db36e89b127b8a622b120f6721", 16)

	tests := []struct {
		msg  string
		want string
	}{
		{"sample", "a6e3c57dd01abe90086538398355dd4c3b17aa873382b0f24d6129493d8aad60"},
		{"test", "d16b6ae827f17175e040871a1c7ec3500192c4c92677336ec2537acaee0008e0"},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			h := sha256.Sum256([]byte(tt.msg))
			k := core.GenerateNonce(x, h[:])
			assert.Equal(t, tt.want, hex.EncodeToString(int2octets(k, 32)))
		})
	}
}

func TestHashToCurveSubgroup(t *testing.T) {
	core := K163Sha256Tai.core
	gx, gy := core.Curve.Generator()
	Y := &point{gx, gy}

	for _, alpha := range []string{"", "sample", "test", "Hello VeChain"} {
		H, err := core.HashToCurveTryAndIncrement(Y, []byte(alpha))
		require.NoError(t, err)
		assert.NoError(t, core.Validate(H), alpha)

		again, err := core.HashToCurveTryAndIncrement(Y, []byte(alpha))
		require.NoError(t, err)
		assert.Equal(t, core.Marshal(H), core.Marshal(again))
	}
}

func TestValidate(t *testing.T) {
	core := K163Sha256Tai.core
	gx, gy := core.Curve.Generator()

	assert.NoError(t, core.Validate(&point{gx, gy}))
	assert.Error(t, core.Validate(&point{new(big.Int), new(big.Int)}))
	assert.Error(t, core.Validate(&point{gx, new(big.Int).Add(gy, big.NewInt(1))}))

	// the order two point (0, 1) is on the curve but outside the subgroup
	assert.True(t, core.Curve.IsOnCurve(big.NewInt(0), big.NewInt(1)))
	assert.Error(t, core.Validate(&point{big.NewInt(0), big.NewInt(1)}))
}

func TestBits2Int(t *testing.T) {
	in, _ := hex.DecodeString("ff00")
	assert.Equal(t, int64(0xff00), bits2int(in, 16).Int64())
	assert.Equal(t, int64(0x7f), bits2int(in, 7).Int64())
	assert.Equal(t, int64(0xff00), bits2int(in, 20).Int64())

	assert.Equal(t, []byte{0, 0, 1}, int2octets(big.NewInt(1), 3))
	assert.Equal(t, []byte{0x02, 0x03}, int2octets(big.NewInt(0x010203), 2))
}
