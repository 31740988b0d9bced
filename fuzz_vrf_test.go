// Copyright (c) 2020 vechain.org.
// Licensed under the MIT license.

package ecvrf

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// deriveKey deterministically maps arbitrary bytes to a valid secret key.
// d = (seed % (N-1)) + 1 to ensure 1 <= d < N
func deriveKey(vrf *Suite, seed []byte) []byte {
	if len(seed) == 0 {
		return nil
	}
	q := vrf.core.Q()
	d := new(big.Int).SetBytes(seed)
	d.Mod(d, new(big.Int).Sub(q, big.NewInt(1)))
	d.Add(d, big.NewInt(1))
	return int2octets(d, vrf.SecretKeySize())
}

func fuzzProveVerify(f *testing.F, vrf *Suite) {
	// Seed with a simple example
	f.Add([]byte("Hello VeChain"), []byte{1})
	f.Add([]byte{0x00, 0x01, 0x02}, []byte{0xFF, 0x00, 0xAA})

	f.Fuzz(func(t *testing.T, alpha []byte, skSeed []byte) {
		sk := deriveKey(vrf, skSeed)
		if sk == nil {
			t.Skip()
		}
		pk, err := vrf.PublicKey(sk)
		if err != nil {
			t.Fatalf("PublicKey failed for derived key: %v", err)
		}

		pi, err := vrf.Prove(sk, alpha)
		if err != nil {
			// Not all inputs must be valid; just ensure no panic and continue.
			return
		}

		beta1, err := vrf.ProofToHash(pi)
		if err != nil {
			t.Fatalf("ProofToHash failed for self-produced proof: %v", err)
		}
		beta2, err := vrf.Verify(pk, pi, alpha)
		if err != nil {
			t.Fatalf("Verify failed for self-produced proof: %v", err)
		}
		if !bytes.Equal(beta1, beta2) {
			t.Fatalf("beta mismatch: got %x vs %x", beta1, beta2)
		}

		// Negative check: mutate the proof slightly and expect verification to fail
		mutated := append([]byte(nil), pi...)
		mutated[len(mutated)-1] ^= 0x01
		if _, err := vrf.Verify(pk, mutated, alpha); err == nil {
			t.Fatalf("mutated proof unexpectedly verified")
		}
	})
}

func FuzzProveVerifySecp256k1(f *testing.F) { fuzzProveVerify(f, Secp256k1Sha256Tai) }
func FuzzProveVerifyP256(f *testing.F)      { fuzzProveVerify(f, P256Sha256Tai) }
func FuzzProveVerifyK163(f *testing.F)      { fuzzProveVerify(f, K163Sha256Tai) }

// FuzzSecp256k1PublicKey compares public key derivation with decred's.
func FuzzSecp256k1PublicKey(f *testing.F) {
	f.Add([]byte{1})
	f.Add(bytes.Repeat([]byte{0xff}, 32))

	f.Fuzz(func(t *testing.T, seed []byte) {
		sk := deriveKey(Secp256k1Sha256Tai, seed)
		if sk == nil {
			t.Skip()
		}
		pk, err := Secp256k1Sha256Tai.PublicKey(sk)
		if err != nil {
			t.Fatal(err)
		}
		want := secp256k1.PrivKeyFromBytes(sk).PubKey().SerializeCompressed()
		if !bytes.Equal(want, pk) {
			t.Fatalf("public key mismatch: got %x, want %x", pk, want)
		}
	})
}
