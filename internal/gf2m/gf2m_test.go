// Copyright (c) 2020 vechain.org.
// Licensed under the MIT license.

package gf2m

import (
	"encoding/hex"
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	gxHex = "02fe13c0537bbc11acaa07d793de4e6d5e5c94eee8"
	gyHex = "0289070fb05d38ff58321f2e800536d538ccdaa3d9"
)

func mustElement(t testing.TB, s string) Element {
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	e, err := FromBytes(b)
	require.NoError(t, err)
	return e
}

func randElement(r *rand.Rand) Element {
	return Element{r.Uint64(), r.Uint64(), r.Uint64() & topMask}
}

func TestFromBytes(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Element
		wantErr bool
	}{
		{"empty", "", Zero, false},
		{"one", "01", One, false},
		{"limb boundary", "010000000000000000", Element{0, 1, 0}, false},
		{"top bit", "04" + "0000000000000000000000000000000000000000", Element{0, 0, 1 << 34}, false},
		{"degree bit", "08" + "0000000000000000000000000000000000000000", Zero, true},
		{"too long", "00" + gxHex, Zero, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := hex.DecodeString(tt.in)
			got, err := FromBytes(b)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrOutOfRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBytesRoundTrip(t *testing.T) {
	gx := mustElement(t, gxHex)
	assert.Equal(t, gxHex, hex.EncodeToString(gx.Bytes()))

	back, err := FromBig(gx.Big())
	require.NoError(t, err)
	assert.Equal(t, gx, back)

	_, err = FromBig(new(big.Int).Lsh(big.NewInt(1), Degree))
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = FromBig(big.NewInt(-1))
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestKnownAnswers(t *testing.T) {
	gx := mustElement(t, gxHex)
	gy := mustElement(t, gyHex)

	assert.Equal(t, "04d741872162b253d5a381f1f680b47e5c0ad3aa2a", hex.EncodeToString(gx.Mul(gy).Bytes()))
	assert.Equal(t, "06710bd85f2b559b085dc2832e086f4a4c7ef8d0be", hex.EncodeToString(gx.Square().Bytes()))
	assert.Equal(t, "063f514f39f4587684f96c8dd6558e69339a1efed9", hex.EncodeToString(gx.Inv().Bytes()))
	assert.Equal(t, uint(1), gx.Trace())

	beta := mustElement(t, "044444ba7fdf0a8a0e38755fff715aa59fa8307fbc")
	assert.Equal(t, "04c950110ed722f8b72abbda0d55f0c1953acbcd72", hex.EncodeToString(beta.HalfTrace().Bytes()))
}

func TestFieldIdentities(t *testing.T) {
	r := rand.New(rand.NewSource(163))
	for i := 0; i < 50; i++ {
		a, b, c := randElement(r), randElement(r), randElement(r)

		assert.Equal(t, a.Mul(b), b.Mul(a))
		assert.Equal(t, a.Mul(b.Add(c)), a.Mul(b).Add(a.Mul(c)))
		assert.Equal(t, a, a.Mul(One))
		assert.True(t, a.Add(a).IsZero())
		assert.Equal(t, a, a.Sqrt().Square())

		if !a.IsZero() {
			assert.Equal(t, One, a.Mul(a.Inv()))
		}

		z := a.HalfTrace()
		if a.Trace() == 0 {
			assert.Equal(t, a, z.Square().Add(z))
		} else {
			assert.NotEqual(t, a, z.Square().Add(z))
		}
	}
	assert.Equal(t, Zero, Zero.Inv())
	assert.Equal(t, One, One.Inv())
}

func BenchmarkMul(b *testing.B) {
	r := rand.New(rand.NewSource(1))
	x, y := randElement(r), randElement(r)
	for i := 0; i < b.N; i++ {
		x = x.Mul(y)
	}
}

func BenchmarkInv(b *testing.B) {
	r := rand.New(rand.NewSource(1))
	x := randElement(r)
	for i := 0; i < b.N; i++ {
		x = x.Inv()
	}
}
