// Copyright (c) 2020 vechain.org.
// Licensed under the MIT license.

package sect163k1

import (
	"math/big"

	"github.com/vechain/go-ecvrf/v2/internal/gf2m"
)

type affine struct {
	x, y gf2m.Element
	inf  bool
}

// projective is a López-Dahab point: x = X/Z, y = Y/Z^2. Z = 0 is infinity.
type projective struct {
	x, y, z gf2m.Element
}

func fromAffine(x, y *big.Int) (affine, bool) {
	if x.Sign() == 0 && y.Sign() == 0 {
		return affine{inf: true}, true
	}
	ex, err := gf2m.FromBig(x)
	if err != nil {
		return affine{}, false
	}
	ey, err := gf2m.FromBig(y)
	if err != nil {
		return affine{}, false
	}
	return affine{x: ex, y: ey}, true
}

func (p affine) big() (*big.Int, *big.Int) {
	if p.inf {
		return new(big.Int), new(big.Int)
	}
	return p.x.Big(), p.y.Big()
}

func onCurve(x, y gf2m.Element) bool {
	x2 := x.Square()
	lhs := y.Square().Add(x.Mul(y))
	rhs := x2.Mul(x).Add(a.Mul(x2)).Add(b)
	return lhs.Equal(rhs)
}

func add(p, q affine) affine {
	switch {
	case p.inf:
		return q
	case q.inf:
		return p
	}
	return madd(projective{p.x, p.y, gf2m.One}, q).toAffine()
}

func (p projective) isInf() bool {
	return p.z.IsZero()
}

func (p projective) toAffine() affine {
	if p.isInf() {
		return affine{inf: true}
	}
	zi := p.z.Inv()
	return affine{x: p.x.Mul(zi), y: p.y.Mul(zi.Square())}
}

// double returns 2p. Points with x = 0 have order 2, and the formulas give
// Z3 = 0 for them.
func double(p projective) projective {
	if p.isInf() {
		return p
	}
	z12 := p.z.Square()
	x12 := p.x.Square()
	z3 := x12.Mul(z12)
	bz14 := b.Mul(z12.Square())
	x3 := x12.Square().Add(bz14)
	y3 := bz14.Mul(z3).Add(x3.Mul(a.Mul(z3).Add(p.y.Square()).Add(bz14)))
	return projective{x3, y3, z3}
}

// madd returns p + q for an affine q (mixed addition).
func madd(p projective, q affine) projective {
	if q.inf {
		return p
	}
	if p.isInf() {
		return projective{q.x, q.y, gf2m.One}
	}
	z12 := p.z.Square()
	aa := q.y.Mul(z12).Add(p.y)
	bb := q.x.Mul(p.z).Add(p.x)
	if bb.IsZero() {
		if aa.IsZero() {
			return double(projective{q.x, q.y, gf2m.One})
		}
		return projective{}
	}
	c := p.z.Mul(bb)
	d := bb.Square().Mul(c.Add(a.Mul(z12)))
	z3 := c.Square()
	e := aa.Mul(c)
	x3 := aa.Square().Add(d).Add(e)
	f := x3.Add(q.x.Mul(z3))
	g := q.x.Add(q.y).Mul(z3.Square())
	y3 := e.Add(z3).Mul(f).Add(g)
	return projective{x3, y3, z3}
}

// scalarMult is left-to-right double-and-add over the bits of k.
func scalarMult(p affine, k []byte) affine {
	var r projective
	for _, v := range k {
		for bit := 7; bit >= 0; bit-- {
			r = double(r)
			if v>>uint(bit)&1 == 1 {
				r = madd(r, p)
			}
		}
	}
	return r.toAffine()
}
