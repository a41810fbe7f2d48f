// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package klatt

import (
	"errors"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
)

// PolyEps is the tolerance used when trimming and comparing coefficients
const PolyEps = 1e-10

// ErrPolynomial is returned for polynomial operations on empty or zero divisors
var ErrPolynomial = errors.New("klatt: invalid polynomial")

// Poly is a real polynomial with coefficients in ascending powers
type Poly []float64

// Degree is len - 1 (0 for a constant)
func (p Poly) Degree() int {
	return len(p) - 1
}

// IsZero reports whether all coefficients are 0
func (p Poly) IsZero() bool {
	for _, c := range p {
		if c != 0 {
			return false
		}
	}
	return true
}

// Trim returns p without leading (highest power) coefficients within eps of 0.
// The result always has at least one coefficient.
func (p Poly) Trim(eps float64) Poly {
	n := len(p)
	for n > 0 && math.Abs(p[n-1]) <= eps {
		n--
	}
	if n == 0 {
		return Poly{0}
	}
	return append(Poly(nil), p[:n]...)
}

// Add returns p + q
func (p Poly) Add(q Poly) Poly {
	n := len(p)
	if len(q) > n {
		n = len(q)
	}
	sum := make(Poly, n)
	copy(sum, p)
	floats.Add(sum[:len(q)], q)
	return sum.Trim(PolyEps)
}

// Mul returns p * q
func (p Poly) Mul(q Poly) Poly {
	if len(p) == 0 || len(q) == 0 || p.IsZero() || q.IsZero() {
		return Poly{0}
	}
	prod := make(Poly, len(p)+len(q)-1)
	for i, a := range p {
		if a == 0 {
			continue
		}
		floats.AddScaled(prod[i:i+len(q)], a, q)
	}
	return prod.Trim(PolyEps)
}

// Equal reports whether p and q have the same coefficients within eps,
// treating missing high coefficients as 0
func (p Poly) Equal(q Poly, eps float64) bool {
	n := len(p)
	if len(q) > n {
		n = len(q)
	}
	a := make([]float64, n)
	b := make([]float64, n)
	copy(a, p)
	copy(b, q)
	return floats.EqualApprox(a, b, eps)
}

// Monic returns p scaled so its leading coefficient is 1
func (p Poly) Monic() (Poly, error) {
	if len(p) == 0 {
		return nil, ErrPolynomial
	}
	lc := p[len(p)-1]
	if lc == 0 {
		return nil, ErrPolynomial
	}
	m := append(Poly(nil), p...)
	floats.Scale(1/lc, m)
	m[len(m)-1] = 1
	return m, nil
}

// DivMod returns quotient and remainder of p / q
func (p Poly) DivMod(q Poly) (quo, rem Poly, err error) {
	if len(p) == 0 || len(q) == 0 {
		return nil, nil, ErrPolynomial
	}
	a := p.Trim(PolyEps)
	b := q.Trim(PolyEps)
	if b.IsZero() {
		return nil, nil, ErrPolynomial
	}
	if len(b) == 1 {
		floats.Scale(1/b[0], a)
		return a, Poly{0}, nil
	}
	n1, n2 := a.Degree(), b.Degree()
	if n1 < n2 {
		return Poly{0}, a, nil
	}
	lc := b[n2]
	for i := n1 - n2; i >= 0; i-- {
		r := a[n2+i] / lc
		a[n2+i] = r
		for j := 0; j < n2; j++ {
			a[i+j] -= r * b[j]
		}
	}
	return a[n2:].Trim(PolyEps), a[:n2].Trim(PolyEps), nil
}

// PolyGCD returns the monic greatest common divisor of p and q (Euclid)
func PolyGCD(p, q Poly) (Poly, error) {
	r1, err := p.Trim(PolyEps).Monic()
	if err != nil {
		return nil, err
	}
	r2, err := q.Trim(PolyEps).Monic()
	if err != nil {
		return nil, err
	}
	if len(r1) < len(r2) {
		r1, r2 = r2, r1
	}
	for {
		if len(r2) < 2 {
			return Poly{1}, nil
		}
		_, r, err := r1.DivMod(r2)
		if err != nil {
			return nil, err
		}
		if r.IsZero() {
			return r2, nil
		}
		if r, err = r.Monic(); err != nil {
			return nil, err
		}
		r1, r2 = r2, r
	}
}

// Eval evaluates p at complex x
func (p Poly) Eval(x complex128) complex128 {
	var acc complex128
	for k := len(p) - 1; k >= 0; k-- {
		acc = acc*x + complex(p[k], 0)
	}
	return acc
}

/////////////////////////////////////////////////////
//              Fraction

// Fraction is a rational transfer function in z^-1:
// H = (Num[0] + Num[1] z^-1 + ...) / (Den[0] + Den[1] z^-1 + ...)
type Fraction struct {
	Num Poly
	Den Poly
}

// Identity is H = 1
func Identity() Fraction {
	return Fraction{Num: Poly{1}, Den: Poly{1}}
}

// Zero is H = 0
func Zero() Fraction {
	return Fraction{Num: Poly{0}, Den: Poly{1}}
}

// Gain is H = g
func Gain(g float64) Fraction {
	return Fraction{Num: Poly{g}, Den: Poly{1}}
}

// Trim trims numerator and denominator
func (f Fraction) Trim() Fraction {
	return Fraction{Num: f.Num.Trim(PolyEps), Den: f.Den.Trim(PolyEps)}
}

// Mul returns the series connection f * g
func (f Fraction) Mul(g Fraction) Fraction {
	return Fraction{Num: f.Num.Mul(g.Num), Den: f.Den.Mul(g.Den)}
}

// Add returns the parallel connection f + g. Common factors of the two
// denominators are only included once.
func (f Fraction) Add(g Fraction) (Fraction, error) {
	if f.Num.IsZero() {
		return g.Trim(), nil
	}
	if g.Num.IsZero() {
		return f.Trim(), nil
	}
	if f.Den.Equal(g.Den, PolyEps) {
		return Fraction{Num: f.Num.Add(g.Num), Den: f.Den.Trim(PolyEps)}, nil
	}
	gcd, err := PolyGCD(f.Den, g.Den)
	if err != nil {
		return Fraction{}, err
	}
	if gcd.Degree() > 0 {
		q1, r1, err1 := f.Den.DivMod(gcd)
		q2, r2, err2 := g.Den.DivMod(gcd)
		// the numeric gcd is only used when it divides both denominators
		if err1 == nil && err2 == nil && r1.IsZero() && r2.IsZero() {
			return Fraction{
				Num: f.Num.Mul(q2).Add(g.Num.Mul(q1)),
				Den: f.Den.Mul(q2),
			}, nil
		}
	}
	return Fraction{
		Num: f.Num.Mul(g.Den).Add(g.Num.Mul(f.Den)),
		Den: f.Den.Mul(g.Den),
	}, nil
}

// Eval evaluates the fraction at z^-1 = zinv
func (f Fraction) Eval(zinv complex128) complex128 {
	return f.Num.Eval(zinv) / f.Den.Eval(zinv)
}

// Response returns the magnitude of the frequency response at freq (Hz)
func (f Fraction) Response(freq, sampleRate float64) float64 {
	w := 2 * math.Pi * freq / sampleRate
	return cmplx.Abs(f.Eval(cmplx.Exp(complex(0, -w))))
}
