// Package predicate implements the two robust geometric predicates the
// mesh depends on for every topological decision: orientation and
// in-circle testing. Both are exact in sign for all finite float64
// inputs.
//
// The technique mirrors the adaptive floating-point predicates described
// by Shewchuk for Triangle: a cheap float64 evaluation is paired with a
// conservative forward error bound; only when the bound cannot rule out
// a wrong sign does the predicate fall back to exact arithmetic. The
// fallback here uses math/big.Float instead of Shewchuk's staged
// expansion arithmetic, following the same escalate-to-big-precision
// pattern the corpus's own robust orientation predicate
// (cockroachdb/predicates.go RobustSign) uses when its fast filter is
// inconclusive.
package predicate

import (
	"math/big"

	"github.com/golang/geo/r2"
)

// Sign is the result of a robust predicate: -1, 0, or +1.
type Sign int

const (
	Negative Sign = -1
	Zero     Sign = 0
	Positive Sign = 1
)

func signOf(f float64) Sign {
	switch {
	case f > 0:
		return Positive
	case f < 0:
		return Negative
	default:
		return Zero
	}
}

// machineEpsilon is half the distance between 1.0 and the next larger
// float64, matching Shewchuk's convention for error-bound constants.
const machineEpsilon = 1.1102230246251565e-16

// orient2d error bound constant, derived the way Shewchuk's exactinit
// derives resulterrbound for the 2x2 determinant case: 3 rounding
// operations contribute, each bounded by machineEpsilon.
const orient2dErrBoundA = (3 + 16*machineEpsilon) * machineEpsilon

// Orient2D returns the sign of the signed area of triangle (a,b,c):
// Positive if a,b,c are in counterclockwise order, Negative if clockwise,
// Zero if collinear.
func Orient2D(a, b, c r2.Point) Sign {
	acx := a.X - c.X
	bcx := b.X - c.X
	acy := a.Y - c.Y
	bcy := b.Y - c.Y

	detleft := acx * bcy
	detright := acy * bcx
	det := detleft - detright

	var detsum float64
	switch {
	case detleft > 0:
		if detright <= 0 {
			return signOf(det)
		}
		detsum = detleft + detright
	case detleft < 0:
		if detright >= 0 {
			return signOf(det)
		}
		detsum = -detleft - detright
	default:
		return signOf(det)
	}

	errbound := orient2dErrBoundA * detsum
	if det >= errbound || -det >= errbound {
		return signOf(det)
	}
	return orient2dExact(a, b, c)
}

// orient2dExact recomputes the orientation determinant with arbitrary
// precision, escalating the working precision until the sign is
// unambiguous. Finite float64 inputs always terminate this loop because
// the true determinant of finite-precision inputs is itself an exactly
// representable rational number.
func orient2dExact(a, b, c r2.Point) Sign {
	for prec := uint(128); prec <= 4096; prec *= 2 {
		acx := bigSub(a.X, c.X, prec)
		bcx := bigSub(b.X, c.X, prec)
		acy := bigSub(a.Y, c.Y, prec)
		bcy := bigSub(b.Y, c.Y, prec)

		left := new(big.Float).SetPrec(prec).Mul(acx, bcy)
		right := new(big.Float).SetPrec(prec).Mul(acy, bcx)
		det := new(big.Float).SetPrec(prec).Sub(left, right)

		switch det.Sign() {
		case 1:
			return Positive
		case -1:
			return Negative
		default:
			// Only truly zero if computed at full precision for these
			// finite inputs; a higher-precision pass can only confirm
			// this once prec covers the full dynamic range.
			if prec >= 4096 {
				return Zero
			}
		}
	}
	return Zero
}

func bigSub(x, y float64, prec uint) *big.Float {
	bx := new(big.Float).SetPrec(prec).SetFloat64(x)
	by := new(big.Float).SetPrec(prec).SetFloat64(y)
	return bx.Sub(bx, by)
}
