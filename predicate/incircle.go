package predicate

import (
	"math/big"

	"github.com/golang/geo/r2"
)

// incircle error bound constant, following the same derivation scheme as
// orient2dErrBoundA but for the 3x3 lifted-paraboloid determinant, which
// accumulates more rounding operations.
const inCircleErrBoundA = (10 + 96*machineEpsilon) * machineEpsilon

// InCircle returns the sign of the determinant deciding whether d lies
// inside (Positive), on (Zero), or outside (Negative) the circumcircle of
// triangle a,b,c. The triangle a,b,c is assumed to be given in
// counterclockwise order; callers that cannot guarantee this must check
// Orient2D first, since the sign convention here is only meaningful for a
// CCW triangle.
func InCircle(a, b, c, d r2.Point) Sign {
	adx := a.X - d.X
	ady := a.Y - d.Y
	bdx := b.X - d.X
	bdy := b.Y - d.Y
	cdx := c.X - d.X
	cdy := c.Y - d.Y

	bdxcdy := bdx * cdy
	cdxbdy := cdx * bdy
	alift := adx*adx + ady*ady

	cdxady := cdx * ady
	adxcdy := adx * cdy
	blift := bdx*bdx + bdy*bdy

	adxbdy := adx * bdy
	bdxady := bdx * ady
	clift := cdx*cdx + cdy*cdy

	det := alift*(bdxcdy-cdxbdy) + blift*(cdxady-adxcdy) + clift*(adxbdy-bdxady)

	permanent := (abs(bdxcdy)+abs(cdxbdy))*alift +
		(abs(cdxady)+abs(adxcdy))*blift +
		(abs(adxbdy)+abs(bdxady))*clift
	errbound := inCircleErrBoundA * permanent

	if det > errbound || -det > errbound {
		return signOf(det)
	}
	return inCircleExact(a, b, c, d)
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func inCircleExact(a, b, c, d r2.Point) Sign {
	for prec := uint(256); prec <= 8192; prec *= 2 {
		f := func(p r2.Point) (x, y, lift *big.Float) {
			x = bigSub(p.X, d.X, prec)
			y = bigSub(p.Y, d.Y, prec)
			lift = new(big.Float).SetPrec(prec)
			xx := new(big.Float).SetPrec(prec).Mul(x, x)
			yy := new(big.Float).SetPrec(prec).Mul(y, y)
			lift.Add(xx, yy)
			return
		}
		adx, ady, alift := f(a)
		bdx, bdy, blift := f(b)
		cdx, cdy, clift := f(c)

		mul := func(x, y *big.Float) *big.Float { return new(big.Float).SetPrec(prec).Mul(x, y) }
		sub := func(x, y *big.Float) *big.Float { return new(big.Float).SetPrec(prec).Sub(x, y) }
		add := func(x, y *big.Float) *big.Float { return new(big.Float).SetPrec(prec).Add(x, y) }

		term1 := mul(alift, sub(mul(bdx, cdy), mul(cdx, bdy)))
		term2 := mul(blift, sub(mul(cdx, ady), mul(adx, cdy)))
		term3 := mul(clift, sub(mul(adx, bdy), mul(bdx, ady)))
		det := add(add(term1, term2), term3)

		switch det.Sign() {
		case 1:
			return Positive
		case -1:
			return Negative
		default:
			if prec >= 8192 {
				return Zero
			}
		}
	}
	return Zero
}
