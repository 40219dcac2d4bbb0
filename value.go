package gridcalc

import "math/big"

// The evaluator's value domain is the exact rationals. Every operator
// except division stays on integers; division rounds the exact quotient
// to three decimal places, so fractional values flow through the rest
// of the arithmetic unchanged.

// divisionScale is the number of decimal places division rounds to.
const divisionScale = 3

var (
	ratZero = big.NewRat(0, 1)
	ratOne  = big.NewRat(1, 1)
)

// boolValue coerces a boolean to the numeric domain: 1 for true, 0 for
// false. Returns a fresh value the caller may own.
func boolValue(b bool) *big.Rat {
	if b {
		return new(big.Rat).Set(ratOne)
	}
	return new(big.Rat).Set(ratZero)
}

// isTruthy reports whether a value counts as true: any nonzero value.
func isTruthy(v *big.Rat) bool {
	return v.Sign() != 0
}

// roundRat rounds v to the given number of decimal places using
// round-half-to-even.
func roundRat(v *big.Rat, places int) *big.Rat {
	pow := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(places)), nil)

	// scale the numerator so the quotient carries the wanted digits
	num := new(big.Int).Mul(v.Num(), pow)
	den := v.Denom() // always positive for big.Rat

	quo, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	if rem.Sign() != 0 {
		// QuoRem truncates toward zero; decide whether to round away
		step := big.NewInt(1)
		if num.Sign() < 0 {
			step = big.NewInt(-1)
		}

		twiceRem := new(big.Int).Lsh(new(big.Int).Abs(rem), 1)
		switch twiceRem.Cmp(den) {
		case 1:
			quo.Add(quo, step)
		case 0:
			// exactly halfway: round to even
			if quo.Bit(0) == 1 {
				quo.Add(quo, step)
			}
		}
	}

	return new(big.Rat).SetFrac(quo, pow)
}

// finiteDecimalDigits returns the number of fractional digits needed to
// write 1/den exactly in decimal, and whether that is possible at all
// (the denominator has no prime factors besides 2 and 5).
func finiteDecimalDigits(den *big.Int) (int, bool) {
	two := big.NewInt(2)
	five := big.NewInt(5)

	rest := new(big.Int).Set(den)
	twos, fives := 0, 0

	mod := new(big.Int)
	for {
		quo, m := new(big.Int).QuoRem(rest, two, mod)
		if m.Sign() != 0 {
			break
		}
		rest = quo
		twos++
	}
	for {
		quo, m := new(big.Int).QuoRem(rest, five, mod)
		if m.Sign() != 0 {
			break
		}
		rest = quo
		fives++
	}

	if rest.Cmp(big.NewInt(1)) != 0 {
		return 0, false
	}
	return max(twos, fives), true
}

// FormatValue renders a value the way the grid displays it: integers
// without a decimal part, fractions as exact decimals with trailing
// zeros trimmed. Values whose decimal expansion does not terminate are
// rendered in num/den form; evaluation never produces those, but the
// formatter does not rely on that.
func FormatValue(v *big.Rat) string {
	if v.IsInt() {
		return v.Num().String()
	}

	digits, ok := finiteDecimalDigits(v.Denom())
	if !ok {
		return v.RatString()
	}

	s := v.FloatString(digits)
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}
