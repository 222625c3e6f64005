package dataprocessing

import (
	"math"
	"strconv"
	"strings"
)

// Round rounds x to the given decimal precision with halves rounded up. The
// decimal exponent is shifted textually, so 1.005 rounds to 1.01 and not 1.
func Round(x float64, precision int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	shifted := shiftExponent(x, precision)
	return shiftExponent(math.Floor(shifted+0.5), -precision)
}

// round2 is the precision used for every derived mean and percentage.
func round2(x float64) float64 { return Round(x, 2) }

func shiftExponent(x float64, by int) float64 {
	s := strconv.FormatFloat(x, 'g', -1, 64)
	mantissa, exp := s, 0
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mantissa = s[:i]
		exp, _ = strconv.Atoi(s[i+1:])
	}
	v, err := strconv.ParseFloat(mantissa+"e"+strconv.Itoa(exp+by), 64)
	if err != nil {
		return x
	}
	return v
}
