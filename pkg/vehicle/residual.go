package vehicle

import "sort"

// residualFraction evaluates a sparse age -> fraction residual curve at an
// arbitrary age using piecewise-linear interpolation.
//
// Edge rules:
//   - age at or below the first projected age interpolates from the implicit
//     anchor (age 0, fraction 1.0) to the first point;
//   - age at or beyond the last projected age holds the last fraction flat;
//   - an empty curve falls back to straight-line depreciation to zero over
//     the vehicle lifespan.
//
// The result is clamped to [0, 1].
func residualFraction(curve map[int]float64, ageYears float64, lifespanYears int) float64 {
	if ageYears < 0 {
		ageYears = 0
	}

	if len(curve) == 0 {
		if lifespanYears <= 0 {
			return 0
		}
		return clampFraction(1.0 - ageYears/float64(lifespanYears))
	}

	ages := make([]int, 0, len(curve))
	for a := range curve {
		ages = append(ages, a)
	}
	sort.Ints(ages)

	first := ages[0]
	last := ages[len(ages)-1]

	switch {
	case ageYears >= float64(last):
		return clampFraction(curve[last])
	case ageYears <= float64(first):
		// Interpolate down from the brand-new anchor at (0, 1.0).
		if first == 0 {
			return clampFraction(curve[0])
		}
		t := ageYears / float64(first)
		return clampFraction(1.0 + t*(curve[first]-1.0))
	}

	// Bracketing points exist on both sides.
	for i := 1; i < len(ages); i++ {
		if ageYears <= float64(ages[i]) {
			lo, hi := ages[i-1], ages[i]
			t := (ageYears - float64(lo)) / float64(hi-lo)
			return clampFraction(curve[lo] + t*(curve[hi]-curve[lo]))
		}
	}
	return clampFraction(curve[last])
}

func clampFraction(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
