package compare

import (
	"math/big"

	"linkage-service/internal/linkage/model"
	"linkage-service/internal/utils"
)

var (
	ratZero      = big.NewRat(0, 1)
	ratOne       = big.NewRat(1, 1)
	ratHalf      = big.NewRat(1, 2)
	intTolerance = big.NewRat(5, 1)
	relTolerance = big.NewRat(5, 100)  // 5% of the larger magnitude
	minTolerance = big.NewRat(1, 100)  // never tighter than 0.01
	fineStep     = big.NewRat(1, 100)  // bucket width up to 1000
	coarseStep   = big.NewRat(1, 10)   // bucket width above 1000
	bucketLimit  = big.NewRat(1000, 1) // scale where buckets widen
)

// CompareNumeric parses both values (either decimal separator, sign,
// grouping) and scores exact equality, absolute and relative closeness and
// rounding bucket. Unparsable input on either side scores zero.
func CompareNumeric(a, b string) Result {
	r := newResult(model.Numeric)
	x, okX := utils.ParseDecimal(a)
	y, okY := utils.ParseDecimal(b)
	if !okX || !okY {
		return r
	}

	if x.Cmp(y) == 0 {
		r.Scores[0] = 1
	}

	diff := new(big.Rat).Abs(new(big.Rat).Sub(x, y))
	scale := ratMax(new(big.Rat).Abs(x), new(big.Rat).Abs(y), ratOne)
	integral := x.IsInt() && y.IsInt()

	tolerance := intTolerance
	if !integral {
		tolerance = ratMax(new(big.Rat).Mul(scale, relTolerance), minTolerance)
	}
	r.Scores[1] = closeness(diff, tolerance)
	r.Scores[2] = closeness(diff, scale)

	var same bool
	if integral {
		same = diff.Cmp(ratOne) <= 0
	} else {
		step := fineStep
		if scale.Cmp(bucketLimit) > 0 {
			step = coarseStep
		}
		same = quantize(x, step).Cmp(quantize(y, step)) == 0
	}
	if same {
		r.Scores[3] = 1
	}
	return r.done()
}

// closeness is 1 - min(diff/limit, 1), clamped to [0,1].
func closeness(diff, limit *big.Rat) float64 {
	ratio := new(big.Rat).Quo(diff, limit)
	if ratio.Cmp(ratOne) > 0 {
		ratio = ratOne
	}
	f, _ := new(big.Rat).Sub(ratOne, ratio).Float64()
	return min(max(f, 0), 1)
}

// quantize rounds v to a multiple of step, half away from zero, and returns
// the multiple.
func quantize(v, step *big.Rat) *big.Int {
	t := new(big.Rat).Quo(new(big.Rat).Abs(v), step)
	t.Add(t, ratHalf)
	q := new(big.Int).Quo(t.Num(), t.Denom())
	if v.Cmp(ratZero) < 0 {
		q.Neg(q)
	}
	return q
}

func ratMax(vs ...*big.Rat) *big.Rat {
	m := vs[0]
	for _, v := range vs[1:] {
		if v.Cmp(m) > 0 {
			m = v
		}
	}
	return m
}
