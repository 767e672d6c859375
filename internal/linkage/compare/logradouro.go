package compare

import "linkage-service/internal/linkage/model"

// CompareAddress scores two street addresses component by component.
func CompareAddress(a, b string) Result {
	r := newResult(model.Address)
	pa, pb := NormalizeAddress(a), NormalizeAddress(b)

	if pa.Street != "" && pa.Street == pb.Street {
		r.Scores[0] = 1
	}
	r.Scores[1] = TokenSetRatio(pa.StreetTokens, pb.StreetTokens) * 0.8

	switch {
	case pa.Number != "" && pa.Number == pb.Number:
		r.Scores[2] = 1
	case pa.Number == NoNumber && pb.Number == NoNumber:
		r.Scores[2] = 0.5
	}

	r.Scores[3] = TokenSetRatio(pa.ComplementTokens, pb.ComplementTokens) * 0.5
	r.Scores[4] = TokenSetRatio(pa.AllTokens, pb.AllTokens) * 0.8
	r.Scores[5] = JaccardRatio(pa.AllTokens, pb.AllTokens) * 0.5
	return r.done()
}
