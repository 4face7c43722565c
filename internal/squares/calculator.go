// Package squares computes the weighted average of squares of a sequence.
//
// The average is normalized by the number of weights:
//
//	result = Σ(weight_i · number_i²) / N
//
// so that with equal weighting it is the mean of the squares. An empty
// sequence averages to 0.
package squares

// Term captures one position's contribution to the average.
type Term struct {
	Index    int     `json:"index"`
	Number   float64 `json:"number"`
	Weight   float64 `json:"weight"`
	Square   float64 `json:"square"`
	Weighted float64 `json:"weighted"`
}

// Result is the full breakdown of a calculation.
type Result struct {
	Terms       []Term  `json:"terms"`
	WeightedSum float64 `json:"weighted_sum"`
	Count       int     `json:"count"`
	Total       float64 `json:"total"`
}

// AverageOfSquares returns the weighted average of the squares of numbers.
// A nil weights slice weights every element equally; otherwise weights must
// have the same length as numbers.
func AverageOfSquares(numbers, weights []float64) (float64, error) {
	w, err := effectiveWeights(numbers, weights)
	if err != nil {
		return 0, err
	}

	var sum float64
	for i, n := range numbers {
		sum += w[i] * (n * n)
	}
	return normalize(sum, len(w)), nil
}

// Breakdown computes the same value as AverageOfSquares and reports each
// term's contribution alongside it.
func Breakdown(numbers, weights []float64) (Result, error) {
	w, err := effectiveWeights(numbers, weights)
	if err != nil {
		return Result{}, err
	}

	terms := make([]Term, len(numbers))
	var sum float64
	for i, n := range numbers {
		sq := n * n
		terms[i] = Term{
			Index:    i,
			Number:   n,
			Weight:   w[i],
			Square:   sq,
			Weighted: w[i] * sq,
		}
		sum += terms[i].Weighted
	}

	return Result{
		Terms:       terms,
		WeightedSum: sum,
		Count:       len(w),
		Total:       normalize(sum, len(w)),
	}, nil
}

func normalize(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
