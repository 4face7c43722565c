package squares

import (
	apperrors "github.com/leylaiskandarli/average-squares/internal/errors"
)

// LengthMismatch is the message carried by the length precondition failure.
const LengthMismatch = "weights and numbers must have same length"

// EqualWeights returns n weights of 1, the default when none are supplied.
func EqualWeights(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	return w
}

// ValidateLengths checks that weights, when supplied, pair one-to-one with
// numbers. A nil weights slice always passes.
func ValidateLengths(numbers, weights []float64) error {
	if weights != nil && len(weights) != len(numbers) {
		return apperrors.NewArgumentError("weights", LengthMismatch)
	}
	return nil
}

// effectiveWeights resolves nil weights to equal weighting.
func effectiveWeights(numbers, weights []float64) ([]float64, error) {
	if err := ValidateLengths(numbers, weights); err != nil {
		return nil, err
	}
	if weights == nil {
		return EqualWeights(len(numbers)), nil
	}
	return weights, nil
}
