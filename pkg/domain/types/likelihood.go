package types

import (
	"strconv"

	"github.com/m-mizutani/goerr/v2"
)

const (
	// MinRating is the lowest accepted likelihood or impact rating
	MinRating = 1
	// MaxRating is the highest accepted likelihood or impact rating
	MaxRating = 5
)

// Likelihood represents how probable a risk is, rated 1 (rare) to 5 (almost certain)
type Likelihood int

// Validate checks if the Likelihood is within the accepted rating range
func (l Likelihood) Validate() error {
	if l < MinRating || l > MaxRating {
		return goerr.Wrap(ErrInvalidLikelihood, "likelihood out of range", goerr.V("likelihood", int(l)))
	}
	return nil
}

// String returns the string representation of Likelihood
func (l Likelihood) String() string {
	return strconv.Itoa(int(l))
}
