package types

import (
	"strconv"

	"github.com/m-mizutani/goerr/v2"
)

// Impact represents how severe a risk would be, rated 1 (negligible) to 5 (severe)
type Impact int

// Validate checks if the Impact is within the accepted rating range
func (i Impact) Validate() error {
	if i < MinRating || i > MaxRating {
		return goerr.Wrap(ErrInvalidImpact, "impact out of range", goerr.V("impact", int(i)))
	}
	return nil
}

// String returns the string representation of Impact
func (i Impact) String() string {
	return strconv.Itoa(int(i))
}

// Score returns the severity score of a likelihood/impact pair
func Score(l Likelihood, i Impact) int {
	return int(l) * int(i)
}
