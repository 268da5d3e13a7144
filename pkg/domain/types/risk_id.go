package types

import (
	"github.com/google/uuid"
)

// riskIDLength is the number of leading UUID characters kept in a RiskID
const riskIDLength = 8

// RiskID is the short random identifier of a risk
type RiskID string

// NewRiskID generates a new RiskID from a random UUID
func NewRiskID() RiskID {
	return RiskID(uuid.NewString()[:riskIDLength])
}

// Validate checks if the RiskID is valid
func (id RiskID) Validate() error {
	if id == "" {
		return ErrEmptyRiskID
	}
	return nil
}

// String returns the string representation of RiskID
func (id RiskID) String() string {
	return string(id)
}
