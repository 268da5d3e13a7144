package types

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for value validation
var (
	ErrInvalidLikelihood = goerr.New("likelihood must be between 1 and 5")
	ErrInvalidImpact     = goerr.New("impact must be between 1 and 5")
	ErrInvalidStatus     = goerr.New("invalid risk status")
	ErrInvalidLevel      = goerr.New("invalid risk level")
	ErrEmptyRiskID       = goerr.New("risk ID cannot be empty")
)
