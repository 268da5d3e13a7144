package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for use case layer
var (
	// ErrIDExhausted is returned when no unused risk ID could be generated
	ErrIDExhausted = goerr.New("failed to generate a unique risk ID")
)

// Context keys for error values
const (
	RiskIDKey     = "risk_id"
	ExportPathKey = "export_path"
)
