package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Risk() RiskRepository

	// Close releases backend resources
	Close() error
}
