package types

import "github.com/m-mizutani/goerr/v2"

// Status represents the lifecycle stage of a risk
type Status string

const (
	StatusOpen        Status = "open"
	StatusMitigating  Status = "mitigating"
	StatusAccepted    Status = "accepted"
	StatusTransferred Status = "transferred"
	StatusClosed      Status = "closed"
)

// AllStatuses returns all valid risk statuses
func AllStatuses() []Status {
	return []Status{
		StatusOpen,
		StatusMitigating,
		StatusAccepted,
		StatusTransferred,
		StatusClosed,
	}
}

// IsValid checks if the status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen,
		StatusMitigating,
		StatusAccepted,
		StatusTransferred,
		StatusClosed:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// ParseStatus parses a string into a Status
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", goerr.Wrap(ErrInvalidStatus, "unknown status", goerr.V("status", s))
	}
	return status, nil
}
