package file

import (
	"github.com/secmon-lab/riskreg/pkg/domain/interfaces"
)

// DefaultPath is the store location used when none is configured
const DefaultPath = "risks.json"

// File keeps the risk collection in a single JSON document on the local filesystem
type File struct {
	risk *riskRepository
}

var _ interfaces.Repository = &File{}

// New creates a file backed repository. The file is created on first save.
func New(path string) *File {
	if path == "" {
		path = DefaultPath
	}
	return &File{
		risk: newRiskRepository(path),
	}
}

func (f *File) Risk() interfaces.RiskRepository {
	return f.risk
}

// Path returns the location of the store document
func (f *File) Path() string {
	return f.risk.path
}

func (f *File) Close() error {
	return nil
}
