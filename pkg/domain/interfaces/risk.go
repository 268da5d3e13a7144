package interfaces

import (
	"context"

	"github.com/secmon-lab/riskreg/pkg/domain/model"
)

// RiskRepository persists the whole risk collection at once
type RiskRepository interface {
	// Load retrieves every stored risk in stored order.
	// A missing or unreadable store yields an empty collection, not an error.
	Load(ctx context.Context) ([]*model.Risk, error)

	// Save replaces the stored collection with risks
	Save(ctx context.Context, risks []*model.Risk) error
}
