package interfaces

import (
	"context"

	"github.com/secmon-lab/riskreg/pkg/domain/model"
)

// Notifier announces newly registered risks to an external channel
type Notifier interface {
	NotifyRiskAdded(ctx context.Context, risk *model.Risk) error
}
