package slack

import (
	"github.com/secmon-lab/riskreg/pkg/domain/interfaces"
	"github.com/secmon-lab/riskreg/pkg/domain/model"
)

// Service posts risk register events to a Slack incoming webhook
type Service interface {
	interfaces.Notifier
}

var _ interfaces.Notifier = (Service)(nil)

// levelEmoji decorates a level in messages
func levelEmoji(r *model.Risk) string {
	switch r.Level.Rank() {
	case 4:
		return ":rotating_light:"
	case 3:
		return ":warning:"
	case 2:
		return ":large_yellow_circle:"
	default:
		return ":large_green_circle:"
	}
}
