package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskreg/pkg/cli/config"
	"github.com/secmon-lab/riskreg/pkg/domain/types"
)

func TestSlack_Configure(t *testing.T) {
	t.Run("no webhook means no notifier", func(t *testing.T) {
		opts, err := config.NewSlackForTest("", "Critical").Configure()
		gt.NoError(t, err).Required()
		gt.Array(t, opts).Length(0)
	})

	t.Run("webhook wires notifier", func(t *testing.T) {
		opts, err := config.NewSlackForTest("https://hooks.slack.com/services/T/B/X", "high").Configure()
		gt.NoError(t, err).Required()
		gt.Array(t, opts).Length(1)
	})

	t.Run("invalid level is rejected", func(t *testing.T) {
		_, err := config.NewSlackForTest("https://hooks.slack.com/services/T/B/X", "severe").Configure()
		gt.Error(t, err).Is(types.ErrInvalidLevel)
	})
}

func TestSlack_Merge(t *testing.T) {
	fileCfg := &config.FileConfig{
		Notify: config.NotifySection{SlackWebhookURL: "https://hooks.slack.com/services/T/B/X", Level: "Moderate"},
	}

	x := config.NewSlackForTest("", "Critical")
	x.Merge(fileCfg, func(name string) bool { return name == "notify-level" })

	gt.Bool(t, x.IsConfigured()).True()
	gt.String(t, x.SlackLevel()).Equal("Critical")
}
