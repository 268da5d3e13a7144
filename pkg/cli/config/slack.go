package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskreg/pkg/domain/types"
	"github.com/secmon-lab/riskreg/pkg/service/slack"
	"github.com/secmon-lab/riskreg/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Slack holds CLI flags for new-risk notification
type Slack struct {
	webhookURL string
	level      string
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook URL notified when a risk is added",
			Category:    "Slack",
			Destination: &x.webhookURL,
			Sources:     cli.EnvVars("RISKREG_SLACK_WEBHOOK_URL"),
		},
		&cli.StringFlag{
			Name:        "notify-level",
			Usage:       "Minimum risk level to notify (Low, Moderate, High, Critical)",
			Category:    "Slack",
			Value:       types.LevelCritical.String(),
			Destination: &x.level,
			Sources:     cli.EnvVars("RISKREG_NOTIFY_LEVEL"),
		},
	}
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("webhook-url.len", len(x.webhookURL)),
		slog.String("notify-level", x.level),
	)
}

// Merge fills flags not given on the command line from the configuration file
func (x *Slack) Merge(cfg *FileConfig, isSet func(name string) bool) {
	if cfg == nil {
		return
	}
	if v := cfg.Notify.SlackWebhookURL; v != "" && !isSet("slack-webhook-url") {
		x.webhookURL = v
	}
	if v := cfg.Notify.Level; v != "" && !isSet("notify-level") {
		x.level = v
	}
}

// IsConfigured checks if a webhook URL is given
func (x *Slack) IsConfigured() bool {
	return x.webhookURL != ""
}

// Configure returns usecase options wiring the Slack notifier. No options
// are returned when no webhook URL is configured.
func (x *Slack) Configure() ([]usecase.Option, error) {
	if !x.IsConfigured() {
		return nil, nil
	}

	level, err := types.ParseLevel(x.level)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid notify level", goerr.V(ParameterKey, "notify-level"))
	}

	svc, err := slack.New(x.webhookURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Slack notifier")
	}

	return []usecase.Option{usecase.WithNotifier(svc, level)}, nil
}
