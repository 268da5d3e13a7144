package slack

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskreg/pkg/domain/model"
	"github.com/slack-go/slack"
)

// DefaultTimeout bounds a single webhook request
const DefaultTimeout = 10 * time.Second

// maxHeaderLength is the longest plain text Slack accepts in a header block
const maxHeaderLength = 150

// client implements Service interface
type client struct {
	webhookURL string
	httpClient *http.Client
}

// Option is a functional option for client configuration
type Option func(*client)

// WithHTTPClient replaces the HTTP client used for webhook requests
func WithHTTPClient(c *http.Client) Option {
	return func(cl *client) {
		cl.httpClient = c
	}
}

// New creates a new Slack service posting to the given incoming webhook URL
func New(webhookURL string, opts ...Option) (Service, error) {
	if webhookURL == "" {
		return nil, goerr.New("Slack webhook URL is required")
	}

	c := &client{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// NotifyRiskAdded posts a summary of a newly registered risk
func (c *client) NotifyRiskAdded(ctx context.Context, risk *model.Risk) error {
	msg := &slack.WebhookMessage{
		Text:   fallbackText(risk),
		Blocks: &slack.Blocks{BlockSet: buildRiskBlocks(risk)},
	}

	if err := slack.PostWebhookCustomHTTPContext(ctx, c.webhookURL, c.httpClient, msg); err != nil {
		return goerr.Wrap(err, "failed to post risk to Slack", goerr.V("risk_id", risk.ID))
	}
	return nil
}

// truncate shortens s to at most limit characters, marking the cut with an ellipsis
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func fallbackText(r *model.Risk) string {
	return fmt.Sprintf("New %s risk %s (score %d): %s", r.Level, r.ID, r.Score, r.Title)
}

func buildRiskBlocks(r *model.Risk) []slack.Block {
	owner := r.Owner
	if owner == "" {
		owner = "-"
	}

	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Level:*\n%s %s", levelEmoji(r), r.Level), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Score:*\n%d (L%d x I%d)", r.Score, r.Likelihood, r.Impact), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Owner:*\n%s", owner), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Category:*\n%s", r.Category.Label()), false, false),
	}

	blocks := []slack.Block{
		slack.NewHeaderBlock(
			slack.NewTextBlockObject(slack.PlainTextType, truncate("New risk: "+r.Title, maxHeaderLength), true, false),
		),
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.PlainTextType, r.Title, false, false),
			fields, nil,
		),
	}

	if r.Notes != "" {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, r.Notes, false, false),
			nil, nil,
		))
	}

	blocks = append(blocks, slack.NewContextBlock("",
		slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("id `%s` | status %s | created %s", r.ID, r.Status, r.CreatedAt.Format(time.RFC3339)), false, false),
	))

	return blocks
}
