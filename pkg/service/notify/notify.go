package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/panoptes/pkg/domain/interfaces"
	"github.com/secops-lab/panoptes/pkg/domain/model"
	"github.com/slack-go/slack"
)

// client posts risk confirmation notices to a Slack channel
type client struct {
	api     *slack.Client
	channel string
}

// Option is a functional option for client configuration
type Option func(*client)

// New creates a new Slack notifier with the provided bot token and channel ID
func New(token, channelID string, opts ...Option) (interfaces.Notifier, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}
	if channelID == "" {
		return nil, goerr.New("Slack channel ID is required")
	}

	c := &client{
		api:     slack.New(token),
		channel: channelID,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// NotifyConfirmedRisks posts one message summarizing all risks confirmed in a
// detection batch. No message is sent for an empty batch.
func (c *client) NotifyConfirmedRisks(ctx context.Context, risks []*model.Risk) error {
	if len(risks) == 0 {
		return nil
	}

	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType,
			fmt.Sprintf("%d AI-detected risk(s) confirmed", len(risks)), false, false)),
	}

	for _, risk := range risks {
		var sb strings.Builder
		fmt.Fprintf(&sb, "*#%d %s*\n", risk.ID, risk.Title)
		if risk.Category != "" {
			fmt.Fprintf(&sb, "Category: %s\n", risk.Category)
		}
		if risk.Impact != "" || risk.Likelihood != "" {
			fmt.Fprintf(&sb, "Impact: %s / Likelihood: %s\n", risk.Impact, risk.Likelihood)
		}
		fmt.Fprintf(&sb, "Confidence: %d%%", risk.AIConfidence)

		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, sb.String(), false, false), nil, nil))
	}

	_, _, err := c.api.PostMessageContext(ctx, c.channel,
		slack.MsgOptionBlocks(blocks...),
		slack.MsgOptionText(fmt.Sprintf("%d AI-detected risk(s) confirmed", len(risks)), false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post risk confirmation notice",
			goerr.V("channel", c.channel), goerr.V("count", len(risks)))
	}

	return nil
}
