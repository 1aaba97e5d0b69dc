package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/panoptes/pkg/domain/interfaces"
	"github.com/secops-lab/panoptes/pkg/service/notify"
	"github.com/urfave/cli/v3"
)

// Slack holds configuration for confirmed-risk notifications
type Slack struct {
	oauthToken string
	channelID  string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-oauth-token",
			Usage:       "Slack OAuth token for notifications",
			Category:    "Slack",
			Sources:     cli.EnvVars("PANOPTES_SLACK_OAUTH_TOKEN"),
			Destination: &s.oauthToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel-id",
			Usage:       "Slack channel ID for confirmed risk notifications",
			Category:    "Slack",
			Sources:     cli.EnvVars("PANOPTES_SLACK_CHANNEL_ID"),
			Destination: &s.channelID,
		},
	}
}

// IsConfigured reports whether both token and channel are set
func (s *Slack) IsConfigured() bool {
	return s.oauthToken != "" && s.channelID != ""
}

// Configure builds the Slack notifier. Returns nil when not configured;
// setting only one of token and channel is a configuration mistake.
func (s *Slack) Configure() (interfaces.Notifier, error) {
	if s.oauthToken == "" && s.channelID == "" {
		return nil, nil
	}
	if !s.IsConfigured() {
		return nil, goerr.New("both slack-oauth-token and slack-channel-id are required for notifications")
	}

	return notify.New(s.oauthToken, s.channelID)
}
