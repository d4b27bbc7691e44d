package config

import (
	"log/slog"

	"github.com/secmon-lab/kudos/pkg/service/slack"
	"github.com/urfave/cli/v3"
)

// Slack holds Slack configuration
type Slack struct {
	OAuthToken    string
	SigningSecret string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-oauth-token",
			Usage:       "Slack OAuth token for API access",
			Category:    "Slack",
			Sources:     cli.EnvVars("KUDOS_SLACK_OAUTH_TOKEN"),
			Destination: &s.OAuthToken,
		},
		&cli.StringFlag{
			Name:        "slack-signing-secret",
			Usage:       "Slack signing secret for request verification (verification is skipped when empty)",
			Category:    "Slack",
			Sources:     cli.EnvVars("KUDOS_SLACK_SIGNING_SECRET"),
			Destination: &s.SigningSecret,
		},
	}
}

// Configure creates and returns a Slack service client
func (s *Slack) Configure() *slack.Service {
	if !s.IsConfigured() {
		return nil
	}
	return slack.New(s.OAuthToken)
}

// IsConfigured checks if Slack is properly configured for basic operations
func (s *Slack) IsConfigured() bool {
	return s.OAuthToken != ""
}

// CanVerifySignature checks if inbound request verification is available
func (s *Slack) CanVerifySignature() bool {
	return s.SigningSecret != ""
}

// LogValue returns structured log value
func (s Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_oauth_token", s.OAuthToken != ""),
		slog.Bool("has_signing_secret", s.SigningSecret != ""),
	)
}

// SlackConfig is an alias used by the controllers
type SlackConfig = Slack
