package config

import (
	"log/slog"
	"time"

	"github.com/secmon-lab/kudos/pkg/service/directory"
	"github.com/secmon-lab/kudos/pkg/service/ratelimit"
	"github.com/urfave/cli/v3"
)

// Cache holds directory cache and API pacing configuration
type Cache struct {
	DirectoryTTL    time.Duration
	APICallInterval time.Duration
}

// Flags returns CLI flags for Cache configuration
func (c *Cache) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:        "directory-cache-ttl",
			Usage:       "How long the user/channel directory snapshot stays valid",
			Category:    "Cache",
			Value:       directory.DefaultTTL,
			Sources:     cli.EnvVars("KUDOS_DIRECTORY_CACHE_TTL"),
			Destination: &c.DirectoryTTL,
		},
		&cli.DurationFlag{
			Name:        "api-call-interval",
			Usage:       "Minimum spacing between outbound Slack API calls",
			Category:    "Cache",
			Value:       ratelimit.DefaultInterval,
			Sources:     cli.EnvVars("KUDOS_API_CALL_INTERVAL"),
			Destination: &c.APICallInterval,
		},
	}
}

// LogValue returns structured log value
func (c Cache) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Duration("directory_ttl", c.DirectoryTTL),
		slog.Duration("api_call_interval", c.APICallInterval),
	)
}
