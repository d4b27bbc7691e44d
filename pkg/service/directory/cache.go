package directory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kudos/pkg/domain/interfaces"
	"github.com/secmon-lab/kudos/pkg/domain/model"
	"github.com/secmon-lab/kudos/pkg/service/ratelimit"
	"github.com/slack-go/slack"
	"golang.org/x/sync/errgroup"
)

// DefaultTTL is how long a directory snapshot stays valid
const DefaultTTL = 5 * time.Minute

// Cache holds a single TTL-bounded snapshot of the workspace directory
// (selectable users and channels). A stale or missing snapshot is refilled
// by two concurrent fetches, each paced by the rate limiter; the snapshot
// is replaced wholesale, and a failed refill leaves the old one untouched.
type Cache struct {
	client  interfaces.SlackClient
	limiter *ratelimit.Limiter
	ttl     time.Duration

	mu       sync.Mutex
	snapshot *model.DirectorySnapshot

	// now is replaceable for tests
	now func() time.Time
}

// New creates a directory cache. A non-positive ttl falls back to DefaultTTL.
func New(client interfaces.SlackClient, limiter *ratelimit.Limiter, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		client:  client,
		limiter: limiter,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the current snapshot, refilling it when missing or expired.
// The mutex covers the whole check-then-refill sequence, so concurrent
// callers never trigger duplicate refills.
func (c *Cache) Get(ctx context.Context) (*model.DirectorySnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot != nil && !c.snapshot.Expired(c.now(), c.ttl) {
		return c.snapshot, nil
	}

	snapshot, err := c.refill(ctx)
	if err != nil {
		return nil, err
	}

	c.snapshot = snapshot
	return snapshot, nil
}

func (c *Cache) refill(ctx context.Context) (*model.DirectorySnapshot, error) {
	ctxlog.From(ctx).Debug("Refreshing directory snapshot")

	var users []slack.User
	var channels []slack.Channel

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return c.limiter.Do(egCtx, func(ctx context.Context) error {
			var err error
			users, err = c.client.ListUsers(ctx)
			return err
		})
	})
	eg.Go(func() error {
		return c.limiter.Do(egCtx, func(ctx context.Context) error {
			var err error
			channels, err = c.client.ListChannels(ctx)
			return err
		})
	})
	if err := eg.Wait(); err != nil {
		return nil, goerr.Wrap(err, "failed to fetch workspace directory")
	}

	return &model.DirectorySnapshot{
		Users:     buildUserOptions(users),
		Channels:  buildChannelOptions(channels),
		FetchedAt: c.now(),
	}, nil
}

// buildUserOptions drops bot users, deleted users, and the system bot,
// labeling the rest by real name with the account name as fallback.
func buildUserOptions(users []slack.User) []model.SelectOption {
	options := make([]model.SelectOption, 0, len(users))
	for _, user := range users {
		if user.IsBot || user.Deleted || user.ID == model.SystemBotUserID.String() {
			continue
		}
		label := user.RealName
		if label == "" {
			label = user.Name
		}
		options = append(options, model.SelectOption{
			Label: label,
			Value: user.ID,
		})
	}
	return options
}

func buildChannelOptions(channels []slack.Channel) []model.SelectOption {
	options := make([]model.SelectOption, 0, len(channels))
	for _, channel := range channels {
		options = append(options, model.SelectOption{
			Label: channel.Name,
			Value: channel.ID,
		})
	}
	return options
}
