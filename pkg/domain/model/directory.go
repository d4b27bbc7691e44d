package model

import (
	"time"

	"github.com/secmon-lab/kudos/pkg/domain/types"
)

// SelectOption is a single entry of a static-select menu
type SelectOption struct {
	Label string
	Value string
}

// DirectorySnapshot holds the selectable users and channels for the kudos
// modal. A snapshot is always replaced wholesale: both lists and FetchedAt
// are set together, or the snapshot does not exist.
type DirectorySnapshot struct {
	Users     []SelectOption
	Channels  []SelectOption
	FetchedAt time.Time
}

// Expired reports whether the snapshot is older than ttl at the given time
func (s *DirectorySnapshot) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.FetchedAt) >= ttl
}

// SystemBotUserID is the well-known ID of Slack's built-in bot user,
// which must never appear in the recognition candidates.
const SystemBotUserID types.SlackUserID = "USLACKBOT"
