package interfaces

import (
	"context"

	"github.com/slack-go/slack"
)

// SlackClient abstracts the Slack Web API operations this service consumes.
// Implemented by pkg/service/slack; tests provide Func-field mocks.
type SlackClient interface {
	// ListUsers returns every user of the workspace
	ListUsers(ctx context.Context) ([]slack.User, error)

	// ListChannels returns every public and private channel of the workspace
	ListChannels(ctx context.Context) ([]slack.Channel, error)

	// OpenView opens a modal view in response to a trigger
	OpenView(ctx context.Context, triggerID string, view slack.ModalViewRequest) (*slack.ViewResponse, error)

	// PostMessage posts a message to a channel
	PostMessage(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}
