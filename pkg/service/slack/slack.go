package slack

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// Service provides Slack Web API access for the kudos flows
type Service struct {
	client *slack.Client
}

// New creates a new Slack service
func New(token string) *Service {
	return &Service{
		client: slack.New(token),
	}
}

// ListUsers returns all users in the workspace
func (s *Service) ListUsers(ctx context.Context) ([]slack.User, error) {
	users, err := s.client.GetUsersContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list Slack users")
	}
	return users, nil
}

// ListChannels returns all public and private channels, following the
// pagination cursor until exhausted
func (s *Service) ListChannels(ctx context.Context) ([]slack.Channel, error) {
	var channels []slack.Channel
	params := &slack.GetConversationsParameters{
		Types:           []string{"public_channel", "private_channel"},
		ExcludeArchived: true,
		Limit:           200,
	}

	for {
		page, nextCursor, err := s.client.GetConversationsContext(ctx, params)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list Slack channels")
		}
		channels = append(channels, page...)

		if nextCursor == "" {
			return channels, nil
		}
		params.Cursor = nextCursor
	}
}

// OpenView opens a modal view in response to a trigger
func (s *Service) OpenView(ctx context.Context, triggerID string, view slack.ModalViewRequest) (*slack.ViewResponse, error) {
	resp, err := s.client.OpenViewContext(ctx, triggerID, view)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open Slack view")
	}
	return resp, nil
}

// PostMessage sends a message to a Slack channel
func (s *Service) PostMessage(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	channel, timestamp, err := s.client.PostMessageContext(ctx, channelID, options...)
	if err != nil {
		return "", "", goerr.Wrap(err, "failed to post message to Slack")
	}
	return channel, timestamp, nil
}
