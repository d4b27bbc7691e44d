package slack

import (
	"github.com/secmon-lab/kudos/pkg/domain/model"
	"github.com/slack-go/slack"
)

// Block, action, and callback ID constants for the kudos modal.
// These are part of the wire contract with Slack: the view submission
// payload keys its state by block and action ID.
const (
	CallbackIDKudosModal   = "kudos_modal"
	CallbackIDOpenShortcut = "open_kudos_modal"
	BlockIDUserSelect      = "user_select_block"
	ActionIDUserSelect     = "user_select"
	BlockIDKudosMessage    = "kudos_message_block"
	ActionIDKudosMessage   = "kudos_message"
	BlockIDChannelSelect   = "channel_select_block"
	ActionIDChannelSelect  = "channel_select"
)

// BlockBuilder provides methods to build Slack views and message blocks
type BlockBuilder struct{}

// NewBlockBuilder creates a new BlockBuilder instance
func NewBlockBuilder() *BlockBuilder {
	return &BlockBuilder{}
}

// BuildKudosModal builds the kudos input modal from directory options
func (b *BlockBuilder) BuildKudosModal(snapshot *model.DirectorySnapshot) slack.ModalViewRequest {
	userSelect := slack.NewInputBlock(
		BlockIDUserSelect,
		slack.NewTextBlockObject(slack.PlainTextType, "Who do you want to recognize?", false, false),
		nil,
		slack.NewOptionsSelectBlockElement(
			slack.OptTypeStatic,
			slack.NewTextBlockObject(slack.PlainTextType, "Select a user", false, false),
			ActionIDUserSelect,
			buildOptions(snapshot.Users)...,
		),
	)

	messageElement := slack.NewPlainTextInputBlockElement(nil, ActionIDKudosMessage)
	messageElement.Multiline = true
	messageInput := slack.NewInputBlock(
		BlockIDKudosMessage,
		slack.NewTextBlockObject(slack.PlainTextType, "Kudos Message", false, false),
		nil,
		messageElement,
	)

	channelSelect := slack.NewInputBlock(
		BlockIDChannelSelect,
		slack.NewTextBlockObject(slack.PlainTextType, "Select the Channel", false, false),
		nil,
		slack.NewOptionsSelectBlockElement(
			slack.OptTypeStatic,
			slack.NewTextBlockObject(slack.PlainTextType, "Select a channel", false, false),
			ActionIDChannelSelect,
			buildOptions(snapshot.Channels)...,
		),
	)

	return slack.ModalViewRequest{
		Type:       slack.VTModal,
		CallbackID: CallbackIDKudosModal,
		Title:      slack.NewTextBlockObject(slack.PlainTextType, "Send Kudos", false, false),
		Submit:     slack.NewTextBlockObject(slack.PlainTextType, "Send", false, false),
		Blocks: slack.Blocks{
			BlockSet: []slack.Block{
				userSelect,
				messageInput,
				channelSelect,
			},
		},
	}
}

func buildOptions(options []model.SelectOption) []*slack.OptionBlockObject {
	blockOptions := make([]*slack.OptionBlockObject, 0, len(options))
	for _, option := range options {
		blockOptions = append(blockOptions, slack.NewOptionBlockObject(
			option.Value,
			slack.NewTextBlockObject(slack.PlainTextType, option.Label, false, false),
			nil,
		))
	}
	return blockOptions
}
