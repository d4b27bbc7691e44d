package model

import (
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kudos/pkg/domain/types"
)

// KudosSubmission carries the three values extracted from a completed
// kudos modal. It lives for exactly one outbound message.
type KudosSubmission struct {
	RecognizedUserID types.SlackUserID
	Message          string
	ChannelID        types.ChannelID
}

// Validate checks that all fields were present in the submitted view state
func (s *KudosSubmission) Validate() error {
	if s.RecognizedUserID == "" {
		return goerr.New("recognized user is required", goerr.T(types.ErrTagInvalidPayload))
	}
	if s.Message == "" {
		return goerr.New("kudos message is required", goerr.T(types.ErrTagInvalidPayload))
	}
	if s.ChannelID == "" {
		return goerr.New("channel is required", goerr.T(types.ErrTagInvalidPayload))
	}
	return nil
}

// Text renders the channel message for a modal-sourced kudos
func (s *KudosSubmission) Text() string {
	return fmt.Sprintf("%s received kudos! 🎉 %s", s.RecognizedUserID.Mention(), s.Message)
}

// Recognition is the JSON body of the direct recognition endpoint
type Recognition struct {
	RecognizedUser  types.SlackUserID `json:"recognizedUser"`
	KudosMessage    string            `json:"kudosMessage"`
	SelectedChannel types.ChannelID   `json:"selectedChannel"`
}

// Validate checks that all fields of the request body are present
func (r *Recognition) Validate() error {
	if r.RecognizedUser == "" {
		return goerr.New("recognizedUser is required", goerr.T(types.ErrTagInvalidPayload))
	}
	if r.KudosMessage == "" {
		return goerr.New("kudosMessage is required", goerr.T(types.ErrTagInvalidPayload))
	}
	if r.SelectedChannel == "" {
		return goerr.New("selectedChannel is required", goerr.T(types.ErrTagInvalidPayload))
	}
	return nil
}

// Text renders the channel message for a direct recognition.
// Note this format intentionally differs from the modal path.
func (r *Recognition) Text() string {
	return fmt.Sprintf("%s received kudos: %s", r.RecognizedUser.Mention(), r.KudosMessage)
}
