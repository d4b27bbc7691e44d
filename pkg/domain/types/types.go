package types

import (
	"fmt"

	"github.com/google/uuid"
)

// SlackUserID represents a Slack user identifier
type SlackUserID string

// String returns the string representation
func (id SlackUserID) String() string {
	return string(id)
}

// Mention returns the Slack mention form of the user
func (id SlackUserID) Mention() string {
	return fmt.Sprintf("<@%s>", string(id))
}

// ChannelID represents a Slack channel identifier
type ChannelID string

// String returns the string representation
func (id ChannelID) String() string {
	return string(id)
}

// TriggerID represents a short-lived Slack trigger token for opening modals
type TriggerID string

// String returns the string representation
func (id TriggerID) String() string {
	return string(id)
}

// RecognitionID identifies a single recognition request for log correlation
type RecognitionID string

// String returns the string representation
func (id RecognitionID) String() string {
	return string(id)
}

// NewRecognitionID creates a new RecognitionID
func NewRecognitionID() RecognitionID {
	return RecognitionID(fmt.Sprintf("rec-%s", uuid.New().String()))
}
