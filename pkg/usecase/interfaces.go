package usecase

import (
	"context"

	"github.com/secmon-lab/kudos/pkg/domain/model"
	"github.com/secmon-lab/kudos/pkg/domain/types"
	"github.com/slack-go/slack"
)

// KudosUseCase defines the kudos operations consumed by the controllers
type KudosUseCase interface {
	OpenModal(ctx context.Context, triggerID types.TriggerID) error
	HandleSubmission(ctx context.Context, interaction *slack.InteractionCallback) error
	SendRecognition(ctx context.Context, recognition *model.Recognition) error
}

var _ KudosUseCase = (*Kudos)(nil)
