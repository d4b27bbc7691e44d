package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kudos/pkg/domain/interfaces"
	"github.com/secmon-lab/kudos/pkg/domain/model"
	"github.com/secmon-lab/kudos/pkg/domain/types"
	"github.com/secmon-lab/kudos/pkg/service/directory"
	"github.com/secmon-lab/kudos/pkg/service/ratelimit"
	slackSvc "github.com/secmon-lab/kudos/pkg/service/slack"
	"github.com/slack-go/slack"
)

// Kudos implements the kudos flows: opening the recognition modal,
// relaying a completed submission, and sending a direct recognition.
type Kudos struct {
	client    interfaces.SlackClient
	directory *directory.Cache
	limiter   *ratelimit.Limiter
	builder   *slackSvc.BlockBuilder
}

// NewKudos creates a new kudos use case
func NewKudos(client interfaces.SlackClient, directoryCache *directory.Cache, limiter *ratelimit.Limiter) *Kudos {
	return &Kudos{
		client:    client,
		directory: directoryCache,
		limiter:   limiter,
		builder:   slackSvc.NewBlockBuilder(),
	}
}

// OpenModal opens the kudos input modal for the given trigger, populating
// its select menus from the directory cache
func (uc *Kudos) OpenModal(ctx context.Context, triggerID types.TriggerID) error {
	if triggerID == "" {
		return goerr.New("trigger ID is required", goerr.T(types.ErrTagInvalidPayload))
	}

	snapshot, err := uc.directory.Get(ctx)
	if err != nil {
		ctxlog.From(ctx).Error("Failed to load directory for kudos modal", "error", err)
		return err
	}

	view := uc.builder.BuildKudosModal(snapshot)

	if err := uc.limiter.Do(ctx, func(ctx context.Context) error {
		_, err := uc.client.OpenView(ctx, triggerID.String(), view)
		return err
	}); err != nil {
		ctxlog.From(ctx).Error("Failed to open kudos modal", "error", err, "triggerID", triggerID)
		return goerr.Wrap(err, "failed to open kudos modal")
	}

	ctxlog.From(ctx).Info("Kudos modal opened",
		"users", len(snapshot.Users),
		"channels", len(snapshot.Channels),
	)
	return nil
}

// HandleSubmission extracts the kudos fields from a submitted modal view
// and posts the recognition message to the selected channel
func (uc *Kudos) HandleSubmission(ctx context.Context, interaction *slack.InteractionCallback) error {
	submission, err := extractSubmission(interaction)
	if err != nil {
		ctxlog.From(ctx).Error("Malformed kudos submission", "error", err)
		return err
	}

	recognitionID := types.NewRecognitionID()

	if err := uc.limiter.Do(ctx, func(ctx context.Context) error {
		_, _, err := uc.client.PostMessage(ctx,
			submission.ChannelID.String(),
			slack.MsgOptionText(submission.Text(), false),
		)
		return err
	}); err != nil {
		ctxlog.From(ctx).Error("Failed to send kudos message",
			"error", err,
			"recognitionID", recognitionID,
			"channel", submission.ChannelID,
		)
		return goerr.Wrap(err, "failed to send kudos message")
	}

	ctxlog.From(ctx).Info("Kudos sent",
		"recognitionID", recognitionID,
		"recognizedUser", submission.RecognizedUserID,
		"channel", submission.ChannelID,
	)
	return nil
}

// SendRecognition posts a direct recognition message. This path bypasses
// both the directory cache and the rate limiter.
func (uc *Kudos) SendRecognition(ctx context.Context, recognition *model.Recognition) error {
	if err := recognition.Validate(); err != nil {
		return err
	}

	recognitionID := types.NewRecognitionID()

	if _, _, err := uc.client.PostMessage(ctx,
		recognition.SelectedChannel.String(),
		slack.MsgOptionText(recognition.Text(), false),
	); err != nil {
		ctxlog.From(ctx).Error("Failed to send recognition",
			"error", err,
			"recognitionID", recognitionID,
			"channel", recognition.SelectedChannel,
		)
		return goerr.Wrap(err, "failed to send recognition")
	}

	ctxlog.From(ctx).Info("Recognition sent",
		"recognitionID", recognitionID,
		"recognizedUser", recognition.RecognizedUser,
		"channel", recognition.SelectedChannel,
	)
	return nil
}

// extractSubmission pulls the three kudos fields out of the view state,
// failing closed when any expected block or action is missing
func extractSubmission(interaction *slack.InteractionCallback) (*model.KudosSubmission, error) {
	if interaction.View.State == nil {
		return nil, goerr.New("view state is missing", goerr.T(types.ErrTagInvalidPayload))
	}
	values := interaction.View.State.Values

	submission := &model.KudosSubmission{}

	if block, ok := values[slackSvc.BlockIDUserSelect]; ok {
		if action, ok := block[slackSvc.ActionIDUserSelect]; ok {
			submission.RecognizedUserID = types.SlackUserID(action.SelectedOption.Value)
		}
	}
	if block, ok := values[slackSvc.BlockIDKudosMessage]; ok {
		if action, ok := block[slackSvc.ActionIDKudosMessage]; ok {
			submission.Message = action.Value
		}
	}
	if block, ok := values[slackSvc.BlockIDChannelSelect]; ok {
		if action, ok := block[slackSvc.ActionIDChannelSelect]; ok {
			submission.ChannelID = types.ChannelID(action.SelectedOption.Value)
		}
	}

	if err := submission.Validate(); err != nil {
		return nil, err
	}
	return submission, nil
}
