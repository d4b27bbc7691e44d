package slack

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kudos/pkg/domain/types"
	slackSvc "github.com/secmon-lab/kudos/pkg/service/slack"
	"github.com/slack-go/slack"
)

// dispatch routes a decoded interaction payload to the matching kudos flow
// and maps the outcome to an HTTP response
func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request, payload []byte) {
	ctx := r.Context()

	var interaction slack.InteractionCallback
	if err := json.Unmarshal(payload, &interaction); err != nil {
		ctxlog.From(ctx).Warn("Failed to unmarshal interaction payload", "error", err)
		writeJSON(w, ctx, http.StatusBadRequest, map[string]string{"error": "No payload"})
		return
	}

	ctxlog.From(ctx).Info("Handling Slack interaction",
		"type", string(interaction.Type),
		"user", interaction.User.ID,
		"team", interaction.Team.ID,
	)

	switch {
	case interaction.Type == slack.InteractionTypeShortcut &&
		interaction.CallbackID == slackSvc.CallbackIDOpenShortcut:
		if err := h.kudosUC.OpenModal(ctx, types.TriggerID(interaction.TriggerID)); err != nil {
			h.writeUseCaseError(w, r, err)
			return
		}
		writeJSON(w, ctx, http.StatusOK, map[string]string{"message": "Modal opened successfully"})

	case interaction.Type == slack.InteractionTypeViewSubmission &&
		interaction.View.CallbackID == slackSvc.CallbackIDKudosModal:
		if err := h.kudosUC.HandleSubmission(ctx, &interaction); err != nil {
			h.writeUseCaseError(w, r, err)
			return
		}
		// Empty object closes the modal without further action
		writeJSON(w, ctx, http.StatusOK, map[string]string{})

	default:
		ctxlog.From(ctx).Warn("Callback ID does not match or invalid payload type",
			"type", string(interaction.Type),
			"callbackID", interaction.CallbackID,
			"viewCallbackID", interaction.View.CallbackID,
		)
		writeJSON(w, ctx, http.StatusBadRequest, map[string]string{"error": "Invalid payload type or callback_id"})
	}
}

// writeUseCaseError maps a use case failure to an HTTP response: client
// input errors fail closed as 400, everything else surfaces as 500
func (h *Handler) writeUseCaseError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	ctxlog.From(ctx).Error("Failed to handle interaction", "error", err)

	if goerr.HasTag(err, types.ErrTagInvalidPayload) {
		writeJSON(w, ctx, http.StatusBadRequest, map[string]string{"error": "Invalid payload type or callback_id"})
		return
	}
	writeJSON(w, ctx, http.StatusInternalServerError, map[string]string{"error": "Server Error"})
}
