package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kudos/pkg/domain/model"
	"github.com/secmon-lab/kudos/pkg/domain/types"
	"github.com/secmon-lab/kudos/pkg/usecase"
)

// RecognitionHandler handles the direct recognition endpoint
type RecognitionHandler struct {
	kudosUC usecase.KudosUseCase
}

// NewRecognitionHandler creates a new recognition handler
func NewRecognitionHandler(ctx context.Context, kudosUC usecase.KudosUseCase) *RecognitionHandler {
	return &RecognitionHandler{
		kudosUC: kudosUC,
	}
}

// HandleSendRecognition accepts a recognition request as JSON and relays
// it to the selected channel immediately. This path shares no state with
// the directory cache or the rate limiter.
func (h *RecognitionHandler) HandleSendRecognition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var recognition model.Recognition
	if err := json.NewDecoder(r.Body).Decode(&recognition); err != nil {
		ctxlog.From(ctx).Warn("Failed to decode recognition request", "error", err)
		writeJSON(w, ctx, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	if err := h.kudosUC.SendRecognition(ctx, &recognition); err != nil {
		ctxlog.From(ctx).Error("Failed to send recognition", "error", err)

		if goerr.HasTag(err, types.ErrTagInvalidPayload) {
			writeJSON(w, ctx, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, ctx, http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
		return
	}

	writeJSON(w, ctx, http.StatusOK, map[string]string{"message": "Recognition sent successfully"})
}

// writeJSON writes a JSON response body with the given status
func writeJSON(w http.ResponseWriter, ctx context.Context, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		ctxlog.From(ctx).Error("Failed to encode response", "error", err)
	}
}
