package slack

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kudos/pkg/cli/config"
	"github.com/secmon-lab/kudos/pkg/usecase"
)

// Handler handles the Slack interaction webhook endpoint
type Handler struct {
	slackConfig *config.SlackConfig
	kudosUC     usecase.KudosUseCase
}

// NewHandler creates a new Slack handler
func NewHandler(ctx context.Context, slackConfig *config.SlackConfig, kudosUC usecase.KudosUseCase) *Handler {
	return &Handler{
		slackConfig: slackConfig,
		kudosUC:     kudosUC,
	}
}

// HandleInteraction handles a single Slack interaction callback.
// Unlike event-style webhooks, the response status must reflect the
// handler outcome, so the dispatch runs synchronously.
func (h *Handler) HandleInteraction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		ctxlog.From(ctx).Error("Failed to read request body", "error", err)
		writeJSON(w, ctx, http.StatusBadRequest, map[string]string{"error": "No payload"})
		return
	}
	defer r.Body.Close()

	// Verify signature over the raw body before touching its contents
	if h.slackConfig.CanVerifySignature() {
		if err := h.verifySlackSignature(r, body); err != nil {
			ctxlog.From(ctx).Warn("Invalid Slack signature for interaction", "error", err)
			writeJSON(w, ctx, http.StatusUnauthorized, map[string]string{"error": "invalid signature"})
			return
		}
	}

	form, err := url.ParseQuery(string(body))
	if err != nil {
		ctxlog.From(ctx).Error("Failed to parse form body", "error", err)
		writeJSON(w, ctx, http.StatusBadRequest, map[string]string{"error": "No payload"})
		return
	}

	payload := form.Get("payload")
	if payload == "" {
		ctxlog.From(ctx).Warn("No payload found in request")
		writeJSON(w, ctx, http.StatusBadRequest, map[string]string{"error": "No payload"})
		return
	}

	h.dispatch(w, r, []byte(payload))
}

// verifySlackSignature verifies the Slack request signature
func (h *Handler) verifySlackSignature(r *http.Request, body []byte) error {
	timestamp := r.Header.Get("X-Slack-Request-Timestamp")
	if timestamp == "" {
		return goerr.New("missing timestamp header")
	}

	// Check timestamp to prevent replay attacks (5 minute window)
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return goerr.Wrap(err, "invalid timestamp")
	}

	if abs(time.Now().Unix()-ts) > 60*5 {
		return goerr.New("timestamp too old")
	}

	signature := r.Header.Get("X-Slack-Signature")
	if signature == "" {
		return goerr.New("missing signature header")
	}

	baseString := fmt.Sprintf("v0:%s:%s", timestamp, string(body))
	mac := hmac.New(sha256.New, []byte(h.slackConfig.SigningSecret))
	mac.Write([]byte(baseString))
	expectedSignature := "v0=" + hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(signature), []byte(expectedSignature)) {
		return goerr.New("signature mismatch")
	}

	return nil
}

// writeJSON writes a JSON response body with the given status
func writeJSON(w http.ResponseWriter, ctx context.Context, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		ctxlog.From(ctx).Error("Failed to encode response", "error", err)
	}
}

// abs returns the absolute value of an int64
func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
