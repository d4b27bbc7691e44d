package http_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/kudos/pkg/cli/config"
	controller "github.com/secmon-lab/kudos/pkg/controller/http"
	"github.com/secmon-lab/kudos/pkg/service/directory"
	"github.com/secmon-lab/kudos/pkg/service/ratelimit"
	"github.com/secmon-lab/kudos/pkg/usecase"
	"github.com/slack-go/slack"
)

// MockSlackClient mocks the interfaces.SlackClient interface
type MockSlackClient struct {
	ListUsersFunc    func(ctx context.Context) ([]slack.User, error)
	ListChannelsFunc func(ctx context.Context) ([]slack.Channel, error)
	OpenViewFunc     func(ctx context.Context, triggerID string, view slack.ModalViewRequest) (*slack.ViewResponse, error)
	PostMessageFunc  func(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

func (m *MockSlackClient) ListUsers(ctx context.Context) ([]slack.User, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx)
	}
	return []slack.User{{ID: "U1", Name: "alice", RealName: "Alice Anderson"}}, nil
}

func (m *MockSlackClient) ListChannels(ctx context.Context) ([]slack.Channel, error) {
	if m.ListChannelsFunc != nil {
		return m.ListChannelsFunc(ctx)
	}
	channel := slack.Channel{}
	channel.ID = "C1"
	channel.Name = "general"
	return []slack.Channel{channel}, nil
}

func (m *MockSlackClient) OpenView(ctx context.Context, triggerID string, view slack.ModalViewRequest) (*slack.ViewResponse, error) {
	if m.OpenViewFunc != nil {
		return m.OpenViewFunc(ctx, triggerID, view)
	}
	return &slack.ViewResponse{}, nil
}

func (m *MockSlackClient) PostMessage(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	if m.PostMessageFunc != nil {
		return m.PostMessageFunc(ctx, channelID, options...)
	}
	return channelID, "1234.5678", nil
}

// renderedText extracts the text of a posted message from its options
func renderedText(options ...slack.MsgOption) string {
	_, values, err := slack.UnsafeApplyMsgOptions("token", "channel", "https://slack.com/api/", options...)
	if err != nil {
		return ""
	}
	return values.Get("text")
}

func newTestServer(t *testing.T, client *MockSlackClient) *controller.Server {
	t.Helper()

	ctx := ctxlog.With(context.Background(), slog.New(slog.NewTextHandler(os.Stdout, nil)))
	limiter := ratelimit.New(time.Millisecond)
	cache := directory.New(client, limiter, 5*time.Minute)
	kudosUC := usecase.NewKudos(client, cache, limiter)

	server, err := controller.NewServer(ctx, ":8080", &config.SlackConfig{OAuthToken: "xoxb-test"}, kudosUC)
	gt.NoError(t, err).Required()
	return server
}

func TestServerHealthCheck(t *testing.T) {
	server := newTestServer(t, &MockSlackClient{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)

	gt.Equal(t, http.StatusOK, w.Code)
	gt.True(t, strings.Contains(w.Body.String(), "healthy"))
	gt.True(t, strings.Contains(w.Body.String(), "kudos"))
}

func TestSendRecognitionEndToEnd(t *testing.T) {
	var postedChannel, postedText string
	client := &MockSlackClient{
		PostMessageFunc: func(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
			postedChannel = channelID
			postedText = renderedText(options...)
			return channelID, "1234.5678", nil
		},
	}
	server := newTestServer(t, client)

	body := `{"recognizedUser":"U1","kudosMessage":"Great work","selectedChannel":"C1"}`
	req := httptest.NewRequest(http.MethodPost, "/sendRecognition", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)

	gt.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	gt.Equal(t, "Recognition sent successfully", resp["message"])
	gt.Equal(t, "C1", postedChannel)
	gt.Equal(t, "<@U1> received kudos: Great work", postedText)
}

func TestSendRecognitionUpstreamFailure(t *testing.T) {
	client := &MockSlackClient{
		PostMessageFunc: func(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
			return "", "", goerr.New("chat.postMessage failed")
		},
	}
	server := newTestServer(t, client)

	body := `{"recognizedUser":"U1","kudosMessage":"Great work","selectedChannel":"C1"}`
	req := httptest.NewRequest(http.MethodPost, "/sendRecognition", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)

	gt.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]string
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	gt.Equal(t, "Internal Server Error", resp["error"])
}

func TestSlackUnparseablePayload(t *testing.T) {
	server := newTestServer(t, &MockSlackClient{})

	form := url.Values{}
	form.Set("payload", "not-json{{")
	req := httptest.NewRequest(http.MethodPost, "/slack", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)

	gt.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	gt.Equal(t, "No payload", resp["error"])
}

func TestSlackViewSubmissionEndToEnd(t *testing.T) {
	var postedChannel, postedText string
	client := &MockSlackClient{
		PostMessageFunc: func(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
			postedChannel = channelID
			postedText = renderedText(options...)
			return channelID, "1234.5678", nil
		},
	}
	server := newTestServer(t, client)

	payload, err := json.Marshal(map[string]any{
		"type": "view_submission",
		"view": map[string]any{
			"callback_id": "kudos_modal",
			"state": map[string]any{
				"values": map[string]any{
					"user_select_block": map[string]any{
						"user_select": map[string]any{
							"selected_option": map[string]any{"value": "U2"},
						},
					},
					"kudos_message_block": map[string]any{
						"kudos_message": map[string]any{"value": "Nice job"},
					},
					"channel_select_block": map[string]any{
						"channel_select": map[string]any{
							"selected_option": map[string]any{"value": "C2"},
						},
					},
				},
			},
		},
	})
	gt.NoError(t, err).Required()

	form := url.Values{}
	form.Set("payload", string(payload))
	req := httptest.NewRequest(http.MethodPost, "/slack", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)

	gt.Equal(t, http.StatusOK, w.Code)
	gt.Equal(t, "{}", strings.TrimSpace(w.Body.String()))
	gt.Equal(t, "C2", postedChannel)
	gt.Equal(t, "<@U2> received kudos! 🎉 Nice job", postedText)
}

func TestSlackShortcutEndToEnd(t *testing.T) {
	var openedTriggerID string
	client := &MockSlackClient{
		OpenViewFunc: func(ctx context.Context, triggerID string, view slack.ModalViewRequest) (*slack.ViewResponse, error) {
			openedTriggerID = triggerID
			return &slack.ViewResponse{}, nil
		},
	}
	server := newTestServer(t, client)

	payload, err := json.Marshal(map[string]any{
		"type":        "shortcut",
		"callback_id": "open_kudos_modal",
		"trigger_id":  "trigger-123",
	})
	gt.NoError(t, err).Required()

	form := url.Values{}
	form.Set("payload", string(payload))
	req := httptest.NewRequest(http.MethodPost, "/slack", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)

	gt.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	gt.Equal(t, "Modal opened successfully", resp["message"])
	gt.Equal(t, "trigger-123", openedTriggerID)
}

func TestMethodNotAllowed(t *testing.T) {
	server := newTestServer(t, &MockSlackClient{})

	for _, path := range []string{"/slack", "/sendRecognition"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			w := httptest.NewRecorder()
			server.Handler.ServeHTTP(w, req)

			gt.Equal(t, http.StatusMethodNotAllowed, w.Code)
			gt.Equal(t, http.MethodPost, w.Header().Get("Allow"))
		})
	}
}
