package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const defaultAPIURL = "https://slack.com/api/chat.postMessage"

// previewLimit caps how much of a draft body the approval card shows.
const previewLimit = 500

// Notifier posts recruiter-facing notifications to a Slack channel. A
// Notifier with no token is valid and silently skips every post, so callers
// never need to branch on whether Slack is configured.
type Notifier struct {
	token      string
	channel    string
	apiURL     string
	httpClient *http.Client
	log        *zap.Logger
}

// NewNotifier builds a Notifier. Empty token or channel leaves it
// unconfigured.
func NewNotifier(token, channel string, log *zap.Logger) *Notifier {
	return &Notifier{
		token:      token,
		channel:    channel,
		apiURL:     defaultAPIURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
}

// Configured reports whether the notifier has credentials to post with.
func (n *Notifier) Configured() bool {
	return n.token != "" && n.channel != ""
}

type postMessageRequest struct {
	Channel string           `json:"channel"`
	Text    string           `json:"text"`
	Blocks  []map[string]any `json:"blocks,omitempty"`
}

type postMessageResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// Notify posts a plain status update.
func (n *Notifier) Notify(ctx context.Context, title, message string) error {
	return n.post(ctx, postMessageRequest{
		Channel: n.channel,
		Text:    fmt.Sprintf("*%s*\n%s", title, message),
	})
}

// ApprovalRequest posts an interactive card asking the recruiter to approve,
// edit or reject an outreach draft. The draft body is truncated to keep the
// card readable.
func (n *Notifier) ApprovalRequest(ctx context.Context, candidateName, candidateEmail, draftPreview, candidateID string) error {
	preview := draftPreview
	if len(preview) > previewLimit {
		preview = preview[:previewLimit] + "..."
	}

	blocks := []map[string]any{
		{
			"type": "header",
			"text": map[string]any{
				"type": "plain_text",
				"text": "Outreach draft ready for review",
			},
		},
		{
			"type": "section",
			"text": map[string]any{
				"type": "mrkdwn",
				"text": fmt.Sprintf("*Candidate:* %s (%s)", candidateName, candidateEmail),
			},
		},
		{
			"type": "section",
			"text": map[string]any{
				"type": "mrkdwn",
				"text": fmt.Sprintf("```%s```", preview),
			},
		},
		{
			"type": "actions",
			"elements": []map[string]any{
				approvalButton("Approve & Send", "primary", "approve_"+candidateID),
				approvalButton("Edit", "", "edit_"+candidateID),
				approvalButton("Reject", "danger", "reject_"+candidateID),
			},
		},
	}

	return n.post(ctx, postMessageRequest{
		Channel: n.channel,
		Text:    fmt.Sprintf("Outreach draft ready for %s", candidateName),
		Blocks:  blocks,
	})
}

func approvalButton(label, style, actionID string) map[string]any {
	button := map[string]any{
		"type": "button",
		"text": map[string]any{
			"type": "plain_text",
			"text": label,
		},
		"action_id": actionID,
	}
	if style != "" {
		button["style"] = style
	}
	return button
}

func (n *Notifier) post(ctx context.Context, payload postMessageRequest) error {
	if !n.Configured() {
		n.log.Debug("slack not configured, skipping notification")
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+n.token)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("slack request failed: %w", err)
	}
	defer resp.Body.Close()

	var result postMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode slack response: %w", err)
	}
	if !result.OK {
		return fmt.Errorf("slack API error: %s", result.Error)
	}

	n.log.Debug("posted slack message", zap.String("channel", n.channel))
	return nil
}
