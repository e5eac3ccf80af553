package google

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Message is an inbound inbox message reduced to what reply routing needs.
type Message struct {
	Sender string
	Body   string
}

// Gmail wraps the Gmail API for drafts, sends and inbox listing.
type Gmail struct {
	svc  *gmail.Service
	from string
	log  *zap.Logger
}

// NewGmail builds an authenticated Gmail client. The from address is used on
// all outbound mail.
func NewGmail(ctx context.Context, credentialsPath, tokenPath, from string, log *zap.Logger) (*Gmail, error) {
	httpClient, err := newOAuthClient(ctx, credentialsPath, tokenPath,
		gmail.GmailComposeScope, gmail.GmailModifyScope)
	if err != nil {
		return nil, err
	}

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	return &Gmail{svc: svc, from: from, log: log}, nil
}

// CreateDraft creates an unsent draft and returns its id.
func (g *Gmail) CreateDraft(ctx context.Context, to, subject, body string) (string, error) {
	draft, err := g.svc.Users.Drafts.Create("me", &gmail.Draft{
		Message: &gmail.Message{Raw: encodeMessage(g.from, to, subject, body)},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create draft for %s: %w", to, err)
	}

	g.log.Info("created email draft", zap.String("to", to), zap.String("draft_id", draft.Id))
	return draft.Id, nil
}

// SendDraft sends a previously created draft.
func (g *Gmail) SendDraft(ctx context.Context, draftID string) error {
	_, err := g.svc.Users.Drafts.Send("me", &gmail.Draft{Id: draftID}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to send draft %s: %w", draftID, err)
	}

	g.log.Info("sent email draft", zap.String("draft_id", draftID))
	return nil
}

// Send sends a message directly, without a draft.
func (g *Gmail) Send(ctx context.Context, to, subject, body string) error {
	_, err := g.svc.Users.Messages.Send("me", &gmail.Message{
		Raw: encodeMessage(g.from, to, subject, body),
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	g.log.Info("sent email", zap.String("to", to))
	return nil
}

// ListRecentInbox returns up to max recent inbox messages with sender and
// decoded plain-text body. Messages whose body cannot be decoded are
// returned with an empty body; callers skip those.
func (g *Gmail) ListRecentInbox(ctx context.Context, max int) ([]Message, error) {
	list, err := g.svc.Users.Messages.List("me").
		MaxResults(int64(max)).
		LabelIds("INBOX").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list inbox: %w", err)
	}

	var messages []Message
	for _, ref := range list.Messages {
		msg, err := g.svc.Users.Messages.Get("me", ref.Id).Format("full").Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("failed to fetch message %s: %w", ref.Id, err)
		}

		messages = append(messages, Message{
			Sender: senderAddress(msg),
			Body:   messageText(msg),
		})
	}

	g.log.Debug("fetched inbox messages", zap.Int("count", len(messages)))
	return messages, nil
}

// encodeMessage builds the base64url RFC 2822 payload the Gmail API expects.
func encodeMessage(from, to, subject, body string) string {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	return base64.RawURLEncoding.EncodeToString([]byte(msg.String()))
}

var addressPattern = regexp.MustCompile(`<(.+?)>`)

// senderAddress extracts the bare address from the From header, lowercased.
// "Jane Doe <jane@example.com>" and "jane@example.com" are both handled.
func senderAddress(msg *gmail.Message) string {
	if msg.Payload == nil {
		return ""
	}
	for _, header := range msg.Payload.Headers {
		if header.Name != "From" {
			continue
		}
		if m := addressPattern.FindStringSubmatch(header.Value); m != nil {
			return strings.ToLower(strings.TrimSpace(m[1]))
		}
		return strings.ToLower(strings.TrimSpace(header.Value))
	}
	return ""
}

// messageText returns the message's plain-text content: the first text/plain
// part, then the top-level body, then text stripped from a text/html part.
func messageText(msg *gmail.Message) string {
	if msg.Payload == nil {
		return ""
	}

	if text := findPartData(msg.Payload.Parts, "text/plain"); text != "" {
		return text
	}

	if msg.Payload.Body != nil && msg.Payload.Body.Data != "" {
		if decoded, err := decodeBody(msg.Payload.Body.Data); err == nil {
			return string(decoded)
		}
	}

	if html := findPartData(msg.Payload.Parts, "text/html"); html != "" {
		return htmlToText(html)
	}
	return ""
}

func findPartData(parts []*gmail.MessagePart, mimeType string) string {
	for _, part := range parts {
		if part.MimeType == mimeType && part.Body != nil && part.Body.Data != "" {
			if decoded, err := decodeBody(part.Body.Data); err == nil {
				return string(decoded)
			}
		}
		if nested := findPartData(part.Parts, mimeType); nested != "" {
			return nested
		}
	}
	return ""
}

// decodeBody handles both padded and unpadded base64url part data.
func decodeBody(data string) ([]byte, error) {
	if decoded, err := base64.URLEncoding.DecodeString(data); err == nil {
		return decoded, nil
	}
	return base64.RawURLEncoding.DecodeString(data)
}

// htmlToText strips markup from an HTML body.
func htmlToText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(strings.Join(strings.Fields(doc.Text()), " "))
}
