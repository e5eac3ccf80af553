package scheduling

import (
	"context"
	"fmt"
	"strings"
)

// Intent is the classified purpose of an inbound candidate reply.
type Intent string

const (
	IntentInterested    Intent = "interested"
	IntentNotInterested Intent = "not_interested"
	IntentScheduleTime  Intent = "schedule_time"
	IntentUnknown       Intent = "unknown"
)

// Classifier is the slice of the LLM client intent detection needs.
type Classifier interface {
	Classify(ctx context.Context, prompt string) (string, error)
}

// detectIntent classifies the reply into one of the three actionable
// intents. Anything else, including a misbehaving model, maps to unknown.
func detectIntent(ctx context.Context, llm Classifier, message string) (Intent, error) {
	label, err := llm.Classify(ctx, buildIntentPrompt(message))
	if err != nil {
		return IntentUnknown, fmt.Errorf("failed to classify reply: %w", err)
	}

	switch Intent(strings.TrimSpace(label)) {
	case IntentInterested:
		return IntentInterested, nil
	case IntentNotInterested:
		return IntentNotInterested, nil
	case IntentScheduleTime:
		return IntentScheduleTime, nil
	default:
		return IntentUnknown, nil
	}
}

func buildIntentPrompt(message string) string {
	return fmt.Sprintf(`Classify the intent of this candidate reply to a recruiter's outreach email.

Reply with EXACTLY one of these labels and nothing else:
- interested: the candidate wants to hear more or proceed
- not_interested: the candidate is declining
- schedule_time: the candidate is picking or proposing an interview time

Candidate reply:

%s`, message)
}
