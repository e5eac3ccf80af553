// Package scheduling implements the reply-routing workflow: classify an
// inbound candidate reply, look up the candidate by sender address, and
// either send interview time options, book the chosen slot, or record the
// decline.
package scheduling

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/talent-scout/internal/google"
	"github.com/jonathan/talent-scout/internal/store"
	"github.com/jonathan/talent-scout/internal/types"
	"github.com/jonathan/talent-scout/internal/workflow"
)

const (
	slotLookaheadDays = 7
	slotDuration      = time.Hour
)

// EmailService sends mail directly, without drafts.
type EmailService interface {
	Send(ctx context.Context, to, subject, body string) error
}

// CalendarService provides availability and event booking.
type CalendarService interface {
	FreeSlots(ctx context.Context, daysAhead int, duration time.Duration) ([]google.Slot, error)
	CreateEvent(ctx context.Context, summary, description, attendeeEmail string, start, end time.Time) (*google.Event, error)
}

// Notifier delivers recruiter-facing notifications. Failures are logged,
// never fatal.
type Notifier interface {
	Notify(ctx context.Context, title, message string) error
}

// Workflow routes one inbound reply through intent detection to the matching
// handler.
type Workflow struct {
	llm           Classifier
	email         EmailService
	calendar      CalendarService
	notifier      Notifier
	store         store.CandidateStore
	recruiterName string
	log           *zap.Logger
	graph         *workflow.Graph[*state]
}

type state struct {
	sender  string
	message string

	intent    Intent
	candidate *types.Candidate
	err       error
}

// New builds the reply-routing workflow.
func New(llm Classifier, email EmailService, calendar CalendarService, notifier Notifier, candidates store.CandidateStore, recruiterName string, log *zap.Logger) *Workflow {
	w := &Workflow{
		llm:           llm,
		email:         email,
		calendar:      calendar,
		notifier:      notifier,
		store:         candidates,
		recruiterName: recruiterName,
		log:           log,
	}

	g := workflow.New[*state]()
	g.AddNode("detect_intent", w.detectIntent)
	g.AddNode("lookup_candidate", w.lookupCandidate)
	g.AddNode("handle_interested", w.handleInterested)
	g.AddNode("handle_schedule", w.handleSchedule)
	g.AddNode("handle_decline", w.handleDecline)
	g.SetEntryPoint("detect_intent")
	g.AddEdge("detect_intent", "lookup_candidate")
	g.AddConditionalEdges("lookup_candidate", w.route)
	g.AddEdge("handle_interested", workflow.End)
	g.AddEdge("handle_schedule", workflow.End)
	g.AddEdge("handle_decline", workflow.End)
	w.graph = g

	return w
}

// Run routes one reply. It returns the detected intent even when routing
// stopped early, so callers can log what the message looked like.
func (w *Workflow) Run(ctx context.Context, senderEmail, messageText string) (Intent, error) {
	st := &state{sender: strings.ToLower(strings.TrimSpace(senderEmail)), message: messageText}
	if err := w.graph.Run(ctx, st); err != nil {
		return st.intent, err
	}
	return st.intent, st.err
}

func (w *Workflow) detectIntent(ctx context.Context, st *state) {
	intent, err := detectIntent(ctx, w.llm, st.message)
	if err != nil {
		st.err = err
		return
	}
	st.intent = intent
	w.log.Info("classified reply",
		zap.String("sender", st.sender), zap.String("intent", string(intent)))
}

// lookupCandidate matches the sender address against candidates who have
// been contacted or already expressed interest.
func (w *Workflow) lookupCandidate(ctx context.Context, st *state) {
	if st.err != nil {
		return
	}

	for _, status := range []types.CandidateStatus{types.StatusContacted, types.StatusInterested} {
		candidates, err := w.store.ListByStatus(ctx, status)
		if err != nil {
			st.err = fmt.Errorf("failed to list %s candidates: %w", status, err)
			return
		}
		for _, candidate := range candidates {
			if strings.EqualFold(candidate.Email, st.sender) {
				st.candidate = candidate
				return
			}
		}
	}

	st.err = fmt.Errorf("no active candidate with address %s", st.sender)
}

// route picks the handler for the detected intent. Errors and unknown
// intents end the run without a handler; an unrecognized reply is not an
// error worth failing the inbox scan over.
func (w *Workflow) route(st *state) string {
	if st.err != nil {
		return workflow.End
	}
	switch st.intent {
	case IntentInterested:
		return "handle_interested"
	case IntentScheduleTime:
		return "handle_schedule"
	case IntentNotInterested:
		return "handle_decline"
	default:
		w.log.Info("ignoring reply with unrecognized intent", zap.String("sender", st.sender))
		return workflow.End
	}
}

// handleInterested replies with numbered interview time options and promotes
// the candidate to interested.
func (w *Workflow) handleInterested(ctx context.Context, st *state) {
	slots, err := w.calendar.FreeSlots(ctx, slotLookaheadDays, slotDuration)
	if err != nil {
		st.err = fmt.Errorf("failed to fetch interview slots: %w", err)
		return
	}
	if len(slots) == 0 {
		st.err = fmt.Errorf("no open interview slots in the next %d days", slotLookaheadDays)
		return
	}

	if err := w.email.Send(ctx, st.candidate.Email, "Re: Interview Times",
		interestedBody(st.candidate.Name, slots, w.recruiterName)); err != nil {
		st.err = fmt.Errorf("failed to send interview options to %s: %w", st.candidate.Name, err)
		return
	}

	if err := w.store.Update(ctx, st.candidate.ID, store.CandidateUpdate{
		Status:        store.StatusPtr(types.StatusInterested),
		ReplyReceived: store.BoolPtr(true),
	}); err != nil {
		st.err = fmt.Errorf("failed to mark %s interested: %w", st.candidate.Name, err)
		return
	}

	w.notify(ctx, "Candidate interested",
		fmt.Sprintf("%s is interested. Sent %d interview time options.", st.candidate.Name, len(slots)))
}

var slotChoicePattern = regexp.MustCompile(`\b([1-3])\b`)

// handleSchedule books the slot the candidate picked. The slot list is
// recomputed at booking time, so the numbering can drift from what the
// options email showed if availability changed in between.
func (w *Workflow) handleSchedule(ctx context.Context, st *state) {
	slots, err := w.calendar.FreeSlots(ctx, slotLookaheadDays, slotDuration)
	if err != nil {
		st.err = fmt.Errorf("failed to fetch interview slots: %w", err)
		return
	}
	if len(slots) == 0 {
		st.err = fmt.Errorf("no open interview slots in the next %d days", slotLookaheadDays)
		return
	}

	choice := 1
	if m := slotChoicePattern.FindStringSubmatch(st.message); m != nil {
		choice, _ = strconv.Atoi(m[1])
	}
	if choice > len(slots) {
		choice = 1
	}
	slot := slots[choice-1]

	event, err := w.calendar.CreateEvent(ctx,
		fmt.Sprintf("Interview: %s", st.candidate.Name),
		fmt.Sprintf("Interview with %s.", st.candidate.Name),
		st.candidate.Email, slot.Start, slot.End)
	if err != nil {
		st.err = fmt.Errorf("failed to book interview for %s: %w", st.candidate.Name, err)
		return
	}

	meetLink := event.MeetLink
	if meetLink == "" {
		meetLink = "Will be provided"
	}

	if err := w.email.Send(ctx, st.candidate.Email, "Interview Scheduled - "+slot.Display,
		confirmationBody(st.candidate.Name, slot.Display, meetLink, w.recruiterName)); err != nil {
		st.err = fmt.Errorf("failed to send confirmation to %s: %w", st.candidate.Name, err)
		return
	}

	if err := w.store.Update(ctx, st.candidate.ID, store.CandidateUpdate{
		Status:             store.StatusPtr(types.StatusScheduled),
		ReplyReceived:      store.BoolPtr(true),
		InterviewScheduled: store.BoolPtr(true),
		InterviewTime:      store.TimePtr(slot.Start),
		CalendarEventID:    store.StringPtr(event.ID),
	}); err != nil {
		st.err = fmt.Errorf("failed to mark %s scheduled: %w", st.candidate.Name, err)
		return
	}

	w.notify(ctx, "Interview scheduled",
		fmt.Sprintf("Interview with %s booked for %s.", st.candidate.Name, slot.Display))
}

// handleDecline records the rejection. No email goes back to the candidate.
func (w *Workflow) handleDecline(ctx context.Context, st *state) {
	if err := w.store.Update(ctx, st.candidate.ID, store.CandidateUpdate{
		Status:        store.StatusPtr(types.StatusRejected),
		ReplyReceived: store.BoolPtr(true),
	}); err != nil {
		st.err = fmt.Errorf("failed to mark %s rejected: %w", st.candidate.Name, err)
		return
	}

	w.notify(ctx, "Candidate declined",
		fmt.Sprintf("%s is not interested.", st.candidate.Name))
}

func (w *Workflow) notify(ctx context.Context, title, message string) {
	if err := w.notifier.Notify(ctx, title, message); err != nil {
		w.log.Warn("failed to send notification", zap.String("title", title), zap.Error(err))
	}
}

func interestedBody(name string, slots []google.Slot, recruiterName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", name)
	b.WriteString("Great to hear you're interested! Here are some times that work on our end:\n\n")
	for i, slot := range slots {
		fmt.Fprintf(&b, "%d. %s\n", i+1, slot.Display)
	}
	b.WriteString("\nJust reply with the number of the time that works best for you and I'll send over a calendar invite.\n\n")
	fmt.Fprintf(&b, "Best,\n%s\n", recruiterName)
	return b.String()
}

func confirmationBody(name, display, meetLink, recruiterName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", name)
	fmt.Fprintf(&b, "Your interview is confirmed for %s.\n\n", display)
	fmt.Fprintf(&b, "Google Meet link: %s\n\n", meetLink)
	b.WriteString("A calendar invite is on its way. Looking forward to speaking with you!\n\n")
	fmt.Fprintf(&b, "Best,\n%s\n", recruiterName)
	return b.String()
}
