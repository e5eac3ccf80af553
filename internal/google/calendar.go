package google

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Event is a created interview event.
type Event struct {
	ID       string
	MeetLink string
}

// Calendar wraps the Google Calendar API for availability and event creation.
type Calendar struct {
	svc *calendar.Service
	log *zap.Logger
}

// NewCalendar builds an authenticated Calendar client against the primary
// calendar of the authorized account.
func NewCalendar(ctx context.Context, credentialsPath, tokenPath string, log *zap.Logger) (*Calendar, error) {
	httpClient, err := newOAuthClient(ctx, credentialsPath, tokenPath, calendar.CalendarScope)
	if err != nil {
		return nil, err
	}

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}

	return &Calendar{svc: svc, log: log}, nil
}

// FreeSlots returns up to three open interview slots over the next daysAhead
// days, derived from the primary calendar's busy intervals.
func (c *Calendar) FreeSlots(ctx context.Context, daysAhead int, duration time.Duration) ([]Slot, error) {
	now := time.Now().UTC()

	resp, err := c.svc.Freebusy.Query(&calendar.FreeBusyRequest{
		TimeMin: now.Format(time.RFC3339),
		TimeMax: now.AddDate(0, 0, daysAhead).Format(time.RFC3339),
		Items:   []*calendar.FreeBusyRequestItem{{Id: "primary"}},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to query free/busy: %w", err)
	}

	var busy []BusyInterval
	if cal, ok := resp.Calendars["primary"]; ok {
		for _, interval := range cal.Busy {
			start, err := time.Parse(time.RFC3339, interval.Start)
			if err != nil {
				continue
			}
			end, err := time.Parse(time.RFC3339, interval.End)
			if err != nil {
				continue
			}
			busy = append(busy, BusyInterval{Start: start, End: end})
		}
	}

	slots := computeFreeSlots(now, busy, daysAhead, duration)
	c.log.Debug("computed free slots", zap.Int("busy", len(busy)), zap.Int("slots", len(slots)))
	return slots, nil
}

// CreateEvent books an interview on the primary calendar with a Google Meet
// link, inviting the candidate. Invitations are sent to all attendees.
func (c *Calendar) CreateEvent(ctx context.Context, summary, description, attendeeEmail string, start, end time.Time) (*Event, error) {
	event := &calendar.Event{
		Summary:     summary,
		Description: description,
		Start:       &calendar.EventDateTime{DateTime: start.UTC().Format(time.RFC3339), TimeZone: "UTC"},
		End:         &calendar.EventDateTime{DateTime: end.UTC().Format(time.RFC3339), TimeZone: "UTC"},
		Attendees:   []*calendar.EventAttendee{{Email: attendeeEmail}},
		ConferenceData: &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId:             uuid.NewString(),
				ConferenceSolutionKey: &calendar.ConferenceSolutionKey{Type: "hangoutsMeet"},
			},
		},
		Reminders: &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 30},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}

	created, err := c.svc.Events.Insert("primary", event).
		ConferenceDataVersion(1).
		SendUpdates("all").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar event: %w", err)
	}

	c.log.Info("created calendar event",
		zap.String("event_id", created.Id),
		zap.String("attendee", attendeeEmail),
		zap.Time("start", start))

	return &Event{ID: created.Id, MeetLink: created.HangoutLink}, nil
}
