package google

import "time"

// Slot is a candidate interview window offered to a candidate.
type Slot struct {
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Display string    `json:"display"`
}

// BusyInterval is an occupied stretch of calendar time.
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// Slot offering bounds: business hours on weekdays, at most three options
// per reply so the candidate can answer with a single digit.
const (
	firstSlotHour = 9
	lastSlotHour  = 16
	maxSlots      = 3
)

const slotDisplayLayout = "Monday, January 02 at 03:04 PM"

// computeFreeSlots generates up to three free interview slots over the next
// daysAhead days. Weekends and already-started slots are skipped; a slot
// overlapping any busy interval (half-open test) is occupied. Days are
// filled in order and generation stops after the first day that brings the
// total to three or more.
func computeFreeSlots(now time.Time, busy []BusyInterval, daysAhead int, duration time.Duration) []Slot {
	var slots []Slot

	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for day := 0; day < daysAhead; day++ {
		checkDate := date.AddDate(0, 0, day)
		if wd := checkDate.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}

		for hour := firstSlotHour; hour <= lastSlotHour; hour++ {
			start := checkDate.Add(time.Duration(hour) * time.Hour)
			end := start.Add(duration)

			if start.Before(now) {
				continue
			}
			if overlapsBusy(start, end, busy) {
				continue
			}

			slots = append(slots, Slot{
				Start:   start,
				End:     end,
				Display: start.Format(slotDisplayLayout),
			})
		}

		if len(slots) >= maxSlots {
			break
		}
	}

	if len(slots) > maxSlots {
		slots = slots[:maxSlots]
	}
	return slots
}

func overlapsBusy(start, end time.Time, busy []BusyInterval) bool {
	for _, b := range busy {
		if start.Before(b.End) && end.After(b.Start) {
			return true
		}
	}
	return false
}
