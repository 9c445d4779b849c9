package appointment

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/booking-scheduler/internal/httperr"
	"github.com/BruksfildServices01/booking-scheduler/internal/models"
	"github.com/BruksfildServices01/booking-scheduler/internal/timezone"
)

const (
	ReasonOutsideAvailability = "outside_availability"
	ReasonDateBlocked         = "date_blocked"
	ReasonTimeConflict        = "time_conflict"
)

type AvailabilityInput struct {
	Slug      string
	ServiceID uuid.UUID
	Date      time.Time
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Calendar is everything known about one provider day.
type Calendar struct {
	Rules        []models.Availability
	Blocks       []models.DateBlock
	Appointments []models.Appointment
}

// UnavailableError is a slot_unavailable business error with the reason
// the slot was refused.
type UnavailableError struct {
	Reason string
}

func (e UnavailableError) Error() string {
	return httperr.CodeSlotUnavailable + ": " + e.Reason
}

func (e UnavailableError) Unwrap() error {
	return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
}

func ReasonOf(err error) string {
	var ue UnavailableError
	if errors.As(err, &ue) {
		return ue.Reason
	}
	return ""
}

// CheckSlot decides whether [start, start+duration) is bookable.
// All intervals are half-open, so back-to-back appointments are allowed.
func CheckSlot(start time.Time, duration time.Duration, cal Calendar) error {
	end := start.Add(duration)

	if !withinRules(start, end, cal.Rules) {
		return UnavailableError{Reason: ReasonOutsideAvailability}
	}

	for _, b := range cal.Blocks {
		bs, be := BlockWindow(b, start.Location())
		if overlaps(bs, be, start, end) {
			return UnavailableError{Reason: ReasonDateBlocked}
		}
	}

	for _, ap := range cal.Appointments {
		if !Status(ap.Status).Occupies() {
			continue
		}
		as, ae := Window(ap)
		if overlaps(as, ae, start, end) {
			return UnavailableError{Reason: ReasonTimeConflict}
		}
	}

	return nil
}

// AvailableSlots lists every bookable start on day, stepping through each
// enabled rule. Starts not after notBefore are skipped.
func AvailableSlots(
	day time.Time,
	duration time.Duration,
	step time.Duration,
	notBefore time.Time,
	cal Calendar,
) []TimeSlot {

	if duration <= 0 || step <= 0 {
		return []TimeSlot{}
	}

	seen := map[time.Time]bool{}
	var starts []time.Time

	for _, r := range rulesFor(day, cal.Rules) {
		ruleStart, ruleEnd, ok := RuleWindow(r, day)
		if !ok {
			continue
		}

		for cur := ruleStart; !cur.Add(duration).After(ruleEnd); cur = cur.Add(step) {
			if seen[cur] || !cur.After(notBefore) {
				continue
			}
			if CheckSlot(cur, duration, cal) != nil {
				continue
			}
			seen[cur] = true
			starts = append(starts, cur)
		}
	}

	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })

	slots := make([]TimeSlot, 0, len(starts))
	for _, s := range starts {
		slots = append(slots, TimeSlot{
			Start: s.Format(timezone.ClockLayout),
			End:   s.Add(duration).Format(timezone.ClockLayout),
		})
	}
	return slots
}

// RuleWindow places an "HH:MM"-"HH:MM" rule on the calendar day of day.
func RuleWindow(r models.Availability, day time.Time) (time.Time, time.Time, bool) {
	startMin, err := timezone.ParseClock(r.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	endMin, err := timezone.ParseClock(r.EndTime)
	if err != nil || endMin <= startMin {
		return time.Time{}, time.Time{}, false
	}

	base := timezone.StartOfDay(day)
	return base.Add(time.Duration(startMin) * time.Minute),
		base.Add(time.Duration(endMin) * time.Minute),
		true
}

// BlockWindow returns the half-open interval a date block covers. All-day
// blocks cover every calendar day from StartDate through EndDate.
func BlockWindow(b models.DateBlock, loc *time.Location) (time.Time, time.Time) {
	if !b.IsAllDay {
		return b.StartDate, b.EndDate
	}
	start := timezone.StartOfDay(b.StartDate.In(loc))
	last := timezone.StartOfDay(b.EndDate.In(loc))
	return start, last.AddDate(0, 0, 1)
}

func rulesFor(day time.Time, rules []models.Availability) []models.Availability {
	weekday := int(day.Weekday())
	out := make([]models.Availability, 0, len(rules))
	for _, r := range rules {
		if r.IsEnabled && r.DayOfWeek == weekday {
			out = append(out, r)
		}
	}
	return out
}

func withinRules(start, end time.Time, rules []models.Availability) bool {
	for _, r := range rulesFor(start, rules) {
		rs, re, ok := RuleWindow(r, start)
		if !ok {
			continue
		}
		if !start.Before(rs) && !end.After(re) {
			return true
		}
	}
	return false
}

func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
