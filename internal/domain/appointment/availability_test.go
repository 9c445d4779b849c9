package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-scheduler/internal/httperr"
	"github.com/BruksfildServices01/booking-scheduler/internal/models"
)

// 2029-01-01 is a Monday.
func monday(hour, min int) time.Time {
	return time.Date(2029, 1, 1, hour, min, 0, 0, time.UTC)
}

func mondayRule() models.Availability {
	return models.Availability{DayOfWeek: int(time.Monday), StartTime: "09:00", EndTime: "18:00", IsEnabled: true}
}

func booked(start time.Time, minutes int, status Status) models.Appointment {
	return models.Appointment{
		AppointmentDate: start,
		EndsAt:          start.Add(time.Duration(minutes) * time.Minute),
		Duration:        minutes,
		Status:          string(status),
	}
}

func TestCheckSlot_MondayScenario(t *testing.T) {
	require.Equal(t, time.Monday, monday(0, 0).Weekday())

	cal := Calendar{
		Rules:        []models.Availability{mondayRule()},
		Appointments: []models.Appointment{booked(monday(10, 0), 60, StatusConfirmed)},
	}

	for _, d := range []time.Duration{15 * time.Minute, 30 * time.Minute, 60 * time.Minute} {
		err := CheckSlot(monday(10, 30), d, cal)
		require.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))
		require.Equal(t, ReasonTimeConflict, ReasonOf(err))
	}

	require.NoError(t, CheckSlot(monday(11, 0), time.Hour, cal))
}

func TestCheckSlot_BackToBackBoundary(t *testing.T) {
	cal := Calendar{
		Rules:        []models.Availability{mondayRule()},
		Appointments: []models.Appointment{booked(monday(9, 0), 60, StatusPending)},
	}

	require.NoError(t, CheckSlot(monday(10, 0), 30*time.Minute, cal))

	// ends exactly when the existing one starts
	cal.Appointments = []models.Appointment{booked(monday(11, 0), 60, StatusPending)}
	require.NoError(t, CheckSlot(monday(10, 0), time.Hour, cal))
}

func TestCheckSlot_CancelledDoesNotOccupy(t *testing.T) {
	cal := Calendar{
		Rules:        []models.Availability{mondayRule()},
		Appointments: []models.Appointment{booked(monday(10, 0), 60, StatusCancelled)},
	}
	require.NoError(t, CheckSlot(monday(10, 0), time.Hour, cal))

	cal.Appointments = []models.Appointment{booked(monday(10, 0), 60, StatusCompleted)}
	require.Error(t, CheckSlot(monday(10, 0), time.Hour, cal))
}

func TestCheckSlot_OutsideAvailability(t *testing.T) {
	cal := Calendar{Rules: []models.Availability{mondayRule()}}

	cases := []struct {
		name  string
		start time.Time
		dur   time.Duration
	}{
		{"before opening", monday(8, 30), time.Hour},
		{"runs past closing", monday(17, 30), time.Hour},
		{"other weekday", monday(10, 0).AddDate(0, 0, 1), time.Hour},
	}
	for _, tc := range cases {
		err := CheckSlot(tc.start, tc.dur, cal)
		require.Equal(t, ReasonOutsideAvailability, ReasonOf(err), tc.name)
	}

	require.NoError(t, CheckSlot(monday(17, 0), time.Hour, cal), "ends exactly at closing")

	disabled := mondayRule()
	disabled.IsEnabled = false
	err := CheckSlot(monday(10, 0), time.Hour, Calendar{Rules: []models.Availability{disabled}})
	require.Equal(t, ReasonOutsideAvailability, ReasonOf(err))
}

func TestCheckSlot_SplitRules(t *testing.T) {
	cal := Calendar{Rules: []models.Availability{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", IsEnabled: true},
		{DayOfWeek: 1, StartTime: "13:00", EndTime: "18:00", IsEnabled: true},
	}}

	require.NoError(t, CheckSlot(monday(11, 0), time.Hour, cal))
	require.NoError(t, CheckSlot(monday(13, 0), time.Hour, cal))
	require.Error(t, CheckSlot(monday(11, 30), time.Hour, cal), "spans the lunch gap")
}

func TestCheckSlot_AllDayBlock(t *testing.T) {
	xmas := time.Date(2029, 12, 25, 0, 0, 0, 0, time.UTC)
	cal := Calendar{
		Rules: []models.Availability{{DayOfWeek: int(xmas.Weekday()), StartTime: "00:00", EndTime: "24:00", IsEnabled: true}},
		Blocks: []models.DateBlock{{
			Title:     "Christmas",
			StartDate: xmas.Add(9 * time.Hour),
			EndDate:   xmas.Add(9 * time.Hour),
			IsAllDay:  true,
		}},
	}

	for _, h := range []int{0, 8, 12, 23} {
		err := CheckSlot(xmas.Add(time.Duration(h)*time.Hour), 30*time.Minute, cal)
		require.Equal(t, ReasonDateBlocked, ReasonOf(err), "hour %d", h)
	}

	nextWeek := xmas.AddDate(0, 0, 7).Add(10 * time.Hour)
	require.NoError(t, CheckSlot(nextWeek, 30*time.Minute, cal))
}

func TestCheckSlot_MultiDayAndTimedBlocks(t *testing.T) {
	cal := Calendar{
		Rules: []models.Availability{mondayRule(), {DayOfWeek: int(time.Tuesday), StartTime: "09:00", EndTime: "18:00", IsEnabled: true}},
		Blocks: []models.DateBlock{
			{StartDate: monday(14, 0), EndDate: monday(15, 0), IsAllDay: false},
		},
	}

	require.Equal(t, ReasonDateBlocked, ReasonOf(CheckSlot(monday(13, 30), time.Hour, cal)))
	require.NoError(t, CheckSlot(monday(13, 0), time.Hour, cal))
	require.NoError(t, CheckSlot(monday(15, 0), time.Hour, cal))

	cal.Blocks = []models.DateBlock{{StartDate: monday(0, 0).AddDate(0, 0, -2), EndDate: monday(0, 0), IsAllDay: true}}
	require.Equal(t, ReasonDateBlocked, ReasonOf(CheckSlot(monday(10, 0), time.Hour, cal)))
	require.NoError(t, CheckSlot(monday(10, 0).AddDate(0, 0, 1), time.Hour, cal))
}

func TestAvailableSlots(t *testing.T) {
	cal := Calendar{
		Rules: []models.Availability{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", IsEnabled: true},
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", IsEnabled: true},
		},
		Appointments: []models.Appointment{booked(monday(10, 0), 60, StatusConfirmed)},
	}

	slots := AvailableSlots(monday(0, 0), time.Hour, 30*time.Minute, monday(0, 0), cal)

	require.Equal(t, []TimeSlot{
		{Start: "09:00", End: "10:00"},
		{Start: "11:00", End: "12:00"},
	}, slots)

	late := AvailableSlots(monday(0, 0), time.Hour, 30*time.Minute, monday(9, 0), cal)
	require.Equal(t, []TimeSlot{{Start: "11:00", End: "12:00"}}, late)

	require.Empty(t, AvailableSlots(monday(0, 0), 0, time.Minute, monday(0, 0), cal))
}
