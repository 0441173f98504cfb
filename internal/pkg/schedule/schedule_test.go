package schedule

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var laPaz = mustLoad("America/La_Paz")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// 2024-01-01 is a Monday.
func at(day, hour, min, sec int) time.Time {
	return time.Date(2024, time.January, day, hour, min, sec, 0, laPaz)
}

func clock(s string) ClockTime {
	c, err := ParseClockTime(s)
	if err != nil {
		panic(err)
	}
	return c
}

func clockPtr(s string) *ClockTime {
	c := clock(s)
	return &c
}

var weekdays = NewDaySet(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday)

func TestPlan_Evaluate(t *testing.T) {
	office := Plan{Days: weekdays, Entry: clock("08:00"), Exit: clock("17:00")}
	explicit := Plan{Days: weekdays, Entry: clock("08:00"), Exit: clock("17:00"),
		WindowStart: clockPtr("07:00"), WindowEnd: clockPtr("09:00")}
	night := Plan{Days: AllDays, Entry: clock("22:00"), Exit: clock("06:00")}
	lateNight := Plan{Days: AllDays, Entry: clock("00:30"), Exit: clock("06:00"),
		WindowStart: clockPtr("23:00"), WindowEnd: clockPtr("02:00")}
	earlyEntry := Plan{Days: weekdays, Entry: clock("06:30"), Exit: clock("15:00"),
		WindowStart: clockPtr("07:00"), WindowEnd: clockPtr("09:00")}
	allDay := Plan{Days: weekdays, Entry: clock("00:05"), Exit: clock("23:55")}
	fullDay := Plan{Days: weekdays, Entry: clock("00:00"), Exit: clock("23:59")}
	fridayNight := Plan{Days: NewDaySet(time.Friday), Entry: clock("22:00"), Exit: clock("06:00")}

	grace := 10 * time.Minute

	tests := []struct {
		name   string
		plan   Plan
		t      time.Time
		grace  time.Duration
		inDay  bool
		status Status
	}{
		{"monday shortly after entry", office, at(1, 8, 5, 0), grace, true, StatusOnTime},
		{"end of grace", office, at(1, 8, 10, 0), grace, true, StatusOnTime},
		{"one second after grace", office, at(1, 8, 10, 1), grace, true, StatusLate},
		{"start of derived window", office, at(1, 7, 50, 0), grace, true, StatusOnTime},
		{"before derived window", office, at(1, 7, 49, 59), grace, true, StatusOutsideWindow},
		{"end of derived window", office, at(1, 17, 10, 0), grace, true, StatusLate},
		{"after derived window", office, at(1, 17, 10, 1), grace, true, StatusOutsideWindow},
		{"saturday", office, at(6, 8, 5, 0), grace, false, StatusOutsideWindow},
		{"sunday", office, at(7, 8, 0, 0), grace, false, StatusOutsideWindow},
		{"no grace exact entry", office, at(1, 8, 0, 0), 0, true, StatusOnTime},
		{"no grace one second late", office, at(1, 8, 0, 1), 0, true, StatusLate},
		{"explicit window start", explicit, at(2, 7, 0, 0), grace, true, StatusOnTime},
		{"explicit window late", explicit, at(2, 8, 30, 0), grace, true, StatusLate},
		{"explicit window closed", explicit, at(2, 9, 30, 0), grace, true, StatusOutsideWindow},
		{"explicit window overrides grace", explicit, at(2, 6, 59, 0), time.Hour, true, StatusOutsideWindow},
		{"night shift early", night, at(3, 21, 55, 0), grace, true, StatusOnTime},
		{"night shift late before midnight", night, at(3, 23, 0, 0), grace, true, StatusLate},
		{"night shift late after midnight", night, at(4, 5, 0, 0), grace, true, StatusLate},
		{"night shift over", night, at(4, 7, 0, 0), grace, true, StatusOutsideWindow},
		{"entry after midnight, marked before", lateNight, at(3, 23, 30, 0), grace, true, StatusOnTime},
		{"entry after midnight, within grace", lateNight, at(4, 0, 35, 0), grace, true, StatusOnTime},
		{"entry after midnight, late", lateNight, at(4, 1, 0, 0), grace, true, StatusLate},
		{"entry after midnight, closed", lateNight, at(4, 3, 0, 0), grace, true, StatusOutsideWindow},
		{"entry before explicit window", earlyEntry, at(2, 7, 30, 0), grace, true, StatusLate},
		{"day-long shift midday", allDay, at(1, 12, 0, 0), grace, true, StatusLate},
		{"day-long shift at midnight", allDay, at(1, 0, 0, 0), grace, true, StatusOnTime},
		{"day-long shift window opens sunday night", allDay, at(7, 23, 58, 0), grace, true, StatusOnTime},
		{"full day shift midday", fullDay, at(1, 12, 0, 0), grace, true, StatusLate},
		{"full day shift last minute", fullDay, at(5, 23, 59, 30), grace, true, StatusLate},
		{"friday night shift before midnight", fridayNight, at(5, 23, 0, 0), grace, true, StatusLate},
		{"friday night shift after midnight", fridayNight, at(6, 5, 0, 0), grace, true, StatusLate},
		{"friday early morning has no thursday shift", fridayNight, at(5, 5, 0, 0), grace, true, StatusOutsideWindow},
		{"thursday night is not scheduled", fridayNight, at(4, 23, 0, 0), grace, false, StatusOutsideWindow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := tt.plan.Evaluate(tt.t, tt.grace)
			assert.Equal(t, tt.inDay, ev.InDay)
			assert.Equal(t, tt.status, ev.Status)
			assert.Equal(t, tt.status != StatusOutsideWindow, ev.InWindow)
		})
	}
}

func TestPlan_EvaluateUsesLocalClock(t *testing.T) {
	office := Plan{Days: weekdays, Entry: clock("08:00"), Exit: clock("17:00")}

	// 12:05 UTC is 08:05 in La Paz (UTC-4).
	utc := time.Date(2024, time.January, 1, 12, 5, 0, 0, time.UTC)
	assert.Equal(t, StatusLate, office.Evaluate(utc, 10*time.Minute).Status)
	assert.Equal(t, StatusOnTime, office.Evaluate(utc.In(laPaz), 10*time.Minute).Status)
}

func TestPlan_Validate(t *testing.T) {
	tests := []struct {
		name string
		plan Plan
		want error
	}{
		{"valid", Plan{Days: weekdays, Entry: clock("08:00"), Exit: clock("17:00")}, nil},
		{"valid window", Plan{Days: weekdays, Entry: clock("08:00"), Exit: clock("17:00"), WindowStart: clockPtr("07:00"), WindowEnd: clockPtr("18:00")}, nil},
		{"no days", Plan{Entry: clock("08:00"), Exit: clock("17:00")}, ErrNoDays},
		{"same entry and exit", Plan{Days: weekdays, Entry: clock("08:00"), Exit: clock("08:00")}, ErrEntryEqualsExit},
		{"entry out of range", Plan{Days: weekdays, Entry: ClockTime(secondsPerDay), Exit: clock("08:00")}, ErrEntryTime},
		{"half window", Plan{Days: weekdays, Entry: clock("08:00"), Exit: clock("17:00"), WindowStart: clockPtr("07:00")}, ErrIncompleteWindow},
		{"empty window", Plan{Days: weekdays, Entry: clock("08:00"), Exit: clock("17:00"), WindowStart: clockPtr("07:00"), WindowEnd: clockPtr("07:00")}, ErrWindowZeroLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.plan.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDaySet_Has(t *testing.T) {
	assert.True(t, weekdays.Has(time.Monday))
	assert.True(t, weekdays.Has(time.Friday))
	assert.False(t, weekdays.Has(time.Saturday))
	assert.False(t, weekdays.Has(time.Sunday))

	sunday := NewDaySet(time.Sunday)
	assert.Equal(t, DaySet(1<<6), sunday)
	assert.True(t, sunday.Has(time.Sunday))
	assert.False(t, sunday.Has(time.Monday))

	assert.True(t, AllDays.IsValid())
	assert.False(t, DaySet(0).IsValid())
	assert.False(t, DaySet(0x80).IsValid())
}

func TestDaySet_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want DaySet
	}{
		{`[1,2,3,4,5]`, weekdays},
		{`["lunes","Martes","MIÉRCOLES","jueves","viernes"]`, weekdays},
		{`["mon","tue","wed","thu","fri"]`, weekdays},
		{`"lun,mar,mié,jue,vie"`, weekdays},
		{`"1, 7"`, NewDaySet(time.Monday, time.Sunday)},
		{`["sábado", 7]`, NewDaySet(time.Saturday, time.Sunday)},
		{`["monday","monday"]`, NewDaySet(time.Monday)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var d DaySet
			require.NoError(t, json.Unmarshal([]byte(tt.in), &d))
			assert.Equal(t, tt.want, d)
		})
	}

	for _, bad := range []string{`[0]`, `[8]`, `["funday"]`, `{}`, `"lunes,x"`} {
		var d DaySet
		assert.ErrorIs(t, json.Unmarshal([]byte(bad), &d), ErrInvalidDay, bad)
	}
}

func TestDaySet_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(NewDaySet(time.Sunday, time.Monday, time.Wednesday))
	require.NoError(t, err)
	assert.JSONEq(t, `["monday","wednesday","sunday"]`, string(out))
	assert.Equal(t, "monday,wednesday,sunday", NewDaySet(time.Sunday, time.Monday, time.Wednesday).String())
}

func TestClockTime(t *testing.T) {
	c, err := ParseClockTime("08:05")
	require.NoError(t, err)
	assert.Equal(t, NewClockTime(8, 5, 0), c)
	assert.Equal(t, "08:05:00", c.String())

	c, err = ParseClockTime("23:59:59")
	require.NoError(t, err)
	assert.Equal(t, ClockTime(secondsPerDay-1), c)

	for _, bad := range []string{"24:00", "8am", "", "12:60"} {
		_, err := ParseClockTime(bad)
		assert.ErrorIs(t, err, ErrInvalidClockTime, bad)
	}

	assert.Equal(t, clock("23:50"), clock("00:10").Add(-20*time.Minute))
	assert.Equal(t, clock("00:05"), clock("23:55").Add(10*time.Minute))

	var parsed struct {
		Entry ClockTime `json:"entry"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"entry":"17:30"}`), &parsed))
	assert.Equal(t, NewClockTime(17, 30, 0), parsed.Entry)
}
