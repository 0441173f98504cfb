package schedule

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// ClockTime is a time of day with second precision, stored as seconds since
// midnight.
type ClockTime int32

var ErrInvalidClockTime = errors.New("time must be HH:MM or HH:MM:SS")

func NewClockTime(hour, min, sec int) ClockTime {
	return ClockTime(hour*3600 + min*60 + sec)
}

// ClockTimeOf returns the wall clock time of t in t's location.
func ClockTimeOf(t time.Time) ClockTime {
	h, m, s := t.Clock()
	return NewClockTime(h, m, s)
}

func ParseClockTime(s string) (ClockTime, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return ClockTimeOf(t), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
}

func (c ClockTime) IsValid() bool {
	return c >= 0 && c < secondsPerDay
}

func (c ClockTime) Hour() int   { return int(c) / 3600 }
func (c ClockTime) Minute() int { return int(c) % 3600 / 60 }
func (c ClockTime) Second() int { return int(c) % 60 }

// Duration returns the offset of c from midnight.
func (c ClockTime) Duration() time.Duration {
	return time.Duration(c) * time.Second
}

// Add shifts c by d, wrapping around midnight.
func (c ClockTime) Add(d time.Duration) ClockTime {
	s := (int64(c) + int64(d/time.Second)) % secondsPerDay
	if s < 0 {
		s += secondsPerDay
	}
	return ClockTime(s)
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour(), c.Minute(), c.Second())
}

func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ClockTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ErrInvalidClockTime
	}
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
