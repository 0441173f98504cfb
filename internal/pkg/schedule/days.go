package schedule

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DaySet is a set of weekdays. Bit 0 is Monday and bit 6 is Sunday, matching
// ISO-8601 day numbers 1..7.
type DaySet uint8

const AllDays DaySet = 0x7f

var ErrInvalidDay = errors.New("invalid day")

var isoOrder = [7]time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

var dayNames = map[string]time.Weekday{
	"monday": time.Monday, "mon": time.Monday, "lunes": time.Monday, "lun": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "martes": time.Tuesday, "mar": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday, "miercoles": time.Wednesday, "mie": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "jueves": time.Thursday, "jue": time.Thursday,
	"friday": time.Friday, "fri": time.Friday, "viernes": time.Friday, "vie": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday, "sabado": time.Saturday, "sab": time.Saturday,
	"sunday": time.Sunday, "sun": time.Sunday, "domingo": time.Sunday, "dom": time.Sunday,
}

func isoNumber(w time.Weekday) int {
	if w == time.Sunday {
		return 7
	}
	return int(w)
}

func NewDaySet(days ...time.Weekday) DaySet {
	var d DaySet
	for _, w := range days {
		d |= 1 << (isoNumber(w) - 1)
	}
	return d
}

func (d DaySet) Has(w time.Weekday) bool {
	return d&(1<<(isoNumber(w)-1)) != 0
}

func (d DaySet) IsEmpty() bool {
	return d&AllDays == 0
}

func (d DaySet) IsValid() bool {
	return !d.IsEmpty() && d&^AllDays == 0
}

// Weekdays returns the members in ISO order, Monday first.
func (d DaySet) Weekdays() []time.Weekday {
	var out []time.Weekday
	for _, w := range isoOrder {
		if d.Has(w) {
			out = append(out, w)
		}
	}
	return out
}

func (d DaySet) String() string {
	names := make([]string, 0, 7)
	for _, w := range d.Weekdays() {
		names = append(names, strings.ToLower(w.String()))
	}
	return strings.Join(names, ",")
}

func (d DaySet) MarshalJSON() ([]byte, error) {
	names := make([]string, 0, 7)
	for _, w := range d.Weekdays() {
		names = append(names, strings.ToLower(w.String()))
	}
	return json.Marshal(names)
}

// UnmarshalJSON accepts an array of ISO day numbers or day names, or a single
// comma separated string of either.
func (d *DaySet) UnmarshalJSON(data []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: expected an array or a string", ErrInvalidDay)
		}
		parsed, err := ParseDaySet(s)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	}

	var set DaySet
	for _, raw := range items {
		var n int
		if err := json.Unmarshal(raw, &n); err == nil {
			w, err := DayFromISO(n)
			if err != nil {
				return err
			}
			set |= NewDaySet(w)
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidDay, string(raw))
		}
		w, err := ParseDay(s)
		if err != nil {
			return err
		}
		set |= NewDaySet(w)
	}
	*d = set
	return nil
}

// ParseDaySet parses a comma separated list such as "lunes,martes" or "1,2,3".
func ParseDaySet(s string) (DaySet, error) {
	var set DaySet
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		w, err := ParseDay(part)
		if err != nil {
			return 0, err
		}
		set |= NewDaySet(w)
	}
	return set, nil
}

var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// ParseDay parses an ISO day number or an English or Spanish day name, full or
// abbreviated to three letters. Case and accents are ignored.
func ParseDay(s string) (time.Weekday, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return DayFromISO(n)
	}

	folded, _, err := transform.String(foldAccents, strings.ToLower(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDay, s)
	}
	if w, ok := dayNames[folded]; ok {
		return w, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDay, s)
}

func DayFromISO(n int) (time.Weekday, error) {
	if n < 1 || n > 7 {
		return 0, fmt.Errorf("%w: %d is not between 1 and 7", ErrInvalidDay, n)
	}
	return isoOrder[n-1], nil
}
