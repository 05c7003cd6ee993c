package timeofday

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Minutes is a wall-clock time of day expressed as minutes since midnight.
// It is the single internal representation for every time value in the
// engine; raw clock strings are normalized into Minutes at the boundary and
// never compared as strings.
type Minutes int

const (
	// MinutesPerDay конец суток; допустим как время закрытия ("24:00")
	MinutesPerDay Minutes = 24 * 60
)

var (
	ErrInvalidClock = fmt.Errorf("timeofday: invalid clock string")
)

// Parse normalizes a clock string into Minutes. Both stored representations
// are accepted: 24-hour "HH:mm" (also "H:mm") and 12-hour "h:mm AM/PM".
// 12 AM maps to 0, 12 PM maps to 720; PM adds 12 hours except when the hour
// is already 12.
func Parse(s string) (Minutes, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidClock)
	}

	// Отделяем суффикс AM/PM, если он есть
	meridiem := ""
	upper := strings.ToUpper(raw)
	switch {
	case strings.HasSuffix(upper, "AM"):
		meridiem = "AM"
	case strings.HasSuffix(upper, "PM"):
		meridiem = "PM"
	}
	clock := raw
	if meridiem != "" {
		clock = strings.TrimSpace(raw[:len(raw)-2])
	}

	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	if minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	switch meridiem {
	case "":
		// 24-часовой формат; "24:00" допустим как граница закрытия
		if hour < 0 || hour > 24 || (hour == 24 && minute != 0) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
		}
		return Minutes(hour*60 + minute), nil
	case "AM":
		if hour < 1 || hour > 12 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
		}
		if hour == 12 {
			hour = 0
		}
		return Minutes(hour*60 + minute), nil
	default: // PM
		if hour < 1 || hour > 12 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
		}
		if hour != 12 {
			hour += 12
		}
		return Minutes(hour*60 + minute), nil
	}
}

// FromTime extracts the time-of-day component of t.
func FromTime(t time.Time) Minutes {
	return Minutes(t.Hour()*60 + t.Minute())
}

// Valid reports whether m lies within a single day, the end-of-day boundary
// included.
func (m Minutes) Valid() bool {
	return m >= 0 && m <= MinutesPerDay
}

// Add returns m shifted by the given number of minutes.
func (m Minutes) Add(mins int) Minutes {
	return m + Minutes(mins)
}

// String форматирует значение в 24-часовом виде "HH:MM"
func (m Minutes) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// Clock12 форматирует значение в 12-часовом виде "3:04 PM" (для витрины записи)
func (m Minutes) Clock12() string {
	hour := int(m) / 60 % 24
	minute := int(m) % 60
	meridiem := "AM"
	switch {
	case hour == 0:
		hour = 12
	case hour == 12:
		meridiem = "PM"
	case hour > 12:
		hour -= 12
		meridiem = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", hour, minute, meridiem)
}

// Overlaps is the half-open interval test underlying every conflict check in
// the engine: [aStart, aEnd) intersects [bStart, bEnd) iff
// aStart < bEnd && aEnd > bStart. Adjacent intervals never overlap.
func Overlaps(aStart, aEnd, bStart, bEnd Minutes) bool {
	return aStart < bEnd && aEnd > bStart
}

// MarshalJSON сериализует значение как строку "HH:MM"
func (m Minutes) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON принимает строку в любом из поддерживаемых форматов
func (m *Minutes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Value реализует driver.Valuer: в БД значение хранится как текст "HH:MM"
func (m Minutes) Value() (driver.Value, error) {
	return m.String(), nil
}

// Scan реализует sql.Scanner. Легаси-строки записей могут храниться как в
// 24-часовом, так и в 12-часовом виде — нормализация происходит здесь.
func (m *Minutes) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*m = 0
		return nil
	case string:
		parsed, err := Parse(v)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	case []byte:
		parsed, err := Parse(string(v))
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	case int64:
		*m = Minutes(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidClock, src)
	}
}

// Weekday is the lowercase key used to index every per-weekday hour map.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// ParseWeekday normalizes an external weekday name ("Monday", "monday")
// to its map key. The second result reports whether the name is known.
func ParseWeekday(s string) (Weekday, bool) {
	switch Weekday(strings.ToLower(strings.TrimSpace(s))) {
	case Monday:
		return Monday, true
	case Tuesday:
		return Tuesday, true
	case Wednesday:
		return Wednesday, true
	case Thursday:
		return Thursday, true
	case Friday:
		return Friday, true
	case Saturday:
		return Saturday, true
	case Sunday:
		return Sunday, true
	default:
		return "", false
	}
}

// WeekdayOf returns the Weekday key for the given calendar date.
func WeekdayOf(t time.Time) Weekday {
	switch t.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}
