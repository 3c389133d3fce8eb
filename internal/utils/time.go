package util

import (
	"database/sql/driver"
	"fmt"
	"os"
	"strings"
	"time"
)

type LocalDateTime struct {
	time.Time
}

const layout = "2006-01-02T15:04:05"

var appLocation *time.Location

func init() {
	name := os.Getenv("APP_TIMEZONE")
	if name == "" {
		name = "UTC"
	}
	var err error
	appLocation, err = time.LoadLocation(name)
	if err != nil {
		appLocation = time.UTC
	}
}

// AppLocation is the reference clock for calendar-date comparisons
// (routine streaks, day windows).
func AppLocation() *time.Location {
	return appLocation
}

func ToTimePtr(ldt *LocalDateTime) *time.Time {
	if ldt == nil {
		return nil
	}
	t := ldt.Time
	return &t
}

func FromTimePtr(t *time.Time) *LocalDateTime {
	if t == nil {
		return nil
	}
	return &LocalDateTime{Time: *t}
}

func (ldt *LocalDateTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.ParseInLocation(layout, s, appLocation)
	if err != nil {
		return err
	}
	ldt.Time = t
	return nil
}

func (ldt LocalDateTime) MarshalJSON() ([]byte, error) {
	if ldt.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + ldt.In(appLocation).Format(layout) + `"`), nil
}

func (ldt LocalDateTime) Equal(other LocalDateTime) bool {
	return ldt.Time.Equal(other.Time)
}

func (ldt LocalDateTime) Value() (driver.Value, error) {
	if ldt.IsZero() {
		return nil, nil
	}
	return ldt.Time, nil
}

func (ldt *LocalDateTime) Scan(value interface{}) error {
	if value == nil {
		ldt.Time = time.Time{}
		return nil
	}

	switch v := value.(type) {
	case time.Time:
		ldt.Time = v
		return nil
	case []byte:
		parsed, err := time.ParseInLocation(layout, string(v), appLocation)
		if err != nil {
			return err
		}
		ldt.Time = parsed
		return nil
	case string:
		parsed, err := time.ParseInLocation(layout, v, appLocation)
		if err != nil {
			return err
		}
		ldt.Time = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan type %T into LocalDateTime", value)
	}
}
