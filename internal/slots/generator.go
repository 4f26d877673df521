package slots

import (
	"fmt"
	"net/http"
	"time"

	"github.com/playon/turf-booking-backend/internal/pkg/apperror"
)

var ErrInvalidWindow = apperror.New(http.StatusBadRequest, "slot window must lie within 0-24 hours")

// Default operating window: turfs open 07:00 and close at midnight.
const (
	DefaultDayStartHour = 7
	DefaultDayEndHour   = 24
)

// Slot is a candidate one-hour bookable range. Slots are computed per
// request and never persisted; availability is re-verified at booking time.
type Slot struct {
	StartTime    time.Time
	EndTime      time.Time
	DisplayLabel string
}

// Interval returns the slot's time range.
func (s Slot) Interval() Interval {
	return Interval{Start: s.StartTime, End: s.EndTime}
}

// Generate produces the ordered hourly slots for the given calendar date
// within [startHour, endHour). The result is deterministic for a date and
// window. An inverted window yields an empty sequence; a window outside
// the day returns ErrInvalidWindow.
func Generate(date time.Time, startHour, endHour int) ([]Slot, error) {
	if startHour < 0 || endHour > 24 {
		return nil, ErrInvalidWindow
	}
	if startHour >= endHour {
		return nil, nil
	}

	year, month, day := date.Date()
	loc := date.Location()

	result := make([]Slot, 0, endHour-startHour)
	for hour := startHour; hour < endHour; hour++ {
		start := time.Date(year, month, day, hour, 0, 0, 0, loc)
		result = append(result, Slot{
			StartTime:    start,
			EndTime:      start.Add(time.Hour),
			DisplayLabel: DisplayLabel(start),
		})
	}
	return result, nil
}

// GenerateWithin produces the hourly slots for the date that fall entirely
// inside one of the given windows. Used for turfs that publish an explicit
// availability list instead of a fixed daily window.
func GenerateWithin(date time.Time, windows []Interval) ([]Slot, error) {
	candidates, err := Generate(date, 0, 24)
	if err != nil {
		return nil, err
	}

	result := make([]Slot, 0, len(candidates))
	for _, s := range candidates {
		for _, w := range windows {
			if !s.StartTime.Before(w.Start) && !s.EndTime.After(w.End) {
				result = append(result, s)
				break
			}
		}
	}
	return result, nil
}

// DisplayLabel formats a slot start on a 12-hour clock, e.g. "7:00 AM".
// Presentation only: overlap and equality checks always use the time values.
func DisplayLabel(t time.Time) string {
	hour := t.Hour()
	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	hour = hour % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:00 %s", hour, meridiem)
}

// DayBounds returns the [00:00, 24:00) range covering the date's calendar day.
func DayBounds(date time.Time) (time.Time, time.Time) {
	year, month, day := date.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, date.Location())
	return start, start.AddDate(0, 0, 1)
}
