// Package planning holds the derived-value rules of the crèche: which weekday
// "today" is, how many children the rostered staff can take per day, which
// children attend on a given day, and how close inventory items are to their
// expiration date.
package planning

import (
	"strings"
	"time"

	"github.com/arcenciel/creche-api/store"

	"github.com/araddon/dateparse"
	"github.com/mitchellh/mapstructure"
)

// The crèche only opens Monday through Friday; keys and labels are fixed to
// the French locale the records are written in.
var DayKeys = []string{"lundi", "mardi", "mercredi", "jeudi", "vendredi"}

var DayLabels = map[string]string{
	"lundi":    "Lun",
	"mardi":    "Mar",
	"mercredi": "Mer",
	"jeudi":    "Jeu",
	"vendredi": "Ven",
}

const (
	StatusExpired      = "Expired"
	StatusExpiringSoon = "Expiring soon"
	StatusOk           = "OK"

	// Items expiring within this many days are flagged ahead of time.
	expiringSoonWindowDays = 4
)

type ScheduleSlot struct {
	Morning   bool `mapstructure:"morning"`
	Afternoon bool `mapstructure:"afternoon"`
}

type staffView struct {
	MaxChildrenCapacity float64                 `mapstructure:"maxChildrenCapacity"`
	Schedule            map[string]ScheduleSlot `mapstructure:"schedule"`
}

type childView struct {
	AttendancePattern string `mapstructure:"attendancePattern"`
}

// TodayKey resolves a date to one of the five weekday keys. Weekends fall
// back to the first key, the domain has no notion of a Saturday or Sunday.
func TodayKey(now time.Time) string {
	switch now.Weekday() {
	case time.Monday:
		return "lundi"
	case time.Tuesday:
		return "mardi"
	case time.Wednesday:
		return "mercredi"
	case time.Thursday:
		return "jeudi"
	case time.Friday:
		return "vendredi"
	default:
		return DayKeys[0]
	}
}

// DailyCapacity sums maxChildrenCapacity per weekday over every staff member
// rostered that day. A member working a single half-day still contributes
// their full capacity.
func DailyCapacity(staff []store.Record) map[string]int {
	capacities := make(map[string]int, len(DayKeys))
	for _, day := range DayKeys {
		capacities[day] = 0
	}

	for _, record := range staff {
		var member staffView
		if err := mapstructure.Decode(map[string]interface{}(record), &member); err != nil {
			continue
		}
		for _, day := range DayKeys {
			if slot, ok := member.Schedule[day]; ok && (slot.Morning || slot.Afternoon) {
				capacities[day] += int(member.MaxChildrenCapacity)
			}
		}
	}

	return capacities
}

// IsStaffPresent reports whether the member works at least one slot that day.
func IsStaffPresent(record store.Record, day string) bool {
	var member staffView
	if err := mapstructure.Decode(map[string]interface{}(record), &member); err != nil {
		return false
	}
	slot, ok := member.Schedule[day]
	return ok && (slot.Morning || slot.Afternoon)
}

// IsChildPresent matches the day's abbreviation as a case-insensitive
// substring of the free-form attendance pattern. "Lundi" and "Lun" both match
// lundi. The pattern is unvalidated free text, keep the matching loose.
func IsChildPresent(record store.Record, day string) bool {
	var child childView
	if err := mapstructure.Decode(map[string]interface{}(record), &child); err != nil {
		return false
	}
	label, ok := DayLabels[day]
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(child.AttendancePattern), strings.ToLower(label))
}

// ExpirationStatus bands an expiration date by its whole-day distance from
// now: past dates are Expired, anything within the alert window is Expiring
// soon. Unparseable dates band as OK, mirroring how the records are rendered.
func ExpirationStatus(expirationDate string, now time.Time) string {
	t, err := dateparse.ParseIn(expirationDate, time.UTC)
	if err != nil {
		return StatusOk
	}

	diff := calendarDaysBetween(now, t)
	if diff < 0 {
		return StatusExpired
	}
	if diff <= expiringSoonWindowDays {
		return StatusExpiringSoon
	}
	return StatusOk
}

// Age returns whole years since birthDate, 0 when the date cannot be parsed.
func Age(birthDate string, now time.Time) int {
	t, err := dateparse.ParseIn(birthDate, time.UTC)
	if err != nil {
		return 0
	}

	years := now.Year() - t.Year()
	anniversary := time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	if now.Before(anniversary) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

func calendarDaysBetween(from, to time.Time) int {
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toDay := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(toDay.Sub(fromDay).Hours() / 24)
}
