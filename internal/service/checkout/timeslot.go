package checkout

import (
	"fmt"
	"strconv"
	"strings"
)

// The booking form offers quarter-hour slots between these bounds.
const (
	slotRangeStartHour = 8
	slotRangeEndHour   = 20
	slotStepMinutes    = 15
)

// To24Hour converts a 12-hour clock string like "1:00 PM" to the 24-hour
// "HH:MM" form the booking API expects. Noon and midnight follow the usual
// conventions: "12:00 PM" is "12:00" and "12:00 AM" is "00:00".
func To24Hour(s string) (string, error) {
	parts := strings.Fields(strings.TrimSpace(s))
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid time %q: expected \"H:MM AM/PM\"", s)
	}

	meridiem := strings.ToUpper(parts[1])
	if meridiem != "AM" && meridiem != "PM" {
		return "", fmt.Errorf("invalid time %q: expected AM or PM", s)
	}

	clock := strings.SplitN(parts[0], ":", 2)
	if len(clock) != 2 {
		return "", fmt.Errorf("invalid time %q: expected \"H:MM AM/PM\"", s)
	}

	hour, err := strconv.Atoi(clock[0])
	if err != nil || hour < 1 || hour > 12 {
		return "", fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(clock[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in %q", s)
	}

	if meridiem == "PM" && hour < 12 {
		hour += 12
	}
	if meridiem == "AM" && hour == 12 {
		hour = 0
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// Slots returns the 12-hour labels offered by the appointment time select,
// every quarter hour from opening to closing.
func Slots() []string {
	var slots []string
	for h := slotRangeStartHour; h < slotRangeEndHour; h++ {
		for m := 0; m < 60; m += slotStepMinutes {
			slots = append(slots, label(h, m))
		}
	}
	return slots
}

func label(hour, minute int) string {
	meridiem := "AM"
	display := hour
	switch {
	case hour == 0:
		display = 12
	case hour == 12:
		meridiem = "PM"
	case hour > 12:
		display = hour - 12
		meridiem = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, meridiem)
}
