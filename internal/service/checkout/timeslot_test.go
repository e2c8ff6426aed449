package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTo24Hour(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"midnight", "12:00 AM", "00:00"},
		{"noon", "12:00 PM", "12:00"},
		{"morning", "9:30 AM", "09:30"},
		{"afternoon", "1:00 PM", "13:00"},
		{"evening quarter", "7:45 PM", "19:45"},
		{"lowercase meridiem", "3:15 pm", "15:15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := To24Hour(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTo24HourRejectsMalformed(t *testing.T) {
	for _, input := range []string{
		"",
		"13:00 PM",
		"0:30 AM",
		"12:60 PM",
		"noonish",
		"7:00",
		"7:00 XM",
	} {
		_, err := To24Hour(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestSlotsCoverOpeningHours(t *testing.T) {
	slots := Slots()

	require.NotEmpty(t, slots)
	assert.Equal(t, "8:00 AM", slots[0])
	assert.Equal(t, "7:45 PM", slots[len(slots)-1])
	assert.Len(t, slots, (slotRangeEndHour-slotRangeStartHour)*60/slotStepMinutes)
}

func TestSlotLabelsRoundTrip(t *testing.T) {
	seen := make(map[string]bool)
	for _, slot := range Slots() {
		converted, err := To24Hour(slot)
		require.NoError(t, err, "slot %q", slot)
		assert.False(t, seen[converted], "slot %q duplicates %q", slot, converted)
		seen[converted] = true
	}
}
