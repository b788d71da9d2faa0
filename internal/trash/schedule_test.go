package trash

import (
	"testing"
	"time"
)

func TestTomorrow(t *testing.T) {
	s := DefaultSchedule()
	cases := []struct {
		day  time.Time
		want []string
	}{
		// Sunday evening -> Monday burnable.
		{time.Date(2024, 2, 4, 20, 0, 0, 0, time.UTC), []string{"burnable"}},
		// Thursday evening -> Friday cans and bottles.
		{time.Date(2024, 2, 8, 20, 0, 0, 0, time.UTC), []string{"cans", "bottles"}},
		// Tuesday evening -> Wednesday, nothing collected.
		{time.Date(2024, 2, 6, 20, 0, 0, 0, time.UTC), nil},
	}
	for _, tc := range cases {
		got := s.Tomorrow(tc.day)
		if len(got) != len(tc.want) {
			t.Fatalf("Tomorrow(%s) = %v, want %v", tc.day.Weekday(), got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("Tomorrow(%s) = %v, want %v", tc.day.Weekday(), got, tc.want)
			}
		}
	}
}

func TestReminderMessage(t *testing.T) {
	s := DefaultSchedule()
	msg := s.ReminderMessage(time.Date(2024, 2, 8, 20, 0, 0, 0, time.UTC))
	if msg != "Trash day tomorrow: cans, bottles" {
		t.Fatalf("message = %q", msg)
	}
	if got := s.ReminderMessage(time.Date(2024, 2, 6, 20, 0, 0, 0, time.UTC)); got != "" {
		t.Fatalf("expected empty message for no-collection day, got %q", got)
	}
}
