package schedule

import (
	"errors"
	"testing"
	"time"
)

func TestMinuteOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"9:5", 0, true},
		{"9:30", 0, true},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"", 0, true},
		{"noon", 0, true},
	}
	for _, tt := range tests {
		got, err := MinuteOfDay(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("MinuteOfDay(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("MinuteOfDay(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("MinuteOfDay(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	base := DoctorSchedule{
		DoctorID:        "dr-anita-rao",
		DayOfWeek:       2,
		StartTime:       "09:00",
		EndTime:         "17:00",
		IsActive:        true,
		SlotDurationMin: 30,
	}

	if err := base.Validate(); err != nil {
		t.Fatalf("valid row rejected: %v", err)
	}

	withBreak := base
	withBreak.BreakStart = "12:00"
	withBreak.BreakEnd = "13:00"
	if err := withBreak.Validate(); err != nil {
		t.Fatalf("valid break rejected: %v", err)
	}

	badBreak := base
	badBreak.BreakStart = "08:00"
	badBreak.BreakEnd = "09:30"
	if err := badBreak.Validate(); !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("break outside window: got %v", err)
	}

	halfBreak := base
	halfBreak.BreakStart = "12:00"
	if err := halfBreak.Validate(); !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("break start without end: got %v", err)
	}

	inverted := base
	inverted.StartTime = "17:00"
	inverted.EndTime = "09:00"
	if err := inverted.Validate(); !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("inverted window: got %v", err)
	}

	zeroSlot := base
	zeroSlot.SlotDurationMin = 0
	if err := zeroSlot.Validate(); err == nil {
		t.Error("zero slot duration must be rejected")
	}
}

func TestSpecialDateAppliesTo(t *testing.T) {
	day := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.Local)

	global := SpecialDate{Date: day, Type: SpecialDateHoliday}
	if !global.AppliesTo("dr-anita-rao", day.Add(13*time.Hour)) {
		t.Error("global entry must apply to every doctor, time of day ignored")
	}

	scoped := SpecialDate{DoctorID: "dr-anita-rao", Date: day, Type: SpecialDateHoliday}
	if scoped.AppliesTo("dr-vikram-shetty", day) {
		t.Error("doctor-scoped entry must not apply to other doctors")
	}
	if scoped.AppliesTo("dr-anita-rao", day.AddDate(0, 0, 1)) {
		t.Error("entry must not apply to a different calendar day")
	}
}
