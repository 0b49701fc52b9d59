package slots

import (
	"reflect"
	"testing"
	"time"

	"github.com/brightcare/booking-engine/internal/schedule"
)

// 2026-09-01 is a Tuesday.
var tuesday = time.Date(2026, time.September, 1, 0, 0, 0, 0, time.Local)

func tuesdayMorningRow() schedule.DoctorSchedule {
	return schedule.DoctorSchedule{
		DoctorID:        "dr-anita-rao",
		DayOfWeek:       2,
		StartTime:       "09:00",
		EndTime:         "12:00",
		IsActive:        true,
		SlotDurationMin: 30,
		BufferTimeMin:   0,
	}
}

func times(slots []TimeSlot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Time
	}
	return out
}

func TestGenerateMorningWindow(t *testing.T) {
	got := Generate(tuesday, []schedule.DoctorSchedule{tuesdayMorningRow()}, nil, nil)

	want := []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}
	if !reflect.DeepEqual(times(got), want) {
		t.Fatalf("slots = %v, want %v", times(got), want)
	}
	for _, s := range got {
		if s.Period != PeriodMorning {
			t.Errorf("slot %s period = %s, want morning", s.Time, s.Period)
		}
	}
	if got[1].Label != "9:30 AM" {
		t.Errorf("label = %q, want %q", got[1].Label, "9:30 AM")
	}
}

func TestGenerateSkipsBreakWindow(t *testing.T) {
	row := tuesdayMorningRow()
	row.BreakStart = "10:00"
	row.BreakEnd = "10:30"

	got := times(Generate(tuesday, []schedule.DoctorSchedule{row}, nil, nil))

	want := []string{"09:00", "09:30", "10:30", "11:00", "11:30"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("slots = %v, want %v", got, want)
	}
}

func TestGenerateExcludesBookedTimes(t *testing.T) {
	got := times(Generate(tuesday, []schedule.DoctorSchedule{tuesdayMorningRow()}, nil, []string{"09:30", "11:00"}))

	want := []string{"09:00", "10:00", "10:30", "11:30"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("slots = %v, want %v", got, want)
	}
}

func TestGenerateDropsPartialFinalSlot(t *testing.T) {
	row := tuesdayMorningRow()
	row.EndTime = "11:45"

	got := times(Generate(tuesday, []schedule.DoctorSchedule{row}, nil, nil))

	// 11:30 + 30min would pass 11:45, so the last full slot is 11:00.
	want := []string{"09:00", "09:30", "10:00", "10:30", "11:00"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("slots = %v, want %v", got, want)
	}
}

func TestGenerateHonorsBufferTime(t *testing.T) {
	row := tuesdayMorningRow()
	row.BufferTimeMin = 15

	got := times(Generate(tuesday, []schedule.DoctorSchedule{row}, nil, nil))

	want := []string{"09:00", "09:45", "10:30", "11:15"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("slots = %v, want %v", got, want)
	}
}

func TestGenerateNoRowForWeekday(t *testing.T) {
	wednesday := tuesday.AddDate(0, 0, 1)
	if got := Generate(wednesday, []schedule.DoctorSchedule{tuesdayMorningRow()}, nil, nil); got != nil {
		t.Fatalf("expected no slots without an active row, got %v", times(got))
	}

	inactive := tuesdayMorningRow()
	inactive.IsActive = false
	if got := Generate(tuesday, []schedule.DoctorSchedule{inactive}, nil, nil); got != nil {
		t.Fatalf("expected no slots for an inactive row, got %v", times(got))
	}
}

func TestGenerateHolidayYieldsNothing(t *testing.T) {
	specials := []schedule.SpecialDate{{Date: tuesday, Type: schedule.SpecialDateHoliday}}

	if got := Generate(tuesday, []schedule.DoctorSchedule{tuesdayMorningRow()}, specials, nil); got != nil {
		t.Fatalf("expected no slots on a holiday, got %v", times(got))
	}
}

func TestGenerateModifiedHoursNarrowsWindow(t *testing.T) {
	specials := []schedule.SpecialDate{{
		Date:          tuesday,
		Type:          schedule.SpecialDateModifiedHours,
		OverrideStart: "10:00",
		OverrideEnd:   "11:30",
	}}

	got := times(Generate(tuesday, []schedule.DoctorSchedule{tuesdayMorningRow()}, specials, nil))

	want := []string{"10:00", "10:30", "11:00"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("slots = %v, want %v", got, want)
	}
}

func TestGenerateChronologicalAndIdempotent(t *testing.T) {
	row := tuesdayMorningRow()
	row.BreakStart = "10:00"
	row.BreakEnd = "10:30"
	rows := []schedule.DoctorSchedule{row}
	booked := []string{"11:00"}

	first := Generate(tuesday, rows, nil, booked)
	second := Generate(tuesday, rows, nil, booked)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs must yield identical output")
	}
	for i := 1; i < len(first); i++ {
		if first[i-1].Time >= first[i].Time {
			t.Fatalf("slots not strictly increasing: %v", times(first))
		}
	}
}

func TestPeriodOf(t *testing.T) {
	tests := []struct {
		hour int
		want Period
	}{
		{8, PeriodMorning},
		{11, PeriodMorning},
		{12, PeriodAfternoon},
		{16, PeriodAfternoon},
		{17, PeriodEvening},
		{21, PeriodEvening},
	}
	for _, tt := range tests {
		if got := PeriodOf(tt.hour); got != tt.want {
			t.Errorf("PeriodOf(%d) = %s, want %s", tt.hour, got, tt.want)
		}
	}
}

func TestLabel12Hour(t *testing.T) {
	tests := []struct {
		minute int
		want   string
	}{
		{0, "12:00 AM"},
		{570, "9:30 AM"},
		{720, "12:00 PM"},
		{1050, "5:30 PM"},
	}
	for _, tt := range tests {
		if got := Label12Hour(tt.minute); got != tt.want {
			t.Errorf("Label12Hour(%d) = %q, want %q", tt.minute, got, tt.want)
		}
	}
}
