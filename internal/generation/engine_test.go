package generation

import (
	"testing"
	"time"

	"github.com/Sergey0703/kpfaplus-sub001/internal/dateonly"
	"github.com/Sergey0703/kpfaplus-sub001/internal/rotation"
)

func fullMonth(y int, m time.Month) Period {
	ref := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	return ResolvePeriod(ref, nil, nil)
}

func singleWeekInputs(templates ...ShiftTemplate) Inputs {
	return Inputs{
		Rotation:  rotation.Rotation{Length: 1, StartOfWeekDay: 1},
		Templates: BuildTemplateIndex(templates),
		Holidays:  BuildHolidayIndex(nil),
		Leaves:    BuildLeaveIntervals(nil),
	}
}

func TestGenerate_NoTemplatesNoRecords(t *testing.T) {
	t.Parallel()

	records, err := Generate(fullMonth(2024, time.October), singleWeekInputs())
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("generated %d records without templates", len(records))
	}
}

func TestGenerate_WeeklyTemplateEmitsPerMatchingDay(t *testing.T) {
	t.Parallel()

	// Mondays only. October 2024 has Mondays on the 7th, 14th, 21st and 28th;
	// the 7th..28th span calendar weeks 1..4.
	tpl := ShiftTemplate{
		ContractID: "c1", WeekNumber: 1, DayOfWeek: 1, ShiftNumber: 1,
		StartHour: 9, StartMinute: 0, EndHour: 17, EndMinute: 30, LunchMinutes: 60,
		Title: "Weekday shift",
	}
	records, err := Generate(fullMonth(2024, time.October), singleWeekInputs(tpl))
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("generated %d records, want 4 Mondays", len(records))
	}
	for _, rec := range records {
		if rec.Date.Weekday() != time.Monday {
			t.Errorf("record on %s is not a Monday", dateonly.Key(rec.Date))
		}
		if rec.StartHour != 9 || rec.EndHour != 17 || rec.EndMinute != 30 || rec.LunchMinutes != 60 {
			t.Errorf("time fields not carried verbatim: %+v", rec)
		}
	}
}

func TestGenerate_MultiShiftFanOut(t *testing.T) {
	t.Parallel()

	day := ShiftTemplate{ContractID: "c1", WeekNumber: 1, DayOfWeek: 2, ShiftNumber: 1, StartHour: 6, EndHour: 14}
	evening := ShiftTemplate{ContractID: "c1", WeekNumber: 1, DayOfWeek: 2, ShiftNumber: 2, StartHour: 14, EndHour: 22}

	// A single Tuesday.
	first := time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC)
	period := Period{First: first, Last: dateonly.EndOfDay(first)}

	records, err := Generate(period, singleWeekInputs(day, evening))
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("generated %d records, want 2", len(records))
	}
	if records[0].ShiftNumber == records[1].ShiftNumber {
		t.Fatalf("fan-out records share a shift number: %+v", records)
	}
}

func TestGenerate_RotationSelectsTemplateWeek(t *testing.T) {
	t.Parallel()

	// Two-week rotation, Monday templates with distinct titles. The Mondays
	// of October 2024 (7th, 14th, 21st, 28th) land in calendar weeks 1..4.
	weekOne := ShiftTemplate{ContractID: "c1", WeekNumber: 1, DayOfWeek: 1, ShiftNumber: 1, StartHour: 9, EndHour: 17, Title: "odd week"}
	weekTwo := ShiftTemplate{ContractID: "c1", WeekNumber: 2, DayOfWeek: 1, ShiftNumber: 1, StartHour: 10, EndHour: 18, Title: "even week"}

	in := Inputs{
		Rotation:  rotation.Rotation{Length: 2, StartOfWeekDay: 1},
		Templates: BuildTemplateIndex([]ShiftTemplate{weekOne, weekTwo}),
		Holidays:  BuildHolidayIndex(nil),
		Leaves:    BuildLeaveIntervals(nil),
	}

	records, err := Generate(fullMonth(2024, time.October), in)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	byDate := make(map[string]Record, len(records))
	for _, rec := range records {
		byDate[dateonly.Key(rec.Date)] = rec
	}

	wantTitles := map[string]string{
		"2024-10-07": "odd week",  // calendar week 1 -> applied 1
		"2024-10-14": "even week", // calendar week 2 -> applied 2
		"2024-10-21": "odd week",  // calendar week 3 wraps to 1
		"2024-10-28": "even week", // calendar week 4 wraps to 2
	}
	for key, title := range wantTitles {
		rec, ok := byDate[key]
		if !ok {
			t.Errorf("no record generated for %s", key)
			continue
		}
		if rec.Title != title {
			t.Errorf("%s: title = %q, want %q", key, rec.Title, title)
		}
	}
}

func TestGenerate_HolidayAndLeaveTagging(t *testing.T) {
	t.Parallel()

	tpl := ShiftTemplate{ContractID: "c1", WeekNumber: 1, DayOfWeek: 3, ShiftNumber: 1, StartHour: 9, EndHour: 17}
	in := singleWeekInputs(tpl)
	in.Holidays = BuildHolidayIndex([]Holiday{{Date: date(2024, time.January, 10), Title: "Founders Day"}})
	in.Leaves = BuildLeaveIntervals([]LeavePeriod{{
		TypeID: "annual",
		Start:  date(2024, time.January, 10),
		End:    date(2024, time.January, 20),
	}})

	records, err := Generate(fullMonth(2024, time.January), in)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	var onHoliday, inLeave, outside *Record
	for i := range records {
		switch dateonly.Key(records[i].Date) {
		case "2024-01-10": // Wednesday, holiday and leave
			onHoliday = &records[i]
		case "2024-01-17": // Wednesday inside the leave only
			inLeave = &records[i]
		case "2024-01-24": // Wednesday outside both
			outside = &records[i]
		}
	}
	if onHoliday == nil || inLeave == nil || outside == nil {
		t.Fatalf("expected Wednesday records missing: %+v", records)
	}

	// Annotations co-occur and never suppress generation.
	if onHoliday.HolidayFlag != 1 {
		t.Error("holiday record not flagged")
	}
	if onHoliday.LeaveTypeID == nil || *onHoliday.LeaveTypeID != "annual" {
		t.Error("holiday record lost its leave annotation")
	}
	if inLeave.HolidayFlag != 0 {
		t.Error("non-holiday record flagged")
	}
	if inLeave.LeaveTypeID == nil || *inLeave.LeaveTypeID != "annual" {
		t.Error("leave annotation missing inside the interval")
	}
	if outside.LeaveTypeID != nil {
		t.Error("leave annotation applied outside the interval")
	}
}

func TestGenerate_EmptyPeriod(t *testing.T) {
	t.Parallel()

	tpl := ShiftTemplate{ContractID: "c1", WeekNumber: 1, DayOfWeek: 1, ShiftNumber: 1, StartHour: 9, EndHour: 17}
	records, err := Generate(Period{}, singleWeekInputs(tpl))
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("empty period generated %d records", len(records))
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	t.Parallel()

	tpl := ShiftTemplate{ContractID: "c1", WeekNumber: 1, DayOfWeek: 5, ShiftNumber: 1, StartHour: 7, EndHour: 15}
	in := singleWeekInputs(tpl)
	period := fullMonth(2024, time.October)

	first, err := Generate(period, in)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	second, err := Generate(period, in)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("runs differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Date.Equal(second[i].Date) || first[i].ShiftNumber != second[i].ShiftNumber {
			t.Fatalf("runs diverge at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}
