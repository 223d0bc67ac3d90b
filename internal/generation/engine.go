package generation

import (
	"time"

	"github.com/Sergey0703/kpfaplus-sub001/internal/rotation"
)

// Inputs bundles the immutable snapshots a generation pass works from.
type Inputs struct {
	Rotation  rotation.Rotation
	Templates TemplateIndex
	Holidays  HolidayIndex
	Leaves    LeaveIntervals
}

// Generate walks every day of the period and emits records for each matching
// template. Days without a template contribute nothing; holiday and leave
// annotations are independent and never suppress generation — whether a
// holiday shift should be worked is a downstream approval decision.
//
// Given identical snapshots the output is fully reproducible: there is no
// randomness and no wall-clock dependency.
func Generate(period Period, in Inputs) ([]Record, error) {
	if period.Empty() {
		return nil, nil
	}
	if err := in.Rotation.Validate(); err != nil {
		return nil, err
	}

	records := make([]Record, 0, period.Days())
	for day := period.First; !day.After(period.Last); day = day.AddDate(0, 0, 1) {
		plan, err := PlanDay(day, in)
		if err != nil {
			return nil, err
		}
		records = append(records, plan.Records()...)
	}
	return records, nil
}

// PlanDay computes the ephemeral per-date plan: rotation assignment, template
// matches and holiday/leave annotations.
func PlanDay(date time.Time, in Inputs) (DayPlan, error) {
	assignment, err := rotation.Resolve(date, in.Rotation)
	if err != nil {
		return DayPlan{}, err
	}

	return DayPlan{
		Date:         date,
		CalendarWeek: assignment.CalendarWeek,
		AppliedWeek:  assignment.AppliedWeek,
		DayOfWeek:    assignment.DayOfWeek,
		IsHoliday:    in.Holidays.Has(date),
		Leave:        in.Leaves.Find(date),
		Templates:    in.Templates.Find(assignment.AppliedWeek, assignment.DayOfWeek),
	}, nil
}

// Records materializes the plan into persistable records, one per matched
// template, carrying the template time fields verbatim.
func (p DayPlan) Records() []Record {
	if len(p.Templates) == 0 {
		return nil
	}

	holidayFlag := 0
	if p.IsHoliday {
		holidayFlag = 1
	}
	var leaveTypeID *string
	if p.Leave != nil {
		id := p.Leave.TypeID
		leaveTypeID = &id
	}

	records := make([]Record, 0, len(p.Templates))
	for _, tpl := range p.Templates {
		records = append(records, Record{
			Date:         p.Date,
			StartHour:    tpl.StartHour,
			StartMinute:  tpl.StartMinute,
			EndHour:      tpl.EndHour,
			EndMinute:    tpl.EndMinute,
			LunchMinutes: tpl.LunchMinutes,
			ShiftNumber:  tpl.ShiftNumber,
			ContractID:   tpl.ContractID,
			HolidayFlag:  holidayFlag,
			LeaveTypeID:  leaveTypeID,
			Title:        tpl.Title,
		})
	}
	return records
}
