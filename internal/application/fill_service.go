package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Sergey0703/kpfaplus-sub001/internal/dateonly"
	"github.com/Sergey0703/kpfaplus-sub001/internal/generation"
	"github.com/Sergey0703/kpfaplus-sub001/internal/persistence"
	"github.com/Sergey0703/kpfaplus-sub001/internal/rotation"
)

// FillService turns a contract's rotating weekly templates into concrete
// dated records for a selected month, reconciling against whatever the record
// store already holds for the period.
type FillService struct {
	records     persistence.StaffRecordRepository
	holidays    persistence.HolidayRepository
	leaves      persistence.LeaveRepository
	templates   persistence.TemplateRepository
	contracts   persistence.ContractRepository
	idGenerator func() string
	now         func() time.Time
	saveOpts    SaveOptions
	logger      *slog.Logger
}

// NewFillService wires the collaborator stores into a fill engine instance.
// Each Fill invocation owns its own indexes and record batch; the service
// keeps no mutable state between runs.
func NewFillService(
	records persistence.StaffRecordRepository,
	holidays persistence.HolidayRepository,
	leaves persistence.LeaveRepository,
	templates persistence.TemplateRepository,
	contracts persistence.ContractRepository,
	idGenerator func() string,
	now func() time.Time,
	saveOpts SaveOptions,
	logger *slog.Logger,
) *FillService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &FillService{
		records:     records,
		holidays:    holidays,
		leaves:      leaves,
		templates:   templates,
		contracts:   contracts,
		idGenerator: idGenerator,
		now:         now,
		saveOpts:    saveOpts,
		logger:      defaultLogger(logger),
	}
}

// Fill executes one generate-from-template run and always produces a single
// terminal FillResult. Validation and collaborator failures are additionally
// returned as the error value so transports can map them.
func (s *FillService) Fill(ctx context.Context, params FillParams) (FillResult, error) {
	logger := serviceLogger(ctx, s.logger, "FillService", "Fill",
		"employee_id", params.EmployeeID,
		"contract_id", params.ContractID,
		"month", params.SelectedMonth.Format("2006-01"),
	)

	if err := validateFillParams(params); err != nil {
		logger.WarnContext(ctx, "fill rejected", "error_kind", ErrorKind(err))
		return FillResult{Status: StatusFailed}, err
	}

	contract, err := s.contracts.GetContract(ctx, params.ContractID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			logger.WarnContext(ctx, "fill rejected", "error_kind", "not_found")
			return FillResult{Status: StatusFailed}, fmt.Errorf("contract %s: %w", params.ContractID, ErrNotFound)
		}
		return s.failed(ctx, logger, "contract lookup failed", err)
	}
	if contract.Deleted {
		vErr := &ValidationError{}
		vErr.add("contractId", "contract is inactive")
		logger.WarnContext(ctx, "fill rejected", "error_kind", ErrorKind(vErr))
		return FillResult{Status: StatusFailed}, vErr
	}
	if contract.EmployeeID != "" && contract.EmployeeID != params.EmployeeID {
		vErr := &ValidationError{}
		vErr.add("employeeId", "employee does not match contract")
		logger.WarnContext(ctx, "fill rejected", "error_kind", ErrorKind(vErr))
		return FillResult{Status: StatusFailed}, vErr
	}

	period := generation.ResolvePeriod(params.SelectedMonth, contract.StartDate, contract.FinishDate)
	if period.Empty() {
		logger.InfoContext(ctx, "contract inactive for month, nothing to generate")
		return FillResult{Status: StatusCompleted}, nil
	}

	existing, err := s.records.QueryRange(ctx, persistence.StaffRecordQuery{
		From:       period.First,
		To:         period.Last,
		EmployeeID: params.EmployeeID,
		ContractID: params.ContractID,
	})
	if err != nil {
		return s.failed(ctx, logger, "existing record query failed", err)
	}

	verdict := AssessExisting(existing)
	if verdict.Blocked() {
		logger.InfoContext(ctx, "fill blocked by processed records",
			"processed", verdict.Processed, "total", verdict.Total)
		return FillResult{Status: StatusBlocked, BlockingReason: verdict.Reason()}, nil
	}

	// All existing records for the period are unprocessed; replace them.
	for _, record := range existing {
		if err := s.records.SoftDelete(ctx, record.ID); err != nil {
			return s.failed(ctx, logger, "soft delete of existing record failed", err)
		}
	}
	if len(existing) > 0 {
		logger.InfoContext(ctx, "existing records soft-deleted", "count", len(existing))
	}

	inputs, err := s.loadInputs(ctx, logger, params)
	if err != nil {
		return s.failed(ctx, logger, "loading generation inputs failed", err)
	}

	generated, err := generation.Generate(period, inputs)
	if err != nil {
		return s.failed(ctx, logger, "generation failed", err)
	}
	if len(generated) == 0 {
		logger.InfoContext(ctx, "no templates matched the period")
		return FillResult{Status: StatusCompleted}, nil
	}

	batch := make([]persistence.StaffRecord, 0, len(generated))
	for _, record := range generated {
		batch = append(batch, s.toStaffRecord(record, params))
	}

	outcome := saveRecords(ctx, s.records, batch, s.saveOpts, logger)
	result := FillResult{
		Status:         saveStatus(outcome),
		GeneratedCount: outcome.Total,
		SavedCount:     outcome.SuccessCount,
		Errors:         outcome.Errors,
	}
	logger.InfoContext(ctx, "fill finished",
		"status", result.Status, "generated", result.GeneratedCount,
		"saved", result.SavedCount, "failures", len(result.Errors))
	return result, nil
}

func (s *FillService) failed(ctx context.Context, logger *slog.Logger, message string, err error) (FillResult, error) {
	logger.ErrorContext(ctx, message, "error", err)
	return FillResult{
		Status: StatusFailed,
		Errors: []SaveError{{Message: err.Error()}},
	}, err
}

func validateFillParams(params FillParams) error {
	vErr := &ValidationError{}
	if strings.TrimSpace(params.EmployeeID) == "" {
		vErr.add("employeeId", "employee id is required")
	}
	if strings.TrimSpace(params.ContractID) == "" {
		vErr.add("contractId", "contract id is required")
	}
	if params.SelectedMonth.IsZero() {
		vErr.add("selectedMonth", "selected month is required")
	}
	if params.StartOfWeekDay < 0 || params.StartOfWeekDay > 7 {
		vErr.add("startOfWeekDay", "start of week must be between 1 and 7")
	}
	if vErr.HasErrors() {
		return vErr
	}
	return nil
}

// loadInputs fetches the per-run snapshots and builds the immutable indexes
// the generator consumes.
func (s *FillService) loadInputs(ctx context.Context, logger *slog.Logger, params FillParams) (generation.Inputs, error) {
	rows, err := s.templates.ListByContract(ctx, params.ContractID)
	if err != nil {
		return generation.Inputs{}, fmt.Errorf("list templates: %w", err)
	}
	templates := s.parseTemplateRows(ctx, logger, rows)

	holidayRows, err := s.holidays.ListMonth(ctx, params.SelectedMonth)
	if err != nil {
		return generation.Inputs{}, fmt.Errorf("list holidays: %w", err)
	}
	holidays := make([]generation.Holiday, 0, len(holidayRows))
	for _, h := range holidayRows {
		holidays = append(holidays, generation.Holiday{Date: h.Date, Title: h.Title})
	}

	leaveRows, err := s.leaves.ListMonth(ctx, params.SelectedMonth, params.EmployeeID, params.ManagerID, params.GroupID)
	if err != nil {
		return generation.Inputs{}, fmt.Errorf("list leave periods: %w", err)
	}
	leaves := make([]generation.LeavePeriod, 0, len(leaveRows))
	for _, p := range leaveRows {
		leave := generation.LeavePeriod{
			EmployeeID: p.EmployeeID,
			TypeID:     p.TypeID,
			Title:      p.Title,
			Start:      p.StartDate,
			Deleted:    p.Deleted,
		}
		if p.EndDate != nil {
			leave.End = *p.EndDate
		}
		leaves = append(leaves, leave)
	}

	templateIndex := generation.BuildTemplateIndex(templates)
	startOfWeek := params.StartOfWeekDay
	if startOfWeek == 0 {
		startOfWeek = 1
	}

	return generation.Inputs{
		Rotation:  rotation.FromTemplateWeeks(templateIndex.WeekNumbers(), startOfWeek),
		Templates: templateIndex,
		Holidays:  generation.BuildHolidayIndex(holidays),
		Leaves:    generation.BuildLeaveIntervals(leaves),
	}, nil
}

// parseTemplateRows converts raw template rows into engine templates. Rows
// missing a start or end time are skipped with a logged warning; partial
// template data must not abort the whole run.
func (s *FillService) parseTemplateRows(ctx context.Context, logger *slog.Logger, rows []persistence.ShiftTemplateRow) []generation.ShiftTemplate {
	templates := make([]generation.ShiftTemplate, 0, len(rows))
	for _, row := range rows {
		if row.Deleted {
			continue
		}
		startHour, startMinute, err := parseClock(row.StartTime)
		if err != nil {
			logger.WarnContext(ctx, "template skipped", "template_id", row.ID, "field", "start_time", "error", err)
			continue
		}
		endHour, endMinute, err := parseClock(row.EndTime)
		if err != nil {
			logger.WarnContext(ctx, "template skipped", "template_id", row.ID, "field", "end_time", "error", err)
			continue
		}
		shiftNumber := row.ShiftNumber
		if shiftNumber == 0 {
			shiftNumber = 1
		}
		templates = append(templates, generation.ShiftTemplate{
			ContractID:   row.ContractID,
			WeekNumber:   row.WeekNumber,
			DayOfWeek:    row.DayOfWeek,
			ShiftNumber:  shiftNumber,
			StartHour:    startHour,
			StartMinute:  startMinute,
			EndHour:      endHour,
			EndMinute:    endMinute,
			LunchMinutes: row.LunchMinutes,
			Title:        row.Title,
		})
	}
	return templates
}

func (s *FillService) toStaffRecord(record generation.Record, params FillParams) persistence.StaffRecord {
	title := record.Title
	if title == "" {
		title = "Shift " + strconv.Itoa(record.ShiftNumber) + " " + dateonly.Key(record.Date)
	}
	return persistence.StaffRecord{
		ID:           s.idGenerator(),
		EmployeeID:   params.EmployeeID,
		ContractID:   record.ContractID,
		ManagerID:    params.ManagerID,
		GroupID:      params.GroupID,
		Date:         record.Date,
		StartHour:    record.StartHour,
		StartMinute:  record.StartMinute,
		EndHour:      record.EndHour,
		EndMinute:    record.EndMinute,
		LunchMinutes: record.LunchMinutes,
		ShiftNumber:  record.ShiftNumber,
		HolidayFlag:  record.HolidayFlag,
		LeaveTypeID:  record.LeaveTypeID,
		Title:        title,
	}
}

func saveStatus(outcome SaveOutcome) FillStatus {
	switch {
	case outcome.SuccessCount == outcome.Total:
		return StatusCompleted
	case outcome.SuccessCount > 0:
		return StatusPartial
	default:
		return StatusFailed
	}
}

// parseClock parses an optional "HH:MM" store value.
func parseClock(value *string) (hour, minute int, err error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return 0, 0, errors.New("time is missing")
	}
	h, m, ok := strings.Cut(strings.TrimSpace(*value), ":")
	if !ok {
		return 0, 0, fmt.Errorf("malformed time %q", *value)
	}
	hour, err = strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("malformed hour %q", *value)
	}
	minute, err = strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("malformed minute %q", *value)
	}
	return hour, minute, nil
}
