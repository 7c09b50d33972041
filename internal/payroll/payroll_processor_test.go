package payroll_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/employee"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/events"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/payroll"
	payrollerrors "github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/payroll/errors"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/payslip"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/retro"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/salary"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type processorFixture struct {
	orgID      uuid.UUID
	actorID    string
	run        payroll.PayrollRun
	sqlMock    sqlmock.Sqlmock
	runs       *fakeRuns
	employees  *fakeEmployees
	attendance *fakeAttendance
	retros     *fakeRetros
	payslips   *fakePayslips
	counter    *fakeCounter
	outbox     *fakeOutbox
	locker     *payroll.LocalLocker
	sink       *recordingSink
	processor  *payroll.Processor
}

func newProcessorFixture(t *testing.T, empls ...employee.Employee) *processorFixture {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	orgID := uuid.New()
	for i := range empls {
		empls[i].OrganizationID = orgID
	}
	run := draftRun(orgID, 4, 2026)

	f := &processorFixture{
		orgID:      orgID,
		actorID:    uuid.New().String(),
		run:        run,
		sqlMock:    mock,
		runs:       newFakeRuns(run),
		employees:  &fakeEmployees{active: empls},
		attendance: &fakeAttendance{lop: map[uuid.UUID]int{}},
		retros:     &fakeRetros{},
		payslips:   newFakePayslips(),
		counter:    &fakeCounter{},
		outbox:     &fakeOutbox{},
		locker:     payroll.NewLocalLocker(),
		sink:       &recordingSink{},
	}
	f.processor = payroll.NewProcessor(payroll.ProcessorDeps{
		DB:         db,
		Runs:       f.runs,
		Employees:  f.employees,
		Attendance: f.attendance,
		Retros:     f.retros,
		Payslips:   f.payslips,
		Counter:    f.counter,
		Outbox:     f.outbox,
		Locker:     f.locker,
		Activity:   f.sink,
	}, payroll.ProcessorOptions{EmployeeTimeout: time.Second})
	return f
}

func (f *processorFixture) expectCommitted(n int) {
	for i := 0; i < n; i++ {
		f.sqlMock.ExpectBegin()
		f.sqlMock.ExpectCommit()
	}
}

func (f *processorFixture) expectRolledBack() {
	f.sqlMock.ExpectBegin()
	f.sqlMock.ExpectRollback()
}

func (f *processorFixture) process(ctx context.Context) (*payroll.PayrollRun, error) {
	return f.processor.Process(ctx, f.orgID.String(), f.run.ID.String(), f.actorID)
}

func TestProcessor_Process_PartialFailure(t *testing.T) {
	ok1 := activeEmployee(uuid.Nil, "EMP-000001", standardStructure())
	broken := activeEmployee(uuid.Nil, "EMP-000002", nil)
	ok2 := activeEmployee(uuid.Nil, "EMP-000003", standardStructure())
	f := newProcessorFixture(t, ok1, broken, ok2)

	f.expectCommitted(1)
	f.expectRolledBack()
	f.expectCommitted(1)
	f.expectCommitted(1) // finalize

	run, err := f.process(context.Background())

	require.NoError(t, err)
	assert.Equal(t, payroll.StatusCompleted, run.Status)
	assert.Equal(t, 3, run.TotalEmployees)
	assert.Equal(t, 2, run.ProcessedEmployees)
	assert.Equal(t, 1, run.FailedEmployeesCount)
	assert.Zero(t, run.SkippedEmployees)
	assert.Equal(t, int64(2*42000), run.TotalGross)
	assert.Equal(t, int64(2*500), run.TotalDeductions)
	assert.Equal(t, int64(2*41500), run.TotalNet)
	assert.NotNil(t, run.ProcessedAt)

	var failed []payroll.RunLogEntry
	for _, l := range run.Logs {
		if l.Level == payroll.LogLevelError {
			failed = append(failed, l)
		}
	}
	require.Len(t, failed, 1)
	assert.Equal(t, broken.ID.String(), failed[0].EmployeeID)

	slips := f.payslips.all()
	require.Len(t, slips, 2)
	assert.Equal(t, "PS-000001", slips[0].PayslipNumber)
	assert.Equal(t, "PS-000002", slips[1].PayslipNumber)
	for _, s := range slips {
		assert.Equal(t, payslip.StatusDraft, s.Status)
		assert.Equal(t, s.GrossEarnings-s.TotalDeductions, s.NetSalary)
		assert.Equal(t, 30, s.WorkingDays)
		assert.Equal(t, &f.run.ID, s.PayrollRunID)
	}
	_, ok := f.payslips.forEmployee(broken.ID, 4, 2026)
	assert.False(t, ok)

	stored, _ := f.runs.get(f.run.ID)
	assert.Equal(t, payroll.StatusCompleted, stored.Status)

	require.Len(t, f.outbox.events, 1)
	assert.Equal(t, events.PayrollRunCompletedTopic, f.outbox.events[0].Topic)
	var evt events.PayrollRunCompletedEvent
	require.NoError(t, json.Unmarshal(f.outbox.events[0].Payload, &evt))
	assert.Equal(t, 2, evt.ProcessedEmployees)
	assert.Equal(t, 1, evt.FailedEmployeesCount)

	assert.Equal(t, []string{"payroll_run.processed"}, f.sink.actions())
	assert.NoError(t, f.sqlMock.ExpectationsWereMet())
}

func TestProcessor_Process_AppliesLossOfPayAndRetro(t *testing.T) {
	empl := activeEmployee(uuid.Nil, "EMP-000001", standardStructure())
	f := newProcessorFixture(t, empl)
	f.attendance.lop[empl.ID] = 3

	bonus := retro.RetroAdjustment{
		ID: uuid.New(), EmployeeID: empl.ID, ComponentName: "Arrear March", Kind: salary.KindEarning,
		Amount: 2000, Category: retro.CategoryArrear, Status: retro.StatusPending, TargetMonth: 3, TargetYear: 2026,
	}
	correction := retro.RetroAdjustment{
		ID: uuid.New(), EmployeeID: empl.ID, ComponentName: "Advance recovery", Kind: salary.KindDeduction,
		Amount: 100, Category: retro.CategoryCorrection, Status: retro.StatusPending, TargetMonth: 4, TargetYear: 2026,
	}
	future := retro.RetroAdjustment{
		ID: uuid.New(), EmployeeID: empl.ID, ComponentName: "May bonus", Kind: salary.KindEarning,
		Amount: 5000, Category: retro.CategoryBonus, Status: retro.StatusPending, TargetMonth: 5, TargetYear: 2026,
	}
	f.retros.adjs = []retro.RetroAdjustment{bonus, correction, future}

	f.expectCommitted(2)

	run, err := f.process(context.Background())

	require.NoError(t, err)
	slip, ok := f.payslips.forEmployee(empl.ID, 4, 2026)
	require.True(t, ok)
	assert.Equal(t, 3, slip.LOPDays)
	assert.Equal(t, 27, slip.PresentDays)
	assert.Equal(t, int64(27000), slip.ProratedBasic)
	assert.Equal(t, int64(27000+10800+2000), slip.GrossEarnings)
	assert.Equal(t, int64(500+100), slip.TotalDeductions)
	assert.Equal(t, int64(39200), slip.NetSalary)
	assert.Equal(t, run.TotalNet, slip.NetSalary)

	applied := f.retros.byID(bonus.ID)
	assert.Equal(t, retro.StatusApplied, applied.Status)
	require.NotNil(t, applied.AppliedMonth)
	assert.Equal(t, 4, *applied.AppliedMonth)
	assert.Equal(t, retro.StatusApplied, f.retros.byID(correction.ID).Status)
	assert.Equal(t, retro.StatusPending, f.retros.byID(future.ID).Status)
	assert.NoError(t, f.sqlMock.ExpectationsWereMet())
}

func TestProcessor_Process_ReprocessUpdatesDraftInPlace(t *testing.T) {
	empl := activeEmployee(uuid.Nil, "EMP-000001", standardStructure())
	f := newProcessorFixture(t, empl)

	f.expectCommitted(2)
	_, err := f.process(context.Background())
	require.NoError(t, err)
	first, _ := f.payslips.forEmployee(empl.ID, 4, 2026)

	f.attendance.lop[empl.ID] = 6
	f.expectCommitted(2)
	run, err := f.process(context.Background())
	require.NoError(t, err)

	second, _ := f.payslips.forEmployee(empl.ID, 4, 2026)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.PayslipNumber, second.PayslipNumber)
	assert.Equal(t, 1, f.counter.calls)
	assert.Equal(t, 6, second.LOPDays)
	assert.Less(t, second.GrossEarnings, first.GrossEarnings)
	assert.Equal(t, 1, run.ProcessedEmployees)
	assert.Equal(t, second.GrossEarnings, run.TotalGross)
	assert.NoError(t, f.sqlMock.ExpectationsWereMet())
}

func TestProcessor_Process_IdempotentForUnchangedInputs(t *testing.T) {
	a := activeEmployee(uuid.Nil, "EMP-000001", standardStructure())
	b := activeEmployee(uuid.Nil, "EMP-000002", standardStructure())
	f := newProcessorFixture(t, a, b)
	f.attendance.lop[b.ID] = 2

	f.expectCommitted(3)
	first, err := f.process(context.Background())
	require.NoError(t, err)
	before := f.payslips.all()

	f.expectCommitted(3)
	second, err := f.process(context.Background())
	require.NoError(t, err)
	after := f.payslips.all()

	require.Len(t, after, 2)
	for _, empl := range []employee.Employee{a, b} {
		x, _ := f.payslips.forEmployee(empl.ID, 4, 2026)
		var y payslip.Payslip
		for _, p := range before {
			if p.EmployeeID == empl.ID {
				y = p
			}
		}
		assert.Equal(t, y.ID, x.ID)
		assert.Equal(t, y.PayslipNumber, x.PayslipNumber)
		assert.Equal(t, y.GrossEarnings, x.GrossEarnings)
		assert.Equal(t, y.TotalDeductions, x.TotalDeductions)
		assert.Equal(t, y.NetSalary, x.NetSalary)
		assert.Equal(t, y.Earnings, x.Earnings)
		assert.Equal(t, y.Deductions, x.Deductions)
	}
	assert.Equal(t, 2, f.counter.calls)
	assert.Equal(t, first.TotalGross, second.TotalGross)
	assert.Equal(t, first.TotalNet, second.TotalNet)
	assert.Equal(t, 2, second.ProcessedEmployees)
	assert.NoError(t, f.sqlMock.ExpectationsWereMet())
}

func TestProcessor_Process_ReprocessKeepsRetroOnDraft(t *testing.T) {
	empl := activeEmployee(uuid.Nil, "EMP-000001", standardStructure())
	f := newProcessorFixture(t, empl)
	bonus := retro.RetroAdjustment{
		ID: uuid.New(), EmployeeID: empl.ID, ComponentName: "Festival bonus", Kind: salary.KindEarning,
		Amount: 2000, Category: retro.CategoryBonus, Status: retro.StatusPending, TargetMonth: 4, TargetYear: 2026,
	}
	f.retros.adjs = []retro.RetroAdjustment{bonus}

	f.expectCommitted(2)
	first, err := f.process(context.Background())
	require.NoError(t, err)
	firstSlip, _ := f.payslips.forEmployee(empl.ID, 4, 2026)

	f.expectCommitted(2)
	second, err := f.process(context.Background())
	require.NoError(t, err)
	secondSlip, _ := f.payslips.forEmployee(empl.ID, 4, 2026)

	assert.Equal(t, int64(44000), firstSlip.GrossEarnings)
	assert.Equal(t, int64(44000), secondSlip.GrossEarnings)
	assert.Equal(t, firstSlip.Earnings, secondSlip.Earnings)
	assert.Equal(t, first.TotalGross, second.TotalGross)
	assert.Equal(t, int64(43500), second.TotalNet)

	applied := f.retros.byID(bonus.ID)
	assert.Equal(t, retro.StatusApplied, applied.Status)
	require.NotNil(t, applied.AppliedMonth)
	assert.Equal(t, 4, *applied.AppliedMonth)
	assert.NoError(t, f.sqlMock.ExpectationsWereMet())
}

func TestProcessor_Process_RemovesDraftsOfEmployeesNoLongerPaid(t *testing.T) {
	stays := activeEmployee(uuid.Nil, "EMP-000001", standardStructure())
	leaves := activeEmployee(uuid.Nil, "EMP-000002", standardStructure())
	f := newProcessorFixture(t, stays, leaves)
	arrear := retro.RetroAdjustment{
		ID: uuid.New(), EmployeeID: leaves.ID, ComponentName: "Arrear March", Kind: salary.KindEarning,
		Amount: 1000, Category: retro.CategoryArrear, Status: retro.StatusPending, TargetMonth: 3, TargetYear: 2026,
	}
	f.retros.adjs = []retro.RetroAdjustment{arrear}

	f.expectCommitted(3)
	_, err := f.process(context.Background())
	require.NoError(t, err)
	require.Len(t, f.payslips.all(), 2)
	require.Equal(t, retro.StatusApplied, f.retros.byID(arrear.ID).Status)

	f.employees.active = f.employees.active[:1]
	f.expectCommitted(2)
	run, err := f.process(context.Background())
	require.NoError(t, err)

	slips := f.payslips.all()
	require.Len(t, slips, 1)
	assert.Equal(t, stays.ID, slips[0].EmployeeID)
	assert.Equal(t, 1, run.TotalEmployees)
	assert.Equal(t, slips[0].GrossEarnings, run.TotalGross)
	assert.Equal(t, slips[0].NetSalary, run.TotalNet)
	assert.Equal(t, int64(42000), run.TotalGross)

	released := f.retros.byID(arrear.ID)
	assert.Equal(t, retro.StatusPending, released.Status)
	assert.Nil(t, released.AppliedMonth)

	var removed bool
	for _, l := range run.Logs {
		if l.Level == payroll.LogLevelWarn && l.EmployeeID == leaves.ID.String() {
			removed = true
		}
	}
	assert.True(t, removed)
	assert.NoError(t, f.sqlMock.ExpectationsWereMet())
}

func TestProcessor_Process_RunChangedDuringPass(t *testing.T) {
	empl := activeEmployee(uuid.Nil, "EMP-000001", standardStructure())
	f := newProcessorFixture(t, empl)
	f.attendance.onCount = func() { f.runs.setStatus(f.run.ID, payroll.StatusCancelled) }

	f.expectCommitted(1)
	f.expectRolledBack() // finalize

	run, err := f.process(context.Background())

	assert.Nil(t, run)
	assert.ErrorIs(t, err, payrollerrors.ErrRunStatusChanged)
	stored, _ := f.runs.get(f.run.ID)
	assert.Equal(t, payroll.StatusCancelled, stored.Status)
	assert.Nil(t, stored.ProcessedAt)
	assert.Empty(t, f.outbox.events)
	assert.NotContains(t, f.sink.actions(), "payroll_run.processed")
	assert.NoError(t, f.sqlMock.ExpectationsWereMet())
}

func TestProcessor_Process_AllocatesNumbersInsideEmployeeTx(t *testing.T) {
	f := newProcessorFixture(t,
		activeEmployee(uuid.Nil, "EMP-000001", standardStructure()),
		activeEmployee(uuid.Nil, "EMP-000002", standardStructure()),
	)

	f.expectCommitted(3)
	_, err := f.process(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, f.counter.calls)
	assert.Len(t, f.counter.txs, 2)
	assert.NoError(t, f.sqlMock.ExpectationsWereMet())
}

func TestProcessor_Process_SkipsFrozenPayslip(t *testing.T) {
	empl := activeEmployee(uuid.Nil, "EMP-000001", standardStructure())
	f := newProcessorFixture(t, empl)
	locked := payslip.Payslip{
		ID: uuid.New(), OrganizationID: f.orgID, EmployeeID: empl.ID, PayslipNumber: "PS-000009",
		Month: 4, Year: 2026, Status: payslip.StatusLocked,
		GrossEarnings: 40000, TotalDeductions: 1000, NetSalary: 39000,
	}
	f.payslips.slips[slipKey(empl.ID.String(), 4, 2026)] = locked

	f.expectRolledBack()
	f.expectCommitted(1)

	run, err := f.process(context.Background())

	require.NoError(t, err)
	assert.Zero(t, run.ProcessedEmployees)
	assert.Equal(t, 1, run.SkippedEmployees)
	assert.Equal(t, int64(40000), run.TotalGross)
	assert.Equal(t, int64(39000), run.TotalNet)

	kept, _ := f.payslips.forEmployee(empl.ID, 4, 2026)
	assert.Equal(t, locked, kept)
	assert.Zero(t, f.counter.calls)
	assert.NoError(t, f.sqlMock.ExpectationsWereMet())
}

func TestProcessor_Process_CancelledContextFailsRemaining(t *testing.T) {
	f := newProcessorFixture(t,
		activeEmployee(uuid.Nil, "EMP-000001", standardStructure()),
		activeEmployee(uuid.Nil, "EMP-000002", standardStructure()),
	)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f.expectCommitted(1) // finalize still runs

	run, err := f.process(ctx)

	require.NoError(t, err)
	assert.Equal(t, payroll.StatusCompleted, run.Status)
	assert.Equal(t, 2, run.FailedEmployeesCount)
	assert.Zero(t, run.ProcessedEmployees)
	assert.Empty(t, f.payslips.all())
	assert.NoError(t, f.sqlMock.ExpectationsWereMet())
}

func TestProcessor_Process_Rejections(t *testing.T) {
	t.Run("locked run cannot be processed", func(t *testing.T) {
		f := newProcessorFixture(t)
		run := f.run
		run.Status = payroll.StatusLocked
		f.runs.runs[run.ID.String()] = run

		_, err := f.process(context.Background())

		assert.ErrorIs(t, err, payrollerrors.ErrRunNotProcessable)
		assert.NoError(t, f.sqlMock.ExpectationsWereMet())
	})

	t.Run("period already held", func(t *testing.T) {
		f := newProcessorFixture(t, activeEmployee(uuid.Nil, "EMP-000001", standardStructure()))
		release, err := f.locker.Acquire(context.Background(), payroll.PeriodLockKey(f.orgID.String(), 4, 2026), time.Minute)
		require.NoError(t, err)
		defer release()

		_, err = f.process(context.Background())

		assert.ErrorIs(t, err, payrollerrors.ErrRunInProgress)
		stored, _ := f.runs.get(f.run.ID)
		assert.Equal(t, payroll.StatusDraft, stored.Status)
	})

	t.Run("employee load failure leaves run untouched", func(t *testing.T) {
		f := newProcessorFixture(t)
		f.employees.err = errors.New("connection reset")

		_, err := f.process(context.Background())

		assert.ErrorIs(t, err, payrollerrors.ErrLoadEmployeesFailed)
		stored, _ := f.runs.get(f.run.ID)
		assert.Equal(t, payroll.StatusDraft, stored.Status)
		assert.Empty(t, stored.Logs)
	})

	t.Run("unknown run", func(t *testing.T) {
		f := newProcessorFixture(t)

		_, err := f.processor.Process(context.Background(), f.orgID.String(), uuid.NewString(), f.actorID)

		assert.ErrorIs(t, err, payrollerrors.ErrPayrollRunNotFound)
	})

	t.Run("lock is released after a pass", func(t *testing.T) {
		f := newProcessorFixture(t)
		f.expectCommitted(1)

		_, err := f.process(context.Background())
		require.NoError(t, err)

		release, err := f.locker.Acquire(context.Background(), payroll.PeriodLockKey(f.orgID.String(), 4, 2026), time.Minute)
		assert.NoError(t, err)
		release()
	})
}
