package payroll_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/events"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/payroll"
	payrollerrors "github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/payroll/errors"
	payrollMock "github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/payroll/mock"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/payslip"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/retro"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/salary"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newServiceFor(f *processorFixture, processor payroll.RunProcessor) payroll.Service {
	if processor == nil {
		processor = f.processor
	}
	return payroll.NewService(payroll.ServiceDeps{
		DB:        f.processor.DB,
		Runs:      f.runs,
		Payslips:  f.payslips,
		Retros:    f.retros,
		Outbox:    f.outbox,
		Processor: processor,
		Locker:    f.locker,
		Activity:  f.sink,
	})
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a draft run for the period", func(t *testing.T) {
		f := newProcessorFixture(t)
		svc := newServiceFor(f, nil)
		notes := "  regular cycle "

		resp, err := svc.Create(ctx, f.orgID.String(), f.actorID, payroll.CreatePayrollRunRequest{Month: 2, Year: 2028, Notes: &notes})

		require.NoError(t, err)
		assert.Equal(t, "RUN-202802", resp.RunCode)
		assert.Equal(t, "DRAFT", resp.Status)
		assert.Equal(t, "2028-02-01", resp.PeriodStart)
		assert.Equal(t, "2028-02-29", resp.PeriodEnd)
		require.NotNil(t, resp.Notes)
		assert.Equal(t, "regular cycle", *resp.Notes)
		assert.Equal(t, f.actorID, resp.GeneratedBy)
		assert.Equal(t, []string{"payroll_run.created"}, f.sink.actions())
	})

	t.Run("one run per period", func(t *testing.T) {
		f := newProcessorFixture(t)
		svc := newServiceFor(f, nil)

		_, err := svc.Create(ctx, f.orgID.String(), f.actorID, payroll.CreatePayrollRunRequest{Month: 4, Year: 2026})

		assert.ErrorIs(t, err, payrollerrors.ErrPayrollRunAlreadyExists)
	})

	t.Run("invalid identifiers", func(t *testing.T) {
		f := newProcessorFixture(t)
		svc := newServiceFor(f, nil)

		_, err := svc.Create(ctx, "not-a-uuid", f.actorID, payroll.CreatePayrollRunRequest{Month: 4, Year: 2027})
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidOrganizationID)

		_, err = svc.Create(ctx, f.orgID.String(), "", payroll.CreatePayrollRunRequest{Month: 4, Year: 2027})
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidActorID)

		_, err = svc.Create(ctx, f.orgID.String(), f.actorID, payroll.CreatePayrollRunRequest{Month: 13, Year: 2027})
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidPeriod)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	f := newProcessorFixture(t)
	svc := newServiceFor(f, nil)
	notes := "bonus month"

	resp, err := svc.Update(ctx, f.orgID.String(), f.actorID, f.run.ID.String(), payroll.UpdatePayrollRunRequest{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "bonus month", *resp.Notes)

	cancelled := f.run
	cancelled.Status = payroll.StatusCancelled
	f.runs.runs[cancelled.ID.String()] = cancelled

	_, err = svc.Update(ctx, f.orgID.String(), f.actorID, f.run.ID.String(), payroll.UpdatePayrollRunRequest{Notes: &notes})
	assert.ErrorIs(t, err, payrollerrors.ErrRunNotEditable)
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("approve then lock freezes the period's payslips", func(t *testing.T) {
		empl := activeEmployee(uuid.Nil, "EMP-000001", standardStructure())
		f := newProcessorFixture(t, empl)
		svc := newServiceFor(f, nil)
		orgID := f.orgID.String()
		id := f.run.ID.String()

		f.expectCommitted(2) // process
		_, err := svc.Process(ctx, orgID, f.actorID, id, false)
		require.NoError(t, err)

		f.expectCommitted(1)
		resp, err := svc.UpdateStatus(ctx, orgID, f.actorID, id, payroll.UpdateStatusRequest{Status: "APPROVED"})
		require.NoError(t, err)
		assert.Equal(t, "APPROVED", resp.Status)
		assert.Equal(t, f.actorID, *resp.ApprovedBy)

		f.expectCommitted(1)
		resp, err = svc.UpdateStatus(ctx, orgID, f.actorID, id, payroll.UpdateStatusRequest{Status: "LOCKED"})
		require.NoError(t, err)
		assert.Equal(t, "LOCKED", resp.Status)
		assert.NotNil(t, resp.LockedAt)

		slip, _ := f.payslips.forEmployee(empl.ID, 4, 2026)
		assert.Equal(t, payslip.StatusLocked, slip.Status)
		assert.NotNil(t, slip.LockedAt)

		f.expectRolledBack()
		_, err = svc.UpdateStatus(ctx, orgID, f.actorID, id, payroll.UpdateStatusRequest{Status: "CANCELLED"})
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidStatusTransition)

		assert.Equal(t,
			[]string{"payroll_run.processed", "payroll_run.approved", "payroll_run.locked"},
			f.sink.actions(),
		)
		assert.NoError(t, f.sqlMock.ExpectationsWereMet())
	})

	t.Run("draft cannot be approved", func(t *testing.T) {
		f := newProcessorFixture(t)
		svc := newServiceFor(f, nil)

		f.expectRolledBack()
		_, err := svc.UpdateStatus(ctx, f.orgID.String(), f.actorID, f.run.ID.String(), payroll.UpdateStatusRequest{Status: "APPROVED"})

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidStatusTransition)
		assert.NoError(t, f.sqlMock.ExpectationsWereMet())
	})

	t.Run("cancel waits for the pass holding the period", func(t *testing.T) {
		f := newProcessorFixture(t)
		svc := newServiceFor(f, nil)
		release, err := f.locker.Acquire(ctx, payroll.PeriodLockKey(f.orgID.String(), 4, 2026), time.Minute)
		require.NoError(t, err)
		defer release()

		_, err = svc.UpdateStatus(ctx, f.orgID.String(), f.actorID, f.run.ID.String(), payroll.UpdateStatusRequest{Status: "CANCELLED"})

		assert.ErrorIs(t, err, payrollerrors.ErrRunInProgress)
		stored, _ := f.runs.get(f.run.ID)
		assert.Equal(t, payroll.StatusDraft, stored.Status)
		assert.NoError(t, f.sqlMock.ExpectationsWereMet())
	})

	t.Run("cancel stamps the actor", func(t *testing.T) {
		f := newProcessorFixture(t)
		svc := newServiceFor(f, nil)

		f.expectCommitted(1)
		resp, err := svc.UpdateStatus(ctx, f.orgID.String(), f.actorID, f.run.ID.String(), payroll.UpdateStatusRequest{Status: "CANCELLED"})

		require.NoError(t, err)
		assert.Equal(t, "CANCELLED", resp.Status)
		assert.Equal(t, f.actorID, *resp.CancelledBy)
	})
}

func TestService_Process(t *testing.T) {
	ctx := context.Background()

	t.Run("synchronous pass delegates to the processor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		processor := payrollMock.NewMockRunProcessor(ctrl)
		f := newProcessorFixture(t)
		svc := newServiceFor(f, processor)

		done := f.run
		done.Status = payroll.StatusCompleted
		done.ProcessedEmployees = 4
		processor.EXPECT().Process(ctx, f.orgID.String(), f.run.ID.String(), f.actorID).Return(&done, nil)

		resp, err := svc.Process(ctx, f.orgID.String(), f.actorID, f.run.ID.String(), false)

		require.NoError(t, err)
		assert.Equal(t, "COMPLETED", resp.Status)
		assert.Equal(t, 4, resp.ProcessedEmployees)
		assert.False(t, resp.Queued)
	})

	t.Run("asynchronous request is queued through the outbox", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		processor := payrollMock.NewMockRunProcessor(ctrl)
		f := newProcessorFixture(t)
		svc := newServiceFor(f, processor)

		f.expectCommitted(1)
		resp, err := svc.Process(ctx, f.orgID.String(), f.actorID, f.run.ID.String(), true)

		require.NoError(t, err)
		assert.True(t, resp.Queued)
		assert.Equal(t, "DRAFT", resp.Status)
		require.Len(t, f.outbox.events, 1)
		assert.Equal(t, events.PayrollRunRequestedTopic, f.outbox.events[0].Topic)

		var evt events.PayrollRunRequestedEvent
		require.NoError(t, json.Unmarshal(f.outbox.events[0].Payload, &evt))
		assert.Equal(t, f.run.ID.String(), evt.RunID)
		assert.Equal(t, f.actorID, evt.RequestedBy)
		assert.NoError(t, f.sqlMock.ExpectationsWereMet())
	})

	t.Run("asynchronous request for a locked run", func(t *testing.T) {
		f := newProcessorFixture(t)
		svc := newServiceFor(f, nil)
		locked := f.run
		locked.Status = payroll.StatusLocked
		f.runs.runs[locked.ID.String()] = locked

		f.expectRolledBack()
		_, err := svc.Process(ctx, f.orgID.String(), f.actorID, f.run.ID.String(), true)

		assert.ErrorIs(t, err, payrollerrors.ErrRunNotProcessable)
		assert.Empty(t, f.outbox.events)
	})

	t.Run("period request creates the missing run", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		processor := payrollMock.NewMockRunProcessor(ctrl)
		f := newProcessorFixture(t)
		svc := newServiceFor(f, processor)

		processor.EXPECT().Process(ctx, f.orgID.String(), gomock.Any(), f.actorID).
			DoAndReturn(func(_ context.Context, orgID, runID, _ string) (*payroll.PayrollRun, error) {
				return f.runs.FindByIDAndOrganization(ctx, orgID, runID)
			})

		resp, err := svc.ProcessPeriod(ctx, f.orgID.String(), f.actorID, payroll.ProcessPeriodRequest{Month: 5, Year: 2026}, false)

		require.NoError(t, err)
		assert.Equal(t, "RUN-202605", resp.RunCode)
		assert.NotEqual(t, f.run.ID.String(), resp.ID)
	})

	t.Run("period request reuses the existing run", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		processor := payrollMock.NewMockRunProcessor(ctrl)
		f := newProcessorFixture(t)
		svc := newServiceFor(f, processor)

		processor.EXPECT().Process(ctx, f.orgID.String(), f.run.ID.String(), f.actorID).Return(&f.run, nil)

		resp, err := svc.ProcessPeriod(ctx, f.orgID.String(), f.actorID, payroll.ProcessPeriodRequest{Month: 4, Year: 2026}, false)

		require.NoError(t, err)
		assert.Equal(t, f.run.ID.String(), resp.ID)
	})
}

func TestService_Rollback(t *testing.T) {
	ctx := context.Background()

	t.Run("restores the state before processing", func(t *testing.T) {
		empl := activeEmployee(uuid.Nil, "EMP-000001", standardStructure())
		f := newProcessorFixture(t, empl)
		adj := retro.RetroAdjustment{
			ID: uuid.New(), EmployeeID: empl.ID, ComponentName: "Arrear", Kind: salary.KindEarning,
			Amount: 750, Category: retro.CategoryArrear, Status: retro.StatusPending, TargetMonth: 4, TargetYear: 2026,
		}
		paidEarlier := payslip.Payslip{
			ID: uuid.New(), OrganizationID: f.orgID, EmployeeID: uuid.New(), PayslipNumber: "PS-000100",
			Month: 4, Year: 2026, Status: payslip.StatusPaid,
		}
		f.retros.adjs = []retro.RetroAdjustment{adj}
		f.payslips.slips[slipKey(paidEarlier.EmployeeID.String(), 4, 2026)] = paidEarlier
		svc := newServiceFor(f, nil)
		orgID := f.orgID.String()
		id := f.run.ID.String()

		f.expectCommitted(2)
		_, err := svc.Process(ctx, orgID, f.actorID, id, false)
		require.NoError(t, err)
		require.Equal(t, retro.StatusApplied, f.retros.byID(adj.ID).Status)
		require.Len(t, f.payslips.all(), 2)

		f.expectCommitted(1)
		err = svc.Rollback(ctx, orgID, f.actorID, id)
		require.NoError(t, err)

		_, exists := f.runs.get(f.run.ID)
		assert.False(t, exists)
		assert.Equal(t, []payslip.Payslip{paidEarlier}, f.payslips.all())
		restored := f.retros.byID(adj.ID)
		assert.Equal(t, retro.StatusPending, restored.Status)
		assert.Nil(t, restored.AppliedMonth)
		assert.Nil(t, restored.AppliedYear)
		assert.Contains(t, f.sink.actions(), "payroll_run.rolled_back")
		assert.NoError(t, f.sqlMock.ExpectationsWereMet())
	})

	t.Run("locked run", func(t *testing.T) {
		f := newProcessorFixture(t)
		svc := newServiceFor(f, nil)
		locked := f.run
		locked.Status = payroll.StatusLocked
		f.runs.runs[locked.ID.String()] = locked

		err := svc.Rollback(ctx, f.orgID.String(), f.actorID, f.run.ID.String())

		assert.ErrorIs(t, err, payrollerrors.ErrRollbackLockedRun)
	})

	t.Run("period held by a running pass", func(t *testing.T) {
		f := newProcessorFixture(t)
		svc := newServiceFor(f, nil)
		release, err := f.locker.Acquire(ctx, payroll.PeriodLockKey(f.orgID.String(), 4, 2026), time.Minute)
		require.NoError(t, err)
		defer release()

		err = svc.Rollback(ctx, f.orgID.String(), f.actorID, f.run.ID.String())

		assert.ErrorIs(t, err, payrollerrors.ErrRunInProgress)
		_, exists := f.runs.get(f.run.ID)
		assert.True(t, exists)
	})

	t.Run("unknown run", func(t *testing.T) {
		f := newProcessorFixture(t)
		svc := newServiceFor(f, nil)

		err := svc.Rollback(ctx, f.orgID.String(), f.actorID, uuid.NewString())

		assert.ErrorIs(t, err, payrollerrors.ErrPayrollRunNotFound)
	})
}
