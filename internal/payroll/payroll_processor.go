package payroll

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/activitylog"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/attendance"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/employee"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/events"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/messaging/kafka"
	payrollerrors "github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/payroll/errors"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/payslip"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/retro"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/salary"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/contextutil"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultEmployeeTimeout = 10 * time.Second
	defaultLockTTL         = 15 * time.Minute
)

type ProcessorDeps struct {
	DB         *sql.DB
	Runs       Repository
	Employees  employee.Repository
	Attendance attendance.Repository
	Retros     retro.Repository
	Payslips   payslip.Repository
	Counter    counter.Repository
	Outbox     kafka.OutboxRepository
	Locker     Locker
	Activity   activitylog.Sink
}

type ProcessorOptions struct {
	EmployeeTimeout time.Duration
	LockTTL         time.Duration
}

// Processor computes and stores one payslip per active employee for a run.
type Processor struct {
	ProcessorDeps
	employeeTimeout time.Duration
	lockTTL         time.Duration
	logger          *zap.Logger
}

func NewProcessor(deps ProcessorDeps, opts ProcessorOptions, logger ...*zap.Logger) *Processor {
	l := zap.L().Named("payroll.processor")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.processor")
	}
	if deps.Activity == nil {
		deps.Activity = activitylog.NewNopSink()
	}
	if deps.Locker == nil {
		deps.Locker = NewLocalLocker()
	}
	if opts.EmployeeTimeout <= 0 {
		opts.EmployeeTimeout = defaultEmployeeTimeout
	}
	if opts.LockTTL <= 0 {
		opts.LockTTL = defaultLockTTL
	}
	return &Processor{
		ProcessorDeps:   deps,
		employeeTimeout: opts.EmployeeTimeout,
		lockTTL:         opts.LockTTL,
		logger:          l,
	}
}

type employeeOutcome struct {
	skipped    bool
	gross      int64
	deductions int64
	net        int64
}

// Process runs a full pass over the organization's active employees. A failing
// employee is logged on the run and counted; it never aborts the pass.
func (p *Processor) Process(ctx context.Context, organizationID, runID, actorID string) (*PayrollRun, error) {
	log := contextutil.GetLogger(ctx, p.logger).With(zap.String("payroll_run_id", runID))

	run, err := p.Runs.FindByIDAndOrganization(ctx, organizationID, runID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if !run.Status.CanProcess() {
		return nil, payrollerrors.ErrRunNotProcessable
	}

	release, err := p.Locker.Acquire(ctx, PeriodLockKey(organizationID, run.Month, run.Year), p.lockTTL)
	if err != nil {
		log.Warn("acquire payroll lock failed", zap.Error(err))
		return nil, err
	}
	defer release()

	// Re-read under the lock; a concurrent request may have changed the run.
	run, err = p.Runs.FindByIDAndOrganization(ctx, organizationID, runID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if !run.Status.CanProcess() {
		return nil, payrollerrors.ErrRunNotProcessable
	}

	empls, err := p.Employees.FindActiveByOrganization(ctx, organizationID)
	if err != nil {
		log.Error("load active employees failed", zap.Error(err))
		return nil, payrollerrors.ErrLoadEmployeesFailed
	}

	run.resetTotals()
	run.Status = StatusProcessing
	run.ApprovedBy = nil
	run.ApprovedAt = nil
	run.TotalEmployees = len(empls)
	run.AppendLog(LogLevelInfo, "", fmt.Sprintf("processing started for %d employees", len(empls)))
	if err := p.Runs.Update(ctx, run); err != nil {
		log.Error("mark run processing failed", zap.Error(err))
		return nil, err
	}

	actorUUID, _ := uuid.Parse(actorID)
	paid := make(map[uuid.UUID]struct{}, len(empls))
	for i := range empls {
		empl := empls[i]
		empID := empl.ID.String()

		if ctx.Err() != nil {
			run.FailedEmployeesCount++
			run.AppendLog(LogLevelError, empID, "not processed: "+ctx.Err().Error())
			continue
		}

		outcome, err := p.processEmployee(ctx, run, empl, actorUUID)
		if err != nil {
			run.FailedEmployeesCount++
			run.AppendLog(LogLevelError, empID, err.Error())
			log.Warn("employee payslip failed", zap.String("employee_id", empID), zap.Error(err))
			continue
		}

		paid[empl.ID] = struct{}{}
		if outcome.skipped {
			run.SkippedEmployees++
			run.AppendLog(LogLevelWarn, empID, "payslip is no longer a draft, kept as is")
		} else {
			run.ProcessedEmployees++
		}
		run.TotalGross += outcome.gross
		run.TotalDeductions += outcome.deductions
		run.TotalNet += outcome.net
	}

	if err := p.finalize(context.WithoutCancel(ctx), run, paid); err != nil {
		if errors.Is(err, payrollerrors.ErrRunStatusChanged) {
			log.Warn("payroll run changed during processing, pass discarded", zap.Error(err))
		} else {
			log.Error("finalize payroll run failed", zap.Error(err))
		}
		return nil, err
	}

	p.Activity.Record(ctx, activitylog.Entry{
		OrganizationID: organizationID,
		ActorID:        actorID,
		Action:         "payroll_run.processed",
		EntityType:     "payroll_run",
		EntityID:       runID,
		Message: fmt.Sprintf("payroll %s processed: %d succeeded, %d failed, %d skipped",
			run.RunCode, run.ProcessedEmployees, run.FailedEmployeesCount, run.SkippedEmployees),
	})
	log.Info("payroll run processed",
		zap.Int("processed", run.ProcessedEmployees),
		zap.Int("failed", run.FailedEmployeesCount),
		zap.Int("skipped", run.SkippedEmployees),
	)

	return run, nil
}

// processEmployee writes one payslip inside its own transaction and deadline.
func (p *Processor) processEmployee(
	ctx context.Context,
	run *PayrollRun,
	empl employee.Employee,
	actorID uuid.UUID,
) (employeeOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, p.employeeTimeout)
	defer cancel()

	organizationID := run.OrganizationID.String()
	empID := empl.ID.String()

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		return employeeOutcome{}, err
	}
	defer tx.Rollback()

	payslips := p.Payslips.WithTx(tx)
	existing, err := payslips.FindByEmployeePeriod(ctx, organizationID, empID, run.Month, run.Year)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeOutcome{}, err
	}
	if existing != nil && existing.Frozen() {
		return employeeOutcome{
			skipped:    true,
			gross:      existing.GrossEarnings,
			deductions: existing.TotalDeductions,
			net:        existing.NetSalary,
		}, nil
	}

	retros := p.Retros.WithTx(tx)
	if existing != nil {
		// The draft is rebuilt from scratch, including what it applied last pass.
		if _, err := retros.ResetAppliedForEmployeePeriod(ctx, organizationID, empID, run.Month, run.Year); err != nil {
			return employeeOutcome{}, fmt.Errorf("release retro adjustments: %w", err)
		}
	}

	from, to := salary.PeriodBounds(run.Year, run.Month)
	lopDays, err := p.Attendance.WithTx(tx).CountByStatus(ctx, organizationID, empID, from, to, attendance.LOPStatuses)
	if err != nil {
		return employeeOutcome{}, fmt.Errorf("count lop days: %w", err)
	}

	pending, err := retros.FindPendingForEmployee(ctx, organizationID, empID, run.Month, run.Year)
	if err != nil {
		return employeeOutcome{}, fmt.Errorf("load retro adjustments: %w", err)
	}

	res, err := salary.Resolve(empl.PayslipStructure, salary.Period{
		Month:       run.Month,
		Year:        run.Year,
		WorkingDays: salary.DaysInMonth(run.Year, run.Month),
		LOPDays:     lopDays,
		Profile:     empl.Profile(),
	})
	if err != nil {
		return employeeOutcome{}, err
	}

	applied := make([]uuid.UUID, 0, len(pending))
	for _, adj := range pending {
		if adj.Kind == salary.KindDeduction {
			res.AddDeduction(adj.LineItem())
		} else {
			res.AddEarning(adj.LineItem())
		}
		applied = append(applied, adj.ID)
	}

	if existing == nil {
		seq, err := p.Counter.WithTx(tx).GetNextValue(ctx, organizationID, counter.PayslipNumber)
		if err != nil {
			return employeeOutcome{}, fmt.Errorf("allocate payslip number: %w", err)
		}
		now := time.Now().UTC()
		slip := &payslip.Payslip{
			ID:             uuid.New(),
			OrganizationID: run.OrganizationID,
			EmployeeID:     empl.ID,
			PayrollRunID:   &run.ID,
			PayslipNumber:  fmt.Sprintf("PS-%06d", seq),
			Month:          run.Month,
			Year:           run.Year,
			Status:         payslip.StatusDraft,
			GeneratedBy:    actorID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		slip.Apply(res)
		if err := payslips.Create(ctx, slip); err != nil {
			return employeeOutcome{}, payslip.MapRepositoryError(err)
		}
	} else {
		existing.Apply(res)
		existing.PayrollRunID = &run.ID
		existing.GeneratedBy = actorID
		existing.UpdatedAt = time.Now().UTC()
		if err := payslips.Update(ctx, existing); err != nil {
			return employeeOutcome{}, payslip.MapRepositoryError(err)
		}
	}

	if err := retros.MarkApplied(ctx, organizationID, applied, run.Month, run.Year); err != nil {
		return employeeOutcome{}, err
	}

	if err := tx.Commit(); err != nil {
		return employeeOutcome{}, err
	}

	return employeeOutcome{
		gross:      res.Gross,
		deductions: res.TotalDeductions,
		net:        res.Gross - res.TotalDeductions,
	}, nil
}

// finalize completes the run and queues the completion event atomically. Draft
// payslips of employees missing from paid are removed so the period holds only
// what the run totals count. The run must still be PROCESSING when saved.
func (p *Processor) finalize(ctx context.Context, run *PayrollRun, paid map[uuid.UUID]struct{}) error {
	now := time.Now().UTC()
	run.Status = StatusCompleted
	run.ProcessedAt = &now
	run.AppendLog(LogLevelInfo, "", fmt.Sprintf("processing completed: %d succeeded, %d failed, %d skipped",
		run.ProcessedEmployees, run.FailedEmployeesCount, run.SkippedEmployees))

	event, err := kafka.NewOutboxEvent(
		"payroll_run",
		run.ID.String(),
		events.EventPayrollRunCompleted,
		events.PayrollRunCompletedTopic,
		contextutil.GetRequestID(ctx),
		events.PayrollRunCompletedEvent{
			EventType:            events.EventPayrollRunCompleted,
			RunID:                run.ID.String(),
			OrganizationID:       run.OrganizationID.String(),
			Month:                run.Month,
			Year:                 run.Year,
			ProcessedEmployees:   run.ProcessedEmployees,
			FailedEmployeesCount: run.FailedEmployeesCount,
			SkippedEmployees:     run.SkippedEmployees,
			TotalGross:           run.TotalGross,
			TotalDeductions:      run.TotalDeductions,
			TotalNet:             run.TotalNet,
			OccurredAt:           now,
		},
	)
	if err != nil {
		return err
	}

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := p.removeStaleDrafts(ctx, tx, run, paid); err != nil {
		return err
	}
	if err := p.Runs.WithTx(tx).UpdateIfStatus(ctx, run, StatusProcessing); err != nil {
		return err
	}
	if p.Outbox != nil {
		if err := p.Outbox.WithTx(tx).Create(ctx, event); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (p *Processor) removeStaleDrafts(ctx context.Context, tx *sql.Tx, run *PayrollRun, paid map[uuid.UUID]struct{}) error {
	organizationID := run.OrganizationID.String()
	payslips := p.Payslips.WithTx(tx)

	drafts, err := payslips.FindAllByOrganization(ctx, organizationID, payslip.ListFilter{
		Month:  run.Month,
		Year:   run.Year,
		Status: payslip.StatusDraft,
	})
	if err != nil {
		return fmt.Errorf("load draft payslips: %w", err)
	}

	for _, d := range drafts {
		if _, ok := paid[d.EmployeeID]; ok {
			continue
		}
		empID := d.EmployeeID.String()
		if _, err := p.Retros.WithTx(tx).ResetAppliedForEmployeePeriod(ctx, organizationID, empID, run.Month, run.Year); err != nil {
			return fmt.Errorf("release retro adjustments: %w", err)
		}
		if err := payslips.DeleteDraft(ctx, organizationID, d.ID.String()); err != nil {
			return fmt.Errorf("remove stale draft payslip: %w", err)
		}
		run.AppendLog(LogLevelWarn, empID, "draft payslip "+d.PayslipNumber+" removed, employee not paid in this pass")
	}
	return nil
}
