package payroll

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/activitylog"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/events"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/messaging/kafka"
	payrollerrors "github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/payroll/errors"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/payslip"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/retro"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/salary"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RunProcessor is satisfied by *Processor.
type RunProcessor interface {
	Process(ctx context.Context, organizationID, runID, actorID string) (*PayrollRun, error)
}

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, organizationID, actorID string, req CreatePayrollRunRequest) (PayrollRunResponse, error)
	GetAll(ctx context.Context, organizationID string, query ListPayrollRunQuery) ([]PayrollRunResponse, error)
	GetByID(ctx context.Context, organizationID, id string) (PayrollRunResponse, error)
	Update(ctx context.Context, organizationID, actorID, id string, req UpdatePayrollRunRequest) (PayrollRunResponse, error)
	UpdateStatus(ctx context.Context, organizationID, actorID, id string, req UpdateStatusRequest) (PayrollRunResponse, error)
	Process(ctx context.Context, organizationID, actorID, id string, async bool) (PayrollRunResponse, error)
	ProcessPeriod(ctx context.Context, organizationID, actorID string, req ProcessPeriodRequest, async bool) (PayrollRunResponse, error)
	Rollback(ctx context.Context, organizationID, actorID, id string) error
}

type ServiceDeps struct {
	DB        *sql.DB
	Runs      Repository
	Payslips  payslip.Repository
	Retros    retro.Repository
	Outbox    kafka.OutboxRepository
	Processor RunProcessor
	Locker    Locker
	Activity  activitylog.Sink
}

type service struct {
	ServiceDeps
	logger *zap.Logger
}

func NewService(deps ServiceDeps, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	if deps.Activity == nil {
		deps.Activity = activitylog.NewNopSink()
	}
	if deps.Locker == nil {
		deps.Locker = NewLocalLocker()
	}
	return &service{ServiceDeps: deps, logger: l}
}

func (s *service) Create(
	ctx context.Context,
	organizationID, actorID string,
	req CreatePayrollRunRequest,
) (PayrollRunResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	run, err := s.createRun(ctx, organizationID, actorID, req.Month, req.Year, req.Notes)
	if err != nil {
		log.Warn("create payroll run failed", zap.Int("month", req.Month), zap.Int("year", req.Year), zap.Error(err))
		return PayrollRunResponse{}, err
	}

	s.record(ctx, organizationID, actorID, "payroll_run.created", run, "payroll "+run.RunCode+" created")
	log.Info("create payroll run success", zap.String("payroll_run_id", run.ID.String()))
	return mapToResponse(*run), nil
}

func (s *service) createRun(
	ctx context.Context,
	organizationID, actorID string,
	month, year int,
	notes *string,
) (*PayrollRun, error) {
	orgUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return nil, payrollerrors.ErrInvalidOrganizationID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return nil, payrollerrors.ErrInvalidActorID
	}
	if month < 1 || month > 12 || year < 2000 {
		return nil, payrollerrors.ErrInvalidPeriod
	}

	if _, err := s.Runs.FindByPeriod(ctx, organizationID, month, year); err == nil {
		return nil, payrollerrors.ErrPayrollRunAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	start, end := salary.PeriodBounds(year, month)
	now := time.Now().UTC()
	run := &PayrollRun{
		ID:             uuid.New(),
		OrganizationID: orgUUID,
		RunCode:        fmt.Sprintf("RUN-%04d%02d", year, month),
		Month:          month,
		Year:           year,
		Status:         StatusDraft,
		PeriodStart:    start,
		PeriodEnd:      end,
		Notes:          trimNotes(notes),
		GeneratedBy:    actorUUID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	run.AppendLog(LogLevelInfo, "", "run created")

	if err := s.Runs.Create(ctx, run); err != nil {
		return nil, mapRepositoryError(err)
	}
	return run, nil
}

func (s *service) GetAll(ctx context.Context, organizationID string, query ListPayrollRunQuery) ([]PayrollRunResponse, error) {
	runs, err := s.Runs.FindAllByOrganization(ctx, organizationID, ListFilter{
		Year:   query.Year,
		Status: RunStatus(query.Status),
	})
	if err != nil {
		s.logger.Error("get all payroll runs failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	res := make([]PayrollRunResponse, len(runs))
	for i, r := range runs {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, organizationID, id string) (PayrollRunResponse, error) {
	run, err := s.Runs.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		return PayrollRunResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*run), nil
}

func (s *service) Update(
	ctx context.Context,
	organizationID, actorID, id string,
	req UpdatePayrollRunRequest,
) (PayrollRunResponse, error) {
	run, err := s.Runs.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		return PayrollRunResponse{}, mapRepositoryError(err)
	}
	if !run.Status.CanEdit() {
		return PayrollRunResponse{}, payrollerrors.ErrRunNotEditable
	}

	run.Notes = trimNotes(req.Notes)
	run.UpdatedAt = time.Now().UTC()
	if err := s.Runs.Update(ctx, run); err != nil {
		return PayrollRunResponse{}, mapRepositoryError(err)
	}

	s.record(ctx, organizationID, actorID, "payroll_run.updated", run, "payroll "+run.RunCode+" notes updated")
	return mapToResponse(*run), nil
}

func (s *service) UpdateStatus(
	ctx context.Context,
	organizationID, actorID, id string,
	req UpdateStatusRequest,
) (PayrollRunResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return PayrollRunResponse{}, payrollerrors.ErrInvalidActorID
	}

	current, err := s.Runs.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		return PayrollRunResponse{}, mapRepositoryError(err)
	}
	// A pass in flight holds the period lock until it finalizes.
	release, err := s.Locker.Acquire(ctx, PeriodLockKey(organizationID, current.Month, current.Year), time.Minute)
	if err != nil {
		log.Warn("update payroll run status while period is busy", zap.String("payroll_run_id", id), zap.Error(err))
		return PayrollRunResponse{}, err
	}
	defer release()

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Error("update payroll run status begin tx failed", zap.Error(err))
		return PayrollRunResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.Runs.WithTx(tx)
	run, err := qtx.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		return PayrollRunResponse{}, mapRepositoryError(err)
	}

	target := RunStatus(req.Status)
	if !CanTransition(run.Status, target) {
		log.Warn("rejected payroll run status transition",
			zap.String("payroll_run_id", id),
			zap.String("from", string(run.Status)),
			zap.String("to", string(target)),
		)
		return PayrollRunResponse{}, payrollerrors.ErrInvalidStatusTransition
	}

	now := time.Now().UTC()
	from := run.Status
	switch target {
	case StatusApproved:
		run.ApprovedBy = &actorUUID
		run.ApprovedAt = &now
	case StatusLocked:
		run.LockedBy = &actorUUID
		run.LockedAt = &now
		locked, err := s.Payslips.WithTx(tx).LockByPeriod(ctx, organizationID, run.Month, run.Year, now)
		if err != nil {
			log.Error("lock payslips failed", zap.Error(err))
			return PayrollRunResponse{}, err
		}
		run.AppendLog(LogLevelInfo, "", fmt.Sprintf("%d payslips locked", locked))
	case StatusCancelled:
		run.CancelledBy = &actorUUID
		run.CancelledAt = &now
	}
	run.Status = target
	run.UpdatedAt = now
	run.AppendLog(LogLevelInfo, "", fmt.Sprintf("status changed from %s to %s", from, target))

	if err := qtx.Update(ctx, run); err != nil {
		log.Error("update payroll run status persist failed", zap.Error(err))
		return PayrollRunResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		log.Error("update payroll run status commit failed", zap.Error(err))
		return PayrollRunResponse{}, err
	}

	s.record(ctx, organizationID, actorID, "payroll_run."+strings.ToLower(string(target)), run,
		fmt.Sprintf("payroll %s moved from %s to %s", run.RunCode, from, target))
	log.Info("update payroll run status success", zap.String("payroll_run_id", id), zap.String("status", string(target)))

	return mapToResponse(*run), nil
}

func (s *service) Process(ctx context.Context, organizationID, actorID, id string, async bool) (PayrollRunResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return PayrollRunResponse{}, payrollerrors.ErrInvalidActorID
	}

	if async {
		return s.enqueue(ctx, organizationID, actorID, id)
	}

	run, err := s.Processor.Process(ctx, organizationID, id, actorID)
	if err != nil {
		return PayrollRunResponse{}, err
	}
	return mapToResponse(*run), nil
}

// ProcessPeriod finds or creates the period's run and processes it.
func (s *service) ProcessPeriod(
	ctx context.Context,
	organizationID, actorID string,
	req ProcessPeriodRequest,
	async bool,
) (PayrollRunResponse, error) {
	run, err := s.Runs.FindByPeriod(ctx, organizationID, req.Month, req.Year)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollRunResponse{}, err
		}
		run, err = s.createRun(ctx, organizationID, actorID, req.Month, req.Year, nil)
		if err != nil {
			return PayrollRunResponse{}, err
		}
		s.record(ctx, organizationID, actorID, "payroll_run.created", run, "payroll "+run.RunCode+" created")
	}

	return s.Process(ctx, organizationID, actorID, run.ID.String(), async)
}

// enqueue validates the run and queues a request for the consumer.
func (s *service) enqueue(ctx context.Context, organizationID, actorID, id string) (PayrollRunResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return PayrollRunResponse{}, err
	}
	defer tx.Rollback()

	run, err := s.Runs.WithTx(tx).FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		return PayrollRunResponse{}, mapRepositoryError(err)
	}
	if !run.Status.CanProcess() {
		return PayrollRunResponse{}, payrollerrors.ErrRunNotProcessable
	}

	event, err := kafka.NewOutboxEvent(
		"payroll_run",
		run.ID.String(),
		events.EventPayrollRunRequested,
		events.PayrollRunRequestedTopic,
		contextutil.GetRequestID(ctx),
		events.PayrollRunRequestedEvent{
			EventType:      events.EventPayrollRunRequested,
			RunID:          run.ID.String(),
			OrganizationID: organizationID,
			Month:          run.Month,
			Year:           run.Year,
			RequestedBy:    actorID,
			OccurredAt:     time.Now().UTC(),
		},
	)
	if err != nil {
		return PayrollRunResponse{}, err
	}
	if err := s.Outbox.WithTx(tx).Create(ctx, event); err != nil {
		log.Error("enqueue payroll run failed", zap.Error(err))
		return PayrollRunResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return PayrollRunResponse{}, err
	}

	log.Info("payroll run queued", zap.String("payroll_run_id", id), zap.String("outbox_id", event.ID))
	resp := mapToResponse(*run)
	resp.Queued = true
	return resp, nil
}

// Rollback removes a run and everything its passes produced that is still a draft.
func (s *service) Rollback(ctx context.Context, organizationID, actorID, id string) error {
	log := contextutil.GetLogger(ctx, s.logger)

	run, err := s.Runs.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if !run.Status.CanRollback() {
		return payrollerrors.ErrRollbackLockedRun
	}

	release, err := s.Locker.Acquire(ctx, PeriodLockKey(organizationID, run.Month, run.Year), time.Minute)
	if err != nil {
		return err
	}
	defer release()

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Error("rollback payroll run begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.Runs.WithTx(tx)
	run, err = qtx.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if !run.Status.CanRollback() {
		return payrollerrors.ErrRollbackLockedRun
	}

	deleted, err := s.Payslips.WithTx(tx).DeleteDraftsByPeriod(ctx, organizationID, run.Month, run.Year)
	if err != nil {
		log.Error("rollback delete draft payslips failed", zap.Error(err))
		return err
	}
	reset, err := s.Retros.WithTx(tx).ResetAppliedForPeriod(ctx, organizationID, run.Month, run.Year)
	if err != nil {
		log.Error("rollback reset retro adjustments failed", zap.Error(err))
		return err
	}
	if err := qtx.Delete(ctx, organizationID, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("rollback payroll run commit failed", zap.Error(err))
		return err
	}

	s.record(ctx, organizationID, actorID, "payroll_run.rolled_back", run,
		fmt.Sprintf("payroll %s rolled back: %d draft payslips deleted, %d retro adjustments reset", run.RunCode, deleted, reset))
	log.Info("rollback payroll run success",
		zap.String("payroll_run_id", id),
		zap.Int64("payslips_deleted", deleted),
		zap.Int64("retro_reset", reset),
	)
	return nil
}

func (s *service) record(ctx context.Context, organizationID, actorID, action string, run *PayrollRun, message string) {
	s.Activity.Record(ctx, activitylog.Entry{
		OrganizationID: organizationID,
		ActorID:        actorID,
		Action:         action,
		EntityType:     "payroll_run",
		EntityID:       run.ID.String(),
		Message:        message,
		Meta:           map[string]any{"month": run.Month, "year": run.Year},
	})
}

func trimNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	v := strings.TrimSpace(*notes)
	if v == "" {
		return nil
	}
	return &v
}

func mapToResponse(r PayrollRun) PayrollRunResponse {
	resp := PayrollRunResponse{
		ID:                   r.ID.String(),
		OrganizationID:       r.OrganizationID.String(),
		RunCode:              r.RunCode,
		Month:                r.Month,
		Year:                 r.Year,
		Status:               string(r.Status),
		PeriodStart:          r.PeriodStart.Format("2006-01-02"),
		PeriodEnd:            r.PeriodEnd.Format("2006-01-02"),
		TotalEmployees:       r.TotalEmployees,
		ProcessedEmployees:   r.ProcessedEmployees,
		FailedEmployeesCount: r.FailedEmployeesCount,
		SkippedEmployees:     r.SkippedEmployees,
		TotalGross:           r.TotalGross,
		TotalDeductions:      r.TotalDeductions,
		TotalNet:             r.TotalNet,
		Logs:                 r.Logs,
		Notes:                r.Notes,
		GeneratedBy:          r.GeneratedBy.String(),
		ApprovedBy:           uuidString(r.ApprovedBy),
		ApprovedAt:           timeString(r.ApprovedAt),
		LockedBy:             uuidString(r.LockedBy),
		LockedAt:             timeString(r.LockedAt),
		CancelledBy:          uuidString(r.CancelledBy),
		CancelledAt:          timeString(r.CancelledAt),
		ProcessedAt:          timeString(r.ProcessedAt),
	}
	return resp
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	v := id.String()
	return &v
}

func timeString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(time.RFC3339)
	return &v
}
