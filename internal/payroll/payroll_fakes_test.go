package payroll_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/activitylog"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/attendance"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/employee"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/messaging/kafka"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/payroll"
	payrollerrors "github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/payroll/errors"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/payslip"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/retro"
	retroerrors "github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/retro/errors"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/salary"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/counter"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The fakes below keep state in memory so a pass can be observed end to end.
// WithTx returns the same store; commits and rollbacks are asserted through sqlmock.

type fakeRuns struct {
	mu   sync.Mutex
	runs map[string]payroll.PayrollRun
}

func newFakeRuns(runs ...payroll.PayrollRun) *fakeRuns {
	f := &fakeRuns{runs: map[string]payroll.PayrollRun{}}
	for _, r := range runs {
		f.runs[r.ID.String()] = r
	}
	return f
}

func (f *fakeRuns) WithTx(*sql.Tx) payroll.Repository { return f }

func (f *fakeRuns) Create(_ context.Context, run *payroll.PayrollRun) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs[run.ID.String()] = *run
	return nil
}

func (f *fakeRuns) FindAllByOrganization(_ context.Context, organizationID string, _ payroll.ListFilter) ([]payroll.PayrollRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []payroll.PayrollRun
	for _, r := range f.runs {
		if r.OrganizationID.String() == organizationID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRuns) FindByIDAndOrganization(_ context.Context, organizationID, id string) (*payroll.PayrollRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.runs[id]
	if !ok || r.OrganizationID.String() != organizationID {
		return nil, gorm.ErrRecordNotFound
	}
	r.Logs = append([]payroll.RunLogEntry(nil), r.Logs...)
	return &r, nil
}

func (f *fakeRuns) FindByPeriod(_ context.Context, organizationID string, month, year int) (*payroll.PayrollRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.runs {
		if r.OrganizationID.String() == organizationID && r.Month == month && r.Year == year {
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRuns) Update(_ context.Context, run *payroll.PayrollRun) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs[run.ID.String()] = *run
	return nil
}

func (f *fakeRuns) UpdateIfStatus(_ context.Context, run *payroll.PayrollRun, expected payroll.RunStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.runs[run.ID.String()]
	if !ok || cur.Status != expected {
		return payrollerrors.ErrRunStatusChanged
	}
	f.runs[run.ID.String()] = *run
	return nil
}

// setStatus changes the stored run behind the processor's back.
func (f *fakeRuns) setStatus(id uuid.UUID, status payroll.RunStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := f.runs[id.String()]
	r.Status = status
	f.runs[id.String()] = r
}

func (f *fakeRuns) Delete(_ context.Context, _ string, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.runs[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.runs, id)
	return nil
}

func (f *fakeRuns) get(id uuid.UUID) (payroll.PayrollRun, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.runs[id.String()]
	return r, ok
}

type fakeEmployees struct {
	employee.Repository
	active []employee.Employee
	err    error
}

func (f *fakeEmployees) FindActiveByOrganization(context.Context, string) ([]employee.Employee, error) {
	return f.active, f.err
}

type fakeAttendance struct {
	attendance.Repository
	lop     map[uuid.UUID]int
	onCount func()
}

func (f *fakeAttendance) WithTx(*sql.Tx) attendance.Repository { return f }

func (f *fakeAttendance) CountByStatus(_ context.Context, _, employeeID string, _, _ time.Time, _ []attendance.Status) (int, error) {
	if f.onCount != nil {
		f.onCount()
	}
	return f.lop[uuid.MustParse(employeeID)], nil
}

type fakeRetros struct {
	retro.Repository
	mu   sync.Mutex
	adjs []retro.RetroAdjustment
}

func (f *fakeRetros) WithTx(*sql.Tx) retro.Repository { return f }

func (f *fakeRetros) FindPendingForEmployee(_ context.Context, _, employeeID string, month, year int) ([]retro.RetroAdjustment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []retro.RetroAdjustment
	for _, a := range f.adjs {
		if a.EmployeeID.String() != employeeID || a.Status != retro.StatusPending {
			continue
		}
		if a.TargetYear*12+a.TargetMonth <= year*12+month {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRetros) MarkApplied(_ context.Context, _ string, ids []uuid.UUID, month, year int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		found := false
		for i := range f.adjs {
			if f.adjs[i].ID == id && f.adjs[i].Status == retro.StatusPending {
				m, y := month, year
				f.adjs[i].Status = retro.StatusApplied
				f.adjs[i].AppliedMonth = &m
				f.adjs[i].AppliedYear = &y
				found = true
			}
		}
		if !found {
			return retroerrors.ErrRetroAdjustmentAlreadyConsumed
		}
	}
	return nil
}

func (f *fakeRetros) ResetAppliedForPeriod(_ context.Context, _ string, month, year int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for i := range f.adjs {
		a := &f.adjs[i]
		if a.Status == retro.StatusApplied && a.AppliedMonth != nil && *a.AppliedMonth == month && *a.AppliedYear == year {
			a.Status = retro.StatusPending
			a.AppliedMonth = nil
			a.AppliedYear = nil
			n++
		}
	}
	return n, nil
}

func (f *fakeRetros) ResetAppliedForEmployeePeriod(_ context.Context, _, employeeID string, month, year int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for i := range f.adjs {
		a := &f.adjs[i]
		if a.EmployeeID.String() != employeeID || a.Status != retro.StatusApplied || a.AppliedMonth == nil {
			continue
		}
		if *a.AppliedMonth == month && *a.AppliedYear == year {
			a.Status = retro.StatusPending
			a.AppliedMonth = nil
			a.AppliedYear = nil
			n++
		}
	}
	return n, nil
}

func (f *fakeRetros) byID(id uuid.UUID) retro.RetroAdjustment {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.adjs {
		if a.ID == id {
			return a
		}
	}
	return retro.RetroAdjustment{}
}

type fakePayslips struct {
	payslip.Repository
	mu    sync.Mutex
	slips map[string]payslip.Payslip
}

func newFakePayslips(slips ...payslip.Payslip) *fakePayslips {
	f := &fakePayslips{slips: map[string]payslip.Payslip{}}
	for _, s := range slips {
		f.slips[slipKey(s.EmployeeID.String(), s.Month, s.Year)] = s
	}
	return f
}

func slipKey(employeeID string, month, year int) string {
	return fmt.Sprintf("%s:%04d-%02d", employeeID, year, month)
}

func (f *fakePayslips) WithTx(*sql.Tx) payslip.Repository { return f }

func (f *fakePayslips) FindByEmployeePeriod(_ context.Context, _, employeeID string, month, year int) (*payslip.Payslip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slips[slipKey(employeeID, month, year)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func (f *fakePayslips) Create(_ context.Context, p *payslip.Payslip) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slips[slipKey(p.EmployeeID.String(), p.Month, p.Year)] = *p
	return nil
}

func (f *fakePayslips) Update(_ context.Context, p *payslip.Payslip) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := slipKey(p.EmployeeID.String(), p.Month, p.Year)
	if cur, ok := f.slips[key]; !ok || cur.Frozen() {
		return gorm.ErrRecordNotFound
	}
	f.slips[key] = *p
	return nil
}

func (f *fakePayslips) DeleteDraftsByPeriod(_ context.Context, _ string, month, year int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for k, s := range f.slips {
		if s.Month == month && s.Year == year && !s.Frozen() {
			delete(f.slips, k)
			n++
		}
	}
	return n, nil
}

func (f *fakePayslips) DeleteDraft(_ context.Context, _ string, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k, s := range f.slips {
		if s.ID.String() == id && s.Status == payslip.StatusDraft {
			delete(f.slips, k)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakePayslips) FindAllByOrganization(_ context.Context, _ string, filter payslip.ListFilter) ([]payslip.Payslip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []payslip.Payslip
	for _, s := range f.slips {
		if filter.Month > 0 && (s.Month != filter.Month || s.Year != filter.Year) {
			continue
		}
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakePayslips) LockByPeriod(_ context.Context, _ string, month, year int, at time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for k, s := range f.slips {
		if s.Month == month && s.Year == year && s.Status == payslip.StatusDraft {
			s.Status = payslip.StatusLocked
			s.LockedAt = &at
			f.slips[k] = s
			n++
		}
	}
	return n, nil
}

func (f *fakePayslips) all() []payslip.Payslip {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]payslip.Payslip, 0, len(f.slips))
	for _, s := range f.slips {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PayslipNumber < out[j].PayslipNumber })
	return out
}

func (f *fakePayslips) forEmployee(id uuid.UUID, month, year int) (payslip.Payslip, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slips[slipKey(id.String(), month, year)]
	return s, ok
}

// fakeCounter only hands out numbers through WithTx, the way the processor must
// allocate them to keep the sequence gapless.
type fakeCounter struct {
	mu    sync.Mutex
	next  int64
	calls int
	txs   map[*sql.Tx]struct{}
}

func (f *fakeCounter) WithTx(tx *sql.Tx) counter.Repository {
	return &txCounter{fakeCounter: f, tx: tx}
}

func (f *fakeCounter) GetNextValue(context.Context, string, string) (int64, error) {
	return 0, errors.New("counter used outside a transaction")
}

type txCounter struct {
	*fakeCounter
	tx *sql.Tx
}

func (c *txCounter) GetNextValue(context.Context, string, string) (int64, error) {
	if c.tx == nil {
		return 0, errors.New("counter bound to a nil transaction")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.txs == nil {
		c.txs = map[*sql.Tx]struct{}{}
	}
	c.txs[c.tx] = struct{}{}
	c.next++
	c.calls++
	return c.next, nil
}

type fakeOutbox struct {
	kafka.OutboxRepository
	mu     sync.Mutex
	events []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(*sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutbox) Create(_ context.Context, event kafka.OutboxEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

type recordingSink struct {
	mu      sync.Mutex
	entries []activitylog.Entry
}

func (s *recordingSink) Record(_ context.Context, e activitylog.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
}

func (s *recordingSink) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Action
	}
	return out
}

// standardStructure pays 30000 basic, 40% HRA and deducts a fixed 500.
func standardStructure() *salary.Structure {
	return &salary.Structure{
		SalaryType:  salary.SalaryTypeMonthly,
		BasicSalary: 30000,
		Earnings: []salary.ComponentLine{
			{Name: "HRA", Kind: salary.KindEarning, Mode: salary.ModePercentage, Percentage: 40},
		},
		Deductions: []salary.ComponentLine{
			{Name: "Canteen", Kind: salary.KindDeduction, Mode: salary.ModeFixed, FixedAmount: 500},
		},
	}
}

func activeEmployee(orgID uuid.UUID, code string, structure *salary.Structure) employee.Employee {
	return employee.Employee{
		ID:               uuid.New(),
		OrganizationID:   orgID,
		EmployeeCode:     code,
		FullName:         "Employee " + code,
		Status:           employee.StatusActive,
		WorkState:        "Karnataka",
		PayslipStructure: structure,
	}
}

func draftRun(orgID uuid.UUID, month, year int) payroll.PayrollRun {
	start, end := salary.PeriodBounds(year, month)
	return payroll.PayrollRun{
		ID:             uuid.New(),
		OrganizationID: orgID,
		RunCode:        fmt.Sprintf("RUN-%04d%02d", year, month),
		Month:          month,
		Year:           year,
		Status:         payroll.StatusDraft,
		PeriodStart:    start,
		PeriodEnd:      end,
		GeneratedBy:    uuid.New(),
	}
}
