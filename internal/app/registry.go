package app

import (
	"database/sql"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/activitylog"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/attendance"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/config"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/employee"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/employeesalary"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/messaging/kafka"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/middleware"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/payroll"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/payslip"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/rbac"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/retro"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/salarycomponent"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/counter"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/taxregime"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// payrollModule is shared by the API and the consumer process.
type payrollModule struct {
	repos     repositories
	processor *payroll.Processor
	service   payroll.Service
}

type repositories struct {
	attendance      attendance.Repository
	counter         counter.Repository
	employee        employee.Repository
	employeeSalary  employeesalary.Repository
	outbox          kafka.OutboxRepository
	payroll         payroll.Repository
	payslip         payslip.Repository
	rbac            rbac.Repository
	retro           retro.Repository
	salaryComponent salarycomponent.Repository
}

func newRepositories(db *sql.DB, gormDB *gorm.DB) repositories {
	return repositories{
		attendance:      attendance.NewRepository(gormDB),
		counter:         counter.NewRepository(gormDB),
		employee:        employee.NewRepository(gormDB),
		employeeSalary:  employeesalary.NewRepository(gormDB),
		outbox:          kafka.NewOutboxRepository(db),
		payroll:         payroll.NewRepository(gormDB),
		payslip:         payslip.NewRepository(gormDB),
		rbac:            rbac.NewRepository(gormDB),
		retro:           retro.NewRepository(gormDB),
		salaryComponent: salarycomponent.NewRepository(gormDB),
	}
}

func newPayrollModule(
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	activity activitylog.Sink,
	logger *zap.Logger,
) payrollModule {
	repos := newRepositories(db, gormDB)
	locker := payroll.NewLocker(rdb, logger)

	processor := payroll.NewProcessor(payroll.ProcessorDeps{
		DB:         db,
		Runs:       repos.payroll,
		Employees:  repos.employee,
		Attendance: repos.attendance,
		Retros:     repos.retro,
		Payslips:   repos.payslip,
		Counter:    repos.counter,
		Outbox:     repos.outbox,
		Locker:     locker,
		Activity:   activity,
	}, payroll.ProcessorOptions{
		EmployeeTimeout: cfg.EmployeeTimeout,
		LockTTL:         cfg.RunLockTTL,
	}, logger)

	service := payroll.NewService(payroll.ServiceDeps{
		DB:        db,
		Runs:      repos.payroll,
		Payslips:  repos.payslip,
		Retros:    repos.retro,
		Outbox:    repos.outbox,
		Processor: processor,
		Locker:    locker,
		Activity:  activity,
	}, logger)

	return payrollModule{repos: repos, processor: processor, service: service}
}

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	activity activitylog.Sink,
	logger *zap.Logger,
) error {
	pm := newPayrollModule(cfg, db, gormDB, rdb, activity, logger)
	repos := pm.repos

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(repos.rbac, enforcer, logger)

	// --- Services ---
	attendanceService := attendance.NewService(db, repos.attendance, repos.employee, logger)
	employeeService := employee.NewService(db, repos.employee, repos.counter, rdb, logger)
	employeeSalaryService := employeesalary.NewService(db, repos.employeeSalary, repos.employee, repos.salaryComponent, activity, logger)
	payslipService := payslip.NewService(repos.payslip, activity, logger)
	retroService := retro.NewService(repos.retro, repos.employee, activity, logger)
	salaryComponentService := salarycomponent.NewService(db, repos.salaryComponent, rdb, activity, logger)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	employeeSalaryHandler := employeesalary.NewHandler(employeeSalaryService, logger)
	payrollHandler := payroll.NewHandler(pm.service, logger)
	payslipHandler := payslip.NewHandler(payslipService, logger)
	rbacHandler := rbac.NewHandler(rbacService)
	retroHandler := retro.NewHandler(retroService, logger)
	salaryComponentHandler := salarycomponent.NewHandler(salaryComponentService, logger)
	taxRegimeHandler := taxregime.NewHandler()

	// --- Routes Registration ---
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	api := router.Group("/api/v1")
	api.Use(
		middleware.RequestID(),
		middleware.RateLimitByIP(50, 100),
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.ContextLogger(logger),
	)
	{
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		employeesalary.RegisterRoutes(api, employeeSalaryHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
		payslip.RegisterRoutes(api, payslipHandler, rbacService)
		retro.RegisterRoutes(api, retroHandler, rbacService)
		salarycomponent.RegisterRoutes(api, salaryComponentHandler, rbacService)
		taxregime.RegisterRoutes(api, taxRegimeHandler, rbacService)
		rbac.RegisterRoutes(api, rbacHandler)
	}

	return nil
}
