package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/cmlabs-hris/hris-core-go/internal/config"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-core-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hris-core-go/internal/service/attendance"
	leaveService "github.com/cmlabs-hris/hris-core-go/internal/service/leave"
	payrollService "github.com/cmlabs-hris/hris-core-go/internal/service/payroll"
	userService "github.com/cmlabs-hris/hris-core-go/internal/service/user"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// operator acts as an administrator for every command.
var operator = user.Principal{UserID: "00000000-0000-0000-0000-000000000000", Role: user.RoleAdmin}

// app holds what the subcommands share once the config and database are up.
type app struct {
	cfg *config.Config
	db  *database.DB
	cal *calendar.Calendar
	out io.Writer
}

type exportFlags struct {
	date string
	out  string
}

type userFlags struct {
	email      string
	password   string
	employeeID string
	name       string
	role       string
}

type payrollFlags struct {
	userID     string
	month      int
	year       int
	baseSalary string
	deductions string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		// cobra already printed the error
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{out: os.Stdout}

	root := &cobra.Command{
		Use:           "hrisctl",
		Short:         "Operate the HRIS attendance and leave store",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.migrate(cmd.Context())
		},
	}

	balanceCmd := &cobra.Command{
		Use:   "balance <user-id>",
		Short: "Print a user's leave balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.balance(cmd.Context(), args[0])
		},
	}

	var ef exportFlags
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the attendance register of a day as xlsx",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.export(cmd.Context(), ef)
		},
	}
	exportCmd.Flags().StringVar(&ef.date, "date", "", "Day as YYYY-MM-DD (default today)")
	exportCmd.Flags().StringVar(&ef.out, "out", "", "Output file (default attendance-<date>.xlsx)")

	payrollCmd := &cobra.Command{
		Use:   "payroll",
		Short: "Payroll records",
	}

	var pf payrollFlags
	upsertCmd := &cobra.Command{
		Use:   "upsert",
		Short: "Create or overwrite a user's payroll for a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.upsertPayroll(cmd.Context(), pf)
		},
	}
	f := upsertCmd.Flags()
	f.StringVar(&pf.userID, "user", "", "User ID")
	f.IntVar(&pf.month, "month", 0, "Month (1-12)")
	f.IntVar(&pf.year, "year", 0, "Year")
	f.StringVar(&pf.baseSalary, "base-salary", "0", "Base salary")
	f.StringVar(&pf.deductions, "deductions", "0", "Deductions")
	_ = upsertCmd.MarkFlagRequired("user")
	_ = upsertCmd.MarkFlagRequired("month")
	_ = upsertCmd.MarkFlagRequired("year")

	payrollCmd.AddCommand(upsertCmd)

	userCmd := &cobra.Command{
		Use:   "user",
		Short: "User accounts",
	}

	var uf userFlags
	createUserCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user with any role, e.g. the first administrator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.createUser(cmd.Context(), uf)
		},
	}
	userFlagSet := createUserCmd.Flags()
	userFlagSet.StringVar(&uf.email, "email", "", "Email")
	userFlagSet.StringVar(&uf.password, "password", "", "Password (min 8 characters)")
	userFlagSet.StringVar(&uf.employeeID, "employee-id", "", "Employee ID")
	userFlagSet.StringVar(&uf.name, "name", "", "Full name")
	userFlagSet.StringVar(&uf.role, "role", string(user.RoleEmployee), "EMPLOYEE or ADMIN")
	for _, name := range []string{"email", "password", "employee-id", "name"} {
		_ = createUserCmd.MarkFlagRequired(name)
	}

	userCmd.AddCommand(createUserCmd)
	root.AddCommand(migrateCmd, balanceCmd, exportCmd, payrollCmd, userCmd)
	return root
}

func (a *app) open() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	a.cfg = cfg
	a.db = db
	a.cal = calendar.New(cfg.App.Timezone)
	return nil
}

func (a *app) close() {
	if a.db != nil {
		a.db.Close()
	}
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) migrate(ctx context.Context) error {
	applied, err := postgresql.Migrate(ctx, a.db)
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		fmt.Fprintln(a.out, "schema is up to date")
		return nil
	}
	for _, name := range applied {
		fmt.Fprintln(a.out, "applied", name)
	}
	return nil
}

func (a *app) balance(ctx context.Context, userID string) error {
	svc := leaveService.NewLeaveService(
		postgresql.NewLeaveRequestRepository(a.db),
		postgresql.NewUserRepository(a.db),
		leaveService.Config{YearlyAllowance: a.cfg.Leave.YearlyAllowance, ReviewPolicy: a.cfg.Leave.ReviewPolicy},
	)
	balance, err := svc.ComputeBalance(ctx, operator, userID)
	if err != nil {
		return err
	}
	return a.printJSON(balance)
}

func (a *app) export(ctx context.Context, flags exportFlags) error {
	svc := attendanceService.NewAttendanceService(postgresql.NewAttendanceRepository(a.db), a.cal)
	file, err := svc.ExportDay(ctx, operator, attendance.DayFilter{Date: flags.date})
	if err != nil {
		return err
	}

	path := flags.out
	if path == "" {
		path = file.Filename
	}
	if err := os.WriteFile(path, file.Content, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	slog.Info("attendance register written", "path", path, "bytes", len(file.Content))
	fmt.Fprintln(a.out, path)
	return nil
}

func (a *app) createUser(ctx context.Context, flags userFlags) error {
	svc := userService.NewUserService(
		postgresql.NewUserRepository(a.db),
		jwt.NewJWTService(a.cfg.JWT.Secret, a.cfg.JWT.AccessExpiration),
	)
	role := strings.ToUpper(flags.role)
	created, err := svc.CreateEmployee(ctx, operator, user.RegisterRequest{
		Email:      flags.email,
		Password:   flags.password,
		EmployeeID: flags.employeeID,
		Name:       flags.name,
		Role:       &role,
	})
	if err != nil {
		return err
	}
	return a.printJSON(created)
}

func (a *app) upsertPayroll(ctx context.Context, flags payrollFlags) error {
	base, err := decimal.NewFromString(flags.baseSalary)
	if err != nil {
		return errors.New("--base-salary must be a decimal number")
	}
	deductions, err := decimal.NewFromString(flags.deductions)
	if err != nil {
		return errors.New("--deductions must be a decimal number")
	}

	svc := payrollService.NewPayrollService(
		postgresql.NewPayrollRepository(a.db),
		postgresql.NewUserRepository(a.db),
		postgresql.NewAttendanceRepository(a.db),
		postgresql.NewLeaveRequestRepository(a.db),
		a.cal,
	)
	record, err := svc.Upsert(ctx, operator, payroll.UpsertPayrollRequest{
		UserID:     flags.userID,
		Month:      flags.month,
		Year:       flags.year,
		BaseSalary: base,
		Deductions: deductions,
	})
	if err != nil {
		return err
	}
	return a.printJSON(record)
}
