package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	portssvc "github.com/parish-dms/parish_ledger_app/internal/core/ports/services"
	"github.com/parish-dms/parish_ledger_app/internal/core/services"
	"github.com/parish-dms/parish_ledger_app/internal/platform/config"
	"github.com/parish-dms/parish_ledger_app/internal/repositories/database/pgsql"
	"github.com/parish-dms/parish_ledger_app/pkg/database"
)

// Operational tasks runnable outside the HTTP server, e.g. from cron:
//
//	pla_tasks -task reconcile      recompute and repair every cached balance
//	pla_tasks -task check-contra   scan contra/intra pairs for inconsistencies
func main() {
	task := flag.String("task", "", "task to run: reconcile | check-contra")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if *task == "" {
		fmt.Fprintln(os.Stderr, "usage: pla_tasks -task reconcile|check-contra")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()

	repos := pgsql.NewRepositoryProvider(dbPool, cfg.AllowNegativeBalance)
	container := services.NewServiceContainer(cfg, repos)

	switch *task {
	case "reconcile":
		err = runReconcile(ctx, container, logger)
	case "check-contra":
		err = runContraCheck(ctx, container, logger)
	default:
		fmt.Fprintf(os.Stderr, "unknown task %q\n", *task)
		os.Exit(2)
	}
	if err != nil {
		logger.Error("Task failed", slog.String("task", *task), slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func runReconcile(ctx context.Context, container *portssvc.ServiceContainer, logger *slog.Logger) error {
	report, err := container.Ledger.ReconcileAll(ctx, "pla_tasks")
	if err != nil {
		return err
	}

	for _, repair := range report.Repairs {
		logger.Warn("Repaired cached balance",
			slog.String("account_id", repair.AccountID),
			slog.String("old_balance", repair.OldBalance.String()),
			slog.String("new_balance", repair.NewBalance.String()))
	}
	for _, failure := range report.Failures {
		logger.Error("Failed to repair account",
			slog.String("account_id", failure.AccountID),
			slog.String("reason", failure.Reason))
	}

	logger.Info("Reconciliation complete",
		slog.Int("checked", report.Checked),
		slog.Int("repaired", len(report.Repairs)),
		slog.Int("failed", len(report.Failures)),
		slog.Duration("duration", report.Duration))
	return nil
}

func runContraCheck(ctx context.Context, container *portssvc.ServiceContainer, logger *slog.Logger) error {
	issues, err := container.Audit.ScanContraEntries(ctx)
	if err != nil {
		return err
	}

	for _, issue := range issues {
		logger.Warn("Pair inconsistency",
			slog.String("reference_number", issue.ReferenceNumber),
			slog.String("kind", string(issue.Kind)),
			slog.Time("date", issue.Date),
			slog.String("details", issue.Details))
	}

	logger.Info("Contra scan complete", slog.Int("issues", len(issues)))
	if len(issues) > 0 {
		os.Exit(3)
	}
	return nil
}
