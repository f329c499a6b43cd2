package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"salesstats/internal/backend"
	"salesstats/internal/cli"
	"salesstats/internal/config"
	"salesstats/internal/ledger/csvfile"
	applog "salesstats/internal/log"
	"salesstats/internal/render"
	"salesstats/internal/services"
)

func main() {
	// Load .env file for local development (ignore errors in production)
	cli.LoadEnvFile()

	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "salesstats:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	cmd := "report"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "report":
		return runReport(ctx, args, stdout)
	case "import":
		return runImport(ctx, args, stdout)
	case "help":
		printUsage(stdout)
		return nil
	default:
		printUsage(os.Stderr)
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Sales statistics reports")
	fmt.Fprintln(w, "\nUsage:")
	fmt.Fprintln(w, "  salesstats [report] [options]")
	fmt.Fprintln(w, "  salesstats import [options]")
	fmt.Fprintln(w, "\nCommands:")
	fmt.Fprintln(w, "  report    Print the sales reports (default)")
	fmt.Fprintln(w, "  import    Copy the CSV ledger into the SQLite database")
	fmt.Fprintln(w, "  help      Show this help message")
	fmt.Fprintln(w, "\nSettings are read from the environment (and .env); flags override them.")
}

func runReport(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	source := fs.String("source", "", "ledger source: csv, sqlite, sheets or memory")
	csvPath := fs.String("csv", "", "path of the CSV ledger")
	month := fs.String("month", "", "month of the monthly report (01-12)")
	year := fs.String("year", "", "year of the monthly report (YYYY)")
	week := fs.String("week", "", "first day of the weekly report (YYYY-MM-DD)")
	reports := fs.String("reports", "", "comma separated reports: monthly,price,weekly,preference,distribution")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg, err := cli.LoadAndValidateConfig(logger, func(c *config.Config) {
		setIf(&c.LedgerSource, *source)
		setIf(&c.LedgerCSVPath, *csvPath)
		setIf(&c.ReportMonth, *month)
		setIf(&c.ReportYear, *year)
		setIf(&c.ReportWeekStart, *week)
		setIf(&c.Reports, *reports)
	})
	if err != nil {
		return err
	}

	params, err := cfg.ReportParams()
	if err != nil {
		return err
	}
	kinds, err := cfg.ReportKinds()
	if err != nil {
		return err
	}

	ctx, stop := cli.SignalContext(ctx, logger)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.ReportTimeout)
	defer cancel()
	ctx = applog.NewContext(ctx, logger)

	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return err
	}
	res, err := backend.NewFactory(logger).Create(ctx, bcfg)
	if err != nil {
		return fmt.Errorf("create ledger backend: %w", err)
	}
	defer func() {
		if err := res.Cleanup(); err != nil {
			logger.Warn("Cleanup failed", applog.FieldError, err)
		}
	}()

	logger.Info("Starting report run",
		applog.FieldOperation, applog.OpStartup,
		applog.FieldSource, cfg.LedgerSource,
		applog.FieldMonth, params.Month,
		applog.FieldYear, params.Year,
		applog.FieldWeekStart, params.WeekStart.String())

	svc := services.NewReportService(res.Reader, res.Publisher, logger)
	out, err := svc.Run(ctx, services.Request{Kinds: kinds, Params: params, Source: cfg.LedgerSource})
	if err != nil {
		return err
	}

	if err := render.New(stdout).Documents(out.Documents); err != nil {
		logger.Error("Failed to render reports", applog.FieldOperation, applog.OpRender, applog.FieldError, err)
		return err
	}
	return nil
}

func runImport(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	csvPath := fs.String("csv", "", "path of the CSV ledger to import")
	dbPath := fs.String("db", "", "path of the SQLite database")
	replace := fs.Bool("replace", false, "remove existing transactions before importing")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg, err := cli.LoadAndValidateConfig(logger, func(c *config.Config) {
		// Import always reads CSV and writes SQLite.
		c.LedgerSource = string(backend.CSVBackend)
		setIf(&c.LedgerCSVPath, *csvPath)
		setIf(&c.SQLiteDBPath, *dbPath)
	})
	if err != nil {
		return err
	}

	ctx, stop := cli.SignalContext(ctx, logger)
	defer stop()

	// Read and validate the whole file before the database is opened.
	txs, err := csvfile.New(cfg.LedgerCSVPath).ReadTransactions(ctx)
	if err != nil {
		logger.Error("Import failed",
			applog.FieldOperation, applog.OpImport,
			applog.FieldPath, cfg.LedgerCSVPath,
			applog.FieldError, err)
		return err
	}

	repo, err := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	if err != nil {
		return err
	}
	defer repo.Close()

	n, err := repo.ImportAll(ctx, txs, *replace)
	if err != nil {
		logger.Error("Import failed",
			applog.FieldOperation, applog.OpImport,
			applog.FieldPath, cfg.LedgerCSVPath,
			applog.FieldError, err)
		return err
	}
	stored, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	logger.WithComponent(applog.ComponentStorage).Info("Ledger imported",
		applog.FieldOperation, applog.OpImport,
		applog.FieldPath, cfg.LedgerCSVPath,
		applog.FieldRecords, n,
		"stored", stored,
		"db_path", cfg.SQLiteDBPath)
	fmt.Fprintf(stdout, "Imported %d transactions into %s (%d stored)\n", n, cfg.SQLiteDBPath, stored)
	return nil
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
