package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"salesstats/internal/ledger"
	applog "salesstats/internal/log"
	"salesstats/internal/report"
)

// Publisher delivers a generated report somewhere outside the process.
type Publisher interface {
	PublishReport(ctx context.Context, runID string, doc report.Document) error
}

// Request selects which reports to build and with which arguments.
type Request struct {
	Kinds  []report.Kind
	Params report.Params
	// Source names the ledger for log output only.
	Source string
}

// Result holds the documents of one run in presentation order.
type Result struct {
	RunID     string
	Documents []report.Document
}

// ReportService loads a ledger once and builds every requested report from it.
type ReportService struct {
	reader    ledger.Reader
	publisher Publisher
	logger    *applog.Logger
	events    *applog.StructuredLogger
}

// NewReportService wires a ledger reader and an optional publisher.
// A nil logger falls back to the process default.
func NewReportService(reader ledger.Reader, publisher Publisher, logger *applog.Logger) *ReportService {
	if logger == nil {
		logger = applog.FromContext(context.Background())
	}
	return &ReportService{
		reader:    reader,
		publisher: publisher,
		logger:    logger.WithComponent(applog.ComponentReport),
		events:    applog.NewStructuredLogger(logger),
	}
}

// Run builds the requested reports concurrently. Any build error fails the run.
// Publishing happens after every report is built; a publish error is logged and skipped.
func (s *ReportService) Run(ctx context.Context, req Request) (Result, error) {
	if s.reader == nil {
		return Result{}, errors.New("report service has no ledger reader")
	}
	kinds := req.Kinds
	if len(kinds) == 0 {
		kinds = report.AllKinds()
	}

	runID := uuid.NewString()
	res := Result{RunID: runID}

	txs, err := s.reader.ReadTransactions(ctx)
	if err != nil {
		s.events.LogError(ctx, "Failed to load ledger", err, applog.ComponentLedger, applog.OpLoad,
			applog.NewFields().WithRunID(runID))
		return res, fmt.Errorf("load ledger: %w", err)
	}
	s.events.LogLedgerLoaded(ctx, req.Source, len(txs))

	engine := report.NewEngine(txs)
	docs := make([]report.Document, len(kinds))

	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		i, kind := i, kind
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			doc, err := engine.Build(kind, req.Params)
			if err != nil {
				return fmt.Errorf("%s report: %w", kind, err)
			}
			docs[i] = doc
			s.events.LogReportGenerated(gctx, runID, kind.String(), len(doc.Sections), countRows(doc), time.Since(start).Milliseconds())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.events.LogError(ctx, "Report run failed", err, applog.ComponentReport, applog.OpGenerate,
			applog.NewFields().WithRunID(runID))
		return res, err
	}
	res.Documents = docs

	s.publish(ctx, runID, docs)
	return res, nil
}

func (s *ReportService) publish(ctx context.Context, runID string, docs []report.Document) {
	if s.publisher == nil {
		s.logger.DebugContext(ctx, "No publisher configured, skipping report publishing", applog.FieldRunID, runID)
		return
	}
	published := 0
	for _, doc := range docs {
		if err := s.publisher.PublishReport(ctx, runID, doc); err != nil {
			s.events.LogError(ctx, "Failed to publish report", err, applog.ComponentAMQP, applog.OpPublish,
				applog.NewFields().WithRunID(runID).WithReport(doc.Kind.String(), len(doc.Sections), countRows(doc), 0))
			continue
		}
		published++
	}
	s.logger.InfoContext(ctx, "Reports published",
		applog.FieldRunID, runID,
		"published", published,
		"total", len(docs))
}

func countRows(doc report.Document) int {
	n := 0
	for _, sec := range doc.Sections {
		n += len(sec.Rows)
	}
	return n
}
