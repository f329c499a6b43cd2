package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"salesstats/internal/core"
	"salesstats/internal/ledger/memory"
	applog "salesstats/internal/log"
	"salesstats/internal/report"
)

type fakePublisher struct {
	mu    sync.Mutex
	kinds []report.Kind
	runs  map[string]bool
	fail  map[report.Kind]bool
}

func (f *fakePublisher) PublishReport(_ context.Context, runID string, doc report.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail[doc.Kind] {
		return errors.New("broker unavailable")
	}
	if f.runs == nil {
		f.runs = map[string]bool{}
	}
	f.runs[runID] = true
	f.kinds = append(f.kinds, doc.Kind)
	return nil
}

type failingReader struct{}

func (failingReader) ReadTransactions(context.Context) ([]core.Transaction, error) {
	return nil, errors.New("disk on fire")
}

func money(t *testing.T, s string) core.Money {
	t.Helper()
	m, err := core.ParseMoney(s)
	if err != nil {
		t.Fatalf("parse money: %v", err)
	}
	return m
}

func sampleLedger(t *testing.T) *memory.Store {
	return memory.New(
		core.Transaction{Date: core.NewDate(2019, 1, 2), Branch: "A", ProductLine: "X", Quantity: 1, Total: money(t, "100")},
		core.Transaction{Date: core.NewDate(2019, 1, 3), Branch: "A", ProductLine: "X", Quantity: 1, Total: money(t, "50")},
		core.Transaction{Date: core.NewDate(2019, 2, 1), Branch: "B", ProductLine: "Y", Quantity: 1, Total: money(t, "200")},
	)
}

func testLogger(buf *bytes.Buffer) *applog.Logger {
	cfg := applog.DefaultConfig()
	cfg.Output = buf
	return applog.New(cfg)
}

func params() report.Params {
	return report.Params{Month: 1, Year: 2019, WeekStart: core.NewDate(2019, 1, 1), Currency: "Rs."}
}

func TestReportService_RunAllKinds(t *testing.T) {
	var logs bytes.Buffer
	pub := &fakePublisher{}
	svc := NewReportService(sampleLedger(t), pub, testLogger(&logs))

	res, err := svc.Run(context.Background(), Request{Params: params(), Source: "memory"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.RunID == "" {
		t.Fatal("expected a run id")
	}

	want := report.AllKinds()
	if len(res.Documents) != len(want) {
		t.Fatalf("expected %d documents, got %d", len(want), len(res.Documents))
	}
	for i, k := range want {
		if res.Documents[i].Kind != k {
			t.Errorf("document %d kind = %s, want %s", i, res.Documents[i].Kind, k)
		}
	}

	monthly := res.Documents[0]
	if len(monthly.Sections) != 1 || monthly.Sections[0].Rows[0][1] != "Rs.150.00" {
		t.Fatalf("unexpected monthly document %+v", monthly)
	}

	if len(pub.kinds) != len(want) || !pub.runs[res.RunID] || len(pub.runs) != 1 {
		t.Fatalf("publisher saw kinds %v runs %v", pub.kinds, pub.runs)
	}
	for _, msg := range []string{"Ledger loaded", "Report generated", "Reports published"} {
		if !strings.Contains(logs.String(), msg) {
			t.Errorf("expected log line %q in:\n%s", msg, logs.String())
		}
	}
}

func TestReportService_SelectedKindsAndNoPublisher(t *testing.T) {
	var logs bytes.Buffer
	svc := NewReportService(sampleLedger(t), nil, testLogger(&logs))

	res, err := svc.Run(context.Background(), Request{
		Kinds:  []report.Kind{report.KindPrice, report.KindDistribution},
		Params: params(),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(res.Documents) != 2 || res.Documents[0].Kind != report.KindPrice || res.Documents[1].Kind != report.KindDistribution {
		t.Fatalf("unexpected documents %+v", res.Documents)
	}
}

func TestReportService_PublishFailureIsNotFatal(t *testing.T) {
	var logs bytes.Buffer
	pub := &fakePublisher{fail: map[report.Kind]bool{report.KindWeekly: true}}
	svc := NewReportService(sampleLedger(t), pub, testLogger(&logs))

	res, err := svc.Run(context.Background(), Request{Params: params()})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(res.Documents) != 5 || len(pub.kinds) != 4 {
		t.Fatalf("expected 5 documents and 4 publishes, got %d and %d", len(res.Documents), len(pub.kinds))
	}
	if !strings.Contains(logs.String(), "Failed to publish report") || !strings.Contains(logs.String(), "broker unavailable") {
		t.Fatalf("expected publish failure to be logged:\n%s", logs.String())
	}
}

func TestReportService_Errors(t *testing.T) {
	var logs bytes.Buffer
	logger := testLogger(&logs)

	t.Run("ledger failure", func(t *testing.T) {
		svc := NewReportService(failingReader{}, nil, logger)
		_, err := svc.Run(context.Background(), Request{Params: params()})
		if err == nil || !strings.Contains(err.Error(), "disk on fire") {
			t.Fatalf("expected ledger error, got %v", err)
		}
	})

	t.Run("invalid month", func(t *testing.T) {
		pub := &fakePublisher{}
		svc := NewReportService(sampleLedger(t), pub, logger)
		p := params()
		p.Month = 13
		_, err := svc.Run(context.Background(), Request{Kinds: []report.Kind{report.KindMonthly}, Params: p})
		if !errors.Is(err, core.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
		if len(pub.kinds) != 0 {
			t.Fatal("nothing should be published after a failed run")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		svc := NewReportService(sampleLedger(t), nil, logger)
		if _, err := svc.Run(ctx, Request{Params: params()}); !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("missing reader", func(t *testing.T) {
		svc := NewReportService(nil, nil, logger)
		if _, err := svc.Run(context.Background(), Request{}); err == nil {
			t.Fatal("expected error without a reader")
		}
	})
}
