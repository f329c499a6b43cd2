package report

import (
	"errors"
	"reflect"
	"testing"

	"salesstats/internal/core"
)

func TestParseKinds(t *testing.T) {
	cases := []struct {
		in   string
		want []Kind
		ok   bool
	}{
		{"", AllKinds(), true},
		{"weekly,monthly", []Kind{KindMonthly, KindWeekly}, true},
		{" Price , price ,", []Kind{KindPrice}, true},
		{"monthly,yearly", nil, false},
		{",", nil, false},
	}
	for _, tc := range cases {
		got, err := ParseKinds(tc.in)
		if tc.ok {
			if err != nil || !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("%q expected %v, got %v (err=%v)", tc.in, tc.want, got, err)
			}
			continue
		}
		if !errors.Is(err, core.ErrInvalidArgument) {
			t.Fatalf("%q expected ErrInvalidArgument, got %v", tc.in, err)
		}
	}
}

func TestMonthlyDocument(t *testing.T) {
	rep, err := NewEngine(scenarioLedger()).MonthlySales(1, 2019)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := rep.Document("Rs.")
	if doc.Title != "Monthly Sales Analysis for 01-2019" {
		t.Fatalf("unexpected title %q", doc.Title)
	}
	want := []Section{{
		Title:   "Branch A",
		Headers: MonthlyHeaders,
		Rows:    [][]string{{"X", "Rs.150.00", "2"}},
	}}
	if !reflect.DeepEqual(doc.Sections, want) {
		t.Fatalf("sections = %+v, want %+v", doc.Sections, want)
	}
}

func TestWeeklyDocumentEmptyWindow(t *testing.T) {
	rep, err := NewEngine(scenarioLedger()).WeeklySales(core.NewDate(2019, 3, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := rep.Document("Rs.")
	if doc.Title != "Weekly Sales Analysis for the week starting from 2019-03-01" {
		t.Fatalf("unexpected title %q", doc.Title)
	}
	if len(doc.Sections) != 1 || len(doc.Sections[0].Rows) != 0 {
		t.Fatalf("expected one empty section, got %+v", doc.Sections)
	}
	if !reflect.DeepEqual(doc.Sections[0].Headers, WeeklyHeaders) {
		t.Fatalf("unexpected headers %v", doc.Sections[0].Headers)
	}
}

func TestBuildEveryKind(t *testing.T) {
	e := NewEngine(scenarioLedger())
	p := Params{Month: 1, Year: 2019, WeekStart: core.NewDate(2019, 1, 1), Currency: "$"}
	for _, k := range AllKinds() {
		doc, err := e.Build(k, p)
		if err != nil {
			t.Fatalf("%s: %v", k, err)
		}
		if doc.Kind != k || doc.Title == "" {
			t.Errorf("%s: unexpected document %+v", k, doc)
		}
	}
	if _, err := e.Build(Kind("yearly"), p); !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for unknown kind, got %v", err)
	}
	if _, err := e.Build(KindMonthly, Params{Month: 13, Year: 2019}); !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for bad month, got %v", err)
	}
}
