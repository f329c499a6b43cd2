package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"salesstats/internal/report"
)

// ReportMessage carries one generated report to downstream consumers.
// RunID is shared by every report produced in the same run.
type ReportMessage struct {
	ID          string           `json:"id"`
	RunID       string           `json:"run_id"`
	Kind        report.Kind      `json:"kind"`
	Title       string           `json:"title"`
	Sections    []report.Section `json:"sections"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// NewReportMessage wraps a rendered document with a fresh message id.
func NewReportMessage(runID string, doc report.Document) *ReportMessage {
	return &ReportMessage{
		ID:          uuid.NewString(),
		RunID:       runID,
		Kind:        doc.Kind,
		Title:       doc.Title,
		Sections:    doc.Sections,
		GeneratedAt: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ReportMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
