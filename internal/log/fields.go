package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldRunID     = "run_id"
	FieldSuccess   = "success"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldReport    = "report"
	FieldSections  = "sections"
	FieldRows      = "rows"
	FieldDuration  = "duration_ms"
	FieldSource    = "source"
	FieldPath      = "path"
	FieldRecords   = "records"
	FieldYear      = "year"
	FieldMonth     = "month"
	FieldWeekStart = "week_start"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentReport  = "report"
	ComponentAMQP    = "amqp"
	ComponentSheets  = "sheets"
	ComponentBackend = "backend"
	ComponentRender  = "render"
)

// Operations defines standard operation names
const (
	OpLoad     = "load"
	OpImport   = "import"
	OpGenerate = "generate"
	OpPublish  = "publish"
	OpRender   = "render"
	OpValidate = "validate"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithRunID adds the run identifier shared by every report of one invocation
func (f LogFields) WithRunID(runID string) LogFields {
	f[FieldRunID] = runID
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithReport adds report-related fields
func (f LogFields) WithReport(kind string, sections, rows int, durationMs int64) LogFields {
	f[FieldReport] = kind
	f[FieldSections] = sections
	f[FieldRows] = rows
	f[FieldDuration] = durationMs
	return f
}

// WithSource adds ledger source fields
func (f LogFields) WithSource(source string, records int) LogFields {
	f[FieldSource] = source
	f[FieldRecords] = records
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
