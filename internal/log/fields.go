package log

// Common field names for structured logging
const (
	FieldComponent       = "component"
	FieldError           = "error"
	FieldOperation       = "operation"
	FieldBackend         = "backend"
	FieldPath            = "path"
	FieldRow             = "row"
	FieldItem            = "item"
	FieldScheduleType    = "schedule_type"
	FieldScheduleExpr    = "schedule_expr"
	FieldDate            = "date"
	FieldRules           = "rules"
	FieldOccurrences     = "occurrences"
	FieldDays            = "days"
	FieldWindowStart     = "window_start"
	FieldWindowEnd       = "window_end"
	FieldStartingBalance = "starting_balance"
	FieldMinBalance      = "min_balance"
	FieldMaxBalance      = "max_balance"
	FieldMeanBalance     = "mean_balance"
	FieldIndex           = "index"
	FieldDocuments       = "documents"
	FieldDuration        = "duration_ms"
)

// Components defines standard component names
const (
	ComponentApp        = "app"
	ComponentProjection = "projection"
	ComponentSheets     = "sheets"
	ComponentStorage    = "storage"
	ComponentAMQP       = "amqp"
	ComponentWorker     = "worker"
	ComponentCache      = "cache"
)

// Operations defines standard operation names
const (
	OpRead     = "read"
	OpProject  = "project"
	OpIndex    = "index"
	OpPublish  = "publish"
	OpConsume  = "consume"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
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

// WithIndex adds the ledger index name and document count
func (f LogFields) WithIndex(index string, documents int) LogFields {
	f[FieldIndex] = index
	f[FieldDocuments] = documents
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
