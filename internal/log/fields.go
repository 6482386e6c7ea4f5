package log

import "time"

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldQuery      = "query"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldSuccess    = "success"
	FieldError      = "error"
	FieldErrorType  = "error_type"
	FieldOperation  = "operation"
	FieldYear       = "year"
	FieldMonth      = "month"
	FieldTxID       = "transaction_id"
	FieldTxType     = "type"
	FieldCategory   = "category"
	FieldAmount     = "amount"
	FieldCount      = "count"
	FieldNudge      = "nudge"
)

const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentInsights = "insights"
	ComponentStorage  = "storage"
	ComponentWorker   = "worker"
	ComponentCLI      = "cli"
)

const (
	OpCreate   = "create"
	OpDelete   = "delete"
	OpList     = "list"
	OpReport   = "report"
	OpExport   = "export"
	OpDigest   = "digest"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)

const (
	ErrorTypeValidation = "validation_error"
	ErrorTypeNotFound   = "not_found_error"
	ErrorTypeInternal   = "internal_error"
)

// Fields is an ordered builder of slog key/value pairs.
type Fields []any

func NewFields() Fields {
	return make(Fields, 0, 8)
}

func (f Fields) With(key string, value any) Fields {
	return append(f, key, value)
}

func (f Fields) WithRequestID(id string) Fields {
	if id == "" {
		return f
	}
	return append(f, FieldRequestID, id)
}

func (f Fields) WithError(err error) Fields {
	if err == nil {
		return f
	}
	return append(f, FieldError, err.Error())
}

func (f Fields) WithOperation(op string) Fields {
	return append(f, FieldOperation, op)
}

func (f Fields) WithPeriod(year int, month time.Month) Fields {
	return append(f, FieldYear, year, FieldMonth, int(month))
}

func (f Fields) WithTransaction(id, txType, category string, amount float64) Fields {
	return append(f,
		FieldTxID, id,
		FieldTxType, txType,
		FieldCategory, category,
		FieldAmount, amount)
}

func (f Fields) WithHTTPRequest(method, path, query string) Fields {
	return append(f, FieldMethod, method, FieldPath, path, FieldQuery, query)
}

func (f Fields) WithHTTPResponse(statusCode int, d time.Duration) Fields {
	return append(f,
		FieldStatusCode, statusCode,
		FieldDuration, d.Milliseconds(),
		FieldSuccess, statusCode < 400)
}
