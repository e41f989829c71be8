package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldQuery       = "query"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldUserAgent   = "user_agent"
	FieldSuccess     = "success"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldBackend     = "backend"
	FieldRows        = "rows"
	FieldRow         = "row"
	FieldColumn      = "column"
	FieldStartup     = "startup"
	FieldInvestor    = "investor"
	FieldVertical    = "vertical"
	FieldCity        = "city"
	FieldAmountLakhs = "amount_lakhs"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentDataset  = "dataset"
	ComponentStorage  = "storage"
	ComponentImport   = "import"
	ComponentTemplate = "template"
)

// Operations defines standard operation names
const (
	OpLoad     = "load"
	OpImport   = "import"
	OpValidate = "validate"
	OpRender   = "render"
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

// WithRequestID adds request ID field
func (f LogFields) WithRequestID(requestID string) LogFields {
	f[FieldRequestID] = requestID
	return f
}

// WithClientIP adds client IP field
func (f LogFields) WithClientIP(ip string) LogFields {
	f[FieldClientIP] = ip
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

// WithInvestment adds the fields identifying one funding record
func (f LogFields) WithInvestment(startup, vertical, city string, amountLakhs int64) LogFields {
	f[FieldStartup] = startup
	f[FieldVertical] = vertical
	f[FieldCity] = city
	f[FieldAmountLakhs] = amountLakhs
	return f
}

// WithRow adds dataset row position fields for load diagnostics
func (f LogFields) WithRow(row int, column string) LogFields {
	f[FieldRow] = row
	f[FieldColumn] = column
	return f
}

// WithHTTPRequest adds HTTP request fields
func (f LogFields) WithHTTPRequest(method, path, query, userAgent string) LogFields {
	f[FieldMethod] = method
	f[FieldPath] = path
	f[FieldQuery] = query
	f[FieldUserAgent] = userAgent
	return f
}

// WithHTTPResponse adds HTTP response fields
func (f LogFields) WithHTTPResponse(statusCode int, durationMs int64, success bool) LogFields {
	f[FieldStatusCode] = statusCode
	f[FieldDuration] = durationMs
	f[FieldSuccess] = success
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
