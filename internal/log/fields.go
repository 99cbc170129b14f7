// Package log holds the shared vocabulary for structured logging. The core
// packages never log; these names are for the adapters and binaries.
package log

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldRequestID     = "request_id"
	FieldClientIP      = "client_ip"
	FieldMethod        = "method"
	FieldPath          = "path"
	FieldQuery         = "query"
	FieldStatusCode    = "status_code"
	FieldDuration      = "duration_ms"
	FieldDurationHuman = "duration_human"
	FieldSuccess       = "success"
	FieldError         = "error"
	FieldOperation     = "operation"

	FieldTransactionID = "transaction_id"
	FieldDate          = "date"
	FieldAmount        = "amount"
	FieldType          = "type"
	FieldCategory      = "category"
	FieldYear          = "year"
	FieldMonth         = "month"
	FieldFrom          = "from"
	FieldTo            = "to"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentBackend = "backend"
	ComponentTrace   = "trace"
)

// Operations defines standard operation names
const (
	OpAdd      = "add"
	OpList     = "list"
	OpBalance  = "balance"
	OpReport   = "report"
	OpValidate = "validate"
	OpParse    = "parse"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)
