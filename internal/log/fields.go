package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldBackend    = "backend"
	FieldRows       = "rows"
	FieldParty      = "party"
	FieldCategory   = "category"
	FieldSnapshot   = "snapshot_age"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentPipeline = "pipeline"
	ComponentLedger   = "ledger"
	ComponentStorage  = "storage"
	ComponentExport   = "export"
	ComponentAuth     = "auth"
	ComponentAMQP     = "amqp"
	ComponentWorker   = "worker"
	ComponentCache    = "cache"
)

// Operations defines standard operation names
const (
	OpFetch     = "fetch"
	OpNormalize = "normalize"
	OpAggregate = "aggregate"
	OpExport    = "export"
	OpLogin     = "login"
	OpRefresh   = "refresh"
	OpRender    = "render"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
