package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldPeriod      = "period"
	FieldJob         = "job"
	FieldBackend     = "backend"
	FieldRowCount    = "row_count"
	FieldPendingRows = "pending_rows"
)

// Components defines standard component names
const (
	ComponentApp        = "app"
	ComponentChores     = "chores"
	ComponentSettlement = "settlement"
	ComponentWebhook    = "webhook"
	ComponentBackend    = "backend"
)

// Operations defines standard operation names
const (
	OpNotify    = "notify"
	OpReconcile = "reconcile"
	OpClear     = "clear"
)
