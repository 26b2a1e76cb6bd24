package logging

// Standardized field names for structured logging.
const (
	FieldFile          = "file_path"
	FieldTransactionID = "transaction_id"
	FieldCategory      = "category"
	FieldKeyword       = "keyword"
	FieldReason        = "reason"
	FieldOperation     = "operation"
	FieldStatus        = "status"
	FieldError         = "error"
	FieldDuration      = "duration_ms"
	FieldCount         = "count"
	FieldDropped       = "dropped"
	FieldPeriod        = "period"
	FieldMode          = "mode"
	FieldModel         = "model"
	FieldDelimiter     = "delimiter"
	FieldOutputFile    = "output_file"
)
