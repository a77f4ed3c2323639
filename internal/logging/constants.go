package logging

// Standardized field names for structured logging.
const (
	FieldFile        = "file_path"
	FieldParser      = "parser"
	FieldOperation   = "operation"
	FieldStatus      = "status"
	FieldReason      = "reason"
	FieldError       = "error"
	FieldDuration    = "duration_ms"
	FieldCount       = "count"
	FieldDelimiter   = "delimiter"
	FieldFormat      = "format"
	FieldInputFile   = "input_file"
	FieldOutputFile  = "output_file"
	FieldPages       = "pages"
	FieldLines       = "lines"
	FieldLine        = "line"
	FieldLineNumber  = "line_number"
	FieldRecords     = "records"
	FieldRemoteAddr  = "remote_addr"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldRequestID   = "request_id"
	FieldHTTPStatus  = "http_status"
	FieldUploadBytes = "upload_bytes"
)
