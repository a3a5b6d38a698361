package model

// ExecutionResult is what the network executor reports for one request.
// Nothing in this module interprets it.
type ExecutionResult struct {
	Status     int             `json:"status"`
	StatusText string          `json:"status_text"`
	Headers    []KeyValue      `json:"headers"`
	Body       string          `json:"body"`
	SizeBytes  int64           `json:"size_bytes"`
	Timing     ExecutionTiming `json:"timing"`
	Error      *string         `json:"error"`
}

// ExecutionTiming breaks down request latency in milliseconds. Phases the
// executor could not observe (reused connection, plain HTTP) are nil.
type ExecutionTiming struct {
	DNSMs       *int64 `json:"dns_ms"`
	ConnectMs   *int64 `json:"connect_ms"`
	TLSMs       *int64 `json:"tls_ms"`
	FirstByteMs int64  `json:"first_byte_ms"`
	TotalMs     int64  `json:"total_ms"`
}

func (r ExecutionResult) IsSuccess() bool {
	return r.Error == nil && r.Status >= 200 && r.Status < 300
}
