// Package protocol defines the JSON types exchanged with timepald.
// The timepal CLI prints the same types with --output json or yaml.
package protocol

// Value is a time value on the wire. Kind is one of "instant",
// "wall_clock", "local_date_time" or "local_date".
//
// Instants travel as ISO-8601 text with an offset ("2024-03-05T14:07:09Z"),
// wall clocks as epoch milliseconds, local values as ISO-8601 local text.
// An instant may also be sent as epoch milliseconds. A value with neither
// text nor millis is absent.
type Value struct {
	Kind        string `json:"kind" yaml:"kind"`
	Text        string `json:"text,omitempty" yaml:"text,omitempty"`
	EpochMillis *int64 `json:"epoch_millis,omitempty" yaml:"epoch_millis,omitempty"`
}

// Millis returns a pointer to ms for building Values.
func Millis(ms int64) *int64 {
	return &ms
}

// NowResponse is returned by GET /v1/now.
type NowResponse struct {
	Text        string `json:"text" yaml:"text"`
	Instant     string `json:"instant" yaml:"instant"`
	EpochMillis int64  `json:"epoch_millis" yaml:"epoch_millis"`
	Offset      string `json:"offset" yaml:"offset"`
	Pattern     string `json:"pattern" yaml:"pattern"`
}

// FormatRequest renders Value. Pattern and Offset fall back to the service
// defaults when empty.
type FormatRequest struct {
	Value   Value  `json:"value" yaml:"value"`
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Offset  string `json:"offset,omitempty" yaml:"offset,omitempty"`
}

// FormatResponse carries the rendered text.
type FormatResponse struct {
	Text string `json:"text" yaml:"text"`
}

// ParseRequest reads Text with Pattern into a value of Kind.
type ParseRequest struct {
	Text    string `json:"text" yaml:"text"`
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Kind    string `json:"kind" yaml:"kind"`
}

// ParseResponse carries the parsed value.
type ParseResponse struct {
	Value Value `json:"value" yaml:"value"`
}

// ConvertRequest converts Value into the representation named by To.
type ConvertRequest struct {
	Value Value  `json:"value" yaml:"value"`
	To    string `json:"to" yaml:"to"`
}

// ConvertResponse carries the converted value.
type ConvertResponse struct {
	Value Value `json:"value" yaml:"value"`
}

// CompareRequest orders Values, which must all share one absolute kind.
type CompareRequest struct {
	Values []Value `json:"values" yaml:"values"`
}

// CompareResponse reports the ordering of the request's values.
type CompareResponse struct {
	// Result compares the first two values: -1, 0 or 1.
	Result int `json:"result" yaml:"result"`
	// Order lists value indexes from earliest to latest. Absent values come
	// first; ties keep request order.
	Order  []int  `json:"order" yaml:"order"`
	Future []bool `json:"future" yaml:"future"`
	Past   []bool `json:"past" yaml:"past"`
}

// Health is returned by GET /healthz.
type Health struct {
	Status  string `json:"status" yaml:"status"`
	Service string `json:"service" yaml:"service"`
}

// Error is returned with every non-2xx response.
type Error struct {
	Code      string `json:"code" yaml:"code"`
	Message   string `json:"message" yaml:"message"`
	RequestID string `json:"request_id,omitempty" yaml:"request_id,omitempty"`
}
