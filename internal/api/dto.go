package api

// InspectRequest carries one plugin file. Data is the raw file image,
// base64 in transit.
type InspectRequest struct {
	Name string `json:"name,omitempty"`
	Data []byte `json:"data"`
}

// InspectResponse summarizes a successfully decoded file.
type InspectResponse struct {
	ID        string        `json:"id"`
	Object    string        `json:"object"`
	CreatedAt int64         `json:"created_at"`
	Name      string        `json:"name,omitempty"`
	Header    HeaderSummary `json:"header"`
	Records   []RecordCount `json:"records"`
}

// HeaderSummary is the file header with master references flattened.
type HeaderSummary struct {
	Version     uint32   `json:"version"`
	Type        string   `json:"type"`
	Author      string   `json:"author"`
	Description []string `json:"description"`
	NumRecords  uint32   `json:"num_records"`
	Masters     []string `json:"masters,omitempty"`
}

// RecordCount is one record mark and how often it occurs.
type RecordCount struct {
	Tag    string `json:"tag"`
	Count  int    `json:"count"`
	Fields int    `json:"fields"`
}

// ValidateRequest carries one plugin file to check.
type ValidateRequest struct {
	Name string `json:"name,omitempty"`
	Data []byte `json:"data"`
}

// ValidateResponse reports whether the file decodes, with a structured
// diagnostic when it does not.
type ValidateResponse struct {
	Valid      bool        `json:"valid"`
	Diagnostic *Diagnostic `json:"diagnostic,omitempty"`
}

// Diagnostic is one decode failure, located by absolute file offset
// where the failure carries one.
type Diagnostic struct {
	Kind     string `json:"kind"`
	Message  string `json:"message"`
	Offset   *int64 `json:"offset,omitempty"`
	Declared *int64 `json:"declared,omitempty"`
	Consumed *int64 `json:"consumed,omitempty"`
	Expected string `json:"expected,omitempty"`
	Actual   string `json:"actual,omitempty"`
}

// apiError is the error envelope shared by all endpoints.
type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}
