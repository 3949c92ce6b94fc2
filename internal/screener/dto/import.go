package dto

// ImportSummary reports the outcome of loading one dataset file.
type ImportSummary struct {
	Symbol string `json:"symbol"`
	File   string `json:"file"`
	Rows   int    `json:"rows"`
	Error  string `json:"error,omitempty"`
}
