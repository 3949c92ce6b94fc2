package dto

// ChatRequest is the body of POST /api/v1/chat. Message is accepted as an
// alias of Query for older clients.
type ChatRequest struct {
	Query    string `json:"query"`
	Message  string `json:"message"`
	Quarters *int   `json:"quarters"`
}

// Text returns the query text, preferring Query over Message.
func (r ChatRequest) Text() string {
	if r.Query != "" {
		return r.Query
	}
	return r.Message
}

// ChatResponse is the successful (HTTP 200) response of the chat endpoint.
type ChatResponse struct {
	Message       string           `json:"message"`
	Query         string           `json:"query,omitempty"`
	Status        string           `json:"status,omitempty"`
	Intent        Intent           `json:"intent"`
	Quarters      *int             `json:"quarters"`
	Limit         *int             `json:"limit"`
	Data          []ScreenerResult `json:"data"`
	Count         int              `json:"count"`
	TotalUniverse int              `json:"total_universe"`
}

// ErrorResponse represents a generic error response body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// SymbolsResponse lists the known universe.
type SymbolsResponse struct {
	Symbols []string `json:"symbols"`
	Count   int      `json:"count"`
}
