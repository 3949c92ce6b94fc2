package dto

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Intent is the ranking purpose inferred from a query. The zero value means no intent.
type Intent string

const (
	IntentNone          Intent = ""
	IntentHighPrice     Intent = "high_price"
	IntentLowPrice      Intent = "low_price"
	IntentHighVolume    Intent = "high_volume"
	IntentLowVolume     Intent = "low_volume"
	IntentHighDelivery  Intent = "high_delivery"
	IntentHighTurnover  Intent = "high_turnover"
	IntentHighTrades    Intent = "high_trades"
	IntentVolatility    Intent = "volatility"
	IntentRelatedStocks Intent = "related_stocks"
)

// AllIntents lists every non-empty intent in declaration order.
var AllIntents = []Intent{
	IntentHighPrice,
	IntentLowPrice,
	IntentHighVolume,
	IntentLowVolume,
	IntentHighDelivery,
	IntentHighTurnover,
	IntentHighTrades,
	IntentVolatility,
	IntentRelatedStocks,
}

// ParseIntent validates s against the closed intent vocabulary.
func ParseIntent(s string) (Intent, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "null" || s == "none" {
		return IntentNone, true
	}
	for _, intent := range AllIntents {
		if string(intent) == s {
			return intent, true
		}
	}
	return IntentNone, false
}

// Label is the human readable form used in response messages ("high price").
func (i Intent) Label() string {
	if i == IntentNone {
		return "matching"
	}
	return strings.ReplaceAll(string(i), "_", " ")
}

// MarshalJSON renders the empty intent as null.
func (i Intent) MarshalJSON() ([]byte, error) {
	if i == IntentNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(i))
}

// UnmarshalJSON rejects values outside the closed vocabulary.
func (i *Intent) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*i = IntentNone
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("intent must be a string: %w", err)
	}
	parsed, ok := ParseIntent(s)
	if !ok {
		return fmt.Errorf("unknown intent %q", s)
	}
	*i = parsed
	return nil
}

// Field names a numeric column of a series.
type Field string

const (
	FieldOpen        Field = "open"
	FieldHigh        Field = "high"
	FieldLow         Field = "low"
	FieldClose       Field = "close"
	FieldVolume      Field = "volume"
	FieldVWAP        Field = "vwap"
	FieldTurnover    Field = "turnover"
	FieldTrades      Field = "trades"
	FieldDeliverable Field = "%deliverble"
)

// NumericFields lists every recognised numeric column, in storage order.
var NumericFields = []Field{
	FieldOpen,
	FieldHigh,
	FieldLow,
	FieldClose,
	FieldVolume,
	FieldVWAP,
	FieldTurnover,
	FieldTrades,
	FieldDeliverable,
}

// ParseField maps a column header to a known field, case-insensitively.
func ParseField(s string) (Field, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, f := range NumericFields {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// Operator is a numeric comparison.
type Operator string

const (
	OpLess         Operator = "<"
	OpGreater      Operator = ">"
	OpLessEqual    Operator = "<="
	OpGreaterEqual Operator = ">="
	OpEqual        Operator = "=="
)

// Valid reports whether o is one of the supported comparisons.
func (o Operator) Valid() bool {
	switch o {
	case OpLess, OpGreater, OpLessEqual, OpGreaterEqual, OpEqual:
		return true
	}
	return false
}

// Compare applies o to (left, right).
func (o Operator) Compare(left, right float64) bool {
	switch o {
	case OpLess:
		return left < right
	case OpGreater:
		return left > right
	case OpLessEqual:
		return left <= right
	case OpGreaterEqual:
		return left >= right
	case OpEqual:
		return left == right
	}
	return false
}

// Filter is a single numeric predicate on a field. Field is kept as given so
// that filters on unknown columns can be ignored instead of rejected.
type Filter struct {
	Field    Field    `json:"field"`
	Operator Operator `json:"operator"`
	Value    float64  `json:"value"`
}

// UnmarshalJSON accepts the value as a JSON number or a numeric string.
func (f *Filter) UnmarshalJSON(data []byte) error {
	var raw struct {
		Field    string          `json:"field"`
		Operator string          `json:"operator"`
		Value    json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	op := Operator(strings.TrimSpace(raw.Operator))
	if op == "=" {
		op = OpEqual
	}
	if !op.Valid() {
		return fmt.Errorf("unsupported operator %q", raw.Operator)
	}
	value, err := parseNumber(raw.Value)
	if err != nil {
		return fmt.Errorf("filter %q: %w", raw.Field, err)
	}

	f.Field = Field(strings.ToLower(strings.TrimSpace(raw.Field)))
	f.Operator = op
	f.Value = value
	return nil
}

// StructuredQuery is the contract between query understanding and screening.
type StructuredQuery struct {
	Ignore   bool     `json:"ignore,omitempty"`
	Intent   Intent   `json:"intent"`
	Keywords []string `json:"keywords"`
	Filters  []Filter `json:"filters"`
	Limit    *int     `json:"limit"`
	Quarters *int     `json:"quarters,omitempty"`
}

// UnmarshalJSON tolerates limit/quarters given as strings and treats
// non-positive counts as absent.
func (q *StructuredQuery) UnmarshalJSON(data []byte) error {
	var raw struct {
		Ignore   bool            `json:"ignore"`
		Intent   Intent          `json:"intent"`
		Keywords []string        `json:"keywords"`
		Filters  []Filter        `json:"filters"`
		Limit    json.RawMessage `json:"limit"`
		Quarters json.RawMessage `json:"quarters"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	limit, err := parseCount(raw.Limit)
	if err != nil {
		return fmt.Errorf("limit: %w", err)
	}
	quarters, err := parseCount(raw.Quarters)
	if err != nil {
		return fmt.Errorf("quarters: %w", err)
	}

	keywords := make([]string, 0, len(raw.Keywords))
	for _, kw := range raw.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}

	*q = StructuredQuery{
		Ignore:   raw.Ignore,
		Intent:   raw.Intent,
		Keywords: keywords,
		Filters:  raw.Filters,
		Limit:    limit,
		Quarters: quarters,
	}
	return nil
}

func parseNumber(raw json.RawMessage) (float64, error) {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("value must be numeric")
	}
	n, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("value must be numeric: %w", err)
	}
	return n, nil
}

// parseCount reads an optional positive integer. Missing, null and
// non-positive values all yield nil.
func parseCount(raw json.RawMessage) (*int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	n, err := parseNumber(raw)
	if err != nil {
		return nil, err
	}
	if n < 1 || n != float64(int(n)) {
		return nil, nil
	}
	v := int(n)
	return &v, nil
}

// IntPtr is a small helper for optional counts.
func IntPtr(v int) *int {
	return &v
}
