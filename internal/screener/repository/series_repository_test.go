package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbolFromKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
		ok   bool
	}{
		{"cleaned_AXISBANK.csv", "AXISBANK", true},
		{"cleaned_infy.csv", "INFY", true},
		{"TCS.csv", "TCS", true},
		{"cleaned_.csv", "", false},
		{"notes.txt", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := SymbolFromKey(tt.key, "cleaned_", ".csv")
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "cleaned_INFY.csv", KeyFromSymbol("infy", "cleaned_", ".csv"))
}
