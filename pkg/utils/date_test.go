package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2021-03-15", time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"15-03-2021", time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"05/03/2021", time.Date(2021, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{"15-Mar-2021", time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{" 2021-03-15 ", time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"not a date", time.Time{}, false},
		{"", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDate(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %s", got)
			}
		})
	}
}

func TestQuarterEnd(t *testing.T) {
	assert.Equal(t, "2021-03-31", FormatISODate(QuarterEnd(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC))))
	assert.Equal(t, "2021-06-30", FormatISODate(QuarterEnd(time.Date(2021, 5, 20, 0, 0, 0, 0, time.UTC))))
	assert.Equal(t, "2021-09-30", FormatISODate(QuarterEnd(time.Date(2021, 9, 30, 0, 0, 0, 0, time.UTC))))
	assert.Equal(t, "2021-12-31", FormatISODate(QuarterEnd(time.Date(2021, 10, 1, 0, 0, 0, 0, time.UTC))))
}
