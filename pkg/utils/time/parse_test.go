package time

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlexibleTime(t *testing.T) {
	want := time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
	}{
		{name: "RFC3339", input: "2024-03-05T14:30:00Z"},
		{name: "RFC1123Z", input: "Tue, 05 Mar 2024 14:30:00 +0000"},
		{name: "single digit day", input: "Tue, 5 Mar 2024 14:30:00 +0000"},
		{name: "no zone", input: "2024-03-05 14:30:00"},
		{name: "surrounding spaces", input: "  2024-03-05T14:30:00Z  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, want.Equal(ParseFlexibleTime(tt.input)), "got %v", ParseFlexibleTime(tt.input))
		})
	}

	assert.True(t, ParseFlexibleTime("").IsZero())
	assert.True(t, ParseFlexibleTime("yesterday-ish").IsZero())
}

func TestFirstNonZero(t *testing.T) {
	a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	zero := time.Time{}

	assert.Equal(t, a, FirstNonZero(nil, &zero, &a))
	assert.True(t, FirstNonZero(nil, &zero).IsZero())
}
