package period

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		year, month int
		want        string
	}{
		{2025, 1, "2025-01"},
		{2025, 12, "2025-12"},
		{2025, 0, "2025-00"},
		{999, 3, "0999-03"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.year, tt.month))
	}
}

func TestParse(t *testing.T) {
	year, month, err := Parse("2025-03")
	require.NoError(t, err)
	assert.Equal(t, 2025, year)
	assert.Equal(t, 3, month)

	year, month, err = Parse(Format(2024, Opening))
	require.NoError(t, err)
	assert.Equal(t, 2024, year)
	assert.Equal(t, 0, month)
}

func TestParse_Errors(t *testing.T) {
	for _, id := range []string{"", "2025", "abcd-01", "2025-xx", "2025-13", "2025--1"} {
		_, _, err := Parse(id)
		assert.Error(t, err, id)
	}
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "PS", MonthName(0))
	assert.Equal(t, "Jan", MonthName(1))
	assert.Equal(t, "Máj", MonthName(5))
	assert.Equal(t, "Dec", MonthName(12))
	assert.Equal(t, "13", MonthName(13))

	assert.Equal(t, "Október", MonthFullName(10))
	assert.Equal(t, "PS", MonthFullName(0))
}

func TestRange(t *testing.T) {
	assert.Equal(t, []string{"2025-00", "2025-01", "2025-02"}, Range(2025, 0, 2))
	assert.Len(t, Range(2025, 1, 12), 12)
	assert.Nil(t, Range(2025, 3, 1))
}
