package duit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"50000", 50000, true},
		{"50.000", 50000, true},
		{"50,000", 50000, true},
		{" 1.250.500 ", 1250500, true},
		{"abc", 0, false},
		{"-500", 0, false},
		{"0", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseAmount(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGroupAmount(t *testing.T) {
	assert.Equal(t, "0", GroupAmount(0))
	assert.Equal(t, "999", GroupAmount(999))
	assert.Equal(t, "1.000", GroupAmount(1000))
	assert.Equal(t, "25.000", GroupAmount(25000))
	assert.Equal(t, "5.000.000", GroupAmount(5000000))
}

func TestNormalizeAmount(t *testing.T) {
	assert.Equal(t, "125.000", NormalizeAmount("125000"))
	assert.Equal(t, "125.000", NormalizeAmount("'Rp 125.000"))
	assert.Equal(t, "0", NormalizeAmount("no digits"))
	assert.Equal(t, "0", NormalizeAmount(""))
}

func TestMonthByToken(t *testing.T) {
	assert.Equal(t, 8, MonthByToken("ringkasan Agustus 2025"))
	assert.Equal(t, 8, MonthByToken("agus"))
	assert.Equal(t, 12, MonthByToken("des"))
	assert.Equal(t, 0, MonthByToken("tidak ada bulan"))
}

func TestMonthByPrefix(t *testing.T) {
	assert.Equal(t, 1, MonthByPrefix("Januari"))
	assert.Equal(t, 1, MonthByPrefix("January"))
	assert.Equal(t, 8, MonthByPrefix("Agustus"))
	assert.Equal(t, 8, MonthByPrefix("Aug"))
	assert.Equal(t, 0, MonthByPrefix("xy"))
	assert.Equal(t, 0, MonthByPrefix("zzz"))
}

func TestFormatDisplayDate(t *testing.T) {
	ts := time.Date(2025, time.September, 2, 9, 5, 0, 0, time.UTC)
	assert.Equal(t, "2 September 2025 09:05", FormatDisplayDate(ts))
}

func TestMonthlySummaryBalance(t *testing.T) {
	s := MonthlySummary{Income: 100, Expense: 250}
	assert.Equal(t, -150, s.Balance())
}
