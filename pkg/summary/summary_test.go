package summary

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmkteam/embedlog"

	"duit/pkg/duit"
	"duit/pkg/ledger"
)

func TestResolve(t *testing.T) {
	now := time.Date(2025, time.September, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		query     string
		wantYear  int
		wantMonth int
	}{
		{"month and year", "ringkasan agustus 2024", 2024, 8},
		{"month only keeps current year", "laporan mei", 2025, 5},
		{"abbreviation", "des", 2025, 12},
		{"year only keeps current month", "2024", 2024, 9},
		{"bulan ini overrides", "agustus 2024 bulan ini", 2025, 9},
		{"bulan lalu", "bulan lalu", 2025, 8},
		{"unrecognized defaults to now", "apa saja", 2025, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, month := Resolve(tt.query, now)
			assert.Equal(t, tt.wantYear, year)
			assert.Equal(t, tt.wantMonth, month)
		})
	}
}

func TestResolveJanuaryWrap(t *testing.T) {
	now := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	year, month := Resolve("bulan lalu", now)
	assert.Equal(t, 2024, year)
	assert.Equal(t, 12, month)
}

func TestParseRowDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		ok   bool
		want time.Time
	}{
		{"display form", "15 Januari 2025 14:30", true, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"locale form", "Agustus 31, 2025", true, time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC)},
		{"slash", "15/01/2025", true, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"iso", "2025-01-15", true, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"apostrophe prefix", "'15/01/2025", true, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"garbage", "kemarin", false, time.Time{}},
		{"empty", "", false, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseRowDate(tt.in)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want.Year(), got.Year())
				assert.Equal(t, tt.want.Month(), got.Month())
				assert.Equal(t, tt.want.Day(), got.Day())
			}
		})
	}
}

func newAggregator(l ledger.Ledger) *Aggregator {
	logger := embedlog.NewLogger(false, false)
	return NewAggregator(l, logger)
}

func TestMonthlyAggregation(t *testing.T) {
	ctx := context.Background()
	mem := ledger.NewMemory()
	mem.Seed(2025, [][]string{
		{"15/01/2025", "Gaji", "Pemasukan", "BCA", "Gaji", "5000000", ""},
		{"16/01/2025", "Kopi", "Pengeluaran", "Cash", "Makanan", "25.000", ""},
		{"17/01/2025", "Bensin", "Pengeluaran", "Cash", "Transportasi", "50000", ""},
		{"17/01/2025", "Nasi", "Pengeluaran", "Cash", "Makanan", "15000", ""},
		{"20/02/2025", "Pulsa", "Pengeluaran", "Cash", "Tagihan", "100000", ""},
		{"tanggal rusak", "Misteri", "Pengeluaran", "Cash", "Lainnya", "99999", ""},
	})

	sum, err := newAggregator(mem).Monthly(ctx, 2025, 1)
	require.NoError(t, err)

	assert.Equal(t, 2025, sum.Year)
	assert.Equal(t, 1, sum.Month)
	assert.Equal(t, 4, sum.Count)
	assert.Equal(t, 5000000, sum.Income)
	assert.Equal(t, 90000, sum.Expense)
	assert.Equal(t, 4910000, sum.Balance())

	require.Len(t, sum.Categories, 2)
	assert.Equal(t, duit.CategoryTotal{Name: "Transportasi", Amount: 50000}, sum.Categories[0])
	assert.Equal(t, duit.CategoryTotal{Name: "Makanan", Amount: 40000}, sum.Categories[1])
}

func TestMonthlyCountsEmptyAmountRow(t *testing.T) {
	ctx := context.Background()
	mem := ledger.NewMemory()
	mem.Seed(2025, [][]string{
		{"16/01/2025", "Kopi", "Pengeluaran", "Cash", "Makanan", "25000", ""},
		{"17/01/2025", "Hadiah", "Pengeluaran", "Cash", "Lainnya", "", ""},
	})

	sum, err := newAggregator(mem).Monthly(ctx, 2025, 1)
	require.NoError(t, err)

	// a blank amount counts as a zero-value transaction, not a skip
	assert.Equal(t, 2, sum.Count)
	assert.Equal(t, 25000, sum.Expense)
}

func TestMonthlyFallsBackToMostRecentYear(t *testing.T) {
	ctx := context.Background()
	mem := ledger.NewMemory()
	mem.Seed(2023, [][]string{
		{"05/03/2023", "Kopi", "Pengeluaran", "Cash", "Makanan", "20000", ""},
	})
	mem.Seed(2024, [][]string{
		{"05/03/2024", "Kopi", "Pengeluaran", "Cash", "Makanan", "30000", ""},
	})

	sum, err := newAggregator(mem).Monthly(ctx, 2026, 3)
	require.NoError(t, err)
	assert.Equal(t, 2024, sum.Year)
	assert.Equal(t, 1, sum.Count)
	assert.Equal(t, 30000, sum.Expense)
}

func TestMonthlyNoSheets(t *testing.T) {
	_, err := newAggregator(ledger.NewMemory()).Monthly(context.Background(), 2026, 3)
	assert.ErrorIs(t, err, ErrNoSheets)
}

func TestMonthlyEmptyMonth(t *testing.T) {
	mem := ledger.NewMemory()
	mem.Seed(2025, [][]string{
		{"15/01/2025", "Kopi", "Pengeluaran", "Cash", "Makanan", "25000", ""},
	})

	sum, err := newAggregator(mem).Monthly(context.Background(), 2025, 6)
	require.NoError(t, err)
	assert.Zero(t, sum.Count)
}

func TestRender(t *testing.T) {
	s := duit.MonthlySummary{
		Year:    2025,
		Month:   1,
		Income:  5000000,
		Expense: 90000,
		Count:   4,
		Categories: []duit.CategoryTotal{
			{Name: "Transportasi", Amount: 50000},
			{Name: "Makanan", Amount: 40000},
		},
	}

	msg := Render(s)
	assert.Contains(t, msg, "RINGKASAN KEUANGAN - JANUARI 2025")
	assert.Contains(t, msg, "Rp 5.000.000")
	assert.Contains(t, msg, "Rp 4.910.000 (🟢 SURPLUS)")
	assert.Contains(t, msg, "• Transportasi: Rp 50.000 (55.6%)")
	assert.Contains(t, msg, "• Makanan: Rp 40.000 (44.4%)")
	assert.Contains(t, msg, "Total Transaksi:</b> 4")
}

func TestRenderDeficitAndRollup(t *testing.T) {
	s := duit.MonthlySummary{
		Year:    2025,
		Month:   2,
		Income:  100000,
		Expense: 700000,
		Count:   7,
		Categories: []duit.CategoryTotal{
			{Name: "A", Amount: 200000},
			{Name: "B", Amount: 150000},
			{Name: "C", Amount: 120000},
			{Name: "D", Amount: 100000},
			{Name: "E", Amount: 80000},
			{Name: "F", Amount: 30000},
			{Name: "G", Amount: 20000},
		},
	}

	msg := Render(s)
	assert.Contains(t, msg, "🔴 DEFISIT")
	assert.Contains(t, msg, "Rp -600.000")
	assert.Contains(t, msg, "• Lainnya: Rp 50.000 (7.1%)")
	assert.NotContains(t, msg, "• F:")
}

func TestRenderEmpty(t *testing.T) {
	msg := Render(duit.MonthlySummary{Year: 2025, Month: 6})
	assert.Contains(t, msg, "Belum ada transaksi yang tercatat untuk Juni 2025")
}
