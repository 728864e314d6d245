package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duit/pkg/duit"
)

func TestYearOf(t *testing.T) {
	now := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date string
		want int
	}{
		{"display date", "15 Januari 2025 14:30", 2025},
		{"slash date", "15/01/2024", 2024},
		{"no year", "kemarin sore", 2026},
		{"empty", "", 2026},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, YearOf(tt.date, now))
		})
	}
}

func TestRow(t *testing.T) {
	d := duit.Draft{
		Date:        "15 Januari 2025 14:30",
		Name:        "Kopi",
		Type:        duit.TypeExpense,
		Source:      "Cash",
		Category:    "Makanan",
		Amount:      "25.000",
		Description: "Kopi susu",
	}
	row := Row(d)
	require.Len(t, row, 7)
	assert.Equal(t, 25000, row[5])
}

func TestPadRow(t *testing.T) {
	// a row whose trailing cells are blank comes back short from the API
	row := padRow([]any{"15 Juni 2025 14:30", "Kopi", "Pengeluaran", "Cash", "Makanan"})
	require.Len(t, row, len(Headers))
	assert.Equal(t, "Kopi", row[1])
	assert.Equal(t, "", row[5])
	assert.Equal(t, "", row[6])

	full := padRow([]any{"15/01/2025", "Gaji", "Pemasukan", "BCA", "Gaji", 5000000, "thr"})
	assert.Equal(t, "5000000", full[5])
	assert.Equal(t, "thr", full[6])
}

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.SetClock(func() time.Time {
		return time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	})

	_, err := m.Rows(ctx, 2025)
	assert.ErrorIs(t, err, ErrNoSheet)

	require.NoError(t, m.Append(ctx, duit.Draft{
		Date:   "15 Januari 2025 14:30",
		Name:   "Kopi",
		Type:   duit.TypeExpense,
		Amount: "25.000",
	}))
	require.NoError(t, m.Append(ctx, duit.Draft{
		Date:   "10 Februari 2024 09:00",
		Name:   "Gaji",
		Type:   duit.TypeIncome,
		Amount: "5.000.000",
	}))

	rows, err := m.Rows(ctx, 2025)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Kopi", rows[0][1])
	assert.Equal(t, "25000", rows[0][5])

	years, err := m.Years(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{2024, 2025}, years)
}
