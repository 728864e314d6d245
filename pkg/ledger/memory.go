package ledger

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"duit/pkg/duit"
)

// Memory is an in-process Ledger used in tests and local development.
type Memory struct {
	mu    sync.Mutex
	years map[int][][]string
	now   func() time.Time
}

var _ Ledger = (*Memory)(nil)

// NewMemory returns an empty in-memory ledger.
func NewMemory() *Memory {
	return &Memory{
		years: make(map[int][][]string),
		now:   time.Now,
	}
}

// SetClock overrides the clock used for year derivation in tests.
func (m *Memory) SetClock(now func() time.Time) { m.now = now }

func (m *Memory) Append(_ context.Context, d duit.Draft) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	year := YearOf(d.Date, m.now())
	row := make([]string, 0, len(Headers))
	for _, cell := range Row(d) {
		switch v := cell.(type) {
		case string:
			row = append(row, v)
		case int:
			row = append(row, strconv.Itoa(v))
		}
	}
	m.years[year] = append(m.years[year], row)
	return nil
}

func (m *Memory) Rows(_ context.Context, year int) ([][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows, ok := m.years[year]
	if !ok {
		return nil, ErrNoSheet
	}
	out := make([][]string, len(rows))
	copy(out, rows)
	return out, nil
}

func (m *Memory) Years(_ context.Context) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	years := make([]int, 0, len(m.years))
	for y := range m.years {
		years = append(years, y)
	}
	sort.Ints(years)
	return years, nil
}

func (m *Memory) Ping(context.Context) error { return nil }

// Seed inserts raw rows for a year, creating the year sheet.
func (m *Memory) Seed(year int, rows [][]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.years[year] = append(m.years[year], rows...)
}
