package summary

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/vmkteam/embedlog"

	"duit/pkg/duit"
	"duit/pkg/ledger"
)

// ErrNoSheets is returned when the spreadsheet has no transaction
// worksheet for any year.
var ErrNoSheets = errors.New("summary: no transaction sheets")

// Aggregator computes monthly summaries from ledger rows.
type Aggregator struct {
	embedlog.Logger
	ledger ledger.Ledger
}

// NewAggregator wires the aggregator to a ledger.
func NewAggregator(l ledger.Ledger, logger embedlog.Logger) *Aggregator {
	return &Aggregator{Logger: logger, ledger: l}
}

// Monthly aggregates one month of a year sheet. When the requested
// year has no sheet, the most recent existing year substitutes for it;
// the summary's Year reports the year actually used. A month with no
// matching rows yields a zero-count summary, not an error.
func (a *Aggregator) Monthly(ctx context.Context, year, month int) (duit.MonthlySummary, error) {
	sum := duit.MonthlySummary{Year: year, Month: month}

	rows, err := a.ledger.Rows(ctx, year)
	if errors.Is(err, ledger.ErrNoSheet) {
		years, yerr := a.ledger.Years(ctx)
		if yerr != nil {
			return sum, yerr
		}
		if len(years) == 0 {
			return sum, ErrNoSheets
		}
		year = years[len(years)-1]
		sum.Year = year
		a.Print(ctx, "falling back to most recent year sheet", "year", year)
		rows, err = a.ledger.Rows(ctx, year)
	}
	if err != nil {
		return sum, err
	}

	byCategory := map[string]int{}
	for i, row := range rows {
		if len(row) < 6 {
			a.Print(ctx, "skipping short row", "row", i+2)
			continue
		}

		t, ok := parseRowDate(row[0])
		if !ok {
			a.Print(ctx, "skipping row with unparsable date", "row", i+2, "date", row[0])
			continue
		}
		if t.Year() != year || int(t.Month()) != month {
			continue
		}

		amount := parseRowAmount(row[5])
		sum.Count++
		if strings.EqualFold(row[2], duit.TypeIncome) {
			sum.Income += amount
		} else {
			sum.Expense += amount
			byCategory[row[4]] += amount
		}
	}

	for name, amount := range byCategory {
		sum.Categories = append(sum.Categories, duit.CategoryTotal{Name: name, Amount: amount})
	}
	sort.SliceStable(sum.Categories, func(i, j int) bool {
		if sum.Categories[i].Amount != sum.Categories[j].Amount {
			return sum.Categories[i].Amount > sum.Categories[j].Amount
		}
		return sum.Categories[i].Name < sum.Categories[j].Name
	})
	return sum, nil
}

// rowDateLayouts are the machine formats tried after the Indonesian
// forms, in order.
var rowDateLayouts = []string{
	"2/1/2006",
	"2006-01-02",
	"2-1-2006",
	"2 January 2006",
	"2 Jan 2006",
	"2006/01/02",
}

// parseRowDate accepts the date shapes that show up in sheet cells:
// the bot's own "15 Januari 2025 14:30" convention, the spreadsheet
// locale form "Januari 15, 2025", and the common machine layouts.
func parseRowDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(strings.TrimPrefix(s, "'"))
	if s == "" {
		return time.Time{}, false
	}

	if t, ok := parseIndonesianDate(s); ok {
		return t, ok
	}
	for _, layout := range rowDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseIndonesianDate handles "15 Januari 2025", "15 Januari 2025
// 14:30" and "Januari 15, 2025".
func parseIndonesianDate(s string) (time.Time, bool) {
	fields := strings.Fields(strings.ReplaceAll(s, ",", ""))
	if len(fields) < 3 {
		return time.Time{}, false
	}

	var dayStr, monthStr string
	if duit.MonthByPrefix(fields[0]) != 0 {
		monthStr, dayStr = fields[0], fields[1]
	} else {
		dayStr, monthStr = fields[0], fields[1]
	}

	month := duit.MonthByPrefix(monthStr)
	if month == 0 {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(fields[2])
	if err != nil || year < 2000 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// parseRowAmount reduces an amount cell to an integer, treating
// anything non-numeric as zero the way a spreadsheet SUM would.
func parseRowAmount(s string) int {
	clean := strings.NewReplacer(".", "", ",", "", " ", "").Replace(strings.TrimSpace(s))
	n, err := strconv.Atoi(clean)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
