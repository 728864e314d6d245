// Package ledger persists transactions to per-year worksheets named
// "Transaksi <year>" with a fixed seven-column layout.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"duit/pkg/duit"
)

// ErrNoSheet is returned by Rows when the requested year has no
// worksheet yet.
var ErrNoSheet = errors.New("ledger: year sheet not found")

// Headers is the column layout of every year sheet, row 1.
var Headers = []string{"Tanggal", "Nama", "Jenis", "Sumber", "Kategori", "Jumlah", "Deskripsi"}

// Ledger is the persistence boundary of the bot. Implementations must
// create the year worksheet on first append.
type Ledger interface {
	// Append stores one finished draft in the worksheet of its year.
	Append(ctx context.Context, d duit.Draft) error
	// Rows returns every data row (header excluded) of one year sheet,
	// or ErrNoSheet.
	Rows(ctx context.Context, year int) ([][]string, error)
	// Years lists the years that have a worksheet, ascending.
	Years(ctx context.Context) ([]int, error)
	// Ping verifies the backing spreadsheet is reachable.
	Ping(ctx context.Context) error
}

// SheetName returns the worksheet title for a year.
func SheetName(year int) string {
	return "Transaksi " + strconv.Itoa(year)
}

var yearRe = regexp.MustCompile(`\b(20\d{2})\b`)

// YearOf extracts the transaction year from a display date, falling
// back to the current year when the date carries none.
func YearOf(date string, now time.Time) int {
	if m := yearRe.FindStringSubmatch(date); m != nil {
		if y, err := strconv.Atoi(m[1]); err == nil {
			return y
		}
	}
	return now.Year()
}

// Row flattens a draft into the sheet column order. The amount column
// is numeric so the spreadsheet can sum it.
func Row(d duit.Draft) []any {
	amount, _ := duit.ParseAmount(d.Amount)
	return []any{d.Date, d.Name, d.Type, d.Source, d.Category, amount, d.Description}
}

// padRow converts raw cell values to strings padded to the full header
// width. The Sheets API omits trailing empty cells, so a row whose
// Jumlah and Deskripsi are both blank comes back five cells long.
func padRow(raw []any) []string {
	row := make([]string, len(Headers))
	for i, cell := range raw {
		if i == len(row) {
			break
		}
		row[i] = fmt.Sprint(cell)
	}
	return row
}
