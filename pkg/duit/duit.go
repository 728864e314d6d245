package duit

import (
	"strconv"
	"strings"
	"time"
)

// Transaction types as they are written to the ledger.
const (
	TypeIncome  = "Pemasukan"
	TypeExpense = "Pengeluaran"
)

// Draft is an in-progress, not-yet-persisted transaction record.
// All fields are display strings in the form the ledger stores them:
// Amount is thousands-grouped ("50.000"), Date is either the local
// "D Month YYYY HH:MM" convention or DD/MM/YYYY for scanned receipts.
type Draft struct {
	Date        string
	Name        string
	Type        string
	Source      string
	Category    string
	Amount      string
	Description string
}

// IsEmpty reports whether no field of the draft has been filled yet.
func (d Draft) IsEmpty() bool {
	return d == Draft{}
}

// ReceiptItem is a single line item recovered from a receipt.
type ReceiptItem struct {
	Name     string
	Quantity int
	Price    string // unit price, digits only
}

// AdjustmentKind tags how a tax or discount value is expressed.
type AdjustmentKind string

const (
	AdjustmentNone       AdjustmentKind = "none"
	AdjustmentAmount     AdjustmentKind = "amount"
	AdjustmentPercentage AdjustmentKind = "percentage"
)

// Adjustment is a tax or discount recovered from a receipt.
type Adjustment struct {
	Kind  AdjustmentKind
	Value string
}

// NoAdjustment is the documented default when no tax/discount matched.
func NoAdjustment() Adjustment {
	return Adjustment{Kind: AdjustmentNone, Value: "0"}
}

// ScanResult is what the Extractor collaborator produces for one receipt.
type ScanResult struct {
	Draft    Draft
	Items    []ReceiptItem
	Tax      Adjustment
	Discount Adjustment
	RawText  string
}

// CategoryTotal is one expense bucket of a monthly summary.
type CategoryTotal struct {
	Name   string
	Amount int
}

// MonthlySummary holds pre-aggregated totals for one (year, month).
// Categories are ordered by amount descending.
type MonthlySummary struct {
	Year       int
	Month      int
	Income     int
	Expense    int
	Categories []CategoryTotal
	Count      int
}

// Balance is income minus expense.
func (s MonthlySummary) Balance() int {
	return s.Income - s.Expense
}

// monthNames holds the Indonesian month names, index 0 = Januari.
var monthNames = [12]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// monthTokens maps lowercase month names and accepted abbreviations to
// month numbers. Longer tokens must be matched before shorter ones.
var monthTokens = []struct {
	Token string
	Month int
}{
	{"januari", 1}, {"februari", 2}, {"maret", 3}, {"april", 4},
	{"juni", 6}, {"juli", 7}, {"agustus", 8}, {"september", 9},
	{"oktober", 10}, {"november", 11}, {"desember", 12},
	{"agus", 8}, {"jan", 1}, {"feb", 2}, {"mar", 3}, {"apr", 4},
	{"mei", 5}, {"jun", 6}, {"jul", 7}, {"agu", 8}, {"aug", 8},
	{"sep", 9}, {"okt", 10}, {"nov", 11}, {"des", 12},
}

// MonthName returns the Indonesian name for month 1..12, or "Unknown".
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return "Unknown"
	}
	return monthNames[month-1]
}

// MonthByToken resolves an Indonesian month name or abbreviation found
// anywhere inside the lowercased text. Returns 0 when nothing matches.
func MonthByToken(text string) int {
	text = strings.ToLower(text)
	for _, mt := range monthTokens {
		if strings.Contains(text, mt.Token) {
			return mt.Month
		}
	}
	return 0
}

// MonthByPrefix resolves a month word by its first three characters,
// accepting both English and Indonesian names. Returns 0 when unknown.
func MonthByPrefix(word string) int {
	word = strings.ToLower(word)
	prefixes := map[string]int{
		"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "mei": 5,
		"jun": 6, "jul": 7, "aug": 8, "agu": 8, "sep": 9, "oct": 10,
		"okt": 10, "nov": 11, "dec": 12, "des": 12,
	}
	if len(word) < 3 {
		return 0
	}
	return prefixes[word[:3]]
}

// ParseAmount strips grouping separators and parses a positive integer
// amount. Returns false for anything that is not a positive integer.
func ParseAmount(s string) (int, bool) {
	clean := strings.NewReplacer(".", "", ",", "", " ", "").Replace(strings.TrimSpace(s))
	if clean == "" {
		return 0, false
	}
	n, err := strconv.Atoi(clean)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// GroupAmount renders a non-negative integer with "." as the thousands
// separator, the display convention used across the bot and the ledger.
func GroupAmount(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// DigitsOnly strips everything but digits.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeAmount reduces an arbitrary amount cell to the grouped
// display form, defaulting to "0" when no digits are present.
func NormalizeAmount(s string) string {
	digits := DigitsOnly(strings.TrimPrefix(s, "'"))
	if digits == "" {
		return "0"
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return "0"
	}
	return GroupAmount(n)
}

// FormatDisplayDate renders a timestamp in the bot's display convention,
// e.g. "2 September 2026 15:04".
func FormatDisplayDate(t time.Time) string {
	return strconv.Itoa(t.Day()) + " " + MonthName(int(t.Month())) + " " +
		strconv.Itoa(t.Year()) + " " + t.Format("15:04")
}
