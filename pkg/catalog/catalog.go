// Package catalog holds the static category/source catalog and the
// keyboard layouts both conversation flows present to the user.
package catalog

import "duit/pkg/duit"

// Button is one inline-keyboard button: a user-facing label and the
// callback token the flow receives when it is pressed.
type Button struct {
	Label string
	Data  string
}

// Keyboard is the transport-neutral inline keyboard shape handed to the
// messenger binding. A nil *Keyboard means "no keyboard".
type Keyboard struct {
	Rows [][]Button
}

// Callback tokens shared between keyboards and the conversation engine.
const (
	TokenBack       = "back"
	TokenAddManual  = "add_manual"
	TokenAddScan    = "add_scan"
	TokenOtherCat   = "other_category"
	TokenOtherSrc   = "other_source"
	TokenSave       = "save_transaction"
	TokenCancel     = "cancel_transaction"
	TokenScanYes    = "ya"
	TokenScanEdit   = "edit"
	TokenScanCancel = "batal"
)

// IncomeCategories and ExpenseCategories are the selectable category
// buttons per transaction type, in presentation order.
var (
	IncomeCategories = []Button{
		{Label: "💼 Gaji", Data: "gaji"},
		{Label: "🎁 Bonus", Data: "bonus"},
		{Label: "♾️ Lainnya", Data: TokenOtherCat},
	}

	ExpenseCategories = []Button{
		{Label: "🍔 Makanan", Data: "makanan"},
		{Label: "🚗 Transportasi", Data: "transportasi"},
		{Label: "💸 Invest", Data: "invest"},
		{Label: "📱 Tagihan", Data: "tagihan"},
		{Label: "♾️ Lainnya", Data: TokenOtherCat},
	}
)

// sourceMap and categoryMap resolve callback tokens to the canonical
// labels stored in the ledger. Unmapped tokens pass through verbatim.
var (
	sourceMap = map[string]string{
		"cash": "Cash",
		"bca":  "BCA",
	}

	categoryMap = map[string]string{
		"makanan":      "Makanan",
		"transportasi": "Transportasi",
		"invest":       "Invest",
		"tagihan":      "Tagihan",
		"gaji":         "Gaji",
		"bonus":        "Bonus",
	}
)

// ResolveSource maps a source token to its canonical label, passing
// unmapped tokens through unchanged (free-text source).
func ResolveSource(token string) string {
	if s, ok := sourceMap[token]; ok {
		return s
	}
	return token
}

// ResolveCategory maps a category token to its canonical label, passing
// unmapped tokens through unchanged.
func ResolveCategory(token string) string {
	if c, ok := categoryMap[token]; ok {
		return c
	}
	return token
}

// Build lays out options perRow buttons per row and appends the back row.
func Build(options []Button, perRow int) *Keyboard {
	k := &Keyboard{}
	for i := 0; i < len(options); i += perRow {
		end := i + perRow
		if end > len(options) {
			end = len(options)
		}
		k.Rows = append(k.Rows, options[i:end])
	}
	k.Rows = append(k.Rows, []Button{{Label: "« Kembali", Data: TokenBack}})
	return k
}

// BackOnly returns a keyboard with just the back button.
func BackOnly() *Keyboard {
	return &Keyboard{Rows: [][]Button{{{Label: "« Kembali", Data: TokenBack}}}}
}

// MethodSelection returns the manual-vs-scan method keyboard.
func MethodSelection() *Keyboard {
	return &Keyboard{Rows: [][]Button{
		{{Label: "✏️ Input Manual", Data: TokenAddManual}},
		{{Label: "📷 Scan Nota", Data: TokenAddScan}},
	}}
}

// TypeSelection returns the income/expense keyboard.
func TypeSelection() *Keyboard {
	return &Keyboard{Rows: [][]Button{
		{
			{Label: "💰 Pemasukan", Data: "pemasukan"},
			{Label: "💸 Pengeluaran", Data: "pengeluaran"},
		},
		{{Label: "« Kembali", Data: TokenBack}},
	}}
}

// SourceSelection returns the funding-source keyboard.
func SourceSelection() *Keyboard {
	return &Keyboard{Rows: [][]Button{
		{
			{Label: "💵 Cash", Data: "cash"},
			{Label: "🏦 BCA", Data: "bca"},
			{Label: "♾️ Lainnya", Data: TokenOtherSrc},
		},
		{{Label: "« Kembali", Data: TokenBack}},
	}}
}

// CategorySelection returns the category keyboard for the given
// transaction type.
func CategorySelection(txType string) *Keyboard {
	if txType == duit.TypeIncome {
		return Build(IncomeCategories, 2)
	}
	return Build(ExpenseCategories, 2)
}

// Confirmation returns the save/cancel keyboard of the manual flow.
func Confirmation() *Keyboard {
	return &Keyboard{Rows: [][]Button{
		{
			{Label: "✅ Simpan", Data: TokenSave},
			{Label: "❌ Batal", Data: TokenCancel},
		},
		{{Label: "« Kembali", Data: TokenBack}},
	}}
}

// ScanConfirmation returns the keyboard shown under a scan preview.
func ScanConfirmation() *Keyboard {
	return &Keyboard{Rows: [][]Button{
		{
			{Label: "✅ Ya, Simpan", Data: TokenScanYes},
			{Label: "✏️ Edit", Data: TokenScanEdit},
		},
		{{Label: "❌ Batal", Data: TokenScanCancel}},
	}}
}
