package receipt

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duit/pkg/duit"
)

func TestExtractDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"slash", "Indomaret\n15/01/2025\nTotal: 50.000", "15/01/2025"},
		{"dash", "Indomaret\n15-01-2025", "15/01/2025"},
		{"month name", "Struk 15 Januari 2025", "15/1/2025"},
		{"english month", "Receipt 3 Sep 2025", "3/9/2025"},
		{"labelled", "Tanggal : 02/03/2025", "02/03/2025"},
		{"none", "Indomaret\nTotal 50.000", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractDate(tt.text))
		})
	}
}

func TestExtractMerchant(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"first line", "Indomaret Point\nJl. Sudirman 1\nTotal 10.000", "Indomaret Point"},
		{"skips boilerplate", "STRUK PEMBELIAN\nAlfamart\nTotal 10.000", "Alfamart"},
		{"labelled fallback", "Receipt\nInvoice\nNota\nStore: Toko Jaya", "Toko Jaya"},
		{"placeholder", "Receipt\nInvoice\nNota", "Toko/Merchant"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMerchant(tt.text))
		})
	}
}

func TestExtractCategory(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"food", "Resto Padang Sederhana", "Makanan"},
		{"transport", "Gojek trip receipt", "Transportasi"},
		{"shopping", "Alfamart minimarket", "Belanja"},
		{"telco", "Pembelian pulsa 50rb", "Telekomunikasi"},
		{"default", "XYZ 123", "Lainnya"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCategory(tt.text))
		})
	}
}

func TestExtractCategoryPriority(t *testing.T) {
	// food keywords win over shopping keywords when both appear
	assert.Equal(t, "Makanan", ExtractCategory("cafe di dalam supermarket"))
}

func TestExtractTotal(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"labelled", "TOTAL: Rp 125.000", "125000"},
		{"labelled lowercase", "Total : 50.000", "50000"},
		{"grand total", "Grand Total Rp. 1.250.500", "1250500"},
		{"max fallback", "Item A 10.000\nItem B 85.000", "85000"},
		{"no numerics", "tidak ada angka", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTotal(tt.text))
		})
	}
}

func TestExtractItems(t *testing.T) {
	text := "Indomaret\nIndomie Goreng 3.500 x 2\nAqua 600ml Rp 4.000\nTotal 11.000"
	items := ExtractItems(text)
	require.Len(t, items, 2)

	assert.Equal(t, "Indomie Goreng", items[0].Name)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "3500", items[0].Price)

	assert.Equal(t, "Aqua 600ml", items[1].Name)
	assert.Equal(t, 1, items[1].Quantity)
	assert.Equal(t, "4000", items[1].Price)
}

func TestExtractItemsSkipsSummaryLines(t *testing.T) {
	text := "Subtotal 10.000\nPajak 1.000\nDiskon 500\nTotal 10.500"
	assert.Empty(t, ExtractItems(text))
}

func TestExtractItemsDescription(t *testing.T) {
	t.Run("joins first three with ellipsis", func(t *testing.T) {
		text := "A 1.000\nB 2.000\nC 3.000\nD 4.000"
		assert.Equal(t, "A, B, C...", ExtractItemsDescription(text))
	})

	t.Run("placeholder when nothing matches", func(t *testing.T) {
		assert.Equal(t, "Pembelian barang", ExtractItemsDescription("tanpa angka"))
	})
}

func TestExtractAdjustments(t *testing.T) {
	t.Run("tax amount", func(t *testing.T) {
		a := ExtractTax("PPN: Rp 5.500")
		assert.Equal(t, duit.AdjustmentAmount, a.Kind)
		assert.Equal(t, "5500", a.Value)
	})

	t.Run("tax percent wins over amount", func(t *testing.T) {
		a := ExtractTax("PPN 11%\nPPN: 5.500")
		assert.Equal(t, duit.AdjustmentPercentage, a.Kind)
		assert.Equal(t, "11", a.Value)
	})

	t.Run("discount percent", func(t *testing.T) {
		a := ExtractDiscount("Diskon 10%")
		assert.Equal(t, duit.AdjustmentPercentage, a.Kind)
		assert.Equal(t, "10", a.Value)
	})

	t.Run("default", func(t *testing.T) {
		assert.Equal(t, duit.NoAdjustment(), ExtractTax("no tax here at all"))
		assert.Equal(t, duit.NoAdjustment(), ExtractDiscount("nothing"))
	})
}

func TestParse(t *testing.T) {
	now := time.Date(2025, time.March, 10, 14, 30, 0, 0, time.UTC)
	text := "Resto Bu Tini\n15/01/2025\nNasi Goreng 20.000\nEs Teh 5.000\nTotal: 25.000"

	res := Parse(text, now)

	assert.Equal(t, "Resto Bu Tini", res.Draft.Name)
	assert.Equal(t, duit.TypeExpense, res.Draft.Type)
	assert.Equal(t, "Cash", res.Draft.Source)
	assert.Equal(t, "Makanan", res.Draft.Category)
	assert.Equal(t, "25000", res.Draft.Amount)
	assert.Equal(t, "15 Januari 2025 14:30", res.Draft.Date)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, text, res.RawText)
}

func TestParseNoDateUsesClock(t *testing.T) {
	now := time.Date(2025, time.March, 10, 9, 5, 0, 0, time.UTC)
	res := Parse("Alfamart\nTotal 10.000", now)
	assert.Equal(t, "10 Maret 2025 09:05", res.Draft.Date)
}

func TestFormatPreview(t *testing.T) {
	res := duit.ScanResult{
		Draft: duit.Draft{
			Name:     "Alfamart",
			Date:     "15 Januari 2025 10:00",
			Category: "Belanja",
			Amount:   "125000",
		},
		Items: []duit.ReceiptItem{
			{Name: "A", Quantity: 1, Price: "1000"},
			{Name: "B", Quantity: 1, Price: "1000"},
			{Name: "C", Quantity: 1, Price: "1000"},
			{Name: "D", Quantity: 1, Price: "1000"},
			{Name: "E", Quantity: 1, Price: "1000"},
			{Name: "F", Quantity: 1, Price: "1000"},
			{Name: "G", Quantity: 1, Price: "1000"},
		},
		Tax:      duit.Adjustment{Kind: duit.AdjustmentPercentage, Value: "11"},
		Discount: duit.NoAdjustment(),
	}

	msg := FormatPreview(res)

	assert.Contains(t, msg, "Alfamart")
	assert.Contains(t, msg, "Total: Rp 125.000")
	assert.Contains(t, msg, "dan 2 item lainnya")
	assert.Contains(t, msg, "Pajak: 11%")
	assert.NotContains(t, msg, "Diskon:")
	assert.NotContains(t, msg, "• F")
	assert.Equal(t, previewItemLimit, strings.Count(msg, "• "))
}

func TestSortItemsByPrice(t *testing.T) {
	items := []duit.ReceiptItem{
		{Name: "cheap", Price: "1000"},
		{Name: "dear", Price: "9000"},
		{Name: "mid", Price: "5000"},
	}
	SortItemsByPrice(items)
	assert.Equal(t, "dear", items[0].Name)
	assert.Equal(t, "mid", items[1].Name)
	assert.Equal(t, "cheap", items[2].Name)
}
