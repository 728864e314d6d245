package receipt

import (
	"fmt"
	"strings"

	"duit/pkg/duit"
)

const previewItemLimit = 5

// FormatPreview renders the scan confirmation message shown before a
// scanned transaction is saved. At most five items are listed, with a
// "dan N item lainnya" tail. Tax and discount lines appear only when a
// value was actually extracted.
func FormatPreview(res duit.ScanResult) string {
	var b strings.Builder

	b.WriteString("📋 <b>Hasil Scan Nota</b>\n\n")
	fmt.Fprintf(&b, "🏪 Toko: %s\n", res.Draft.Name)
	fmt.Fprintf(&b, "📅 Tanggal: %s\n", res.Draft.Date)
	fmt.Fprintf(&b, "🏷 Kategori: %s\n", res.Draft.Category)

	if len(res.Items) > 0 {
		b.WriteString("\n🛒 <b>Item:</b>\n")
		for i, it := range res.Items {
			if i == previewItemLimit {
				fmt.Fprintf(&b, "<i>... dan %d item lainnya</i>\n", len(res.Items)-previewItemLimit)
				break
			}
			fmt.Fprintf(&b, "• %s x%d @ Rp %s\n", it.Name, it.Quantity, duit.NormalizeAmount(it.Price))
		}
	}

	if line := adjustmentLine(res.Tax); line != "" {
		b.WriteString("\n💸 Pajak: " + line)
	}
	if line := adjustmentLine(res.Discount); line != "" {
		b.WriteString("\n🎁 Diskon: " + line)
	}

	fmt.Fprintf(&b, "\n\n💰 <b>Total: Rp %s</b>\n\n", duit.NormalizeAmount(res.Draft.Amount))
	b.WriteString("Simpan transaksi ini?")
	return b.String()
}

func adjustmentLine(a duit.Adjustment) string {
	switch a.Kind {
	case duit.AdjustmentAmount:
		if a.Value == "0" || a.Value == "" {
			return ""
		}
		return "Rp " + duit.NormalizeAmount(a.Value)
	case duit.AdjustmentPercentage:
		if a.Value == "0" || a.Value == "" {
			return ""
		}
		return a.Value + "%"
	}
	return ""
}
