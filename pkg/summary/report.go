package summary

import (
	"fmt"
	"strings"

	"duit/pkg/duit"
)

const topCategories = 5

// NoSheetsMessage is shown when the spreadsheet holds no transaction
// worksheets at all.
func NoSheetsMessage(year int) string {
	return fmt.Sprintf("Tidak ditemukan sheet transaksi untuk %d atau tahun lainnya.", year)
}

// Render produces the full summary message for one month. A zero-count
// summary renders the empty-month notice instead of a report.
func Render(s duit.MonthlySummary) string {
	monthName := duit.MonthName(s.Month)

	if s.Count == 0 {
		return fmt.Sprintf(
			"Belum ada transaksi yang tercatat untuk %s %d. Gunakan /add untuk menambahkan transaksi baru!",
			monthName, s.Year)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 <b>RINGKASAN KEUANGAN - %s %d</b>\n\n", strings.ToUpper(monthName), s.Year)

	fmt.Fprintf(&b, "💰 <b>Total Pemasukan:</b> Rp %s\n", duit.GroupAmount(s.Income))
	fmt.Fprintf(&b, "💸 <b>Total Pengeluaran:</b> Rp %s\n", duit.GroupAmount(s.Expense))

	balance := s.Balance()
	status := "🟢 SURPLUS"
	if balance < 0 {
		status = "🔴 DEFISIT"
	}
	fmt.Fprintf(&b, "🧮 <b>Saldo:</b> Rp %s (%s)\n", groupSigned(balance), status)

	if len(s.Categories) > 0 {
		b.WriteString("\n📊 <b>Breakdown Pengeluaran:</b>\n")
		shown := s.Categories
		if len(shown) > topCategories {
			shown = shown[:topCategories]
		}
		for _, c := range shown {
			fmt.Fprintf(&b, "• %s: Rp %s (%s)\n", c.Name, duit.GroupAmount(c.Amount), percent(c.Amount, s.Expense))
		}
		if len(s.Categories) > topCategories {
			rest := 0
			for _, c := range s.Categories[topCategories:] {
				rest += c.Amount
			}
			fmt.Fprintf(&b, "• Lainnya: Rp %s (%s)\n", duit.GroupAmount(rest), percent(rest, s.Expense))
		}
	}

	fmt.Fprintf(&b, "\n📝 <b>Total Transaksi:</b> %d", s.Count)
	return b.String()
}

func percent(part, whole int) string {
	if whole <= 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(whole)*100)
}

func groupSigned(n int) string {
	if n < 0 {
		return "-" + duit.GroupAmount(-n)
	}
	return duit.GroupAmount(n)
}
