// Package receipt recovers structured transaction fields from raw OCR
// text. Every extractor is total: a pattern miss resolves to a
// documented default, never an error.
package receipt

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"duit/pkg/duit"
)

var (
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](20\d{2})`),
		regexp.MustCompile(`(\d{1,2})\s+([A-Za-z]+)\s+(20\d{2})`),
		regexp.MustCompile(`Date\s*:\s*(\d{1,2})[/-](\d{1,2})[/-](20\d{2})`),
		regexp.MustCompile(`Tanggal\s*:\s*(\d{1,2})[/-](\d{1,2})[/-](20\d{2})`),
	}

	merchantPatterns = []*regexp.Regexp{
		regexp.MustCompile(`Store\s*:\s*(.*)`),
		regexp.MustCompile(`Merchant\s*:\s*(.*)`),
		regexp.MustCompile(`Toko\s*:\s*(.*)`),
	}

	totalPatterns = []*regexp.Regexp{
		regexp.MustCompile(`Total\s*:?\s*(?:Rp\.?|IDR)?\s*([\d.,]+)`),
		regexp.MustCompile(`TOTAL\s*:?\s*(?:Rp\.?|IDR)?\s*([\d.,]+)`),
		regexp.MustCompile(`Grand Total\s*:?\s*(?:Rp\.?|IDR)?\s*([\d.,]+)`),
		regexp.MustCompile(`Jumlah\s*:?\s*(?:Rp\.?|IDR)?\s*([\d.,]+)`),
		regexp.MustCompile(`Amount\s*:?\s*(?:Rp\.?|IDR)?\s*([\d.,]+)`),
	}

	numberTokens = regexp.MustCompile(`(?:Rp\.?|IDR)?\s*([\d.,]+)`)

	itemLine = regexp.MustCompile(`(.*?)(?:Rp\.?|IDR)?\s*([\d.,]+)(?:\s*(?:x|×)\s*(\d+))?\s*$`)

	taxAmountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`PPN\s*:?\s*(?:Rp\.?|IDR)?\s*([\d.,]+)`),
		regexp.MustCompile(`Tax\s*:?\s*(?:Rp\.?|IDR)?\s*([\d.,]+)`),
		regexp.MustCompile(`Pajak\s*:?\s*(?:Rp\.?|IDR)?\s*([\d.,]+)`),
		regexp.MustCompile(`VAT\s*:?\s*(?:Rp\.?|IDR)?\s*([\d.,]+)`),
	}

	taxPercentPatterns = []*regexp.Regexp{
		regexp.MustCompile(`PPN\s*(\d+)%`),
		regexp.MustCompile(`Tax\s*(\d+)%`),
		regexp.MustCompile(`Pajak\s*(\d+)%`),
		regexp.MustCompile(`VAT\s*(\d+)%`),
	}

	discountAmountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`Diskon\s*:?\s*(?:Rp\.?|IDR)?\s*([\d.,]+)`),
		regexp.MustCompile(`Discount\s*:?\s*(?:Rp\.?|IDR)?\s*([\d.,]+)`),
		regexp.MustCompile(`Potongan\s*:?\s*(?:Rp\.?|IDR)?\s*([\d.,]+)`),
	}

	discountPercentPatterns = []*regexp.Regexp{
		regexp.MustCompile(`Diskon\s*(\d+)%`),
		regexp.MustCompile(`Discount\s*(\d+)%`),
		regexp.MustCompile(`Potongan\s*(\d+)%`),
	}
)

// categoryBuckets is the keyword classifier, checked in priority order.
var categoryBuckets = []struct {
	Name     string
	Keywords []string
}{
	{"Makanan", []string{"restaurant", "resto", "cafe", "food", "makanan", "minuman"}},
	{"Transportasi", []string{"transport", "transportasi", "grab", "gojek", "taxi", "taksi", "bus", "train", "kereta"}},
	{"Investasi", []string{"invest", "investasi", "saham", "reksadana", "obligasi"}},
	{"Belanja", []string{"belanja", "supermarket", "mart", "market", "toko", "retail"}},
	{"Telekomunikasi", []string{"pulsa", "data", "internet", "telepon", "phone"}},
}

// headerNoise marks first lines that cannot be a merchant name.
var headerNoise = []string{"receipt", "invoice", "struk", "nota"}

// nonItemWords exclude summary lines from line-item extraction.
var nonItemWords = []string{"total", "subtotal", "tax", "pajak", "diskon", "discount"}

// ExtractDate returns the receipt date as DD/MM/YYYY, or "" when no
// pattern matches. Month names resolve by 3-letter prefix.
func ExtractDate(text string) string {
	for _, re := range datePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		day, month, year := m[1], m[2], m[3]
		if regexp.MustCompile(`^[A-Za-z]+$`).MatchString(month) {
			n := duit.MonthByPrefix(month)
			if n == 0 {
				continue
			}
			month = strconv.Itoa(n)
		}
		return day + "/" + month + "/" + year
	}
	return ""
}

// ExtractMerchant returns the store name: the first of the first three
// lines free of receipt boilerplate, then labelled lines, then the
// placeholder "Toko/Merchant".
func ExtractMerchant(text string) string {
	lines := strings.Split(text, "\n")
	limit := 3
	if len(lines) < limit {
		limit = len(lines)
	}
	for i := 0; i < limit; i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		noisy := false
		for _, kw := range headerNoise {
			if strings.Contains(lower, kw) {
				noisy = true
				break
			}
		}
		if !noisy {
			return line
		}
	}

	for _, re := range merchantPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return "Toko/Merchant"
}

// ExtractCategory classifies the receipt text into one of the fixed
// expense buckets, defaulting to "Lainnya".
func ExtractCategory(text string) string {
	lower := strings.ToLower(text)
	for _, bucket := range categoryBuckets {
		for _, kw := range bucket.Keywords {
			if strings.Contains(lower, kw) {
				return bucket.Name
			}
		}
	}
	return "Lainnya"
}

// ExtractTotal returns the total amount as bare digits. Labelled totals
// win; otherwise the numerically largest token in the text; "0" when no
// numeric token exists.
func ExtractTotal(text string) string {
	for _, re := range totalPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return stripGrouping(m[1])
		}
	}

	var best int
	found := false
	for _, m := range numberTokens.FindAllStringSubmatch(text, -1) {
		clean := stripGrouping(m[1])
		n, err := strconv.Atoi(clean)
		if err != nil {
			continue
		}
		if !found || n > best {
			best = n
			found = true
		}
	}
	if !found {
		return "0"
	}
	return strconv.Itoa(best)
}

// ExtractItems recovers line items shaped "name ... price [x qty]".
// Lines whose name segment contains a summary word are skipped.
// Quantity defaults to 1.
func ExtractItems(text string) []duit.ReceiptItem {
	var items []duit.ReceiptItem
	for _, line := range strings.Split(text, "\n") {
		m := itemLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if !hasLetter(name) {
			continue
		}
		lower := strings.ToLower(name)
		skip := false
		for _, kw := range nonItemWords {
			if strings.Contains(lower, kw) {
				skip = true
				break
			}
		}
		if skip {
			continue
		}
		qty := 1
		if m[3] != "" {
			if n, err := strconv.Atoi(m[3]); err == nil && n > 0 {
				qty = n
			}
		}
		items = append(items, duit.ReceiptItem{
			Name:     name,
			Quantity: qty,
			Price:    stripGrouping(m[2]),
		})
	}
	return items
}

// ExtractItemsDescription joins the first three item names, falling
// back to the line after an "item"/"barang" header, then the literal
// "Pembelian barang".
func ExtractItemsDescription(text string) string {
	items := ExtractItems(text)
	if len(items) > 0 {
		names := make([]string, 0, 3)
		for i, it := range items {
			if i == 3 {
				break
			}
			names = append(names, it.Name)
		}
		desc := strings.Join(names, ", ")
		if len(items) > 3 {
			desc += "..."
		}
		return desc
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "item") || strings.Contains(lower, "barang") {
			if i+1 < len(lines) && strings.TrimSpace(lines[i+1]) != "" {
				return strings.TrimSpace(lines[i+1])
			}
		}
	}
	return "Pembelian barang"
}

// ExtractTax returns the tax as an amount or bare-percentage value,
// defaulting to {none, "0"}.
func ExtractTax(text string) duit.Adjustment {
	return extractAdjustment(text, taxAmountPatterns, taxPercentPatterns)
}

// ExtractDiscount returns the discount, defaulting to {none, "0"}.
func ExtractDiscount(text string) duit.Adjustment {
	return extractAdjustment(text, discountAmountPatterns, discountPercentPatterns)
}

func extractAdjustment(text string, amount, percent []*regexp.Regexp) duit.Adjustment {
	for _, re := range percent {
		if m := re.FindStringSubmatch(text); m != nil {
			return duit.Adjustment{Kind: duit.AdjustmentPercentage, Value: m[1]}
		}
	}
	for _, re := range amount {
		if m := re.FindStringSubmatch(text); m != nil {
			return duit.Adjustment{Kind: duit.AdjustmentAmount, Value: stripGrouping(m[1])}
		}
	}
	return duit.NoAdjustment()
}

// Parse runs the full extractor cascade over recognized text and builds
// a scan result. Receipts default to a cash expense; an extracted
// DD/MM/YYYY date is redisplayed in the local convention with the
// current clock time, and a missing date falls back to now.
func Parse(text string, now time.Time) duit.ScanResult {
	res := duit.ScanResult{
		Draft: duit.Draft{
			Name:        ExtractMerchant(text),
			Type:        duit.TypeExpense,
			Source:      "Cash",
			Category:    ExtractCategory(text),
			Amount:      ExtractTotal(text),
			Description: ExtractItemsDescription(text),
		},
		Items:    ExtractItems(text),
		Tax:      ExtractTax(text),
		Discount: ExtractDiscount(text),
		RawText:  text,
	}

	res.Draft.Date = duit.FormatDisplayDate(now)
	if raw := ExtractDate(text); raw != "" {
		if t, err := time.Parse("2/1/2006", raw); err == nil {
			t = time.Date(t.Year(), t.Month(), t.Day(), now.Hour(), now.Minute(), 0, 0, now.Location())
			res.Draft.Date = duit.FormatDisplayDate(t)
		}
	}
	return res
}

// SortItemsByPrice orders items by unit price descending; ties keep
// their original order.
func SortItemsByPrice(items []duit.ReceiptItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, _ := strconv.Atoi(items[i].Price)
		b, _ := strconv.Atoi(items[j].Price)
		return a > b
	})
}

func stripGrouping(s string) string {
	return strings.NewReplacer(".", "", ",", "").Replace(s)
}

// hasLetter filters out date and amount-only lines posing as item names.
func hasLetter(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}
