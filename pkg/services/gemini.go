package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/vmkteam/embedlog"
	"google.golang.org/api/option"

	"duit/pkg/duit"
)

const geminiModel = "gemini-1.5-flash"

const extractionPrompt = `I have a receipt that was processed with OCR. Please extract the key information and format it as JSON.

OCR TEXT:
%s

Extract and return ONLY the following information in JSON format:
1. Store/merchant name
2. Date of transaction (in DD Month YYYY format if possible)
3. Total amount (in Indonesian Rupiah, with no thousands separator)
4. Individual items if present (name, quantity, price per unit)
5. Category based on the merchant (use one of: Makanan, Transportasi, Invest, Tagihan, Belanja, or Lainnya)

For amounts:
- Find the TOTAL or GRAND TOTAL amount
- Look for "RP" or "Rp" followed by numbers
- Ignore bank account numbers
- For amounts, keep only digits, no separators

Return ONLY a valid JSON object with these fields:
{
  "tanggal": "date of transaction",
  "nama": "merchant name",
  "kategori": "expense category",
  "jumlah": "total amount as digits only",
  "deskripsi": "brief description of purchase",
  "items": [
    {"name": "item name", "quantity": "quantity", "price": "unit price"}
  ],
  "tax": {"type": "percentage/fixed/none", "value": "tax amount"},
  "discount": {"type": "percentage/fixed/none", "value": "discount amount"}
}

If you can't determine some fields, use empty strings or default values.`

// Gemini extracts structured receipt data from OCR text through the
// Generative AI API.
type Gemini struct {
	logger embedlog.Logger
	client *genai.Client
	model  *genai.GenerativeModel
}

var _ Extractor = (*Gemini)(nil)

// NewGemini creates the Gemini-backed extractor.
func NewGemini(ctx context.Context, apiKey string, logger embedlog.Logger) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{
		logger: logger,
		client: client,
		model:  client.GenerativeModel(geminiModel),
	}, nil
}

// Close releases the underlying API client.
func (g *Gemini) Close() error { return g.client.Close() }

// Extract never fails: API and parse errors degrade to a placeholder
// result the user can edit or cancel in the confirmation step.
func (g *Gemini) Extract(ctx context.Context, ocrText string) (duit.ScanResult, error) {
	payload, err := g.generate(ctx, ocrText)
	if err != nil {
		g.logger.Error(ctx, "gemini extraction failed", "err", err)
		return errorResult(ocrText, err), nil
	}

	res := payload.toScanResult()
	res.RawText = ocrText
	return res, nil
}

func (g *Gemini) generate(ctx context.Context, ocrText string) (*geminiPayload, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(fmt.Sprintf(extractionPrompt, ocrText)))
	if err != nil {
		return nil, fmt.Errorf("gemini api: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty gemini response")
	}

	text := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	return parsePayload(text)
}

var (
	fencedJSON = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	looseJSON  = regexp.MustCompile(`(?s)(\{.*\})`)
)

// parsePayload tries the raw response, then a fenced code block, then
// the first brace-delimited object.
func parsePayload(text string) (*geminiPayload, error) {
	var p geminiPayload
	if err := json.Unmarshal([]byte(text), &p); err == nil {
		return &p, nil
	}
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		if err := json.Unmarshal([]byte(m[1]), &p); err == nil {
			return &p, nil
		}
	}
	if m := looseJSON.FindStringSubmatch(text); m != nil {
		if err := json.Unmarshal([]byte(m[1]), &p); err == nil {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("no JSON object in gemini response")
}

// geminiPayload mirrors the JSON shape requested in the prompt. The
// model is loose about numeric types, so items and values accept both
// strings and numbers.
type geminiPayload struct {
	Tanggal   string       `json:"tanggal"`
	Nama      string       `json:"nama"`
	Kategori  string       `json:"kategori"`
	Jumlah    any          `json:"jumlah"`
	Deskripsi string       `json:"deskripsi"`
	Items     []geminiItem `json:"items"`
	Tax       geminiAdj    `json:"tax"`
	Discount  geminiAdj    `json:"discount"`
}

type geminiItem struct {
	Name     string `json:"name"`
	Quantity any    `json:"quantity"`
	Price    any    `json:"price"`
}

type geminiAdj struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

func (p *geminiPayload) toScanResult() duit.ScanResult {
	res := duit.ScanResult{
		Draft: duit.Draft{
			Date:        p.Tanggal,
			Name:        p.Nama,
			Type:        duit.TypeExpense,
			Source:      "Cash",
			Category:    p.Kategori,
			Amount:      duit.DigitsOnly(asString(p.Jumlah)),
			Description: p.Deskripsi,
		},
		Tax:      p.Tax.toAdjustment(),
		Discount: p.Discount.toAdjustment(),
	}
	if res.Draft.Name == "" {
		res.Draft.Name = "Toko/Merchant"
	}
	if res.Draft.Category == "" {
		res.Draft.Category = "Lainnya"
	}
	if res.Draft.Amount == "" {
		res.Draft.Amount = "0"
	}

	for _, it := range p.Items {
		if it.Name == "" {
			continue
		}
		qty := asInt(it.Quantity)
		if qty < 1 {
			qty = 1
		}
		res.Items = append(res.Items, duit.ReceiptItem{
			Name:     it.Name,
			Quantity: qty,
			Price:    duit.DigitsOnly(asString(it.Price)),
		})
	}
	return res
}

func (a geminiAdj) toAdjustment() duit.Adjustment {
	value := duit.DigitsOnly(asString(a.Value))
	if value == "" {
		value = "0"
	}
	switch strings.ToLower(a.Type) {
	case "percentage":
		return duit.Adjustment{Kind: duit.AdjustmentPercentage, Value: value}
	case "fixed", "amount":
		return duit.Adjustment{Kind: duit.AdjustmentAmount, Value: value}
	}
	return duit.NoAdjustment()
}

func errorResult(ocrText string, err error) duit.ScanResult {
	return duit.ScanResult{
		Draft: duit.Draft{
			Name:        "Error processing receipt",
			Type:        duit.TypeExpense,
			Source:      "Cash",
			Category:    "Lainnya",
			Amount:      "0",
			Description: fmt.Sprintf("Error: %v", err),
		},
		Tax:      duit.NoAdjustment(),
		Discount: duit.NoAdjustment(),
		RawText:  ocrText,
	}
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatInt(int64(t), 10)
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

func asInt(v any) int {
	switch t := v.(type) {
	case string:
		n, _ := strconv.Atoi(strings.TrimSpace(t))
		return n
	case float64:
		return int(t)
	}
	return 0
}
