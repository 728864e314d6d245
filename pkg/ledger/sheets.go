package ledger

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/vmkteam/embedlog"
	"google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"duit/pkg/duit"
)

// SheetsConfig configures the Google Sheets backend. Exactly one of
// CredentialsJSON or CredentialsFile must be set.
type SheetsConfig struct {
	SpreadsheetID   string
	CredentialsJSON string
	CredentialsFile string
}

// Sheets is the Google Sheets implementation of Ledger.
type Sheets struct {
	embedlog.Logger
	svc           *gsheet.Service
	spreadsheetID string
	now           func() time.Time
}

var _ Ledger = (*Sheets)(nil)

// NewSheets connects to the spreadsheet using service-account
// credentials.
func NewSheets(ctx context.Context, cfg SheetsConfig, logger embedlog.Logger) (*Sheets, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("ledger: spreadsheet id is empty")
	}

	creds := []byte(cfg.CredentialsJSON)
	if len(creds) == 0 {
		if cfg.CredentialsFile == "" {
			return nil, fmt.Errorf("ledger: no credentials configured")
		}
		b, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("ledger: read credentials: %w", err)
		}
		creds = b
	}

	svc, err := gsheet.NewService(ctx,
		option.WithCredentialsJSON(creds),
		option.WithScopes(gsheet.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("ledger: create sheets service: %w", err)
	}

	return &Sheets{
		Logger:        logger,
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		now:           time.Now,
	}, nil
}

func (s *Sheets) Append(ctx context.Context, d duit.Draft) error {
	year := YearOf(d.Date, s.now())
	name, err := s.ensureYearSheet(ctx, year)
	if err != nil {
		return err
	}

	vr := &gsheet.ValueRange{Values: [][]any{Row(d)}}
	_, err = s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, quote(name)+"!A:G", vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("ledger: append row: %w", err)
	}
	s.Print(ctx, "transaction stored", "sheet", name, "name", d.Name)
	return nil
}

func (s *Sheets) Rows(ctx context.Context, year int) ([][]string, error) {
	name := SheetName(year)
	ok, _, err := s.sheetExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoSheet
	}

	resp, err := s.svc.Spreadsheets.Values.
		Get(s.spreadsheetID, quote(name)+"!A2:G").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("ledger: read rows: %w", err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		rows = append(rows, padRow(raw))
	}
	return rows, nil
}

func (s *Sheets) Years(ctx context.Context) ([]int, error) {
	meta, err := s.svc.Spreadsheets.Get(s.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("ledger: list sheets: %w", err)
	}

	var years []int
	for _, sh := range meta.Sheets {
		title := sh.Properties.Title
		if !strings.HasPrefix(title, "Transaksi ") {
			continue
		}
		y, err := strconv.Atoi(strings.TrimPrefix(title, "Transaksi "))
		if err != nil {
			continue
		}
		years = append(years, y)
	}
	sort.Ints(years)
	return years, nil
}

func (s *Sheets) Ping(ctx context.Context) error {
	_, err := s.svc.Spreadsheets.Get(s.spreadsheetID).
		Fields("spreadsheetId").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("ledger: ping: %w", err)
	}
	return nil
}

// ensureYearSheet creates the worksheet with its bold centered header
// row when it does not exist yet.
func (s *Sheets) ensureYearSheet(ctx context.Context, year int) (string, error) {
	name := SheetName(year)
	ok, _, err := s.sheetExists(ctx, name)
	if err != nil {
		return "", err
	}
	if ok {
		return name, nil
	}

	add := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			AddSheet: &gsheet.AddSheetRequest{
				Properties: &gsheet.SheetProperties{
					Title: name,
					GridProperties: &gsheet.GridProperties{
						RowCount:    1000,
						ColumnCount: 10,
					},
				},
			},
		}},
	}
	resp, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, add).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("ledger: create sheet %q: %w", name, err)
	}
	sheetID := resp.Replies[0].AddSheet.Properties.SheetId

	headers := make([]any, len(Headers))
	for i, h := range Headers {
		headers[i] = h
	}
	vr := &gsheet.ValueRange{Values: [][]any{headers}}
	_, err = s.svc.Spreadsheets.Values.
		Update(s.spreadsheetID, quote(name)+"!A1:G1", vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("ledger: write headers: %w", err)
	}

	format := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			RepeatCell: &gsheet.RepeatCellRequest{
				Range: &gsheet.GridRange{
					SheetId:        sheetID,
					StartRowIndex:  0,
					EndRowIndex:    1,
					EndColumnIndex: int64(len(Headers)),
				},
				Cell: &gsheet.CellData{
					UserEnteredFormat: &gsheet.CellFormat{
						TextFormat:          &gsheet.TextFormat{Bold: true},
						HorizontalAlignment: "CENTER",
					},
				},
				Fields: "userEnteredFormat(textFormat,horizontalAlignment)",
			},
		}},
	}
	if _, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, format).Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("ledger: format headers: %w", err)
	}

	s.Print(ctx, "created year sheet", "sheet", name)
	return name, nil
}

func (s *Sheets) sheetExists(ctx context.Context, name string) (bool, int64, error) {
	meta, err := s.svc.Spreadsheets.Get(s.spreadsheetID).
		Fields("sheets.properties").
		Context(ctx).Do()
	if err != nil {
		return false, 0, fmt.Errorf("ledger: list sheets: %w", err)
	}
	for _, sh := range meta.Sheets {
		if sh.Properties.Title == name {
			return true, sh.Properties.SheetId, nil
		}
	}
	return false, 0, nil
}

func quote(name string) string {
	return "'" + name + "'"
}
