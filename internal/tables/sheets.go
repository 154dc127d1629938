package tables

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Worksheet positions inside the spreadsheet
const (
	CentresSheetIndex = 0
	CommodsSheetIndex = 1
)

var spreadsheetIDPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9_-]+)`)

// SpreadsheetID extracts the spreadsheet ID from a Google Sheets URL.
// A bare ID is returned unchanged.
func SpreadsheetID(sheetURL string) (string, error) {
	s := strings.TrimSpace(sheetURL)
	if m := spreadsheetIDPattern.FindStringSubmatch(s); m != nil {
		return m[1], nil
	}
	if s != "" && !strings.ContainsAny(s, "/:?#") {
		return s, nil
	}
	return "", fmt.Errorf("cannot find spreadsheet ID in %q", sheetURL)
}

// SheetsSource reads the Centres and Commods worksheets from Google Sheets
type SheetsSource struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewSheetsSource authorizes with a service account credentials file and opens the spreadsheet.
// Extra options are appended after the credentials, which lets tests point at another endpoint.
func NewSheetsSource(ctx context.Context, sheetURL, credentialsPath string, opts ...option.ClientOption) (*SheetsSource, error) {
	id, err := SpreadsheetID(sheetURL)
	if err != nil {
		return nil, err
	}

	var clientOpts []option.ClientOption
	if credentialsPath != "" {
		clientOpts = append(clientOpts,
			option.WithCredentialsFile(credentialsPath),
			option.WithScopes(sheets.SpreadsheetsReadonlyScope),
		)
	}
	clientOpts = append(clientOpts, opts...)

	svc, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &SheetsSource{svc: svc, spreadsheetID: id}, nil
}

// Tables reads the first worksheet as Centres and the second as Commods
func (s *SheetsSource) Tables(ctx context.Context) (*Table, *Table, error) {
	spreadsheet, err := s.svc.Spreadsheets.Get(s.spreadsheetID).
		Fields("sheets.properties").
		Context(ctx).
		Do()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open spreadsheet %s: %w", s.spreadsheetID, err)
	}

	if len(spreadsheet.Sheets) <= CommodsSheetIndex {
		return nil, nil, fmt.Errorf("spreadsheet %s has %d worksheets, need at least %d",
			s.spreadsheetID, len(spreadsheet.Sheets), CommodsSheetIndex+1)
	}

	centres, err := s.worksheet(ctx, spreadsheet.Sheets[CentresSheetIndex].Properties.Title)
	if err != nil {
		return nil, nil, err
	}
	commods, err := s.worksheet(ctx, spreadsheet.Sheets[CommodsSheetIndex].Properties.Title)
	if err != nil {
		return nil, nil, err
	}
	return centres, commods, nil
}

func (s *SheetsSource) worksheet(ctx context.Context, title string) (*Table, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, quoteSheetTitle(title)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q: %w", title, err)
	}

	values := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		values[i] = make([]string, len(row))
		for j, cell := range row {
			values[i][j] = fmt.Sprint(cell)
		}
	}
	slog.Debug("Read worksheet", "title", title, "rows", len(values))

	t, err := NewTable(values)
	if err != nil {
		return nil, fmt.Errorf("worksheet %q: %w", title, err)
	}
	return t, nil
}

// quoteSheetTitle makes a worksheet title usable as an A1 range
func quoteSheetTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
