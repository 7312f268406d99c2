package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"quiz-import/internal/config"
	"quiz-import/internal/domain"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	sheetsScope = "https://www.googleapis.com/auth/spreadsheets.readonly"

	// Columns A:F cover question, correct, three incorrect and the
	// optional Product column.
	readRange = "A:F"
)

// GoogleSheetSource fetches a linked Google Sheet through the Sheets API.
// Credential and token files stay entirely inside this adapter; the
// reconciliation engine only ever sees the SheetData.
type GoogleSheetSource struct {
	sheetURL string
	cfg      config.SheetsConfig
}

// NewGoogleSheetSource creates a source for the spreadsheet behind sheetURL.
func NewGoogleSheetSource(sheetURL string, cfg config.SheetsConfig) *GoogleSheetSource {
	return &GoogleSheetSource{sheetURL: sheetURL, cfg: cfg}
}

// ExtractSpreadsheetID pulls the document id out of a Google Sheets URL.
func ExtractSpreadsheetID(sheetURL string) (string, error) {
	const marker = "spreadsheets/d/"
	idx := strings.Index(sheetURL, marker)
	if idx == -1 {
		return "", domain.NewInvalidInputError("Invalid Google Sheets URL: " + sheetURL)
	}
	id := sheetURL[idx+len(marker):]
	if end := strings.Index(id, "/"); end != -1 {
		id = id[:end]
	}
	if id == "" {
		return "", domain.NewInvalidInputError("Invalid Google Sheets URL: " + sheetURL)
	}
	return id, nil
}

// Fetch implements domain.SheetSource. Tab values are fetched
// concurrently, but the returned SheetData preserves spreadsheet tab
// order so later stages stay deterministic.
func (s *GoogleSheetSource) Fetch(ctx context.Context) (domain.SheetData, error) {
	spreadsheetID, err := ExtractSpreadsheetID(s.sheetURL)
	if err != nil {
		return nil, err
	}

	service, err := s.newService(ctx)
	if err != nil {
		return nil, domain.NewSourceUnreachableError(err)
	}

	meta, err := service.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, domain.NewSourceUnreachableError(err)
	}

	data := make(domain.SheetData, len(meta.Sheets))
	g, gctx := errgroup.WithContext(ctx)
	for i, tab := range meta.Sheets {
		title := tab.Properties.Title
		g.Go(func() error {
			values, err := service.Spreadsheets.Values.
				Get(spreadsheetID, fmt.Sprintf("%s!%s", title, readRange)).
				Context(gctx).Do()
			if err != nil {
				return fmt.Errorf("failed to read tab %s: %w", title, err)
			}
			data[i] = toSheet(title, values.Values)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, domain.NewSourceUnreachableError(err)
	}

	return data, nil
}

func (s *GoogleSheetSource) newService(ctx context.Context) (*sheets.Service, error) {
	credentials, err := os.ReadFile(s.cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	oauthConfig, err := google.ConfigFromJSON(credentials, sheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}

	token, err := tokenFromFile(s.cfg.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth token: %w", err)
	}

	client := oauthConfig.Client(ctx, token)
	return sheets.NewService(ctx, option.WithHTTPClient(client))
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	token := &oauth2.Token{}
	if err := json.NewDecoder(file).Decode(token); err != nil {
		return nil, err
	}
	return token, nil
}

func toSheet(name string, values [][]interface{}) domain.Sheet {
	sheet := domain.Sheet{Name: name}
	if len(values) == 0 {
		return sheet
	}

	sheet.Header = toStringRow(values[0])
	for _, row := range values[1:] {
		sheet.Rows = append(sheet.Rows, toStringRow(row))
	}
	return sheet
}

func toStringRow(cells []interface{}) []string {
	row := make([]string, len(cells))
	for i, cell := range cells {
		row[i] = fmt.Sprint(cell)
	}
	return row
}
