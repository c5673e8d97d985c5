package export

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/Norbert49/MLB-Sports-Data-Scraper/internal/logger"
)

// SheetsExporter publishes tables to a Google Sheets spreadsheet,
// located by name through the Drive API and created on first use. Each
// table maps to one worksheet; updates merge by key columns.
type SheetsExporter struct {
	sheets *sheets.Service
	drive  *drive.Service

	spreadsheetName string
	shareType       string
	shareRole       string

	spreadsheetID string
}

// NewSheetsExporter authenticates with a service account key file and
// builds the Sheets and Drive clients.
func NewSheetsExporter(ctx context.Context, credentialsFile, spreadsheetName, shareType, shareRole string) (*SheetsExporter, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("reading credentials file: %w", err)
	}
	conf, err := google.JWTConfigFromJSON(data, sheets.SpreadsheetsScope, drive.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("parsing service account credentials: %w", err)
	}
	client := conf.Client(ctx)

	sheetsSvc, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("creating sheets client: %w", err)
	}
	driveSvc, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("creating drive client: %w", err)
	}

	return &SheetsExporter{
		sheets:          sheetsSvc,
		drive:           driveSvc,
		spreadsheetName: spreadsheetName,
		shareType:       shareType,
		shareRole:       shareRole,
	}, nil
}

// URL returns the spreadsheet link, or "" before the first export.
func (e *SheetsExporter) URL() string {
	if e.spreadsheetID == "" {
		return ""
	}
	return "https://docs.google.com/spreadsheets/d/" + e.spreadsheetID
}

// ensureSpreadsheet resolves the spreadsheet ID, creating and sharing
// the document when it does not exist yet.
func (e *SheetsExporter) ensureSpreadsheet(ctx context.Context) error {
	if e.spreadsheetID != "" {
		return nil
	}

	query := fmt.Sprintf(
		"name = '%s' and mimeType = 'application/vnd.google-apps.spreadsheet' and trashed = false",
		strings.ReplaceAll(e.spreadsheetName, "'", `\'`),
	)
	list, err := e.drive.Files.List().Q(query).Fields("files(id, name)").PageSize(1).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("searching for spreadsheet %q: %w", e.spreadsheetName, err)
	}
	if len(list.Files) > 0 {
		e.spreadsheetID = list.Files[0].Id
		logger.Debug("Found existing spreadsheet", logger.Fields{
			"name": e.spreadsheetName,
			"id":   e.spreadsheetID,
		})
		return nil
	}

	created, err := e.sheets.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: e.spreadsheetName},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("creating spreadsheet %q: %w", e.spreadsheetName, err)
	}
	e.spreadsheetID = created.SpreadsheetId
	logger.Info("Created spreadsheet", logger.Fields{
		"name": e.spreadsheetName,
		"id":   e.spreadsheetID,
	})

	_, err = e.drive.Permissions.Create(e.spreadsheetID, &drive.Permission{
		Type: e.shareType,
		Role: e.shareRole,
	}).Context(ctx).Do()
	if err != nil {
		// The data still lands; only the link visibility differs.
		logger.Warn("Could not share spreadsheet", logger.Fields{
			"id":    e.spreadsheetID,
			"error": err.Error(),
		})
	}
	return nil
}

// ensureWorksheet makes sure a tab with the given title exists.
func (e *SheetsExporter) ensureWorksheet(ctx context.Context, title string) error {
	doc, err := e.sheets.Spreadsheets.Get(e.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("loading spreadsheet: %w", err)
	}
	for _, sh := range doc.Sheets {
		if sh.Properties != nil && sh.Properties.Title == title {
			return nil
		}
	}

	_, err = e.sheets.Spreadsheets.BatchUpdate(e.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: title},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("creating worksheet %q: %w", title, err)
	}
	logger.Info("Created worksheet", logger.Fields{"title": title})
	return nil
}

// UpdateTable merges the table into its worksheet. Existing rows with
// the same key are replaced in place; new rows append. A worksheet
// whose header row no longer matches is rewritten from scratch.
func (e *SheetsExporter) UpdateTable(ctx context.Context, t Table) error {
	if t.Empty() {
		logger.Debug("Skipping empty worksheet table", logger.Fields{"table": t.Title})
		return nil
	}
	if err := e.ensureSpreadsheet(ctx); err != nil {
		return err
	}
	if err := e.ensureWorksheet(ctx, t.Title); err != nil {
		return err
	}

	rng := "'" + strings.ReplaceAll(t.Title, "'", "''") + "'"
	existing, err := e.sheets.Spreadsheets.Values.Get(e.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("reading worksheet %q: %w", t.Title, err)
	}

	rows := t.Rows
	if headers, prior := splitValues(existing.Values); len(prior) > 0 {
		if equalHeaders(headers, t.Headers) {
			rows = MergeRows(t.Headers, prior, t.Rows, t.KeyColumns())
		} else {
			logger.Warn("Worksheet headers changed, rewriting sheet", logger.Fields{
				"table": t.Title,
			})
		}
	}

	if _, err := e.sheets.Spreadsheets.Values.Clear(e.spreadsheetID, rng, &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clearing worksheet %q: %w", t.Title, err)
	}

	values := make([][]interface{}, 0, len(rows)+1)
	values = append(values, toInterfaceRow(t.Headers))
	for _, row := range rows {
		values = append(values, toInterfaceRow(row))
	}
	_, err = e.sheets.Spreadsheets.Values.Update(e.spreadsheetID, rng, &sheets.ValueRange{
		Values: values,
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("updating worksheet %q: %w", t.Title, err)
	}

	logger.Info("Updated worksheet", logger.Fields{
		"table": t.Title,
		"rows":  len(rows),
	})
	return nil
}

// splitValues converts the API's interface values into a header row and
// string data rows.
func splitValues(values [][]interface{}) ([]string, [][]string) {
	if len(values) == 0 {
		return nil, nil
	}
	headers := toStringRow(values[0])
	rows := make([][]string, 0, len(values)-1)
	for _, v := range values[1:] {
		rows = append(rows, toStringRow(v))
	}
	return headers, rows
}

func toStringRow(row []interface{}) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = fmt.Sprint(cell)
	}
	return out
}

func toInterfaceRow(row []string) []interface{} {
	out := make([]interface{}, len(row))
	for i, cell := range row {
		out[i] = cell
	}
	return out
}

func equalHeaders(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
