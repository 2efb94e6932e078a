// Package sheetstore adapts one named worksheet of a Google spreadsheet
// to the store.Tabular contract.
package sheetstore

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/aaron-stalmic/countsheet/internal/store"
)

// Client wraps the Sheets v4 values API for one spreadsheet.
type Client struct {
	service       *sheets.Service
	spreadsheetID string
}

func NewClient(ctx context.Context, credentialsFile, spreadsheetID string) (*Client, error) {
	service, err := sheets.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		service:       service,
		spreadsheetID: spreadsheetID,
	}, nil
}

// Sheet returns a store.Tabular view over one named worksheet.
func (c *Client) Sheet(name string) *Sheet {
	return &Sheet{client: c, name: name}
}

// Sheet is a single worksheet of the client's spreadsheet.
type Sheet struct {
	client *Client
	name   string
}

func (s *Sheet) ReadColumn(ctx context.Context, col int) ([]string, error) {
	letter := columnLetter(col)
	readRange := fmt.Sprintf("%s!%s1:%s", s.name, letter, letter)
	resp, err := s.client.service.Spreadsheets.Values.Get(s.client.spreadsheetID, readRange).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read column %s of %s: %w", letter, s.name, store.ErrUnavailable)
	}

	out := make([]string, len(resp.Values))
	for i, row := range resp.Values {
		if len(row) > 0 && row[0] != nil {
			out[i] = fmt.Sprintf("%v", row[0])
		}
	}
	return out, nil
}

func (s *Sheet) ReadCell(ctx context.Context, row, col int) (string, error) {
	cellRange := fmt.Sprintf("%s!%s%d", s.name, columnLetter(col), row)
	resp, err := s.client.service.Spreadsheets.Values.Get(s.client.spreadsheetID, cellRange).
		ValueRenderOption("FORMULA").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to read cell %s: %w", cellRange, store.ErrUnavailable)
	}

	if len(resp.Values) == 0 || len(resp.Values[0]) == 0 || resp.Values[0][0] == nil {
		return "", nil
	}
	return fmt.Sprintf("%v", resp.Values[0][0]), nil
}

func (s *Sheet) WriteCell(ctx context.Context, row, col int, value string) error {
	cellRange := fmt.Sprintf("%s!%s%d", s.name, columnLetter(col), row)
	valueRange := &sheets.ValueRange{
		Values: [][]interface{}{{value}},
	}

	_, err := s.client.service.Spreadsheets.Values.Update(s.client.spreadsheetID, cellRange, valueRange).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to write cell %s: %w", cellRange, store.ErrUnavailable)
	}

	return nil
}

func (s *Sheet) AppendRow(ctx context.Context, values []string) error {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	valueRange := &sheets.ValueRange{
		Values: [][]interface{}{row},
	}

	_, err := s.client.service.Spreadsheets.Values.Append(s.client.spreadsheetID, s.name+"!A1", valueRange).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append row to %s: %w", s.name, store.ErrUnavailable)
	}

	return nil
}

// columnLetter converts a 1-based column index to A1 notation.
func columnLetter(col int) string {
	letters := ""
	for col > 0 {
		col--
		letters = string(rune('A'+col%26)) + letters
		col /= 26
	}
	return letters
}
