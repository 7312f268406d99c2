package domain

import "context"

// Sheet is one named tab of tabular rows. Header holds the first row of
// the tab (used only to locate the optional Product column); Rows holds
// the data rows below it, so the display number of Rows[i] is i+2.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

// SheetData is the normalized form of a spreadsheet source: every tab in
// workbook order.
type SheetData []Sheet

// SheetSource abstracts where spreadsheet data comes from (an uploaded
// Excel workbook, a linked Google Sheet). The reconciliation engine only
// ever sees the SheetData it produces; credential and token lifecycle
// stay inside the adapter.
type SheetSource interface {
	Fetch(ctx context.Context) (SheetData, error)
}
