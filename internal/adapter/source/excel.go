package source

import (
	"context"
	"io"

	"quiz-import/internal/domain"

	"github.com/xuri/excelize/v2"
)

// ExcelSource normalizes an uploaded Excel workbook into SheetData.
// Every worksheet becomes one Sheet; the first row of each worksheet is
// the header row, so data rows display as row 2 onward.
type ExcelSource struct {
	reader io.Reader
}

// NewExcelSource creates a source over an uploaded workbook stream.
func NewExcelSource(r io.Reader) *ExcelSource {
	return &ExcelSource{reader: r}
}

// Fetch implements domain.SheetSource.
func (s *ExcelSource) Fetch(_ context.Context) (domain.SheetData, error) {
	workbook, err := excelize.OpenReader(s.reader)
	if err != nil {
		return nil, domain.NewInvalidSourceError("Failed to open Excel workbook", err)
	}
	defer workbook.Close()

	var data domain.SheetData
	for _, name := range workbook.GetSheetList() {
		rows, err := workbook.GetRows(name)
		if err != nil {
			return nil, domain.NewInvalidSourceError("Failed to read worksheet "+name, err)
		}

		sheet := domain.Sheet{Name: name}
		if len(rows) > 0 {
			sheet.Header = rows[0]
			sheet.Rows = rows[1:]
		}
		data = append(data, sheet)
	}

	return data, nil
}
