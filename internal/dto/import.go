package dto

// SheetImportRequest triggers an import from a linked Google Sheet.
type SheetImportRequest struct {
	SheetURL string `json:"sheet_url"`
}

// ImportSummaryResponse reports the outcome of an import run.
type ImportSummaryResponse struct {
	Created  int      `json:"created"`
	Updated  int      `json:"updated"`
	Deleted  int      `json:"deleted"`
	Skipped  int      `json:"skipped"`
	Warnings []string `json:"warnings"`
	Errors   []string `json:"errors"`
	LogFile  string   `json:"log_file"`
}
