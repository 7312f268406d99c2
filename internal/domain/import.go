package domain

import "context"

// ImportSummary aggregates the outcome of one import run.
type ImportSummary struct {
	Created  int      `json:"created"`
	Updated  int      `json:"updated"`
	Deleted  int      `json:"deleted"`
	Skipped  int      `json:"skipped"`
	Warnings []string `json:"warnings"`
	Errors   []string `json:"errors"`
	LogFile  string   `json:"log_file"`
}

// ImportService drives a full import run: classify the source rows,
// reconcile them against storage, and apply the resulting plan in one
// transaction. Both the upload and the linked-sheet triggers converge here.
type ImportService interface {
	ProcessData(ctx context.Context, data SheetData) (*ImportSummary, error)
	LastSummary(ctx context.Context) (*ImportSummary, error)
}
