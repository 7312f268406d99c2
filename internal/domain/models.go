package domain

import "time"

// Category is one quiz category. IDs are fixed by deployment configuration
// (the sheet-name mapping), never auto-generated.
type Category struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductType is a supported product tag (AMAZON, GOOGLE in the default
// deployment). Rows are created lazily on first encounter and never
// deleted by an import.
type ProductType struct {
	ID          string
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Question is a single multiple-choice question owned by the import
// process. QuestionText is the natural key across import runs.
type Question struct {
	ID            string
	CategoryID    int64
	QuestionText  string
	TimeLimit     int
	IsProduct     bool
	ProductTypeID string // empty when IsProduct is false
	Hint          string // empty when IsProduct is false
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Option is one answer choice of a question.
type Option struct {
	ID         string
	QuestionID string
	OptionText string
	IsCorrect  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OptionSet is a question's answers partitioned into the single correct
// text and the incorrect texts. Incorrect order is not significant.
type OptionSet struct {
	Correct   string
	Incorrect []string
}

// QuestionWithOptions pairs a stored question with its current option set.
type QuestionWithOptions struct {
	Question Question
	Options  OptionSet
}
