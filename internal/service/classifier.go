package service

import (
	"strings"

	"quiz-import/internal/config"
	"quiz-import/internal/domain"
)

// Fixed column positions of a source row.
const (
	colQuestion       = 0
	colCorrect        = 1
	colFirstIncorrect = 2
	colLastIncorrect  = 4
)

// ClassifiedRow is one validated source row with its derived policy. The
// orchestrator fills CategoryID and ProductTypeID after classification.
type ClassifiedRow struct {
	SheetName       string
	RowNumber       int
	CategoryID      int64
	QuestionText    string
	TimeLimit       int
	IsProduct       bool
	ProductTypeName string
	ProductTypeID   string
	Hint            string
	Options         domain.OptionSet

	// Warning carries the unsupported-product-tag diagnostic; the row
	// itself stays valid and non-product.
	Warning string
}

// State converts the row into the full target question state.
func (r *ClassifiedRow) State() domain.QuestionState {
	return domain.QuestionState{
		CategoryID:    r.CategoryID,
		QuestionText:  r.QuestionText,
		TimeLimit:     r.TimeLimit,
		IsProduct:     r.IsProduct,
		ProductTypeID: r.ProductTypeID,
		Hint:          r.Hint,
		Options:       r.Options,
	}
}

// RowClassifier validates raw rows and derives the time-limit and hint
// policy from the optional product classification.
type RowClassifier struct {
	supported        map[string]struct{}
	defaultTimeLimit int
	productTimeLimit int
	productHint      string
}

// NewRowClassifier creates a classifier from the import configuration.
func NewRowClassifier(cfg config.ImportConfig) *RowClassifier {
	supported := make(map[string]struct{}, len(cfg.ProductTypes))
	for _, name := range cfg.ProductTypes {
		supported[strings.ToUpper(strings.TrimSpace(name))] = struct{}{}
	}
	return &RowClassifier{
		supported:        supported,
		defaultTimeLimit: cfg.DefaultTimeLimit,
		productTimeLimit: cfg.ProductTimeLimit,
		productHint:      cfg.ProductHint,
	}
}

// SupportedTags lists the valid product tags, for diagnostics.
func (c *RowClassifier) SupportedTags() []string {
	tags := make([]string, 0, len(c.supported))
	for tag := range c.supported {
		tags = append(tags, tag)
	}
	return tags
}

// Classify validates one raw row and derives its target state. rowNumber
// is the 1-based display row (data starts at 2, below the header). A
// returned error means the row is skipped; the run continues.
func (c *RowClassifier) Classify(row []string, productCol int, rowNumber int) (*ClassifiedRow, error) {
	questionText := cell(row, colQuestion)
	if questionText == "" {
		return nil, domain.NewRowValidationError("Question text is empty", rowNumber)
	}

	correct := cell(row, colCorrect)
	if correct == "" {
		return nil, domain.NewRowValidationError("Correct answer is empty", rowNumber)
	}

	// Blank incorrect cells are dropped, not errors; fewer than three
	// incorrect options is valid.
	var incorrect []string
	for i := colFirstIncorrect; i <= colLastIncorrect; i++ {
		if value := cell(row, i); value != "" {
			incorrect = append(incorrect, value)
		}
	}

	classified := &ClassifiedRow{
		RowNumber:    rowNumber,
		QuestionText: questionText,
		TimeLimit:    c.defaultTimeLimit,
		Options: domain.OptionSet{
			Correct:   correct,
			Incorrect: incorrect,
		},
	}

	productValue := ""
	if productCol >= 0 {
		productValue = strings.ToUpper(cell(row, productCol))
	}

	if _, ok := c.supported[productValue]; ok {
		classified.IsProduct = true
		classified.ProductTypeName = productValue
		classified.TimeLimit = c.productTimeLimit
		classified.Hint = c.productHint
	} else if productValue != "" {
		classified.Warning = "Invalid or unsupported product type: " + productValue
	}

	return classified, nil
}

// ProductColumn locates the optional Product column in a header row,
// returning -1 when the header does not carry one.
func ProductColumn(header []string) int {
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), "Product") {
			return i
		}
	}
	return -1
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
