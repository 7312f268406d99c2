package validation

import (
	"path/filepath"
	"strings"

	"quiz-import/internal/domain"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSheetImportRequest validates the linked-sheet import request.
func (v *Validator) ValidateSheetImportRequest(sheetURL string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(sheetURL) == "" {
		errors = append(errors, domain.NewMissingFieldError("sheet_url"))
		return errors
	}

	if !isGoogleSheetURL(sheetURL) {
		errors = append(errors, domain.NewInvalidFormatError("sheet_url", sheetURL))
	}

	return errors
}

// ValidateUploadFilename validates the uploaded workbook's filename.
func (v *Validator) ValidateUploadFilename(filename string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(filename) == "" {
		errors = append(errors, domain.NewMissingFieldError("file"))
		return errors
	}

	if !isExcelFilename(filename) {
		errors = append(errors, domain.NewInvalidFormatError("file", filename))
	}

	return errors
}

// isGoogleSheetURL checks that the URL carries a spreadsheet id segment.
func isGoogleSheetURL(s string) bool {
	return strings.Contains(s, "spreadsheets/d/")
}

// isExcelFilename checks for the .xlsx extension, case-insensitively.
func isExcelFilename(s string) bool {
	return strings.EqualFold(filepath.Ext(s), ".xlsx")
}
