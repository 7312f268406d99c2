package handler

import (
	"quiz-import/internal/adapter/source"
	"quiz-import/internal/config"
	"quiz-import/internal/domain"
	"quiz-import/internal/dto"
	"quiz-import/internal/logger"
	"quiz-import/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ImportHandler handles import-related HTTP requests
type ImportHandler struct {
	service   domain.ImportService
	validator *validation.Validator
	sheetsCfg config.SheetsConfig
}

// NewImportHandler creates a new ImportHandler instance
func NewImportHandler(service domain.ImportService, validator *validation.Validator, sheetsCfg config.SheetsConfig) *ImportHandler {
	return &ImportHandler{
		service:   service,
		validator: validator,
		sheetsCfg: sheetsCfg,
	}
}

// UploadWorkbook handles POST /api/import/upload. The multipart "file"
// field carries an .xlsx workbook; the whole workbook is imported as one
// run.
func (h *ImportHandler) UploadWorkbook(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return domain.NewInvalidInputError("Multipart field 'file' is missing")
	}

	if errs := h.validator.ValidateUploadFilename(fileHeader.Filename); errs.HasErrors() {
		return errs
	}

	file, err := fileHeader.Open()
	if err != nil {
		return domain.NewInvalidSourceError("Failed to open uploaded file", err)
	}
	defer file.Close()

	logger.Get().Info("Import from uploaded workbook requested",
		zap.String("filename", fileHeader.Filename),
		zap.Int64("size", fileHeader.Size),
	)

	return h.runImport(c, source.NewExcelSource(file))
}

// ImportFromSheet handles POST /api/import/sheet. The JSON body carries
// the URL of a Google Sheet readable by the configured credentials.
func (h *ImportHandler) ImportFromSheet(c *fiber.Ctx) error {
	var req dto.SheetImportRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Request body is not valid JSON")
	}

	if errs := h.validator.ValidateSheetImportRequest(req.SheetURL); errs.HasErrors() {
		return errs
	}

	logger.Get().Info("Import from linked sheet requested",
		zap.String("sheet_url", req.SheetURL),
	)

	return h.runImport(c, source.NewGoogleSheetSource(req.SheetURL, h.sheetsCfg))
}

// LastSummary handles GET /api/import/last.
func (h *ImportHandler) LastSummary(c *fiber.Ctx) error {
	summary, err := h.service.LastSummary(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(toSummaryResponse(summary))
}

func (h *ImportHandler) runImport(c *fiber.Ctx, src domain.SheetSource) error {
	data, err := src.Fetch(c.Context())
	if err != nil {
		return err
	}

	summary, err := h.service.ProcessData(c.Context(), data)
	if err != nil {
		return err
	}

	return c.JSON(toSummaryResponse(summary))
}

func toSummaryResponse(summary *domain.ImportSummary) dto.ImportSummaryResponse {
	return dto.ImportSummaryResponse{
		Created:  summary.Created,
		Updated:  summary.Updated,
		Deleted:  summary.Deleted,
		Skipped:  summary.Skipped,
		Warnings: summary.Warnings,
		Errors:   summary.Errors,
		LogFile:  summary.LogFile,
	}
}
