package service

import (
	"context"
	"encoding/json"
	"fmt"

	"quiz-import/internal/cache"
	"quiz-import/internal/config"
	"quiz-import/internal/domain"
	"quiz-import/internal/logger"

	"go.uber.org/zap"
)

// importService implements domain.ImportService. One call to ProcessData
// is one import run: snapshot, classify, reconcile, apply atomically.
type importService struct {
	categoryRepo    domain.CategoryRepository
	productTypeRepo domain.ProductTypeRepository
	questionRepo    domain.QuestionRepository
	txManager       domain.TransactionManager
	resolver        *CategoryResolver
	classifier      *RowClassifier
	reconciler      *Reconciler
	historyCache    domain.Cache // may be nil; history is then disabled
	cfg             *config.Config
	appLogger       *zap.Logger
}

// NewImportService creates a new instance of importService.
func NewImportService(
	categoryRepo domain.CategoryRepository,
	productTypeRepo domain.ProductTypeRepository,
	questionRepo domain.QuestionRepository,
	txManager domain.TransactionManager,
	historyCache domain.Cache,
	cfg *config.Config,
	appLogger *zap.Logger,
) domain.ImportService {
	return &importService{
		categoryRepo:    categoryRepo,
		productTypeRepo: productTypeRepo,
		questionRepo:    questionRepo,
		txManager:       txManager,
		resolver:        NewCategoryResolver(cfg.Import.Categories, categoryRepo),
		classifier:      NewRowClassifier(cfg.Import),
		reconciler:      NewReconciler(),
		historyCache:    historyCache,
		cfg:             cfg,
		appLogger:       appLogger,
	}
}

// ProcessData runs a full import over the normalized sheet data. Row and
// sheet problems are logged and skipped; source and storage failures
// abort the run with nothing written.
func (s *importService) ProcessData(ctx context.Context, data domain.SheetData) (*domain.ImportSummary, error) {
	runLog, logFile, closeLog, err := logger.NewImportLogger(s.cfg.Import.LogDir)
	if err != nil {
		return nil, domain.NewInternalError("Failed to create import log", err)
	}
	defer closeLog()

	runLog.Info("Starting data import process")
	summary := &domain.ImportSummary{LogFile: logFile}

	if err := s.resolver.EnsureCategories(ctx, runLog); err != nil {
		runLog.Error("Failed to ensure categories", zap.Error(err))
		return nil, err
	}

	existing, err := s.questionRepo.GetAllWithOptions(ctx)
	if err != nil {
		runLog.Error("Failed to load existing questions", zap.Error(err))
		return nil, domain.NewStorageError("Failed to load existing questions", err)
	}

	sourceKeys := SourceKeys(data)
	classified := s.classifySheets(ctx, data, summary, runLog)

	plan := s.reconciler.BuildPlan(existing, classified, sourceKeys, runLog)

	if err := s.apply(ctx, plan, runLog); err != nil {
		runLog.Error("Import transaction failed; no changes were written", zap.Error(err))
		return nil, err
	}

	summary.Created = len(plan.Creates)
	summary.Updated = len(plan.Updates)
	summary.Deleted = len(plan.Deletes)

	runLog.Info(fmt.Sprintf("Summary: Created %d questions, Updated %d questions, Deleted %d questions",
		summary.Created, summary.Updated, summary.Deleted))
	runLog.Info("Data import completed successfully")

	s.storeSummary(ctx, summary)
	return summary, nil
}

// classifySheets walks every sheet and returns the classified rows of the
// resolvable ones. Unmapped sheets and invalid rows are recorded on the
// summary and skipped; neither aborts the run.
func (s *importService) classifySheets(
	ctx context.Context,
	data domain.SheetData,
	summary *domain.ImportSummary,
	runLog *zap.Logger,
) []*ClassifiedRow {
	var classified []*ClassifiedRow
	productTypeIDs := make(map[string]string)

	for _, sheet := range data {
		runLog.Info("Processing sheet: " + sheet.Name)

		categoryID, ok := s.resolver.Resolve(sheet.Name)
		if !ok {
			msg := fmt.Sprintf("Invalid sheet name: %s. Must be one of %v", sheet.Name, s.resolver.KnownSheets())
			runLog.Error(msg)
			summary.Errors = append(summary.Errors, msg)
			continue
		}

		productCol := ProductColumn(sheet.Header)
		for i, row := range sheet.Rows {
			rowNumber := i + 2

			classifiedRow, err := s.classifier.Classify(row, productCol, rowNumber)
			if err != nil {
				msg := fmt.Sprintf("Sheet: %s, %s", sheet.Name, err.Error())
				runLog.Error(msg)
				summary.Errors = append(summary.Errors, msg)
				summary.Skipped++
				continue
			}
			classifiedRow.SheetName = sheet.Name
			classifiedRow.CategoryID = categoryID

			if classifiedRow.Warning != "" {
				msg := fmt.Sprintf("Sheet: %s, Row: %d - %s. Only %v are supported; treating as non-product question",
					sheet.Name, rowNumber, classifiedRow.Warning, s.classifier.SupportedTags())
				runLog.Warn(msg)
				summary.Warnings = append(summary.Warnings, msg)
			}

			if classifiedRow.IsProduct {
				id, cached := productTypeIDs[classifiedRow.ProductTypeName]
				if !cached {
					productType, err := s.productTypeRepo.GetOrCreateByName(ctx, classifiedRow.ProductTypeName)
					if err != nil {
						msg := fmt.Sprintf("Sheet: %s, Row: %d - Failed to resolve product type %s: %v",
							sheet.Name, rowNumber, classifiedRow.ProductTypeName, err)
						runLog.Error(msg)
						summary.Errors = append(summary.Errors, msg)
						summary.Skipped++
						continue
					}
					id = productType.ID
					productTypeIDs[classifiedRow.ProductTypeName] = id
				}
				classifiedRow.ProductTypeID = id
				runLog.Info(fmt.Sprintf("Sheet: %s, Row: %d - Valid product type: %s",
					sheet.Name, rowNumber, classifiedRow.ProductTypeName))
			}

			classified = append(classified, classifiedRow)
		}
	}

	return classified
}

// apply executes the plan as one atomic unit. Any failure rolls the
// whole batch back, so a concurrent reader never observes a partially
// migrated state.
func (s *importService) apply(ctx context.Context, plan *domain.ImportPlan, runLog *zap.Logger) error {
	if plan.IsEmpty() {
		runLog.Info("Storage already matches the source; nothing to apply")
		return nil
	}

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		for i := range plan.Creates {
			if err := s.createQuestion(txCtx, &plan.Creates[i], runLog); err != nil {
				return err
			}
		}
		for i := range plan.Updates {
			if err := s.updateQuestion(txCtx, &plan.Updates[i], runLog); err != nil {
				return err
			}
		}
		for _, id := range plan.Deletes {
			if err := s.questionRepo.Delete(txCtx, id); err != nil {
				return fmt.Errorf("failed to delete question %s: %w", id, err)
			}
			runLog.Info("Deleted question: " + id)
		}
		return nil
	})
	if err != nil {
		return domain.NewStorageError("Import transaction failed", err)
	}
	return nil
}

func (s *importService) createQuestion(ctx context.Context, state *domain.QuestionState, runLog *zap.Logger) error {
	question := questionFromState(state)
	if err := s.questionRepo.Insert(ctx, question); err != nil {
		return fmt.Errorf("failed to create question %q: %w", state.QuestionText, err)
	}
	if err := s.insertOptions(ctx, question.ID, state.Options); err != nil {
		return err
	}
	runLog.Info("Created new question: " + question.ID)
	return nil
}

func (s *importService) updateQuestion(ctx context.Context, update *domain.QuestionUpdate, runLog *zap.Logger) error {
	question := questionFromState(&update.State)
	question.ID = update.QuestionID
	if err := s.questionRepo.Update(ctx, question); err != nil {
		return fmt.Errorf("failed to update question %s: %w", update.QuestionID, err)
	}
	// Full option replacement, never a partial patch.
	if err := s.questionRepo.DeleteOptionsByQuestion(ctx, update.QuestionID); err != nil {
		return err
	}
	if err := s.insertOptions(ctx, update.QuestionID, update.State.Options); err != nil {
		return err
	}
	runLog.Info("Updated question: " + update.QuestionID)
	return nil
}

func (s *importService) insertOptions(ctx context.Context, questionID string, options domain.OptionSet) error {
	correct := &domain.Option{
		QuestionID: questionID,
		OptionText: options.Correct,
		IsCorrect:  true,
	}
	if err := s.questionRepo.InsertOption(ctx, correct); err != nil {
		return fmt.Errorf("failed to insert correct option for question %s: %w", questionID, err)
	}
	for _, text := range options.Incorrect {
		incorrect := &domain.Option{
			QuestionID: questionID,
			OptionText: text,
		}
		if err := s.questionRepo.InsertOption(ctx, incorrect); err != nil {
			return fmt.Errorf("failed to insert option for question %s: %w", questionID, err)
		}
	}
	return nil
}

func questionFromState(state *domain.QuestionState) *domain.Question {
	return &domain.Question{
		CategoryID:    state.CategoryID,
		QuestionText:  state.QuestionText,
		TimeLimit:     state.TimeLimit,
		IsProduct:     state.IsProduct,
		ProductTypeID: state.ProductTypeID,
		Hint:          state.Hint,
	}
}

// storeSummary records the run outcome in the history cache, best effort.
func (s *importService) storeSummary(ctx context.Context, summary *domain.ImportSummary) {
	if s.historyCache == nil {
		return
	}
	payload, err := json.Marshal(summary)
	if err != nil {
		s.appLogger.Warn("Failed to marshal import summary for history", zap.Error(err))
		return
	}
	key := cache.ImportHistoryKey()
	if err := s.historyCache.Set(ctx, key, string(payload), s.cfg.Import.HistoryTTL); err != nil {
		s.appLogger.Warn("Failed to store import summary in history cache", zap.Error(err))
	}
}

// LastSummary returns the most recent run summary from the history cache.
func (s *importService) LastSummary(ctx context.Context) (*domain.ImportSummary, error) {
	if s.historyCache == nil {
		return nil, domain.NewNotFoundError("Import history is not configured")
	}

	payload, err := s.historyCache.Get(ctx, cache.ImportHistoryKey())
	if err != nil {
		if err == domain.ErrCacheMiss {
			return nil, domain.NewNotFoundError("No import has run yet")
		}
		return nil, domain.NewInternalError("Failed to read import history", err)
	}

	var summary domain.ImportSummary
	if err := json.Unmarshal([]byte(payload), &summary); err != nil {
		return nil, domain.NewInternalError("Failed to decode import history", err)
	}
	return &summary, nil
}
