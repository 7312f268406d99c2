package service

import (
	"strings"

	"quiz-import/internal/domain"

	"go.uber.org/zap"
)

// Reconciler diffs the current question universe against the classified
// source rows and produces the minimal create/update/delete plan that
// makes storage match the source. Question text is the natural key.
type Reconciler struct{}

// NewReconciler creates a reconciler.
func NewReconciler() *Reconciler {
	return &Reconciler{}
}

// SourceKeys collects every non-empty trimmed question text appearing
// anywhere in the source, before validation or sheet resolution. The set
// only guards deletions: a question survives if its text appears in any
// sheet, even an unmapped or otherwise invalid one.
func SourceKeys(data domain.SheetData) map[string]struct{} {
	keys := make(map[string]struct{})
	for _, sheet := range data {
		for _, row := range sheet.Rows {
			if len(row) == 0 {
				continue
			}
			if key := strings.TrimSpace(row[0]); key != "" {
				keys[key] = struct{}{}
			}
		}
	}
	return keys
}

type existingEntry struct {
	record        *domain.QuestionWithOptions
	foundInSource bool
}

// BuildPlan computes the three disjoint operation lists.
//
// The existing index is keyed by trimmed question text alone; when the
// same text exists in two categories the later record wins during index
// construction, mirroring the source format's lack of cross-category
// disambiguation. Creates and updates come out in source row order,
// deletes in existing-record order. With an unchanged source the plan is
// empty.
func (r *Reconciler) BuildPlan(
	existing []*domain.QuestionWithOptions,
	rows []*ClassifiedRow,
	sourceKeys map[string]struct{},
	log *zap.Logger,
) *domain.ImportPlan {
	index := make(map[string]*existingEntry, len(existing))
	for _, record := range existing {
		key := strings.TrimSpace(record.Question.QuestionText)
		_, found := sourceKeys[key]
		index[key] = &existingEntry{record: record, foundInSource: found}
	}

	plan := &domain.ImportPlan{}

	for _, row := range dedupeRows(rows, log) {
		state := row.State()
		entry, ok := index[row.QuestionText]
		if !ok {
			plan.Creates = append(plan.Creates, state)
			log.Info("Question will be created",
				zap.String("sheet", row.SheetName),
				zap.Int("row", row.RowNumber),
			)
			continue
		}

		if questionMatches(entry.record, &state) {
			continue
		}

		plan.Updates = append(plan.Updates, domain.QuestionUpdate{
			QuestionID: entry.record.Question.ID,
			State:      state,
		})
		log.Info("Question will be updated",
			zap.String("sheet", row.SheetName),
			zap.Int("row", row.RowNumber),
			zap.String("question_id", entry.record.Question.ID),
		)
	}

	for _, record := range existing {
		key := strings.TrimSpace(record.Question.QuestionText)
		entry := index[key]
		// The index may hold a later record for this key; deletion only
		// depends on whether the text appears anywhere in the source.
		if entry.foundInSource {
			continue
		}
		plan.Deletes = append(plan.Deletes, record.Question.ID)
		log.Info("Question will be deleted",
			zap.String("question_id", record.Question.ID),
		)
	}

	return plan
}

// dedupeRows keeps the last occurrence of each question text so one key
// yields at most one operation. The source format cannot disambiguate the
// same text across sheets, so the later row wins, explicitly.
func dedupeRows(rows []*ClassifiedRow, log *zap.Logger) []*ClassifiedRow {
	last := make(map[string]int, len(rows))
	for i, row := range rows {
		if prev, ok := last[row.QuestionText]; ok {
			log.Warn("Duplicate question text in source; later row wins",
				zap.String("sheet", rows[prev].SheetName),
				zap.Int("row", rows[prev].RowNumber),
				zap.String("winning_sheet", row.SheetName),
				zap.Int("winning_row", row.RowNumber),
			)
		}
		last[row.QuestionText] = i
	}
	if len(last) == len(rows) {
		return rows
	}

	deduped := make([]*ClassifiedRow, 0, len(last))
	for i, row := range rows {
		if last[row.QuestionText] == i {
			deduped = append(deduped, row)
		}
	}
	return deduped
}

// questionMatches reports whether the stored question already equals the
// target state. Compared: owning category, product flag, product type,
// correct-option text and the unordered incorrect-option set. Time limit
// and hint are derived from the product flag, so they follow it.
func questionMatches(record *domain.QuestionWithOptions, state *domain.QuestionState) bool {
	if record.Question.CategoryID != state.CategoryID {
		return false
	}
	if record.Question.IsProduct != state.IsProduct {
		return false
	}
	if record.Question.ProductTypeID != state.ProductTypeID {
		return false
	}
	if record.Options.Correct != state.Options.Correct {
		return false
	}
	return sameTextSet(record.Options.Incorrect, state.Options.Incorrect)
}

func sameTextSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]int, len(a))
	for _, text := range a {
		set[text]++
	}
	for _, text := range b {
		if set[text] == 0 {
			return false
		}
		set[text]--
	}
	return true
}
