package service

import (
	"testing"

	"quiz-import/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func existingQuestion(id, text string, categoryID int64, options domain.OptionSet) *domain.QuestionWithOptions {
	return &domain.QuestionWithOptions{
		Question: domain.Question{
			ID:           id,
			CategoryID:   categoryID,
			QuestionText: text,
			TimeLimit:    15,
		},
		Options: options,
	}
}

func classifiedRow(text string, categoryID int64, options domain.OptionSet) *ClassifiedRow {
	return &ClassifiedRow{
		SheetName:    "Gaming",
		RowNumber:    2,
		CategoryID:   categoryID,
		QuestionText: text,
		TimeLimit:    15,
		Options:      options,
	}
}

func keysOf(rows ...*ClassifiedRow) map[string]struct{} {
	keys := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		keys[row.QuestionText] = struct{}{}
	}
	return keys
}

func TestSourceKeys(t *testing.T) {
	data := domain.SheetData{
		{
			Name:   "Gaming",
			Header: []string{"Question", "Correct", "I1", "I2", "I3"},
			Rows: [][]string{
				{"What is 2K?", "A game studio"},
				{"  Padded question  ", "Answer"},
				{"", "orphan answer"},
				{},
			},
		},
		{
			// Unmapped sheets still contribute deletion-guard keys.
			Name: "Bogus",
			Rows: [][]string{
				{"Question from a bad sheet", "Answer"},
			},
		},
	}

	keys := SourceKeys(data)

	assert.Len(t, keys, 3)
	assert.Contains(t, keys, "What is 2K?")
	assert.Contains(t, keys, "Padded question")
	assert.Contains(t, keys, "Question from a bad sheet")
}

func TestReconciler_BuildPlan(t *testing.T) {
	reconciler := NewReconciler()
	log := zap.NewNop()
	options := domain.OptionSet{Correct: "A game studio", Incorrect: []string{"A resolution", "A year"}}

	t.Run("new question is created", func(t *testing.T) {
		row := classifiedRow("What is 2K?", 2, options)

		plan := reconciler.BuildPlan(nil, []*ClassifiedRow{row}, keysOf(row), log)

		require.Len(t, plan.Creates, 1)
		assert.Empty(t, plan.Updates)
		assert.Empty(t, plan.Deletes)
		assert.Equal(t, "What is 2K?", plan.Creates[0].QuestionText)
		assert.Equal(t, int64(2), plan.Creates[0].CategoryID)
	})

	t.Run("unchanged question yields empty plan", func(t *testing.T) {
		existing := []*domain.QuestionWithOptions{
			existingQuestion("Q1", "What is 2K?", 2, options),
		}
		row := classifiedRow("What is 2K?", 2, options)

		plan := reconciler.BuildPlan(existing, []*ClassifiedRow{row}, keysOf(row), log)

		assert.True(t, plan.IsEmpty())
	})

	t.Run("incorrect option order does not matter", func(t *testing.T) {
		existing := []*domain.QuestionWithOptions{
			existingQuestion("Q1", "What is 2K?", 2,
				domain.OptionSet{Correct: "A game studio", Incorrect: []string{"A year", "A resolution"}}),
		}
		row := classifiedRow("What is 2K?", 2, options)

		plan := reconciler.BuildPlan(existing, []*ClassifiedRow{row}, keysOf(row), log)

		assert.True(t, plan.IsEmpty())
	})

	t.Run("category move is a single update, not delete plus create", func(t *testing.T) {
		existing := []*domain.QuestionWithOptions{
			existingQuestion("Q1", "Question X", 1, options),
		}
		row := classifiedRow("Question X", 2, options)

		plan := reconciler.BuildPlan(existing, []*ClassifiedRow{row}, keysOf(row), log)

		assert.Empty(t, plan.Creates)
		assert.Empty(t, plan.Deletes)
		require.Len(t, plan.Updates, 1)
		assert.Equal(t, "Q1", plan.Updates[0].QuestionID)
		assert.Equal(t, int64(2), plan.Updates[0].State.CategoryID)
	})

	t.Run("changed options force an update", func(t *testing.T) {
		existing := []*domain.QuestionWithOptions{
			existingQuestion("Q1", "What is 2K?", 2, options),
		}
		row := classifiedRow("What is 2K?", 2,
			domain.OptionSet{Correct: "A publisher", Incorrect: []string{"A resolution", "A year"}})

		plan := reconciler.BuildPlan(existing, []*ClassifiedRow{row}, keysOf(row), log)

		require.Len(t, plan.Updates, 1)
		assert.Equal(t, "A publisher", plan.Updates[0].State.Options.Correct)
	})

	t.Run("product flag change forces an update", func(t *testing.T) {
		existing := []*domain.QuestionWithOptions{
			existingQuestion("Q1", "What is 2K?", 2, options),
		}
		row := classifiedRow("What is 2K?", 2, options)
		row.IsProduct = true
		row.ProductTypeID = "PT1"
		row.TimeLimit = 60
		row.Hint = "Hint Text"

		plan := reconciler.BuildPlan(existing, []*ClassifiedRow{row}, keysOf(row), log)

		require.Len(t, plan.Updates, 1)
		assert.True(t, plan.Updates[0].State.IsProduct)
		assert.Equal(t, "PT1", plan.Updates[0].State.ProductTypeID)
		assert.Equal(t, 60, plan.Updates[0].State.TimeLimit)
	})

	t.Run("question absent from source is deleted", func(t *testing.T) {
		existing := []*domain.QuestionWithOptions{
			existingQuestion("Q1", "What is 2K?", 2, options),
			existingQuestion("Q2", "Question Y", 2, options),
		}
		row := classifiedRow("What is 2K?", 2, options)

		plan := reconciler.BuildPlan(existing, []*ClassifiedRow{row}, keysOf(row), log)

		assert.Empty(t, plan.Creates)
		assert.Empty(t, plan.Updates)
		assert.Equal(t, []string{"Q2"}, plan.Deletes)
	})

	t.Run("invalid row still guards its question from deletion", func(t *testing.T) {
		// A row can fail validation (empty correct answer) yet its text
		// still appears in the raw source, so the stored question stays.
		existing := []*domain.QuestionWithOptions{
			existingQuestion("Q1", "Broken row question", 2, options),
		}
		sourceKeys := map[string]struct{}{"Broken row question": {}}

		plan := reconciler.BuildPlan(existing, nil, sourceKeys, log)

		assert.True(t, plan.IsEmpty())
	})

	t.Run("empty source deletes everything", func(t *testing.T) {
		existing := []*domain.QuestionWithOptions{
			existingQuestion("Q1", "First", 1, options),
			existingQuestion("Q2", "Second", 2, options),
		}

		plan := reconciler.BuildPlan(existing, nil, map[string]struct{}{}, log)

		assert.Equal(t, []string{"Q1", "Q2"}, plan.Deletes)
	})

	t.Run("duplicate question text yields one operation, later row wins", func(t *testing.T) {
		first := classifiedRow("Duplicated", 1, options)
		second := classifiedRow("Duplicated", 2, options)
		second.RowNumber = 3

		plan := reconciler.BuildPlan(nil, []*ClassifiedRow{first, second}, keysOf(first, second), log)

		require.Len(t, plan.Creates, 1)
		assert.Equal(t, int64(2), plan.Creates[0].CategoryID)
	})

	t.Run("whitespace around stored text matches trimmed source text", func(t *testing.T) {
		existing := []*domain.QuestionWithOptions{
			existingQuestion("Q1", "  What is 2K?  ", 2, options),
		}
		row := classifiedRow("What is 2K?", 2, options)

		plan := reconciler.BuildPlan(existing, []*ClassifiedRow{row}, keysOf(row), log)

		assert.True(t, plan.IsEmpty())
	})
}

// Applying a plan and rebuilding one from the resulting state must yield
// an empty plan.
func TestReconciler_Idempotence(t *testing.T) {
	reconciler := NewReconciler()
	log := zap.NewNop()
	options := domain.OptionSet{Correct: "Right", Incorrect: []string{"Wrong A", "Wrong B"}}

	rows := []*ClassifiedRow{
		classifiedRow("First question", 1, options),
		classifiedRow("Second question", 2, options),
	}
	keys := keysOf(rows...)

	first := reconciler.BuildPlan(nil, rows, keys, log)
	require.Len(t, first.Creates, 2)

	// Simulate the applied state.
	var existing []*domain.QuestionWithOptions
	for i, state := range first.Creates {
		existing = append(existing, &domain.QuestionWithOptions{
			Question: domain.Question{
				ID:            string(rune('A' + i)),
				CategoryID:    state.CategoryID,
				QuestionText:  state.QuestionText,
				TimeLimit:     state.TimeLimit,
				IsProduct:     state.IsProduct,
				ProductTypeID: state.ProductTypeID,
				Hint:          state.Hint,
			},
			Options: state.Options,
		})
	}

	second := reconciler.BuildPlan(existing, rows, keys, log)
	assert.True(t, second.IsEmpty())
}
