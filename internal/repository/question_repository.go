package repository

import (
	"context"
	"fmt"
	"time"

	"quiz-import/internal/domain"
	"quiz-import/internal/repository/models"
	"quiz-import/internal/util"

	"github.com/jmoiron/sqlx"
)

// QuestionDatabaseAdapter implements domain.QuestionRepository using sqlx.
type QuestionDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuestionDatabaseAdapter creates a new instance of QuestionDatabaseAdapter.
func NewQuestionDatabaseAdapter(db *sqlx.DB) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{db: db}
}

// GetAllWithOptions loads the full question universe across all
// categories together with each question's option set. This is the
// snapshot the reconciliation engine diffs the source against.
func (a *QuestionDatabaseAdapter) GetAllWithOptions(ctx context.Context) ([]*domain.QuestionWithOptions, error) {
	exec := GetExecutor(ctx, a.db)

	var modelQuestions []models.Question
	questionQuery := `SELECT
		id "id",
		category_id "category_id",
		question_text "question_text",
		time_limit "time_limit",
		is_product "is_product",
		product_type_id "product_type_id",
		hint "hint",
		created_at "created_at",
		updated_at "updated_at"
	FROM questions
	ORDER BY created_at, id`

	if err := exec.SelectContext(ctx, &modelQuestions, questionQuery); err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}

	var modelOptions []models.Option
	optionQuery := `SELECT
		id "id",
		question_id "question_id",
		option_text "option_text",
		is_correct "is_correct",
		created_at "created_at",
		updated_at "updated_at"
	FROM options
	ORDER BY created_at, id`

	if err := exec.SelectContext(ctx, &modelOptions, optionQuery); err != nil {
		return nil, fmt.Errorf("failed to get options: %w", err)
	}

	optionsByQuestion := make(map[string]domain.OptionSet)
	for _, opt := range modelOptions {
		set := optionsByQuestion[opt.QuestionID]
		if opt.IsCorrect != 0 {
			set.Correct = opt.OptionText
		} else {
			set.Incorrect = append(set.Incorrect, opt.OptionText)
		}
		optionsByQuestion[opt.QuestionID] = set
	}

	result := make([]*domain.QuestionWithOptions, len(modelQuestions))
	for i := range modelQuestions {
		q := toDomainQuestion(&modelQuestions[i])
		result[i] = &domain.QuestionWithOptions{
			Question: *q,
			Options:  optionsByQuestion[q.ID],
		}
	}
	return result, nil
}

// Insert persists a new question. The id and timestamps are assigned here
// and written back to q.
func (a *QuestionDatabaseAdapter) Insert(ctx context.Context, q *domain.Question) error {
	exec := GetExecutor(ctx, a.db)

	q.ID = util.NewULID()
	now := time.Now()
	q.CreatedAt = now
	q.UpdatedAt = now

	query := `INSERT INTO questions (
		id, category_id, question_text, time_limit, is_product, product_type_id, hint, created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9
	)`

	_, err := exec.ExecContext(ctx, query,
		q.ID,
		q.CategoryID,
		q.QuestionText,
		q.TimeLimit,
		boolToInt(q.IsProduct),
		util.StringToNullString(q.ProductTypeID),
		util.StringToNullString(q.Hint),
		q.CreatedAt,
		q.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert question: %w", err)
	}
	return nil
}

// Update rewrites a question's scalar fields in place. Option replacement
// is the caller's job via DeleteOptionsByQuestion and InsertOption.
func (a *QuestionDatabaseAdapter) Update(ctx context.Context, q *domain.Question) error {
	if q.ID == "" {
		return fmt.Errorf("cannot update question with empty ID")
	}
	exec := GetExecutor(ctx, a.db)
	q.UpdatedAt = time.Now()

	query := `UPDATE questions SET
		category_id = :1,
		question_text = :2,
		time_limit = :3,
		is_product = :4,
		product_type_id = :5,
		hint = :6,
		updated_at = :7
	WHERE id = :8`

	result, err := exec.ExecContext(ctx, query,
		q.CategoryID,
		q.QuestionText,
		q.TimeLimit,
		boolToInt(q.IsProduct),
		util.StringToNullString(q.ProductTypeID),
		util.StringToNullString(q.Hint),
		q.UpdatedAt,
		q.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("question with ID %s not found", q.ID)
	}
	return nil
}

// Delete removes a question; its options go with it through the cascade
// on the options table.
func (a *QuestionDatabaseAdapter) Delete(ctx context.Context, id string) error {
	exec := GetExecutor(ctx, a.db)

	result, err := exec.ExecContext(ctx, `DELETE FROM questions WHERE id = :1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete question %s: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("question with ID %s not found", id)
	}
	return nil
}

// InsertOption persists one answer choice.
func (a *QuestionDatabaseAdapter) InsertOption(ctx context.Context, o *domain.Option) error {
	exec := GetExecutor(ctx, a.db)

	o.ID = util.NewULID()
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now

	query := `INSERT INTO options (id, question_id, option_text, is_correct, created_at, updated_at)
	VALUES (:1, :2, :3, :4, :5, :6)`

	_, err := exec.ExecContext(ctx, query,
		o.ID,
		o.QuestionID,
		o.OptionText,
		boolToInt(o.IsCorrect),
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert option: %w", err)
	}
	return nil
}

// DeleteOptionsByQuestion removes a question's entire current option set.
func (a *QuestionDatabaseAdapter) DeleteOptionsByQuestion(ctx context.Context, questionID string) error {
	exec := GetExecutor(ctx, a.db)

	if _, err := exec.ExecContext(ctx, `DELETE FROM options WHERE question_id = :1`, questionID); err != nil {
		return fmt.Errorf("failed to delete options for question %s: %w", questionID, err)
	}
	return nil
}

func toDomainQuestion(m *models.Question) *domain.Question {
	return &domain.Question{
		ID:            m.ID,
		CategoryID:    m.CategoryID,
		QuestionText:  m.QuestionText,
		TimeLimit:     m.TimeLimit,
		IsProduct:     m.IsProduct != 0,
		ProductTypeID: util.NullStringToString(m.ProductTypeID),
		Hint:          util.NullStringToString(m.Hint),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
