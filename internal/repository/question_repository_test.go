package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"quiz-import/internal/domain"
	"quiz-import/internal/util"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestGetAllWithOptions_GroupsOptionsByQuestion(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)

	now := time.Now()
	q1 := util.NewULID()
	q2 := util.NewULID()

	questionRows := sqlmock.NewRows([]string{
		"id", "category_id", "question_text", "time_limit", "is_product", "product_type_id", "hint", "created_at", "updated_at",
	}).
		AddRow(q1, int64(2), "What is 2K?", 15, 0, nil, nil, now, now).
		AddRow(q2, int64(5), "Which device is Echo?", 60, 1, util.NewULID(), "Hint Text", now, now)

	optionRows := sqlmock.NewRows([]string{
		"id", "question_id", "option_text", "is_correct", "created_at", "updated_at",
	}).
		AddRow(util.NewULID(), q1, "A game", 1, now, now).
		AddRow(util.NewULID(), q1, "A movie", 0, now, now).
		AddRow(util.NewULID(), q1, "A book", 0, now, now).
		AddRow(util.NewULID(), q2, "Amazon's speaker", 1, now, now)

	mock.ExpectQuery(`SELECT(.|\n)+FROM questions(.|\n)+ORDER BY created_at, id`).WillReturnRows(questionRows)
	mock.ExpectQuery(`SELECT(.|\n)+FROM options(.|\n)+ORDER BY created_at, id`).WillReturnRows(optionRows)

	questions, err := repo.GetAllWithOptions(context.Background())

	assert.NoError(t, err)
	assert.Len(t, questions, 2)

	assert.Equal(t, "What is 2K?", questions[0].Question.QuestionText)
	assert.False(t, questions[0].Question.IsProduct)
	assert.Equal(t, "A game", questions[0].Options.Correct)
	assert.ElementsMatch(t, []string{"A movie", "A book"}, questions[0].Options.Incorrect)

	assert.True(t, questions[1].Question.IsProduct)
	assert.Equal(t, "Hint Text", questions[1].Question.Hint)
	assert.Equal(t, "Amazon's speaker", questions[1].Options.Correct)
	assert.Empty(t, questions[1].Options.Incorrect)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertQuestion_AssignsID(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO questions`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	q := &domain.Question{
		CategoryID:   2,
		QuestionText: "What is 2K?",
		TimeLimit:    15,
	}
	err := repo.Insert(context.Background(), q)

	assert.NoError(t, err)
	assert.NotEmpty(t, q.ID)
	assert.False(t, q.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateQuestion_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE questions SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &domain.Question{
		ID:           util.NewULID(),
		CategoryID:   1,
		QuestionText: "X",
		TimeLimit:    15,
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateQuestion_EmptyID(t *testing.T) {
	db, _ := setupTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)

	err := repo.Update(context.Background(), &domain.Question{QuestionText: "X"})
	assert.Error(t, err)
}

func TestDeleteQuestion(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)

	id := util.NewULID()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM questions WHERE id = :1`)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteOptionsByQuestion(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)

	id := util.NewULID()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM options WHERE question_id = :1`)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 3))

	assert.NoError(t, repo.DeleteOptionsByQuestion(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertOption(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuestionDatabaseAdapter(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO options`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	o := &domain.Option{QuestionID: util.NewULID(), OptionText: "A game", IsCorrect: true}
	err := repo.InsertOption(context.Background(), o)

	assert.NoError(t, err)
	assert.NotEmpty(t, o.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
