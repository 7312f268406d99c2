package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

// setupTestDB creates a new sqlx.DB instance and sqlmock for repository testing.
func setupTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	return sqlxDB, mock
}

func TestCategoryGetOrCreate_Existing(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCategoryDatabaseAdapter(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "description", "created_at", "updated_at"}).
		AddRow(int64(2), "Gaming", nil, now, now)

	mock.ExpectQuery(`SELECT(.|\n)+FROM categories(.|\n)+WHERE id = :1`).
		WithArgs(int64(2)).
		WillReturnRows(rows)

	category, err := repo.GetOrCreate(context.Background(), 2, "Gaming")

	assert.NoError(t, err)
	assert.Equal(t, int64(2), category.ID)
	assert.Equal(t, "Gaming", category.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryGetOrCreate_Missing_Inserts(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCategoryDatabaseAdapter(db)

	mock.ExpectQuery(`SELECT(.|\n)+FROM categories(.|\n)+WHERE id = :1`).
		WithArgs(int64(5)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO categories`)).
		WithArgs(int64(5), "Products", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	category, err := repo.GetOrCreate(context.Background(), 5, "Products")

	assert.NoError(t, err)
	assert.Equal(t, int64(5), category.ID)
	assert.Equal(t, "Products", category.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryGetAll(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewCategoryDatabaseAdapter(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "description", "created_at", "updated_at"}).
		AddRow(int64(1), "General Knowledge", "Default category", now, now).
		AddRow(int64(2), "Gaming", nil, now, now)

	mock.ExpectQuery(`SELECT(.|\n)+FROM categories(.|\n)+ORDER BY id`).WillReturnRows(rows)

	categories, err := repo.GetAll(context.Background())

	assert.NoError(t, err)
	assert.Len(t, categories, 2)
	assert.Equal(t, "General Knowledge", categories[0].Name)
	assert.Equal(t, "Default category", categories[0].Description)
	assert.Equal(t, "", categories[1].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}
