package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quiz-import/internal/domain"
	"quiz-import/internal/repository/models"
	"quiz-import/internal/util"

	"github.com/jmoiron/sqlx"
)

// CategoryDatabaseAdapter implements domain.CategoryRepository using sqlx.
type CategoryDatabaseAdapter struct {
	db *sqlx.DB
}

// NewCategoryDatabaseAdapter creates a new instance of CategoryDatabaseAdapter.
func NewCategoryDatabaseAdapter(db *sqlx.DB) domain.CategoryRepository {
	return &CategoryDatabaseAdapter{db: db}
}

// GetOrCreate returns the category with the given id, inserting it with
// the given name when absent. Existing rows are returned untouched;
// imports never rename categories.
func (a *CategoryDatabaseAdapter) GetOrCreate(ctx context.Context, id int64, name string) (*domain.Category, error) {
	exec := GetExecutor(ctx, a.db)

	var modelCategory models.Category
	query := `SELECT
		id "id",
		name "name",
		description "description",
		created_at "created_at",
		updated_at "updated_at"
	FROM categories
	WHERE id = :1`

	err := exec.GetContext(ctx, &modelCategory, query, id)
	if err == nil {
		return toDomainCategory(&modelCategory), nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to get category %d: %w", id, err)
	}

	now := time.Now()
	insert := `INSERT INTO categories (id, name, description, created_at, updated_at)
	VALUES (:1, :2, :3, :4, :5)`
	if _, err := exec.ExecContext(ctx, insert, id, name, sql.NullString{}, now, now); err != nil {
		return nil, fmt.Errorf("failed to create category %d (%s): %w", id, name, err)
	}

	return &domain.Category{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// GetAll returns every category ordered by id.
func (a *CategoryDatabaseAdapter) GetAll(ctx context.Context) ([]*domain.Category, error) {
	exec := GetExecutor(ctx, a.db)

	var modelCategories []models.Category
	query := `SELECT
		id "id",
		name "name",
		description "description",
		created_at "created_at",
		updated_at "updated_at"
	FROM categories
	ORDER BY id`

	if err := exec.SelectContext(ctx, &modelCategories, query); err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	categories := make([]*domain.Category, len(modelCategories))
	for i := range modelCategories {
		categories[i] = toDomainCategory(&modelCategories[i])
	}
	return categories, nil
}

func toDomainCategory(m *models.Category) *domain.Category {
	return &domain.Category{
		ID:          m.ID,
		Name:        m.Name,
		Description: util.NullStringToString(m.Description),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
