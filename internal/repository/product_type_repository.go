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

// ProductTypeDatabaseAdapter implements domain.ProductTypeRepository using sqlx.
type ProductTypeDatabaseAdapter struct {
	db *sqlx.DB
}

// NewProductTypeDatabaseAdapter creates a new instance of ProductTypeDatabaseAdapter.
func NewProductTypeDatabaseAdapter(db *sqlx.DB) domain.ProductTypeRepository {
	return &ProductTypeDatabaseAdapter{db: db}
}

// GetOrCreateByName returns the product type with the given name,
// inserting an active row when absent. Product types are never deleted
// or deactivated by an import.
func (a *ProductTypeDatabaseAdapter) GetOrCreateByName(ctx context.Context, name string) (*domain.ProductType, error) {
	exec := GetExecutor(ctx, a.db)

	var modelType models.ProductType
	query := `SELECT
		id "id",
		name "name",
		description "description",
		is_active "is_active",
		created_at "created_at",
		updated_at "updated_at"
	FROM product_types
	WHERE name = :1`

	err := exec.GetContext(ctx, &modelType, query, name)
	if err == nil {
		return toDomainProductType(&modelType), nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to get product type %s: %w", name, err)
	}

	now := time.Now()
	id := util.NewULID()
	insert := `INSERT INTO product_types (id, name, description, is_active, created_at, updated_at)
	VALUES (:1, :2, :3, :4, :5, :6)`
	if _, err := exec.ExecContext(ctx, insert, id, name, sql.NullString{}, 1, now, now); err != nil {
		return nil, fmt.Errorf("failed to create product type %s: %w", name, err)
	}

	return &domain.ProductType{
		ID:        id,
		Name:      name,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func toDomainProductType(m *models.ProductType) *domain.ProductType {
	return &domain.ProductType{
		ID:          m.ID,
		Name:        m.Name,
		Description: util.NullStringToString(m.Description),
		IsActive:    m.IsActive != 0,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
