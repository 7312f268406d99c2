package models

import (
	"database/sql"
	"time"
)

// Boolean columns are NUMBER(1) in Oracle; the adapters convert 0/1 at
// the boundary rather than leaning on driver conversions.

type Category struct {
	ID          int64          `db:"id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

type ProductType struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	IsActive    int            `db:"is_active"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

type Question struct {
	ID            string         `db:"id"`
	CategoryID    int64          `db:"category_id"`
	QuestionText  string         `db:"question_text"`
	TimeLimit     int            `db:"time_limit"`
	IsProduct     int            `db:"is_product"`
	ProductTypeID sql.NullString `db:"product_type_id"`
	Hint          sql.NullString `db:"hint"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

type Option struct {
	ID         string    `db:"id"`
	QuestionID string    `db:"question_id"`
	OptionText string    `db:"option_text"`
	IsCorrect  int       `db:"is_correct"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}
