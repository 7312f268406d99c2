package domain

import "context"

// CategoryRepository persists categories. GetOrCreate must be idempotent:
// an existing row with the given id is returned untouched (imports never
// rename categories).
type CategoryRepository interface {
	GetOrCreate(ctx context.Context, id int64, name string) (*Category, error)
	GetAll(ctx context.Context) ([]*Category, error)
}

// ProductTypeRepository persists product types, keyed by their unique name.
type ProductTypeRepository interface {
	GetOrCreateByName(ctx context.Context, name string) (*ProductType, error)
}

// QuestionRepository persists questions and their options. Implementations
// must honor the transaction carried in ctx by the TransactionManager.
type QuestionRepository interface {
	GetAllWithOptions(ctx context.Context) ([]*QuestionWithOptions, error)
	Insert(ctx context.Context, q *Question) error
	Update(ctx context.Context, q *Question) error
	Delete(ctx context.Context, id string) error
	InsertOption(ctx context.Context, o *Option) error
	DeleteOptionsByQuestion(ctx context.Context, questionID string) error
}

// TransactionManager runs fn inside a single database transaction. Any
// error returned by fn rolls the whole transaction back.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
