package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"quiz-import/internal/domain"

	"go.uber.org/zap"
)

// CategoryResolver maps sheet names onto the fixed category ids of the
// deployment. The mapping is injected configuration, not a compiled-in
// table, so deployments can vary it without code changes.
type CategoryResolver struct {
	mapping      map[string]int64 // keyed by lowercased sheet name
	names        map[int64]string
	categoryRepo domain.CategoryRepository
}

// NewCategoryResolver creates a resolver over the configured name-to-id
// mapping.
func NewCategoryResolver(mapping map[string]int64, categoryRepo domain.CategoryRepository) *CategoryResolver {
	lower := make(map[string]int64, len(mapping))
	names := make(map[int64]string, len(mapping))
	for name, id := range mapping {
		lower[strings.ToLower(name)] = id
		names[id] = name
	}
	return &CategoryResolver{
		mapping:      lower,
		names:        names,
		categoryRepo: categoryRepo,
	}
}

// Resolve returns the category id for a sheet name. Matching is
// case-insensitive; sheets that match nothing contribute no operations.
func (r *CategoryResolver) Resolve(sheetName string) (int64, bool) {
	id, ok := r.mapping[strings.ToLower(strings.TrimSpace(sheetName))]
	return id, ok
}

// KnownSheets lists the configured sheet names, for diagnostics.
func (r *CategoryResolver) KnownSheets() []string {
	names := make([]string, 0, len(r.mapping))
	for name := range r.mapping {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EnsureCategories get-or-creates a category row for every mapping entry,
// not just the sheets present in the current source. The category table
// stays a superset of all possible sheets.
func (r *CategoryResolver) EnsureCategories(ctx context.Context, log *zap.Logger) error {
	ids := make([]int64, 0, len(r.names))
	for id := range r.names {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		if _, err := r.categoryRepo.GetOrCreate(ctx, id, r.names[id]); err != nil {
			return domain.NewStorageError(fmt.Sprintf("Failed to ensure category %d", id), err)
		}
	}
	log.Info("Ensured category rows exist", zap.Int("count", len(ids)))
	return nil
}
