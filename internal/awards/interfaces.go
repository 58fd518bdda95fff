package awards

import "context"

// Store is the catalog and nominee persistence consumed by the pipeline.
// All errors are returned, never panicked; the engine folds them into the
// summary per category.
type Store interface {
	ListCategories(ctx context.Context, year int) ([]Category, error)
	GetCategory(ctx context.Context, id int64) (Category, error)
	InsertCategory(ctx context.Context, cat Category) (Category, error)
	ListNominees(ctx context.Context, categoryID int64, year int) ([]Nominee, error)
	InsertNominees(ctx context.Context, batch []Nominee) error
	GetSetting(ctx context.Context, key string) (string, error)
}

// Fetcher retrieves one source document. A nil failure means doc is usable;
// a non-nil failure carries the classified reason for the summary.
type Fetcher interface {
	Fetch(ctx context.Context, src Source) (RawDocument, *FetchFailure)
}
