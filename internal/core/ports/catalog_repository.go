package ports

import (
	"context"

	"orderflow/internal/core/domain/model/catalog"
	"orderflow/internal/core/domain/model/kernel"
)

// CatalogRepository reads menu items. Unknown ids yield errs.ObjectNotFoundError.
type CatalogRepository interface {
	Get(ctx context.Context, id kernel.UUID) (catalog.Item, error)
}
