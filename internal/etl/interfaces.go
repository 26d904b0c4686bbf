package etl

import (
	"context"

	"github.com/lwozniak/sqlparq/pkg/models"
)

// Reader loads an entire table into memory in one pass.
type Reader interface {
	Read(ctx context.Context) (*models.TypedTable, error)
}

// Writer persists an entire table in one pass.
type Writer interface {
	Write(ctx context.Context, table *models.TypedTable) error
}
