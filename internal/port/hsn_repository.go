package port

import (
	"context"

	"billbook/internal/gst"
)

// HSNRepository defines the contract for HSN code data access.
type HSNRepository interface {
	LoadAll(ctx context.Context) ([]gst.HSNEntry, error)
	// Import inserts entries that are not already present and returns how
	// many rows were added.
	Import(ctx context.Context, entries []gst.HSNEntry) (int, error)
}
