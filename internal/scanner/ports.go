// Package scanner defines the bill-scanning collaborator. The model
// treats it as an external capability: it hands back a draft expense and
// a failure yields nothing, leaving the ledger untouched and the user on
// manual entry.
package scanner

import (
	"context"

	"spendwise/internal/core"
)

// Scanner extracts a draft expense from a bill image.
type Scanner interface {
	// ScanBill analyzes an image and returns the extracted partial
	// expense (amount, category guess, description, date).
	ScanBill(ctx context.Context, image []byte, mimeType string) (core.PartialExpense, error)

	// Close releases the underlying client.
	Close() error
}
