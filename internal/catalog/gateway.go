// Package catalog provides the durable equipment catalog store. The pipeline
// treats it as an opaque gateway: cards are addressable by facility-scoped tag
// and by content hash, and nothing beyond single-operation durability is
// assumed.
package catalog

import (
	"context"
	"errors"

	"github.com/dexpi-labs/equipment-factory/internal/types"
)

// ErrUnavailable wraps transport or storage failures on the catalog. It is
// fatal to a pipeline run, unlike per-unit dedup outcomes.
var ErrUnavailable = errors.New("catalog unavailable")

// Gateway is the catalog store contract consumed by the pipeline.
//
// Lookups return (nil, nil) when no card matches. The dedup check-then-insert
// sequence is not transactional: two concurrent runs against the same facility
// may rarely both insert the same fingerprint. This is an accepted, documented
// weakness; units within a single run are processed sequentially so the race
// cannot occur within one run.
type Gateway interface {
	// FindByTag looks up a card by its facility-scoped tag.
	FindByTag(ctx context.Context, facility, tag string) (*types.EquipmentCard, error)
	// FindByFingerprint looks up a card by content hash.
	FindByFingerprint(ctx context.Context, hash string) (*types.EquipmentCard, error)
	// Insert stores a card and returns its ID.
	Insert(ctx context.Context, card *types.EquipmentCard) (string, error)
	// Count returns the total number of cards in the catalog.
	Count(ctx context.Context) (int, error)
	// KnownTags returns the set of tags already taken within a facility,
	// passed explicitly to the tag allocator.
	KnownTags(ctx context.Context, facility string) (map[string]bool, error)
	// ExistingClasses returns the distinct component classes present for a
	// facility, used by coverage analysis.
	ExistingClasses(ctx context.Context, facility string) ([]string, error)
}
