package catalog

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dexpi-labs/equipment-factory/internal/types"
)

// Memory is an in-process Gateway used in tests and in DB-less mode.
type Memory struct {
	mu    sync.RWMutex
	cards []types.EquipmentCard
}

// NewMemory creates an empty in-memory catalog.
func NewMemory() *Memory {
	return &Memory{}
}

// FindByTag looks up a card by facility-scoped tag.
func (m *Memory) FindByTag(_ context.Context, facility, tag string) (*types.EquipmentCard, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.cards {
		if m.cards[i].Facility == facility && m.cards[i].Tag == tag {
			card := m.cards[i]
			return &card, nil
		}
	}
	return nil, nil
}

// FindByFingerprint looks up a card by content hash.
func (m *Memory) FindByFingerprint(_ context.Context, hash string) (*types.EquipmentCard, error) {
	if hash == "" {
		return nil, nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.cards {
		if m.cards[i].Metadata.ContentHash == hash {
			card := m.cards[i]
			return &card, nil
		}
	}
	return nil, nil
}

// Insert stores a copy of the card, assigning an ID if it has none.
func (m *Memory) Insert(_ context.Context, card *types.EquipmentCard) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if card.ID == "" {
		card.ID = uuid.NewString()
	}
	m.cards = append(m.cards, *card)
	return card.ID, nil
}

// Count returns the number of stored cards.
func (m *Memory) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.cards), nil
}

// KnownTags returns the set of tags taken within a facility.
func (m *Memory) KnownTags(_ context.Context, facility string) (map[string]bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tags := make(map[string]bool)
	for i := range m.cards {
		if m.cards[i].Facility == facility {
			tags[m.cards[i].Tag] = true
		}
	}
	return tags, nil
}

// ExistingClasses returns distinct component classes present for a facility.
func (m *Memory) ExistingClasses(_ context.Context, facility string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[string]bool)
	var classes []string
	for i := range m.cards {
		if m.cards[i].Facility == facility && !seen[m.cards[i].ComponentClass] {
			seen[m.cards[i].ComponentClass] = true
			classes = append(classes, m.cards[i].ComponentClass)
		}
	}
	return classes, nil
}
