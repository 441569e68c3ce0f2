package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dexpi-labs/equipment-factory/internal/types"
)

func testCard(facility, tag, hash string) *types.EquipmentCard {
	return &types.EquipmentCard{
		Tag:            tag,
		Facility:       facility,
		ComponentClass: "CentrifugalPump",
		Metadata:       types.CardMetadata{ContentHash: hash},
	}
}

func TestMemory_InsertAndFindByTag(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	id, err := mem.Insert(ctx, testCard("CHEM-BC-PETRO", "P-101", "abc123"))
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	found, err := mem.FindByTag(ctx, "CHEM-BC-PETRO", "P-101")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "P-101", found.Tag)

	// Same tag, different facility: separate tag space.
	other, err := mem.FindByTag(ctx, "WATER-TP", "P-101")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestMemory_FindByFingerprint(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	_, err := mem.Insert(ctx, testCard("CHEM-BC-PETRO", "P-101", "deadbeef00112233"))
	require.NoError(t, err)

	found, err := mem.FindByFingerprint(ctx, "deadbeef00112233")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "P-101", found.Tag)

	missing, err := mem.FindByFingerprint(ctx, "0000000000000000")
	require.NoError(t, err)
	assert.Nil(t, missing)

	// Empty hash never matches, even against cards with empty hashes.
	_, err = mem.Insert(ctx, testCard("CHEM-BC-PETRO", "P-102", ""))
	require.NoError(t, err)
	none, err := mem.FindByFingerprint(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestMemory_Count(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	n, err := mem.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, _ = mem.Insert(ctx, testCard("F1", "P-101", "h1"))
	_, _ = mem.Insert(ctx, testCard("F1", "P-102", "h2"))

	n, err = mem.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMemory_KnownTags(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	_, _ = mem.Insert(ctx, testCard("F1", "P-101", "h1"))
	_, _ = mem.Insert(ctx, testCard("F1", "P-102", "h2"))
	_, _ = mem.Insert(ctx, testCard("F2", "P-103", "h3"))

	tags, err := mem.KnownTags(ctx, "F1")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"P-101": true, "P-102": true}, tags)
}

func TestMemory_ExistingClasses(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	a := testCard("F1", "P-101", "h1")
	b := testCard("F1", "P-102", "h2")
	c := testCard("F1", "V-101", "h3")
	c.ComponentClass = "PressureVessel"
	_, _ = mem.Insert(ctx, a)
	_, _ = mem.Insert(ctx, b)
	_, _ = mem.Insert(ctx, c)

	classes, err := mem.ExistingClasses(ctx, "F1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"CentrifugalPump", "PressureVessel"}, classes)
}

func TestMemory_PreservesExistingID(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	card := testCard("F1", "P-101", "h1")
	card.ID = "fixed-id"
	id, err := mem.Insert(ctx, card)
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", id)
}
