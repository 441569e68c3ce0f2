// Package fingerprint computes stable content hashes for near-duplicate
// detection of equipment cards.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/dexpi-labs/equipment-factory/internal/types"
)

// HashLength is the number of hex characters kept from the digest. The hash
// is a near-duplicate heuristic, not a security boundary, so truncation
// collisions are acceptable at catalog scale.
const HashLength = 16

// Hash computes a deterministic content hash over the semantically relevant
// fields of a card: component class, specifications, and materials.
// Specification map entries are serialized in lexicographic key order, so two
// structurally identical cards hash identically regardless of how their maps
// were built.
func Hash(componentClass string, specs map[string]types.SpecValue, materials types.Materials) string {
	var sb strings.Builder
	sb.WriteString("class=")
	sb.WriteString(componentClass)

	keys := make([]string, 0, len(specs))
	for k := range specs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sb.WriteString(";specs=")
	for _, k := range keys {
		sv := specs[k]
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(canonicalValue(sv.Value))
		sb.WriteString("|")
		sb.WriteString(sv.Unit)
		sb.WriteString(",")
	}

	sb.WriteString(";materials=")
	sb.WriteString(materials.Body)
	sb.WriteString("|")
	sb.WriteString(materials.Internals)
	sb.WriteString("|")
	sb.WriteString(materials.Gaskets)
	sb.WriteString("|")
	sb.WriteString(materials.Bolting)

	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:])[:HashLength]
}

// HashCard computes the content hash for a card.
func HashCard(card *types.EquipmentCard) string {
	return Hash(card.ComponentClass, card.Specifications, card.Materials)
}

// canonicalValue renders a spec value deterministically. JSON numbers decode
// as float64, so 10 and 10.0 canonicalize identically.
func canonicalValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return fmt.Sprintf("%t", val)
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", val), "0"), ".")
	case int:
		return fmt.Sprintf("%d", val)
	default:
		// Composite values: fall back to JSON, which sorts map keys.
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	}
}
