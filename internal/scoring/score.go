// Package scoring computes deterministic quality scores for equipment cards
// against a fixed rubric.
package scoring

import (
	"context"
	"fmt"
	"math"
	"regexp"

	"github.com/dexpi-labs/equipment-factory/internal/types"
)

// AcceptanceThreshold is the minimum score for a card to pass validation.
const AcceptanceThreshold = 40

// Point budgets per rubric rule.
const (
	tagFormatPoints       = 10
	componentClassPoints  = 10
	descriptionPoints     = 10
	uriPatternPoints      = 10
	uriLivenessPoints     = 10
	specificationsPoints  = 15
	operatingCondPoints   = 15
	materialsPoints       = 10
	standardsPoints       = 10
	manufacturersPoints   = 10
	nozzlesPoints         = 10
)

var (
	tagPattern = regexp.MustCompile(`^[A-Z]{1,4}-\d{3,4}[A-Z]?$`)
	uriPattern = regexp.MustCompile(`^http://(data\.posccaesar\.org|sandbox\.dexpi\.org)/rdl/`)
)

// URIVerifier checks a component class URI against a live reference data
// library. Implementations return the class label when the URI resolves, or
// an empty string when it does not.
type URIVerifier interface {
	VerifyClassURI(ctx context.Context, uri string) (string, error)
}

// Result is the outcome of scoring one card.
type Result struct {
	// Score is the normalized 0-100 score: round(100 * Earned / MaxPossible).
	Score int
	// Earned and MaxPossible are raw rubric points. MaxPossible is always the
	// sum of every rule's full points, regardless of verifier availability.
	Earned      int
	MaxPossible int
	// RDLVerified is set when a live verifier confirmed the class URI.
	RDLVerified bool
	// Notes collects human-readable findings for the run log.
	Notes []string
}

// Score computes the offline score of a card. Scoring never fails: missing or
// malformed fields simply earn zero for their rule.
func Score(card *types.EquipmentCard) int {
	return Evaluate(context.Background(), card, nil).Score
}

// Evaluate scores a card against the full rubric. When verifier is nil the
// liveness half of the URI rule is awarded together with the pattern half;
// with a live verifier it is awarded only on confirmation.
func Evaluate(ctx context.Context, card *types.EquipmentCard, verifier URIVerifier) Result {
	var res Result

	// Tag format
	res.MaxPossible += tagFormatPoints
	if tagPattern.MatchString(card.Tag) {
		res.Earned += tagFormatPoints
	} else {
		res.note("tag %q does not match ISA tag format", card.Tag)
	}

	// Component class present
	res.MaxPossible += componentClassPoints
	if card.ComponentClass != "" {
		res.Earned += componentClassPoints
	} else {
		res.note("missing component class")
	}

	// Description quality
	res.MaxPossible += descriptionPoints
	switch {
	case len(card.Description) > 20:
		res.Earned += descriptionPoints
	case card.Description != "":
		res.Earned += descriptionPoints / 2
	default:
		res.note("missing or short description")
	}

	// Classification URI: pattern half, then liveness half.
	res.MaxPossible += uriPatternPoints + uriLivenessPoints
	if card.ComponentClassURI != "" && uriPattern.MatchString(card.ComponentClassURI) {
		res.Earned += uriPatternPoints

		if verifier == nil {
			res.Earned += uriLivenessPoints
		} else if label, err := verifier.VerifyClassURI(ctx, card.ComponentClassURI); err != nil {
			res.note("RDL lookup failed: %v", err)
		} else if label != "" {
			res.Earned += uriLivenessPoints
			res.RDLVerified = true
			res.note("class URI verified against RDL: %s", label)
		} else {
			res.note("class URI not found in RDL: %s", card.ComponentClassURI)
		}
	} else {
		res.note("missing or non-RDL component class URI")
	}

	// Specification richness
	res.MaxPossible += specificationsPoints
	switch n := len(card.Specifications); {
	case n >= 5:
		res.Earned += specificationsPoints
	case n >= 3:
		res.Earned += 10
	case n >= 1:
		res.Earned += 5
	default:
		res.note("no specifications")
	}

	// Operating-condition plausibility
	res.MaxPossible += operatingCondPoints
	oc := card.OperatingConditions
	if oc.DesignPressure != nil && oc.OperatingPressure != nil {
		res.Earned += 8
		if *oc.DesignPressure >= *oc.OperatingPressure {
			res.Earned += 7
		} else {
			res.note("design pressure %.1f below operating pressure %.1f", *oc.DesignPressure, *oc.OperatingPressure)
		}
	}

	// Material completeness
	res.MaxPossible += materialsPoints
	switch n := card.Materials.NonEmptyCount(); {
	case n >= 3:
		res.Earned += materialsPoints
	case n >= 1:
		res.Earned += materialsPoints / 2
	}

	// Standards
	res.MaxPossible += standardsPoints
	switch n := len(card.Standards); {
	case n >= 2:
		res.Earned += standardsPoints
	case n >= 1:
		res.Earned += standardsPoints / 2
	}

	// Manufacturers
	res.MaxPossible += manufacturersPoints
	switch n := len(card.Manufacturers); {
	case n >= 2:
		res.Earned += manufacturersPoints
	case n >= 1:
		res.Earned += manufacturersPoints / 2
	}

	// Nozzles
	res.MaxPossible += nozzlesPoints
	switch n := len(card.Nozzles); {
	case n >= 2:
		res.Earned += nozzlesPoints
	case n >= 1:
		res.Earned += nozzlesPoints / 2
	}

	res.Score = int(math.Round(100 * float64(res.Earned) / float64(res.MaxPossible)))
	return res
}

func (r *Result) note(format string, args ...any) {
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}
