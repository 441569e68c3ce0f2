package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dexpi-labs/equipment-factory/internal/types"
)

// Postgres is the pgx-backed Gateway. Cards live in the equipment_cards
// table, indexed by (facility, tag) and by content_hash; the full card is
// stored as a JSONB payload.
type Postgres struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool to the catalog database.
func ConnectPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: ping failed: %v", ErrUnavailable, err)
	}
	return &Postgres{pool: pool}, nil
}

// Close closes the connection pool.
func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// FindByTag looks up a card by facility-scoped tag.
func (p *Postgres) FindByTag(ctx context.Context, facility, tag string) (*types.EquipmentCard, error) {
	return p.findOne(ctx,
		`SELECT payload FROM equipment_cards WHERE facility = $1 AND tag = $2`,
		facility, tag)
}

// FindByFingerprint looks up a card by content hash.
func (p *Postgres) FindByFingerprint(ctx context.Context, hash string) (*types.EquipmentCard, error) {
	if hash == "" {
		return nil, nil
	}
	return p.findOne(ctx,
		`SELECT payload FROM equipment_cards WHERE content_hash = $1`,
		hash)
}

func (p *Postgres) findOne(ctx context.Context, query string, args ...any) (*types.EquipmentCard, error) {
	var payload []byte
	err := p.pool.QueryRow(ctx, query, args...).Scan(&payload)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	var card types.EquipmentCard
	if err := json.Unmarshal(payload, &card); err != nil {
		return nil, fmt.Errorf("failed to decode card payload: %w", err)
	}
	return &card, nil
}

// Insert stores a card, assigning an ID if it has none. Single-statement
// durability only: no transaction spans the caller's dedup check and this
// insert.
func (p *Postgres) Insert(ctx context.Context, card *types.EquipmentCard) (string, error) {
	if card.ID == "" {
		card.ID = uuid.NewString()
	}
	payload, err := json.Marshal(card)
	if err != nil {
		return "", fmt.Errorf("failed to marshal card: %w", err)
	}

	_, err = p.pool.Exec(ctx,
		`INSERT INTO equipment_cards (id, tag, facility, sector, sub_sector, component_class, content_hash, payload)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		card.ID, card.Tag, card.Facility, card.Sector, card.SubSector,
		card.ComponentClass, card.Metadata.ContentHash, payload,
	)
	if err != nil {
		return "", fmt.Errorf("%w: insert failed: %v", ErrUnavailable, err)
	}
	return card.ID, nil
}

// Count returns the total number of cards in the catalog.
func (p *Postgres) Count(ctx context.Context) (int, error) {
	var count int
	if err := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM equipment_cards`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return count, nil
}

// KnownTags returns the set of tags taken within a facility.
func (p *Postgres) KnownTags(ctx context.Context, facility string) (map[string]bool, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT tag FROM equipment_cards WHERE facility = $1`, facility)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	tags := make(map[string]bool)
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags[tag] = true
	}
	return tags, rows.Err()
}

// ExistingClasses returns distinct component classes present for a facility.
func (p *Postgres) ExistingClasses(ctx context.Context, facility string) ([]string, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT DISTINCT component_class FROM equipment_cards WHERE facility = $1`, facility)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	var classes []string
	for rows.Next() {
		var class string
		if err := rows.Scan(&class); err != nil {
			return nil, fmt.Errorf("failed to scan class: %w", err)
		}
		classes = append(classes, class)
	}
	return classes, rows.Err()
}
