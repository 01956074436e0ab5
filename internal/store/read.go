package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/movecore/internal/tag"
)

// ErrNotFound is returned when a canonical key is absent from the index.
var ErrNotFound = errors.New("type not found in index")

// GetType reconstructs the type stored under the given canonical key.
// The stored string is the source of truth; the value is rebuilt through
// the grammar parser, so anything in the index round-trips by
// construction.
func (s *Store) GetType(ctx context.Context, canonical string) (tag.TypeTag, error) {
	var stored string
	err := s.db.QueryRowContext(ctx, `
		SELECT canonical FROM types WHERE canonical = ?
	`, canonical).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get type %s: %w", canonical, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get type %s: %w", canonical, err)
	}

	t, err := tag.ParseTypeTag(stored)
	if err != nil {
		return nil, fmt.Errorf("get type %s: stored key does not parse: %w", canonical, err)
	}
	return t, nil
}

// TypesReferencing returns the canonical keys of every indexed type that
// transitively references addr, in deterministic key order.
func (s *Store) TypesReferencing(ctx context.Context, addr tag.Address) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT canonical
		FROM type_addresses
		WHERE address = ?
		ORDER BY canonical COLLATE BINARY ASC
	`, addr.CanonicalString(true))
	if err != nil {
		return nil, fmt.Errorf("query types referencing %s: %w", addr.ShortString(), err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan type key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate type keys: %w", err)
	}

	// Return empty slice instead of nil.
	if keys == nil {
		keys = []string{}
	}
	return keys, nil
}

// Addresses returns the addresses referenced by the type stored under the
// canonical key, in the traversal's first-seen order.
func (s *Store) Addresses(ctx context.Context, canonical string) ([]tag.Address, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT address FROM type_addresses
		WHERE canonical = ?
		ORDER BY position ASC
	`, canonical)
	if err != nil {
		return nil, fmt.Errorf("query addresses for %s: %w", canonical, err)
	}
	defer rows.Close()

	var addrs []tag.Address
	for rows.Next() {
		var hexAddr string
		if err := rows.Scan(&hexAddr); err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		addr, err := tag.AddressFromHex(hexAddr)
		if err != nil {
			return nil, fmt.Errorf("stored address does not parse: %w", err)
		}
		addrs = append(addrs, addr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate addresses: %w", err)
	}

	if addrs == nil {
		addrs = []tag.Address{}
	}
	return addrs, nil
}

// Count returns the number of indexed types.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM types`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count types: %w", err)
	}
	return n, nil
}
