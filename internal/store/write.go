package store

import (
	"context"
	"fmt"

	"github.com/roach88/movecore/internal/tag"
)

// IndexType records a type in the index under its canonical string key,
// along with every address it transitively references.
// Uses ON CONFLICT DO NOTHING for idempotency: re-indexing a known type
// is silently ignored, so concurrent indexers and replays are safe.
func (s *Store) IndexType(ctx context.Context, t tag.TypeTag, batchID string) error {
	canonical := tag.CanonicalString(t, true)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("index type: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO types (canonical, display, hash, batch_id)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(canonical) DO NOTHING
	`,
		canonical,
		tag.DisplayString(t),
		tag.Hash(t),
		batchID,
	)
	if err != nil {
		return fmt.Errorf("index type %s: %w", canonical, err)
	}

	// Address rows only accompany a fresh insert; an already-indexed
	// type has them already.
	inserted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("index type %s: %w", canonical, err)
	}
	if inserted > 0 {
		for pos, addr := range tag.AllAddresses(t) {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO type_addresses (canonical, position, address)
				VALUES (?, ?, ?)
			`,
				canonical,
				pos,
				addr.CanonicalString(true),
			)
			if err != nil {
				return fmt.Errorf("index type %s address %d: %w", canonical, pos, err)
			}
		}
	}

	return tx.Commit()
}
